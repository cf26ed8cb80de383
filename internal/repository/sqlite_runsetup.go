package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stainprep/stainprep/internal/db"
	"github.com/stainprep/stainprep/internal/domain"
)

// SQLiteRunSetupRepo implements RunSetupRepo. The run setup is a singleton
// row keyed on id = 1.
type SQLiteRunSetupRepo struct {
	db db.DBTX
}

// NewSQLiteRunSetupRepo creates a new SQLiteRunSetupRepo.
func NewSQLiteRunSetupRepo(dbtx db.DBTX) *SQLiteRunSetupRepo {
	return &SQLiteRunSetupRepo{db: dbtx}
}

func (r *SQLiteRunSetupRepo) Get(ctx context.Context) (*domain.RunSetup, error) {
	query := `SELECT instrument, dead_volume_ul, plexes, test_slides, neg_controls, warn_threshold_ul, updated_at
		FROM run_setup WHERE id = 1`

	var s domain.RunSetup
	var instrumentStr, updatedAtStr string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&instrumentStr, &s.DeadVolumeUL, &s.Plexes,
		&s.TestSlides, &s.NegControls, &s.WarnThresholdUL,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run setup: %w", err)
	}

	s.Instrument = domain.InstrumentModel(instrumentStr)
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRunSetupRepo) Upsert(ctx context.Context, s *domain.RunSetup) error {
	query := `INSERT INTO run_setup (id, instrument, dead_volume_ul, plexes, test_slides, neg_controls, warn_threshold_ul, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			instrument = excluded.instrument,
			dead_volume_ul = excluded.dead_volume_ul,
			plexes = excluded.plexes,
			test_slides = excluded.test_slides,
			neg_controls = excluded.neg_controls,
			warn_threshold_ul = excluded.warn_threshold_ul,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		string(s.Instrument),
		s.DeadVolumeUL,
		s.Plexes,
		s.TestSlides,
		s.NegControls,
		s.WarnThresholdUL,
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting run setup: %w", err)
	}
	return nil
}

func (r *SQLiteRunSetupRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM run_setup`); err != nil {
		return fmt.Errorf("clearing run setup: %w", err)
	}
	return nil
}
