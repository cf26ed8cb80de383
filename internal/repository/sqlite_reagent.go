package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stainprep/stainprep/internal/db"
	"github.com/stainprep/stainprep/internal/domain"
)

// SQLiteReagentRepo implements ReagentRepo over a SQLite worksheet database.
type SQLiteReagentRepo struct {
	db db.DBTX
}

// NewSQLiteReagentRepo creates a new SQLiteReagentRepo. Accepts a DBTX so it
// can run against either the database or an open transaction.
func NewSQLiteReagentRepo(dbtx db.DBTX) *SQLiteReagentRepo {
	return &SQLiteReagentRepo{db: dbtx}
}

const reagentColumns = `id, name, type, initial_stock_ul, volume_per_slide_ul,
	dead_volume_ul, slides_override, position, created_at, updated_at`

func (r *SQLiteReagentRepo) Create(ctx context.Context, reagent *domain.Reagent) error {
	// Append to the end of the worksheet.
	query := `INSERT INTO reagents (id, name, type, initial_stock_ul, volume_per_slide_ul,
		dead_volume_ul, slides_override, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM reagents), ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		reagent.ID,
		reagent.Name,
		string(reagent.Type),
		reagent.InitialStockUL,
		reagent.VolumePerSlideUL,
		nullableFloatToValue(reagent.DeadVolumeUL),
		nullableIntToValue(reagent.SlidesOverride),
		reagent.CreatedAt.Format(time.RFC3339),
		reagent.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reagent: %w", err)
	}
	return nil
}

func (r *SQLiteReagentRepo) GetByID(ctx context.Context, id string) (*domain.Reagent, error) {
	query := `SELECT ` + reagentColumns + ` FROM reagents WHERE id = ?`
	return r.scanReagent(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteReagentRepo) GetByName(ctx context.Context, name string) (*domain.Reagent, error) {
	query := `SELECT ` + reagentColumns + ` FROM reagents WHERE name = ? COLLATE NOCASE`
	return r.scanReagent(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteReagentRepo) List(ctx context.Context) ([]*domain.Reagent, error) {
	query := `SELECT ` + reagentColumns + ` FROM reagents ORDER BY position, created_at`
	return r.queryReagents(ctx, query)
}

func (r *SQLiteReagentRepo) ListByType(ctx context.Context, t domain.ReagentType) ([]*domain.Reagent, error) {
	query := `SELECT ` + reagentColumns + ` FROM reagents WHERE type = ? ORDER BY position, created_at`
	return r.queryReagents(ctx, query, string(t))
}

func (r *SQLiteReagentRepo) Update(ctx context.Context, reagent *domain.Reagent) error {
	query := `UPDATE reagents SET name = ?, type = ?, initial_stock_ul = ?, volume_per_slide_ul = ?,
		dead_volume_ul = ?, slides_override = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		reagent.Name,
		string(reagent.Type),
		reagent.InitialStockUL,
		reagent.VolumePerSlideUL,
		nullableFloatToValue(reagent.DeadVolumeUL),
		nullableIntToValue(reagent.SlidesOverride),
		reagent.UpdatedAt.Format(time.RFC3339),
		reagent.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reagent: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reagent not found")
	}
	return nil
}

func (r *SQLiteReagentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reagents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reagent: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reagent not found")
	}
	return nil
}

func (r *SQLiteReagentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reagents`); err != nil {
		return fmt.Errorf("clearing reagents: %w", err)
	}
	return nil
}

func (r *SQLiteReagentRepo) queryReagents(ctx context.Context, query string, args ...any) ([]*domain.Reagent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reagents: %w", err)
	}
	defer rows.Close()

	var reagents []*domain.Reagent
	for rows.Next() {
		reagent, err := scanReagentFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		reagents = append(reagents, reagent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reagents: %w", err)
	}
	return reagents, nil
}

func (r *SQLiteReagentRepo) scanReagent(row *sql.Row) (*domain.Reagent, error) {
	reagent, err := scanReagentFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reagent not found")
	}
	return reagent, err
}

// scanReagentFields scans one reagent row through the provided scan func,
// shared between *sql.Row and *sql.Rows.
func scanReagentFields(scan func(dest ...any) error) (*domain.Reagent, error) {
	var reagent domain.Reagent
	var typeStr, createdAtStr, updatedAtStr string
	var deadVolume sql.NullFloat64
	var slidesOverride sql.NullInt64

	err := scan(
		&reagent.ID, &reagent.Name, &typeStr,
		&reagent.InitialStockUL, &reagent.VolumePerSlideUL,
		&deadVolume, &slidesOverride, &reagent.Position,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning reagent: %w", err)
	}

	reagent.Type = domain.ReagentType(typeStr)
	reagent.DeadVolumeUL = floatFromNull(deadVolume)
	reagent.SlidesOverride = intFromNull(slidesOverride)

	var parseErr error
	reagent.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	reagent.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &reagent, nil
}
