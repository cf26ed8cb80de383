package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stainprep/stainprep/internal/db"
	"github.com/stainprep/stainprep/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(dbtx db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: dbtx}
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.PlexAssignment) error {
	query := `INSERT INTO plex_assignments (plex, reagent_id, position, created_at)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.Plex, a.ReagentID, a.Position, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context) ([]domain.PlexAssignment, error) {
	query := `SELECT plex, reagent_id, position, created_at
		FROM plex_assignments ORDER BY plex, position`
	return r.queryAssignments(ctx, query)
}

func (r *SQLiteAssignmentRepo) ListByPlex(ctx context.Context, plex int) ([]domain.PlexAssignment, error) {
	query := `SELECT plex, reagent_id, position, created_at
		FROM plex_assignments WHERE plex = ? ORDER BY position`
	return r.queryAssignments(ctx, query, plex)
}

func (r *SQLiteAssignmentRepo) DeleteByPlex(ctx context.Context, plex int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plex_assignments WHERE plex = ?`, plex); err != nil {
		return fmt.Errorf("clearing plex %d assignments: %w", plex, err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) DeleteByReagent(ctx context.Context, reagentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plex_assignments WHERE reagent_id = ?`, reagentID); err != nil {
		return fmt.Errorf("clearing assignments for reagent: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plex_assignments`); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) queryAssignments(ctx context.Context, query string, args ...any) ([]domain.PlexAssignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.PlexAssignment
	for rows.Next() {
		var a domain.PlexAssignment
		var createdAtStr string
		if err := rows.Scan(&a.Plex, &a.ReagentID, &a.Position, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}
