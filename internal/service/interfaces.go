package service

import (
	"context"
	"io"

	"github.com/stainprep/stainprep/internal/domain"
)

type ReagentService interface {
	Add(ctx context.Context, r *domain.Reagent) error
	GetByID(ctx context.Context, id string) (*domain.Reagent, error)
	List(ctx context.Context) ([]*domain.Reagent, error)
	ListByType(ctx context.Context, t domain.ReagentType) ([]*domain.Reagent, error)
	Update(ctx context.Context, r *domain.Reagent) error
	Remove(ctx context.Context, id string) error
}

type WorksheetService interface {
	// Setup returns the current run setup, falling back to defaults when
	// the worksheet has none yet.
	Setup(ctx context.Context) (*domain.RunSetup, error)
	SaveSetup(ctx context.Context, s *domain.RunSetup) error

	// AssignPlex replaces the primary antibodies assigned to one plex.
	AssignPlex(ctx context.Context, plex int, reagentIDs []string) error
	Assignments(ctx context.Context) ([]domain.PlexAssignment, error)
	AssignmentsForPlex(ctx context.Context, plex int) ([]domain.PlexAssignment, error)

	// Reset discards the whole worksheet: reagents, setup, assignments.
	Reset(ctx context.Context) error
}

type PlanService interface {
	// Build computes the prep plan from the current worksheet.
	Build(ctx context.Context) (*domain.PrepPlan, error)
}

type ExportService interface {
	// Export computes the current plan and writes it in the given format.
	Export(ctx context.Context, format domain.ExportFormat, w io.Writer) (*domain.PrepPlan, error)
}
