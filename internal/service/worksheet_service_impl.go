package service

import (
	"context"
	"time"

	"github.com/stainprep/stainprep/internal/db"
	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stainprep/stainprep/internal/repository"
)

type worksheetService struct {
	setup       repository.RunSetupRepo
	reagents    repository.ReagentRepo
	assignments repository.AssignmentRepo
	uow         db.UnitOfWork
	defaults    domain.RunSetup
}

func NewWorksheetService(
	setup repository.RunSetupRepo,
	reagents repository.ReagentRepo,
	assignments repository.AssignmentRepo,
	uow db.UnitOfWork,
	defaults domain.RunSetup,
) WorksheetService {
	return &worksheetService{
		setup:       setup,
		reagents:    reagents,
		assignments: assignments,
		uow:         uow,
		defaults:    defaults,
	}
}

func (s *worksheetService) Setup(ctx context.Context) (*domain.RunSetup, error) {
	current, err := s.setup.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		defaults := s.defaults
		return &defaults, nil
	}
	return current, nil
}

func (s *worksheetService) SaveSetup(ctx context.Context, setup *domain.RunSetup) error {
	if err := setup.Validate(); err != nil {
		return err
	}
	setup.UpdatedAt = time.Now().UTC()

	// Shrinking the plex count orphans assignments above the new count;
	// drop them together with the setup write.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteRunSetupRepo(tx).Upsert(ctx, setup); err != nil {
			return err
		}
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		all, err := txAssignments.List(ctx)
		if err != nil {
			return err
		}
		for _, a := range all {
			if a.Plex > setup.Plexes {
				if err := txAssignments.DeleteByPlex(ctx, a.Plex); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *worksheetService) AssignPlex(ctx context.Context, plex int, reagentIDs []string) error {
	setup, err := s.Setup(ctx)
	if err != nil {
		return err
	}
	if plex < 1 || plex > setup.Plexes {
		return domain.Validationf("plex", "plex %d is outside the configured run (1-%d)", plex, setup.Plexes)
	}

	seen := make(map[string]bool, len(reagentIDs))
	for _, id := range reagentIDs {
		if seen[id] {
			return domain.Validationf("reagent", "reagent %q listed twice for plex %d", id, plex)
		}
		seen[id] = true

		r, err := s.reagents.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r.Type != domain.ReagentPrimary {
			return domain.Validationf("reagent", "reagent %q is %s, only primaries are assigned to plexes", r.Name, r.Type)
		}
	}

	// Replace the plex's assignments atomically.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		if err := txAssignments.DeleteByPlex(ctx, plex); err != nil {
			return err
		}
		now := time.Now().UTC()
		for i, id := range reagentIDs {
			a := &domain.PlexAssignment{Plex: plex, ReagentID: id, Position: i + 1, CreatedAt: now}
			if err := txAssignments.Create(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *worksheetService) Assignments(ctx context.Context) ([]domain.PlexAssignment, error) {
	return s.assignments.List(ctx)
}

func (s *worksheetService) AssignmentsForPlex(ctx context.Context, plex int) ([]domain.PlexAssignment, error) {
	return s.assignments.ListByPlex(ctx, plex)
}

func (s *worksheetService) Reset(ctx context.Context) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteAssignmentRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewSQLiteReagentRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return repository.NewSQLiteRunSetupRepo(tx).Reset(ctx)
	})
}
