package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stainprep/stainprep/internal/db"
	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stainprep/stainprep/internal/repository"
)

type reagentService struct {
	reagents repository.ReagentRepo
	uow      db.UnitOfWork
}

func NewReagentService(reagents repository.ReagentRepo, uow db.UnitOfWork) ReagentService {
	return &reagentService{reagents: reagents, uow: uow}
}

func (s *reagentService) Add(ctx context.Context, r *domain.Reagent) error {
	r.Name = strings.TrimSpace(r.Name)
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.reagents.Create(ctx, r)
}

func (s *reagentService) GetByID(ctx context.Context, id string) (*domain.Reagent, error) {
	return s.reagents.GetByID(ctx, id)
}

func (s *reagentService) List(ctx context.Context) ([]*domain.Reagent, error) {
	return s.reagents.List(ctx)
}

func (s *reagentService) ListByType(ctx context.Context, t domain.ReagentType) ([]*domain.Reagent, error) {
	return s.reagents.ListByType(ctx, t)
}

func (s *reagentService) Update(ctx context.Context, r *domain.Reagent) error {
	r.Name = strings.TrimSpace(r.Name)
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()

	// Demoting a primary invalidates its plex assignments; drop them in
	// the same transaction.
	if r.Type != domain.ReagentPrimary {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := repository.NewSQLiteReagentRepo(tx).Update(ctx, r); err != nil {
				return err
			}
			return repository.NewSQLiteAssignmentRepo(tx).DeleteByReagent(ctx, r.ID)
		})
	}
	return s.reagents.Update(ctx, r)
}

func (s *reagentService) Remove(ctx context.Context, id string) error {
	return s.reagents.Delete(ctx, id)
}
