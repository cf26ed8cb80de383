package repository

import (
	"context"

	"github.com/stainprep/stainprep/internal/domain"
)

type ReagentRepo interface {
	Create(ctx context.Context, r *domain.Reagent) error
	GetByID(ctx context.Context, id string) (*domain.Reagent, error)
	GetByName(ctx context.Context, name string) (*domain.Reagent, error)
	List(ctx context.Context) ([]*domain.Reagent, error)
	ListByType(ctx context.Context, t domain.ReagentType) ([]*domain.Reagent, error)
	Update(ctx context.Context, r *domain.Reagent) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type RunSetupRepo interface {
	// Get returns the singleton setup row, or nil when the worksheet has
	// no setup yet.
	Get(ctx context.Context) (*domain.RunSetup, error)
	Upsert(ctx context.Context, s *domain.RunSetup) error
	Reset(ctx context.Context) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.PlexAssignment) error
	List(ctx context.Context) ([]domain.PlexAssignment, error)
	ListByPlex(ctx context.Context, plex int) ([]domain.PlexAssignment, error)
	DeleteByPlex(ctx context.Context, plex int) error
	DeleteByReagent(ctx context.Context, reagentID string) error
	DeleteAll(ctx context.Context) error
}
