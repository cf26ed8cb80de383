package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/stainprep/stainprep/internal/domain"
)

// ReagentOption mutates a fixture reagent.
type ReagentOption func(*domain.Reagent)

func WithStock(ul float64) ReagentOption {
	return func(r *domain.Reagent) {
		r.InitialStockUL = ul
	}
}

func WithVolumePerSlide(ul float64) ReagentOption {
	return func(r *domain.Reagent) {
		r.VolumePerSlideUL = ul
	}
}

func WithDeadVolume(ul float64) ReagentOption {
	return func(r *domain.Reagent) {
		r.DeadVolumeUL = &ul
	}
}

func WithSlidesOverride(slides int) ReagentOption {
	return func(r *domain.Reagent) {
		r.SlidesOverride = &slides
	}
}

// NewReagent builds a valid fixture reagent with a generated ID.
func NewReagent(name string, typ domain.ReagentType, opts ...ReagentOption) *domain.Reagent {
	now := time.Now().UTC()
	r := &domain.Reagent{
		ID:               uuid.New().String(),
		Name:             name,
		Type:             typ,
		InitialStockUL:   300,
		VolumePerSlideUL: 1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRunSetup builds a valid fixture setup for the given slide counts.
func NewRunSetup(plexes, testSlides, negControls int) *domain.RunSetup {
	s := domain.DefaultRunSetup()
	s.Plexes = plexes
	s.TestSlides = testSlides
	s.NegControls = negControls
	s.UpdatedAt = time.Now().UTC()
	return s
}
