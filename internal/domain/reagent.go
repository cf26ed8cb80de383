package domain

import (
	"strings"
	"time"
)

// Reagent is one row of the worksheet: a stock the lab tech will pipette
// into the robot's reagent tray.
type Reagent struct {
	ID               string
	Name             string
	Type             ReagentType
	InitialStockUL   float64
	VolumePerSlideUL float64

	// DeadVolumeUL overrides the run-level dead volume when set.
	DeadVolumeUL *float64

	// SlidesOverride pins the slide count for this reagent instead of
	// deriving it from the run setup.
	SlidesOverride *int

	// Position preserves worksheet entry order.
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the worksheet invariants for a single reagent.
func (r *Reagent) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return Validationf("name", "reagent name is required")
	}
	if !ValidReagentTypes[string(r.Type)] {
		return Validationf("type", "unknown reagent type %q", string(r.Type))
	}
	if r.InitialStockUL < 0 {
		return Validationf("initial_stock_ul", "initial stock must be non-negative, got %g", r.InitialStockUL)
	}
	if r.VolumePerSlideUL < 0 {
		return Validationf("volume_per_slide_ul", "volume per slide must be non-negative, got %g", r.VolumePerSlideUL)
	}
	if r.DeadVolumeUL != nil && *r.DeadVolumeUL < 0 {
		return Validationf("dead_volume_ul", "dead volume must be non-negative, got %g", *r.DeadVolumeUL)
	}
	if r.SlidesOverride != nil && *r.SlidesOverride < 0 {
		return Validationf("slides", "slide count must be non-negative, got %d", *r.SlidesOverride)
	}
	return nil
}

// EffectiveDeadVolumeUL returns the per-reagent dead volume, falling back to
// the run-level default.
func (r *Reagent) EffectiveDeadVolumeUL(runDefault float64) float64 {
	if r.DeadVolumeUL != nil {
		return *r.DeadVolumeUL
	}
	return runDefault
}

// DisplayID returns a short identifier for table output.
func (r *Reagent) DisplayID() string {
	if len(r.ID) >= 8 {
		return r.ID[:8]
	}
	return r.ID
}
