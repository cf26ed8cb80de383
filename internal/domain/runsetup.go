package domain

import "time"

const (
	// DefaultWarnThresholdUL is the total-volume ceiling above which the
	// plan is flagged. Totals of exactly this value do not warn.
	DefaultWarnThresholdUL = 4000

	// MaxPlexes is the largest multiplex panel the robot supports.
	MaxPlexes = 8
)

// RunSetup is the worksheet singleton describing the experiment being
// prepared: which instrument, how many plexes, and how many slides go on.
type RunSetup struct {
	Instrument      InstrumentModel
	DeadVolumeUL    float64
	Plexes          int
	TestSlides      int
	NegControls     int
	WarnThresholdUL float64
	UpdatedAt       time.Time
}

// DefaultRunSetup returns a singleplex Bond RX setup with documented defaults.
func DefaultRunSetup() *RunSetup {
	return &RunSetup{
		Instrument:      InstrumentBondRX,
		DeadVolumeUL:    InstrumentBondRX.DefaultDeadVolumeUL(),
		Plexes:          1,
		TestSlides:      0,
		NegControls:     0,
		WarnThresholdUL: DefaultWarnThresholdUL,
	}
}

// Validate checks the run setup invariants.
func (s *RunSetup) Validate() error {
	if !ValidInstrumentModels[string(s.Instrument)] {
		return Validationf("instrument", "unknown instrument %q", string(s.Instrument))
	}
	if s.DeadVolumeUL <= 0 {
		return Validationf("dead_volume_ul", "dead volume must be positive, got %g", s.DeadVolumeUL)
	}
	if s.Plexes < 1 || s.Plexes > MaxPlexes {
		return Validationf("plexes", "plex count must be between 1 and %d, got %d", MaxPlexes, s.Plexes)
	}
	if s.TestSlides < 0 {
		return Validationf("test_slides", "test slide count must be non-negative, got %d", s.TestSlides)
	}
	if s.NegControls < 0 {
		return Validationf("neg_controls", "negative control count must be non-negative, got %d", s.NegControls)
	}
	if s.WarnThresholdUL <= 0 {
		return Validationf("warn_threshold_ul", "warning threshold must be positive, got %g", s.WarnThresholdUL)
	}
	return nil
}

// SlidesFor returns the slide count a reagent of the given type is dispensed
// on. Negative controls are excluded for primaries.
func (s *RunSetup) SlidesFor(t ReagentType) int {
	if t.AppliedToNegControls() {
		return s.TestSlides + s.NegControls
	}
	return s.TestSlides
}
