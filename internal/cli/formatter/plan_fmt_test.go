package formatter

import (
	"testing"

	"github.com/stainprep/stainprep/internal/calc"
	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func worksheetPlan(t *testing.T) *domain.PrepPlan {
	t.Helper()

	setup := domain.DefaultRunSetup()
	setup.TestSlides = 8
	setup.NegControls = 2

	cd3 := &domain.Reagent{ID: "r-cd3", Name: "CD3", Type: domain.ReagentPrimary, VolumePerSlideUL: 2, InitialStockUL: 100}
	opal := &domain.Reagent{ID: "r-opal", Name: "Opal 520", Type: domain.ReagentOpal, VolumePerSlideUL: 1, InitialStockUL: 1000}

	plan, err := calc.BuildPlan(calc.Input{
		Setup:    setup,
		Reagents: []*domain.Reagent{cd3, opal},
		Assignments: []domain.PlexAssignment{
			{Plex: 1, ReagentID: "r-cd3", Position: 0},
		},
	})
	require.NoError(t, err)
	return plan
}

func TestFormatPrepPlan(t *testing.T) {
	out := stripANSI(FormatPrepPlan(worksheetPlan(t)))

	assert.Contains(t, out, "PREP PLAN")
	assert.Contains(t, out, "PLEX 1")
	assert.Contains(t, out, "CD3")
	assert.Contains(t, out, "Opal 520")
	assert.Contains(t, out, "×2", "double-dispensed reagents are marked")
	assert.Contains(t, out, "Grand total:")
	assert.NotContains(t, out, "WARNING: total exceeds")
	assert.Contains(t, out, "insufficient stock: CD3")
}

func TestFormatPrepPlan_Empty(t *testing.T) {
	plan, err := calc.BuildPlan(calc.Input{Setup: domain.DefaultRunSetup()})
	require.NoError(t, err)

	out := stripANSI(FormatPrepPlan(plan))
	assert.Contains(t, out, "Nothing to prepare")
}

func TestFormatPrepPlan_ThresholdWarning(t *testing.T) {
	setup := domain.DefaultRunSetup()
	setup.TestSlides = 100

	dapi := &domain.Reagent{ID: "r-dapi", Name: "DAPI", Type: domain.ReagentDAPI, VolumePerSlideUL: 50, InitialStockUL: 20000}
	plan, err := calc.BuildPlan(calc.Input{Setup: setup, Reagents: []*domain.Reagent{dapi}})
	require.NoError(t, err)
	require.True(t, plan.OverThreshold)

	out := stripANSI(FormatPrepPlan(plan))
	assert.Contains(t, out, "WARNING: total exceeds 4000 µL")
}

func TestFormatRunSetup(t *testing.T) {
	s := domain.DefaultRunSetup()
	out := stripANSI(FormatRunSetup(s))

	assert.Contains(t, out, "RUN SETUP")
	assert.Contains(t, out, "Bond RX")
	assert.Contains(t, out, "150 µL")
	assert.Contains(t, out, "4000 µL")
}

func TestFormatAssignments(t *testing.T) {
	reagents := map[string]*domain.Reagent{
		"r-cd3": {ID: "r-cd3", Name: "CD3"},
	}
	assignments := []domain.PlexAssignment{{Plex: 1, ReagentID: "r-cd3"}}

	out := stripANSI(FormatAssignments(assignments, reagents, 2))
	assert.Contains(t, out, "Plex 1: CD3")
	assert.Contains(t, out, "Plex 2: (no primaries assigned)")
}

func TestFormatReagentList(t *testing.T) {
	dead := 300.0
	reagents := []*domain.Reagent{
		{ID: "aaaabbbb-1111", Name: "CD3", Type: domain.ReagentPrimary, InitialStockUL: 500, VolumePerSlideUL: 2},
		{ID: "ccccdddd-2222", Name: "Opal 520", Type: domain.ReagentOpal, InitialStockUL: 1000, VolumePerSlideUL: 1, DeadVolumeUL: &dead},
	}

	out := stripANSI(FormatReagentList(reagents))
	assert.Contains(t, out, "CD3")
	assert.Contains(t, out, "aaaabbbb")
	assert.Contains(t, out, "run default")
	assert.Contains(t, out, "300 µL")
}
