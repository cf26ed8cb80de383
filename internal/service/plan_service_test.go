package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedWorksheet fills the worksheet with a 2-plex panel: two primaries split
// across the plexes plus a shared Opal and DAPI.
func seedWorksheet(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	s, err := env.Worksheet.Setup(ctx)
	require.NoError(t, err)
	s.Plexes = 2
	s.TestSlides = 8
	s.NegControls = 2
	require.NoError(t, env.Worksheet.SaveSetup(ctx, s))

	cd3 := &domain.Reagent{Name: "CD3", Type: domain.ReagentPrimary, VolumePerSlideUL: 2, InitialStockUL: 1000}
	cd8 := &domain.Reagent{Name: "CD8", Type: domain.ReagentPrimary, VolumePerSlideUL: 2, InitialStockUL: 1000}
	opal := &domain.Reagent{Name: "Opal 520", Type: domain.ReagentOpal, VolumePerSlideUL: 1, InitialStockUL: 1000}
	dapi := &domain.Reagent{Name: "DAPI", Type: domain.ReagentDAPI, VolumePerSlideUL: 1, InitialStockUL: 1000}
	for _, r := range []*domain.Reagent{cd3, cd8, opal, dapi} {
		require.NoError(t, env.Reagents.Add(ctx, r))
	}

	require.NoError(t, env.Worksheet.AssignPlex(ctx, 1, []string{cd3.ID}))
	require.NoError(t, env.Worksheet.AssignPlex(ctx, 2, []string{cd8.ID}))
}

func TestPlanService_Build(t *testing.T) {
	env := setupServices(t)
	seedWorksheet(t, env)

	plan, err := env.Plans.Build(context.Background())
	require.NoError(t, err)

	// Per plex: 1 primary + opal + dapi = 3 entries.
	assert.Equal(t, 6, plan.EntryCount())
	require.Len(t, plan.Plexes, 2)

	// Primary: 8 slides x 2 + 150 = 166. Opal/DAPI: 10 x 1 x 2 + 150 = 170.
	perPlex := 166.0 + 170 + 170
	assert.InDelta(t, 2*perPlex, plan.GrandTotalUL, 1e-9)
	assert.False(t, plan.OverThreshold)
}

func TestPlanService_Build_EmptyWorksheet(t *testing.T) {
	env := setupServices(t)

	plan, err := env.Plans.Build(context.Background())
	require.NoError(t, err)
	assert.Zero(t, plan.EntryCount())
	assert.Zero(t, plan.GrandTotalUL)
	assert.False(t, plan.OverThreshold)
}

func TestPlanService_Build_ReportsToObserver(t *testing.T) {
	env := setupServices(t)
	seedWorksheet(t, env)

	var log bytes.Buffer
	observed := NewPlanService(env.Worksheet, env.ReagentRepo, NewLogUseCaseObserver(&log))
	_, err := observed.Build(context.Background())
	require.NoError(t, err)

	out := log.String()
	assert.Contains(t, out, "use_case=build_plan")
	assert.Contains(t, out, "success=true")
	assert.True(t, strings.Contains(out, "entries=6"), "observer should see entry count, got: %s", out)
}

func TestPlanService_Build_FansOutToAllObservers(t *testing.T) {
	env := setupServices(t)
	seedWorksheet(t, env)

	var first, second bytes.Buffer
	observed := NewPlanService(env.Worksheet, env.ReagentRepo,
		NewLogUseCaseObserver(&first), nil, NewLogUseCaseObserver(&second))
	_, err := observed.Build(context.Background())
	require.NoError(t, err)

	assert.Contains(t, first.String(), "use_case=build_plan")
	assert.Contains(t, second.String(), "use_case=build_plan", "every observer receives the event")
}

func TestExportService_CSV(t *testing.T) {
	env := setupServices(t)
	seedWorksheet(t, env)

	var buf bytes.Buffer
	plan, err := env.Exports.Export(context.Background(), domain.ExportCSV, &buf)
	require.NoError(t, err)
	require.NotNil(t, plan)

	out := buf.String()
	assert.Contains(t, out, "plex,reagent,type")
	assert.Contains(t, out, "CD3")
	assert.Contains(t, out, "Opal 520")
	assert.Contains(t, out, "total")
}

func TestExportService_UnknownFormat(t *testing.T) {
	env := setupServices(t)

	var buf bytes.Buffer
	_, err := env.Exports.Export(context.Background(), domain.ExportFormat("pdf"), &buf)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, buf.Len(), "nothing written on invalid format")
}
