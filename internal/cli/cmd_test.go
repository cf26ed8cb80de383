package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stainprep/stainprep/internal/repository"
	"github.com/stainprep/stainprep/internal/service"
	"github.com/stainprep/stainprep/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	reagentRepo := repository.NewSQLiteReagentRepo(database)
	setupRepo := repository.NewSQLiteRunSetupRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	worksheet := service.NewWorksheetService(setupRepo, reagentRepo, assignmentRepo, uow, *domain.DefaultRunSetup())
	plans := service.NewPlanService(worksheet, reagentRepo)

	return &App{
		Reagents:      service.NewReagentService(reagentRepo, uow),
		Worksheet:     worksheet,
		Plans:         plans,
		Exports:       service.NewExportService(plans),
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures cobra-level output.
func executeCmd(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	return root.Execute()
}

func TestReagentAddAndList(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "reagent", "add",
		"--name", "CD3", "--type", "primary", "--stock", "500", "--per-slide", "2.5")
	require.NoError(t, err)

	reagents, err := app.Reagents.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reagents, 1)
	assert.Equal(t, "CD3", reagents[0].Name)
	assert.Equal(t, domain.ReagentPrimary, reagents[0].Type)
	assert.Equal(t, 2.5, reagents[0].VolumePerSlideUL)

	require.NoError(t, executeCmd(t, app, "reagent", "list"))
}

func TestReagentAdd_InvalidType(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "reagent", "add",
		"--name", "Mystery", "--type", "tertiary", "--per-slide", "1")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestReagentUpdate_ByNameAndPrefix(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	r := &domain.Reagent{Name: "CD8", Type: domain.ReagentPrimary, VolumePerSlideUL: 2}
	require.NoError(t, app.Reagents.Add(ctx, r))

	require.NoError(t, executeCmd(t, app, "reagent", "update", "cd8", "--stock", "750"))

	updated, err := app.Reagents.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 750.0, updated.InitialStockUL)

	require.NoError(t, executeCmd(t, app, "reagent", "update", r.ID[:8], "--per-slide", "3"))
	updated, err = app.Reagents.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.VolumePerSlideUL)
}

func TestReagentRemove(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	r := &domain.Reagent{Name: "DAPI", Type: domain.ReagentDAPI, VolumePerSlideUL: 1}
	require.NoError(t, app.Reagents.Add(ctx, r))

	require.NoError(t, executeCmd(t, app, "reagent", "remove", "DAPI"))

	reagents, err := app.Reagents.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, reagents)
}

func TestSetupUpdate_InstrumentSwitchResetsDeadVolume(t *testing.T) {
	app := testApp(t)

	require.NoError(t, executeCmd(t, app, "setup", "update", "--instrument", "bond_iii", "--plexes", "2"))

	s, err := app.Worksheet.Setup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.InstrumentBondIII, s.Instrument)
	assert.Equal(t, 600.0, s.DeadVolumeUL)
	assert.Equal(t, 2, s.Plexes)

	// Explicit --dead wins over the model default.
	require.NoError(t, executeCmd(t, app, "setup", "update", "--instrument", "bond_rx", "--dead", "200"))
	s, err = app.Worksheet.Setup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200.0, s.DeadVolumeUL)
}

func TestAssign_ByArgs(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	r := &domain.Reagent{Name: "CD3", Type: domain.ReagentPrimary, VolumePerSlideUL: 2}
	require.NoError(t, app.Reagents.Add(ctx, r))

	require.NoError(t, executeCmd(t, app, "assign", "1", "CD3"))

	assignments, err := app.Worksheet.AssignmentsForPlex(ctx, 1)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, r.ID, assignments[0].ReagentID)
}

func TestAssign_ByPlexFlag(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	s, err := app.Worksheet.Setup(ctx)
	require.NoError(t, err)
	s.Plexes = 2
	require.NoError(t, app.Worksheet.SaveSetup(ctx, s))

	r := &domain.Reagent{Name: "CD8", Type: domain.ReagentPrimary, VolumePerSlideUL: 2}
	require.NoError(t, app.Reagents.Add(ctx, r))

	require.NoError(t, executeCmd(t, app, "assign", "--plex", "2", "CD8"))

	assignments, err := app.Worksheet.AssignmentsForPlex(ctx, 2)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
}

func TestReagentAdd_MissingFlagsNonInteractive(t *testing.T) {
	app := testApp(t)

	err := executeCmd(t, app, "reagent", "add", "--name", "CD3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--type is required")
}

func TestAssign_BadPlex(t *testing.T) {
	app := testApp(t)
	err := executeCmd(t, app, "assign", "nine", "CD3")
	require.Error(t, err)
}

func TestPlan_NonInteractive(t *testing.T) {
	app := testApp(t)
	require.NoError(t, executeCmd(t, app, "plan"))

	err := executeCmd(t, app, "plan", "--interactive")
	require.Error(t, err, "interactive viewer needs a terminal")
}

func TestExport_WritesFile(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	s, err := app.Worksheet.Setup(ctx)
	require.NoError(t, err)
	s.TestSlides = 4
	require.NoError(t, app.Worksheet.SaveSetup(ctx, s))

	r := &domain.Reagent{Name: "CD3", Type: domain.ReagentPrimary, VolumePerSlideUL: 2, InitialStockUL: 500}
	require.NoError(t, app.Reagents.Add(ctx, r))
	require.NoError(t, app.Worksheet.AssignPlex(ctx, 1, []string{r.ID}))

	out := filepath.Join(t.TempDir(), "plan.csv")
	require.NoError(t, executeCmd(t, app, "export", "--format", "csv", "--out", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CD3")
}

func TestExport_UnknownFormat(t *testing.T) {
	app := testApp(t)
	err := executeCmd(t, app, "export", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestReset_RequiresForceWhenNotATerminal(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	r := &domain.Reagent{Name: "CD3", Type: domain.ReagentPrimary, VolumePerSlideUL: 2}
	require.NoError(t, app.Reagents.Add(ctx, r))

	require.Error(t, executeCmd(t, app, "reset"))

	require.NoError(t, executeCmd(t, app, "reset", "--force"))
	reagents, err := app.Reagents.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, reagents)
}
