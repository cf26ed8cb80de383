package service

import (
	"testing"

	"github.com/stainprep/stainprep/internal/domain"
	"github.com/stainprep/stainprep/internal/repository"
	"github.com/stainprep/stainprep/internal/testutil"
)

type testEnv struct {
	Reagents    ReagentService
	Worksheet   WorksheetService
	Plans       PlanService
	Exports     ExportService
	ReagentRepo repository.ReagentRepo
}

// setupServices wires the full service stack over an in-memory database.
func setupServices(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	reagentRepo := repository.NewSQLiteReagentRepo(database)
	setupRepo := repository.NewSQLiteRunSetupRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	reagents := NewReagentService(reagentRepo, uow)
	worksheet := NewWorksheetService(setupRepo, reagentRepo, assignmentRepo, uow, *domain.DefaultRunSetup())
	plans := NewPlanService(worksheet, reagentRepo)
	exports := NewExportService(plans)

	return &testEnv{
		Reagents:    reagents,
		Worksheet:   worksheet,
		Plans:       plans,
		Exports:     exports,
		ReagentRepo: reagentRepo,
	}
}
