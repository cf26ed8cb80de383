package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/stainprep/stainprep/internal/cli"
	"github.com/stainprep/stainprep/internal/config"
	"github.com/stainprep/stainprep/internal/db"
	"github.com/stainprep/stainprep/internal/repository"
	"github.com/stainprep/stainprep/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	reagentRepo := repository.NewSQLiteReagentRepo(database)
	setupRepo := repository.NewSQLiteRunSetupRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	worksheet := service.NewWorksheetService(setupRepo, reagentRepo, assignmentRepo, uow, cfg.RunSetupDefaults())
	plans := service.NewPlanService(worksheet, reagentRepo, observers...)

	app := &cli.App{
		Reagents:  service.NewReagentService(reagentRepo, uow),
		Worksheet: worksheet,
		Plans:     plans,
		Exports:   service.NewExportService(plans, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
