package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adriancosta/fitflow/internal/cli"
	"github.com/adriancosta/fitflow/internal/config"
	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/genapi"
	"github.com/adriancosta/fitflow/internal/lock"
	"github.com/adriancosta/fitflow/internal/pipeline"
	"github.com/adriancosta/fitflow/internal/repository"
	"github.com/adriancosta/fitflow/internal/service"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed).Fprint(os.Stderr, "Error: ")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath := cfg.DatabasePath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLitePlanSessionRepo(database)
	draftRepo := repository.NewSQLiteDraftRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	mealRepo := repository.NewSQLiteMealRepo(database)
	foodRepo := repository.NewSQLiteFoodRepo(database)
	weightRepo := repository.NewSQLiteWeightRepo(database)
	lockRepo := repository.NewSQLiteLockRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Structured logs go to the configured file, or nowhere.
	var logSink io.Writer
	var svcObserver service.UseCaseObserver
	apiObserver := genapi.Observer(genapi.NoopObserver{})
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logSink = f
		svcObserver = service.NewLogUseCaseObserver(logSink)
		apiObserver = genapi.NewLogObserver(logSink)
	}

	// Wire generation API client and pipeline
	apiClient := genapi.NewClient(genapi.LoadConfig(), apiObserver)
	hub := lock.NewHub()
	lease := lock.NewLease(lockRepo)
	runner := pipeline.NewRunner(sessionRepo, hub)
	planner := pipeline.NewOrchestrator(
		sessionRepo, draftRepo, profileRepo,
		apiClient, lease, hub, runner,
		pipeline.Options{EnableWorkouts: cfg.Workouts},
	)

	app := &cli.App{
		Onboarding: service.NewOnboardingService(profileRepo, svcObserver),
		Meals:      service.NewMealService(mealRepo, foodRepo, uow, apiClient, svcObserver),
		Progress:   service.NewProgressService(mealRepo, weightRepo, profileRepo, svcObserver),
		FoodImport: service.NewFoodImportService(uow, svcObserver),
		Planner:    planner,
		Events:     hub,
	}

	// Detect interactive terminal for the wizard and live progress view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
