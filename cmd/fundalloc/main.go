package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/fundalloc/internal/cli"
	"github.com/alexanderramin/fundalloc/internal/config"
	"github.com/alexanderramin/fundalloc/internal/db"
	"github.com/alexanderramin/fundalloc/internal/logging"
	"github.com/alexanderramin/fundalloc/internal/repository"
	"github.com/alexanderramin/fundalloc/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
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

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", zap.String("path", cfg.DBPath))

	// Wire repositories
	payorRepo := repository.NewSQLitePayorRepo(database)
	eventRepo := repository.NewSQLiteAllocationEventRepo(database)
	batches := repository.NewSQLiteBatchStore(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	app := &cli.App{
		Payors:      service.NewPayorService(payorRepo, observers...),
		Allocations: service.NewAllocationService(batches, eventRepo, uow, observers...),
		Import:      service.NewImportService(uow, observers...),
		DefaultBID:  cfg.DefaultBID,
	}

	// Detect interactive terminal for the allocation grid.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
