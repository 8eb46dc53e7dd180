package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/alexanderramin/planboard/internal/cli"
	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var cleanup []func()
	defer func() {
		for _, f := range slices.Backward(cleanup) {
			f()
		}
	}()

	app := &cli.App{Config: cfg}

	// The store is built after cobra has parsed --log.
	app.OpenStore = func(ctx context.Context, logUseCases bool) (service.Editor, error) {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		cleanup = append(cleanup, func() { database.Close() })

		repo := repository.NewSQLitePlanStateRepo(database, db.NewSQLiteUnitOfWork(database))

		var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
		if logUseCases {
			w, closeLog, err := logWriter(cfg)
			if err != nil {
				return nil, err
			}
			cleanup = append(cleanup, closeLog)
			observer = service.NewLogUseCaseObserver(w)
		}

		store := service.NewPlanStore(repo, cfg.HistoryCapacity, observer)
		if err := store.Load(ctx); err != nil {
			return nil, fmt.Errorf("loading plan: %w", err)
		}
		return store, nil
	}

	// Forms, confirmations and the board need a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

// logWriter returns stderr, or the configured log file opened for append.
func logWriter(cfg config.Config) (io.Writer, func(), error) {
	if cfg.LogFile == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
