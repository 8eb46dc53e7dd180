package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need: the loaded plan store and settings.
type App struct {
	Store  service.Editor
	Config config.Config

	// OpenStore builds and loads the store once flags are parsed. It is
	// only called when Store is nil; logUseCases reflects --log or the
	// log setting from config.
	OpenStore func(ctx context.Context, logUseCases bool) (service.Editor, error)

	// IsInteractive reports whether stdin is a terminal, enabling forms,
	// confirmations and the board.
	IsInteractive func() bool
	// RunForm runs a huh form. Nil uses form.Run.
	RunForm func(*huh.Form) error
	// RunBoard starts the terminal board. Nil uses runBoard.
	RunBoard func(app *App) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

// NewRootCmd creates the top-level "planboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "planboard",
		Short:        "Timeline itinerary editor",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.openStore(cmd)
		},
	}
	root.PersistentFlags().Bool("log", false, "Log store operations to stderr (or log_file from config)")

	root.AddCommand(
		newPlanCmd(app),
		newActivityCmd(app),
		newCategoryCmd(app),
		newUndoCmd(app),
		newRedoCmd(app),
		newSelectCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newSummaryCmd(app),
		newLayoutCmd(app),
		newBoardCmd(app),
	)

	return root
}

func (a *App) openStore(cmd *cobra.Command) error {
	if a.Store != nil || a.OpenStore == nil {
		return nil
	}
	logFlag, err := cmd.Flags().GetBool("log")
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := a.OpenStore(ctx, a.Config.Log || logFlag)
	if err != nil {
		return fmt.Errorf("opening plan store: %w", err)
	}
	a.Store = store
	return nil
}
