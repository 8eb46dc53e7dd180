package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/spf13/cobra"
)

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return stepHistory(cmd, app, app.Store.Undo, "Undone.", "Nothing to undo.")
		},
	}
}

func newRedoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return stepHistory(cmd, app, app.Store.Redo, "Redone.", "Nothing to redo.")
		},
	}
}

func stepHistory(cmd *cobra.Command, app *App, step func(context.Context) (service.Result, error), done, none string) error {
	res, err := step(context.Background())
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(none))
		return nil
	}
	reportChange(cmd, res, done+" "+formatter.FormatPlanHeader(app.Store.Plan()))
	return nil
}
