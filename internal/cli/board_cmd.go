package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/planboard/internal/tui"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("the board needs an interactive terminal")

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Edit the plan on a full-screen timeline board",
		Long: `Open the timeline board. Drag on empty space to create an activity,
drag an activity to move it (across days too), drag its bottom row to
resize it, or ctrl-drag to move its start. Hold shift for 1-minute snapping
and alt-click to add to the selection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			if app.RunBoard != nil {
				return app.RunBoard(app)
			}
			return runBoard(cmd.Context(), app)
		},
	}
}

func runBoard(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return tui.Run(ctx, app.Store, app.Config)
}
