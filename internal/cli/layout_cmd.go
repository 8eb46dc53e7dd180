package cli

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [DATE]",
		Short: "Show how each day's activities are packed into columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := app.Store.Days()
			if len(args) == 1 {
				if !app.Store.Plan().HasDay(args[0]) {
					return fmt.Errorf("%s is not a day of the plan", args[0])
				}
				days = slices.DeleteFunc(days, func(d domain.PlanDay) bool { return d.ISODate != args[0] })
			}
			if len(days) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanHeader(app.Store.Plan()))
				return nil
			}
			for i, dv := range formatter.BuildDayViews(days, app.Store.SegmentsByDay()) {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDayLayout(dv))
			}
			return nil
		},
	}
}
