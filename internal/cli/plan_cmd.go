package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Set up, show or clear the plan",
	}

	cmd.AddCommand(
		newPlanInitCmd(app),
		newPlanShowCmd(app),
		newPlanClearCmd(app),
	)

	return cmd
}

func newPlanInitCmd(app *App) *cobra.Command {
	var name, start string
	var days int

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set the plan name, start date and number of days",
		Long: `Set the plan name, start date and number of days.

Activities are kept when the range shrinks; they reappear when their days
are part of the plan again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || start == "" || days == 0 {
				if !app.interactive() {
					return errors.New("--name, --start and --days are required")
				}
				current := app.Store.Plan()
				fields := planFields{Name: firstNonEmpty(name, current.Name), StartDate: firstNonEmpty(start, current.StartDate)}
				if days > 0 {
					fields.Days = strconv.Itoa(days)
				} else if current.StartDate != "" {
					fields.Days = strconv.Itoa(current.NumberOfDays)
				}
				if err := app.runForm(wizardPlan(&fields)); err != nil {
					return err
				}
				name, start = fields.Name, fields.StartDate
				days, _ = strconv.Atoi(fields.Days)
			}

			res, err := app.Store.SetPlanInfo(context.Background(), name, start, days)
			if err != nil {
				return err
			}
			reportChange(cmd, res, formatter.FormatPlanHeader(app.Store.Plan()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the plan day by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			plan := app.Store.Plan()
			fmt.Fprintln(out, formatter.FormatPlanHeader(plan))
			if len(plan.Days) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			views := formatter.BuildDayViews(plan.Days, app.Store.SegmentsByDay())
			fmt.Fprint(out, formatter.FormatPlan(views, app.Store.Categories(), app.Store.IsSelected))
			return nil
		},
	}
}

func newPlanClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the plan and all its activities (categories are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return errors.New("refusing to clear the plan without --yes")
				}
				if err := app.runForm(wizardConfirm("Clear the plan and all its activities?", &yes)); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			res, err := app.Store.ClearPlan(context.Background())
			if err != nil {
				return err
			}
			reportChange(cmd, res, "Plan cleared. Run 'planboard undo' to restore it.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
