package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/spf13/cobra"
)

// parseSelectArg splits a select argument into its mode and id:
// "id" replaces, "+id" toggles, "..id" selects a range from the anchor and
// "+..id" adds that range.
func parseSelectArg(arg string) (service.SelectMode, string) {
	switch {
	case strings.HasPrefix(arg, "+.."):
		return service.SelectRangeAdd, arg[3:]
	case strings.HasPrefix(arg, ".."):
		return service.SelectRange, arg[2:]
	case strings.HasPrefix(arg, "+"):
		return service.SelectToggle, arg[1:]
	}
	return service.SelectReplace, arg
}

func newSelectCmd(app *App) *cobra.Command {
	var del bool
	var shiftDays int
	var category string

	cmd := &cobra.Command{
		Use:   "select ARG...",
		Short: "Select activities and act on them together",
		Long: `Build a selection and optionally act on it as one undoable change.

Each argument is an activity ID with an optional prefix:
  ID      select only this activity
  +ID     toggle this activity
  ..ID    select everything from the last selected activity to ID, in start order
  +..ID   add that range to the selection`,
		Example: `  planboard select 1a2b ..9f8e --shift-days 1
  planboard select 1a2b +77cc --delete`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				mode, input := parseSelectArg(arg)
				id, err := resolveActivityID(app, input)
				if err != nil {
					return err
				}
				if err := app.Store.Select(id, mode); err != nil {
					return err
				}
			}

			ids := app.Store.Selection()
			ctx := context.Background()
			switch {
			case del:
				res, err := app.Store.DeleteActivities(ctx, ids)
				if err != nil {
					return err
				}
				reportChange(cmd, res, fmt.Sprintf("Deleted %d activities.", len(ids)))
				return nil

			case shiftDays != 0 || cmd.Flags().Changed("category"):
				categoryID, err := resolveCategoryID(app, category)
				if err != nil {
					return err
				}
				batch := make([]domain.Activity, 0, len(ids))
				for _, id := range ids {
					a, _ := app.Store.Activity(id)
					if shiftDays != 0 {
						if a, err = shiftByDays(a, shiftDays); err != nil {
							return err
						}
					}
					if cmd.Flags().Changed("category") {
						a.Category = categoryID
					}
					batch = append(batch, a)
				}
				res, err := app.Store.UpdateMultipleActivities(ctx, batch)
				if err != nil {
					return err
				}
				reportChange(cmd, res, fmt.Sprintf("Updated %d activities.", len(batch)))
				return nil
			}

			selected := make([]domain.Activity, 0, len(ids))
			for _, a := range app.Store.Plan().SortedActivities() {
				if app.Store.IsSelected(a.ID) {
					selected = append(selected, a)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityList(selected, app.Store.Categories()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&del, "delete", false, "Delete the selected activities")
	cmd.Flags().IntVar(&shiftDays, "shift-days", 0, "Move the selected activities by this many days")
	cmd.Flags().StringVar(&category, "category", "", "Set the category of the selected activities")
	cmd.MarkFlagsMutuallyExclusive("delete", "shift-days")
	cmd.MarkFlagsMutuallyExclusive("delete", "category")

	return cmd
}

func shiftByDays(a domain.Activity, days int) (domain.Activity, error) {
	start, err := a.StartInstant()
	if err != nil {
		return domain.Activity{}, err
	}
	end, err := a.EndInstant()
	if err != nil {
		return domain.Activity{}, err
	}
	if days == 0 {
		return a, nil
	}
	shift := time.Duration(days) * 24 * time.Hour
	return a.WithInstants(start.Add(shift), end.Add(shift)), nil
}
