package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Manage activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityEditCmd(app),
		newActivityShowCmd(app),
		newActivityMoveCmd(app),
		newActivityResizeCmd(app),
		newActivityDeleteCmd(app),
		newActivityDuplicateCmd(app),
		newActivityListCmd(app),
	)

	return cmd
}

// activityFlags binds the editable activity fields to flags.
func activityFlags(fs *pflag.FlagSet, v *activityFields) {
	fs.StringVar(&v.Name, "name", "", "Activity name")
	fs.StringVar(&v.StartDate, "date", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&v.StartTime, "start", "", "Start time (HH:MM)")
	fs.StringVar(&v.EndDate, "end-date", "", "End date (YYYY-MM-DD, defaults to the start date)")
	fs.StringVar(&v.EndTime, "end", "", "End time (HH:MM, 24:00 for midnight)")
	fs.StringVar(&v.Category, "category", "", "Category ID or name ('none' to clear)")
	fs.StringVar(&v.Notes, "notes", "", "Free-text notes")
	fs.BoolVar(&v.AllowOverlap, "allow-overlap", false, "Do not flag overlaps with this activity")
}

func newActivityAddCmd(app *App) *cobra.Command {
	var v activityFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.StartDate == "" || v.StartTime == "" || v.EndTime == "" {
				if !app.interactive() {
					return errors.New("--date, --start and --end are required")
				}
				if v.StartDate == "" {
					if days := app.Store.Days(); len(days) > 0 {
						v.StartDate = days[0].ISODate
					}
				}
				if err := app.runForm(wizardActivity(&v, app.Store.Categories())); err != nil {
					return err
				}
			}

			category, err := resolveCategoryID(app, v.Category)
			if err != nil {
				return err
			}
			v.Category = category

			stored, res, err := app.Store.AddOrUpdateActivity(context.Background(), v.apply(domain.Activity{}))
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Added %s %s %s %s", stored.Name, formatter.TruncID(stored.ID), stored.StartDate, formatter.TimeRange(stored)))
			warnCollisions(cmd, app, stored.ID)
			return nil
		},
	}

	activityFlags(cmd.Flags(), &v)

	return cmd
}

func newActivityEditCmd(app *App) *cobra.Command {
	var v activityFields

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an activity",
		Long: `Change fields of an activity. Only the flags given are changed; with no
flags an interactive form is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveActivityID(app, args[0])
			if err != nil {
				return err
			}
			current, _ := app.Store.Activity(id)

			var next domain.Activity
			if cmd.Flags().NFlag() == 0 {
				if !app.interactive() {
					return errors.New("nothing to change: pass at least one field flag")
				}
				fields := activityFieldsOf(current)
				if err := app.runForm(wizardActivity(&fields, app.Store.Categories())); err != nil {
					return err
				}
				next = fields.apply(current)
			} else {
				next = applyChangedFlags(cmd.Flags(), current, v)
				if cmd.Flags().Changed("category") {
					if next.Category, err = resolveCategoryID(app, v.Category); err != nil {
						return err
					}
				}
			}

			stored, res, err := app.Store.AddOrUpdateActivity(context.Background(), next)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Updated %s %s %s %s", stored.Name, formatter.TruncID(stored.ID), stored.StartDate, formatter.TimeRange(stored)))
			warnCollisions(cmd, app, stored.ID)
			return nil
		},
	}

	activityFlags(cmd.Flags(), &v)

	return cmd
}

// applyChangedFlags copies only the flags the user passed onto a.
func applyChangedFlags(fs *pflag.FlagSet, a domain.Activity, v activityFields) domain.Activity {
	set := map[string]func(){
		"name":          func() { a.Name = v.Name },
		"date":          func() { a.StartDate = v.StartDate },
		"start":         func() { a.StartTime = v.StartTime },
		"end-date":      func() { a.EndDate = v.EndDate },
		"end":           func() { a.EndTime = v.EndTime },
		"notes":         func() { a.Notes = v.Notes },
		"allow-overlap": func() { a.AllowOverlap = v.AllowOverlap },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})
	return a
}

func newActivityShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveActivityID(app, args[0])
			if err != nil {
				return err
			}
			a, _ := app.Store.Activity(id)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivity(a, app.Store.Categories()))
			return nil
		},
	}
}

func newActivityMoveCmd(app *App) *cobra.Command {
	var date, start string

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move an activity, keeping its duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveActivityID(app, args[0])
			if err != nil {
				return err
			}
			a, _ := app.Store.Activity(id)
			date = firstNonEmpty(date, a.StartDate)
			start = firstNonEmpty(start, a.StartTime)

			minutes, err := domain.ParseClock(start)
			if err != nil {
				return err
			}
			moved, err := a.ShiftTo(date, minutes)
			if err != nil {
				return err
			}
			stored, res, err := app.Store.AddOrUpdateActivity(context.Background(), moved)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Moved %s to %s %s", stored.Name, stored.StartDate, formatter.TimeRange(stored)))
			warnCollisions(cmd, app, stored.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")

	return cmd
}

func newActivityResizeCmd(app *App) *cobra.Command {
	var start, end, endDate string

	cmd := &cobra.Command{
		Use:   "resize ID",
		Short: "Change the start or end of an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" && end == "" && endDate == "" {
				return errors.New("pass --start, --end or --end-date")
			}
			id, err := resolveActivityID(app, args[0])
			if err != nil {
				return err
			}
			a, _ := app.Store.Activity(id)
			a.StartTime = firstNonEmpty(start, a.StartTime)
			a.EndTime = firstNonEmpty(end, a.EndTime)
			a.EndDate = firstNonEmpty(endDate, a.EndDate)

			stored, res, err := app.Store.AddOrUpdateActivity(context.Background(), a)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Resized %s to %s (%s)", stored.Name, formatter.TimeRange(stored), formatter.Duration(stored)))
			warnCollisions(cmd, app, stored.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM, 24:00 for midnight)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "New end date (YYYY-MM-DD)")

	return cmd
}

func newActivityDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete activities with all their segments",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := resolveActivityIDs(app, args)
			if err != nil {
				return err
			}
			res, err := app.Store.DeleteActivities(context.Background(), ids)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Deleted %d activities.", len(ids)))
			return nil
		},
	}
}

func newActivityDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate ID",
		Aliases: []string{"dup"},
		Short:   "Copy an activity to right after itself",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveActivityID(app, args[0])
			if err != nil {
				return err
			}
			dup, res, err := app.Store.DuplicateActivity(context.Background(), id)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Added %s %s %s %s", dup.Name, formatter.TruncID(dup.ID), dup.StartDate, formatter.TimeRange(dup)))
			warnCollisions(cmd, app, dup.ID)
			return nil
		},
	}
}

func newActivityListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities in start order",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities := app.Store.Plan().SortedActivities()
			if date != "" {
				if _, err := domain.ParseDate(date); err != nil {
					return err
				}
				filtered := activities[:0]
				for _, a := range activities {
					if a.TouchesDate(date) {
						filtered = append(filtered, a)
					}
				}
				activities = filtered
			}

			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activities found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityList(activities, app.Store.Categories()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only activities touching this date (YYYY-MM-DD)")

	return cmd
}
