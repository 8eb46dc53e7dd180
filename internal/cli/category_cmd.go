package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage activity categories",
	}

	cmd.AddCommand(
		newCategoryListCmd(app),
		newCategoryAddCmd(app),
		newCategoryEditCmd(app),
		newCategoryRemoveCmd(app),
	)

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := app.Store.Categories()
			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories.")
				return nil
			}
			usage := map[string]int{}
			for _, a := range app.Store.Plan().Activities {
				usage[a.Category]++
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategoryList(categories, usage))
			return nil
		},
	}
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := append(app.Store.Categories(), domain.Category{Name: name, Color: color})
			res, err := app.Store.SetCategories(context.Background(), categories)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Added category %s", name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&color, "color", "", "Color (#rrggbb)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func newCategoryEditCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCategoryID(app, args[0])
			if err != nil {
				return err
			}
			categories := app.Store.Categories()
			i := slices.IndexFunc(categories, func(c domain.Category) bool { return c.ID == id })
			if i < 0 {
				return fmt.Errorf("category not found: %q", args[0])
			}
			categories[i].Name = firstNonEmpty(name, categories[i].Name)
			categories[i].Color = firstNonEmpty(color, categories[i].Color)

			res, err := app.Store.SetCategories(context.Background(), categories)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Updated category %s", categories[i].Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color (#rrggbb)")

	return cmd
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a category; its activities become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCategoryID(app, args[0])
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("category not found: %q", args[0])
			}
			categories := slices.DeleteFunc(app.Store.Categories(), func(c domain.Category) bool { return c.ID == id })
			res, err := app.Store.SetCategories(context.Background(), categories)
			if err != nil {
				return err
			}
			reportChange(cmd, res, fmt.Sprintf("Removed category %s", id))
			return nil
		},
	}
}
