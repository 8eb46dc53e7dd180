package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/export"
	"github.com/spf13/cobra"
)

var errEmptyPlan = errors.New("nothing to export: the plan has no activities")

// exporters maps a --format value to its file extension and writer.
var exporters = map[string]struct {
	ext   string
	write func(w io.Writer, p domain.Plan, categories []domain.Category, l export.Locale) error
}{
	"json": {"json", func(w io.Writer, p domain.Plan, _ []domain.Category, _ export.Locale) error { return export.WriteJSON(w, p) }},
	"csv":  {"csv", export.WriteCSV},
	"text": {"txt", export.WriteText},
	"pdf":  {"pdf", export.WritePDF},
}

func newExportCmd(app *App) *cobra.Command {
	var format, out, locale string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the plan as JSON, CSV, text or PDF",
		Long: `Export the plan. JSON output can be read back with 'planboard import'.

Without --out the file is named after the plan (plan-<name>.<ext>) in the
current directory. Use --out - to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, ok := exporters[format]
			if !ok {
				return fmt.Errorf("unknown format %q (want json, csv, text or pdf)", format)
			}
			l, err := localeOrConfig(app, locale)
			if err != nil {
				return err
			}
			plan := app.Store.Plan()
			if len(plan.Activities) == 0 {
				return errEmptyPlan
			}

			if out == "-" {
				return exp.write(cmd.OutOrStdout(), plan, app.Store.Categories(), l)
			}
			if out == "" {
				out = export.FileName(plan, exp.ext)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Writing "+out)
			}
			err = exp.write(f, plan, app.Store.Categories(), l)
			stop()
			if err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", len(plan.Activities), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, csv, text or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file ('-' for stdout)")
	cmd.Flags().StringVar(&locale, "locale", "", "Header and label language: en or ja (default from config)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the plan with an exported JSON file ('-' for stdin)",
		Long: `Replace the plan with an exported JSON file. The file must carry a name
and activities; a missing start date or day count is derived from the
activities. Any problem rejects the whole file. The import is one undoable
change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			res, err := app.Store.ImportPlanJSON(context.Background(), data)
			if err != nil {
				return err
			}
			reportChange(cmd, res, "Imported "+formatter.FormatPlanHeader(app.Store.Plan()))
			return nil
		},
	}
}

func newSummaryCmd(app *App) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show planned time per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := localeOrConfig(app, locale)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(app.Store.Summary(), l))
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Label language: en or ja (default from config)")

	return cmd
}

func localeOrConfig(app *App, flag string) (export.Locale, error) {
	if flag != "" {
		return export.ParseLocale(flag)
	}
	return app.Config.ExportLocale(), nil
}
