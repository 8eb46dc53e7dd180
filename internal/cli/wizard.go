package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planboardHuhTheme returns a huh theme matching the formatter palette.
func planboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planFields are the string-typed values behind the plan setup form.
type planFields struct {
	Name      string
	StartDate string
	Days      string
}

// wizardPlan creates the plan setup form.
func wizardPlan(v *planFields) *huh.Form {
	if v.Days == "" {
		v.Days = "1"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan name").
				Value(&v.Name).
				Validate(validateRequired("plan name")),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Placeholder("2024-03-01").
				Value(&v.StartDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Number of days").
				Value(&v.Days).
				Validate(validateDays),
		),
	).WithTheme(planboardHuhTheme()).WithShowHelp(false)
}

// activityFields are the string-typed values behind the activity form.
type activityFields struct {
	Name         string
	StartDate    string
	StartTime    string
	EndDate      string
	EndTime      string
	Category     string
	Notes        string
	AllowOverlap bool
}

func activityFieldsOf(a domain.Activity) activityFields {
	return activityFields{
		Name:         a.Name,
		StartDate:    a.StartDate,
		StartTime:    a.StartTime,
		EndDate:      a.EndDate,
		EndTime:      a.EndTime,
		Category:     a.Category,
		Notes:        a.Notes,
		AllowOverlap: a.AllowOverlap,
	}
}

// apply copies the form values onto a, keeping its id.
func (f activityFields) apply(a domain.Activity) domain.Activity {
	a.Name = f.Name
	a.StartDate = f.StartDate
	a.StartTime = f.StartTime
	a.EndDate = f.EndDate
	if a.EndDate == "" {
		a.EndDate = f.StartDate
	}
	a.EndTime = f.EndTime
	a.Category = f.Category
	a.Notes = f.Notes
	a.AllowOverlap = f.AllowOverlap
	return a
}

// wizardActivity creates the activity form. Category options come from
// the current category list.
func wizardActivity(v *activityFields, categories []domain.Category) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range categories {
		options = append(options, huh.NewOption(formatter.Swatch(lipgloss.Color(c.Color))+" "+c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name),
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(&v.StartDate).Validate(validateDate),
			huh.NewInput().Title("Start time (HH:MM)").Value(&v.StartTime).Validate(validateClock),
			huh.NewInput().Title("End date (blank for same day)").Value(&v.EndDate).Validate(validateOptionalDate),
			huh.NewInput().Title("End time (HH:MM, 24:00 for midnight)").Value(&v.EndTime).Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Category").Options(options...).Value(&v.Category),
			huh.NewText().Title("Notes").Value(&v.Notes),
			huh.NewConfirm().Title("Allow overlap?").Affirmative("Yes").Negative("No").Value(&v.AllowOverlap),
		),
	).WithTheme(planboardHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(planboardHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	return validateDate(s)
}

func validateClock(s string) error {
	if _, err := domain.ParseClock(s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

func validateDays(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > domain.MaxPlanDays {
		return fmt.Errorf("enter a number between 1 and %d", domain.MaxPlanDays)
	}
	return nil
}
