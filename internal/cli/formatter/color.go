package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
)

// UncategorizedColor is shown for activities without a category.
const UncategorizedColor = "#cccccc"

// CategoryColor returns the color of the activity's category, or the
// uncategorized grey.
func CategoryColor(categories []domain.Category, id string) lipgloss.Color {
	if c, ok := domain.FindCategory(categories, id); ok {
		return lipgloss.Color(c.Color)
	}
	return lipgloss.Color(UncategorizedColor)
}

// Swatch renders a small block in a category color.
func Swatch(color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render("■")
}

// CategoryLabel renders "■ Name" for a category id, or a dimmed
// placeholder when the id is unknown.
func CategoryLabel(categories []domain.Category, id string) string {
	c, ok := domain.FindCategory(categories, id)
	if !ok {
		return Swatch(UncategorizedColor) + " " + Dim("none")
	}
	return Swatch(lipgloss.Color(c.Color)) + " " + c.Name
}

// CollisionMark flags an activity that overlaps another on the same day.
func CollisionMark(colliding bool) string {
	if colliding {
		return StyleRed.Render("!")
	}
	return " "
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warn renders a yellow warning line.
func Warn(text string) string {
	return StyleYellow.Render("▲ " + text)
}
