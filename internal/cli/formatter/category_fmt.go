package formatter

import (
	"strconv"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatCategoryList renders categories with their colors and how many
// activities use each.
func FormatCategoryList(categories []domain.Category, usage map[string]int) string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			Swatch(lipgloss.Color(c.Color)),
			StyleDim.Render(c.ID),
			c.Name,
			c.Color,
			strconv.Itoa(usage[c.ID]),
		})
	}
	return RenderTable([]string{"", "ID", "NAME", "COLOR", "USED"}, rows)
}
