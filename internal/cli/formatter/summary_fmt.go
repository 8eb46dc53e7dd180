package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/export"
	"github.com/charmbracelet/lipgloss"
)

const shareBarWidth = 20

// FormatSummary renders planned time per category with share bars.
func FormatSummary(s export.Summary, l export.Locale) string {
	labels := export.LabelsFor(l)
	if s.TotalMinutes == 0 {
		return Dim("No planned time yet.")
	}

	rows := make([][]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		name := c.Name
		if c.ID == "" {
			name = labels.Uncategorized
		}
		color := lipgloss.Color(c.Color)
		rows = append(rows, []string{
			Swatch(color) + " " + name,
			domain.FormatDuration(c.Minutes),
			RenderShare(s.Percent(c), shareBarWidth, color),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"CATEGORY", "TIME", "SHARE"}, rows))
	fmt.Fprintf(&b, "\n%s %s\n", Bold(labels.Total+":"), domain.FormatDuration(s.TotalMinutes))
	return b.String()
}
