package formatter

import (
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// ShortID drops the act-/cat- prefix of an id and keeps 8 characters.
func ShortID(id string) string {
	for _, prefix := range []string{"act-", "cat-"} {
		id = strings.TrimPrefix(id, prefix)
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// TruncID returns ShortID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// TimeRange renders the start and end of an activity. The end date is
// shown only when it differs from the start date.
func TimeRange(a domain.Activity) string {
	if a.StartDate == a.EndDate {
		return a.StartTime + "–" + a.EndTime
	}
	return a.StartTime + "–" + a.EndDate + " " + a.EndTime
}

// Duration renders the length of an activity.
func Duration(a domain.Activity) string {
	return domain.FormatDuration(int(a.Duration().Minutes()))
}
