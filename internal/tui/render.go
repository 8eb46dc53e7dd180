package tui

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/gesture"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// placement is where a segment sits in its day column: rows [top, bottom)
// and cells [left, right) of the column interior.
type placement struct {
	seg       timeline.Segment
	top       int
	bottom    int
	left      int
	right     int
	colliding bool
}

func (m Model) rowOf(minutes int) int {
	return minutes * m.rows / domain.MinutesPerDay
}

func (m Model) rowEnd(minutes int) int {
	return (minutes*m.rows + domain.MinutesPerDay - 1) / domain.MinutesPerDay
}

func (m Model) placements(date string) []placement {
	segs := m.store.SegmentsByDay()[date]
	lay := timeline.LayoutSegments(segs)
	inner := colWidth - 1

	out := make([]placement, 0, len(segs))
	for _, s := range segs {
		col := lay.Columns[s.ID()]
		left := int(col.Offset() * float64(inner) / 100)
		right := max(int((col.Offset()+col.Width())*float64(inner)/100), left+1)
		top := min(m.rowOf(s.StartMin), m.rows-1)
		bottom := min(max(m.rowEnd(s.EndMin), top+1), m.rows)
		out = append(out, placement{
			seg:       s,
			top:       top,
			bottom:    bottom,
			left:      left,
			right:     min(right, inner),
			colliding: lay.IsColliding(s.ID()),
		})
	}
	return out
}

func (m Model) visibleCount() int {
	if m.width <= 0 {
		return 3
	}
	return max((m.width-gutterWidth)/colWidth, 1)
}

func (m Model) visibleDays() []domain.PlanDay {
	days := m.store.Days()
	first := max(min(m.firstDay, len(days)-m.visibleCount()), 0)
	return days[first:min(len(days), first+m.visibleCount())]
}

// ── cells ────────────────────────────────────────────────────────────────────

type cellKind int

const (
	cellEmpty cellKind = iota
	cellItem
	cellGhost
)

type cellStyle struct {
	kind     cellKind
	color    lipgloss.Color
	selected bool
	alert    bool
}

type cell struct {
	r     rune
	style cellStyle
}

var itemText = lipgloss.Color("#1d2021")

func (s cellStyle) render(text string) string {
	switch s.kind {
	case cellItem:
		st := lipgloss.NewStyle().Background(s.color).Foreground(itemText)
		if s.selected {
			st = st.Bold(true).Underline(true)
		}
		if s.alert {
			st = st.Foreground(lipgloss.Color("#9d0006"))
		}
		return st.Render(text)
	case cellGhost:
		return lipgloss.NewStyle().Foreground(formatter.ColorYellow).Reverse(true).Render(text)
	default:
		return text
	}
}

func paint(grid [][]cell, top, bottom, left, right int, st cellStyle, lines []string) {
	for r := max(top, 0); r < min(bottom, len(grid)); r++ {
		var text []rune
		if i := r - top; i < len(lines) {
			text = []rune(lines[i])
		}
		for c := max(left, 0); c < min(right, len(grid[r])); c++ {
			ch := ' '
			if i := c - left; i < len(text) {
				ch = text[i]
			}
			grid[r][c] = cell{r: ch, style: st}
		}
	}
}

func renderRow(cells []cell) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		runes := make([]rune, 0, len(cells)-i)
		for j < len(cells) && cells[j].style == cells[i].style {
			runes = append(runes, cells[j].r)
			j++
		}
		b.WriteString(cells[i].style.render(string(runes)))
		i = j
	}
	return b.String()
}

// renderDay draws the interior of one day column, one string per row.
func (m Model) renderDay(day domain.PlanDay, preview gesture.Preview, hasPreview bool) []string {
	inner := colWidth - 1
	grid := make([][]cell, m.rows)
	for r := range grid {
		grid[r] = make([]cell, inner)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' '}
		}
	}

	categories := m.store.Categories()
	for _, p := range m.placements(day.ISODate) {
		a := p.seg.Activity
		name := a.Name
		if !p.seg.IsFirstDay {
			name = "↳ " + name
		}
		if p.colliding {
			name = "!" + name
		}
		st := cellStyle{
			kind:     cellItem,
			color:    formatter.CategoryColor(categories, a.Category),
			selected: m.store.IsSelected(a.ID),
			alert:    p.colliding,
		}
		paint(grid, p.top, p.bottom, p.left, p.right, st, []string{name, p.seg.StartTime + "-" + p.seg.EndTime})
	}

	ghost := cellStyle{kind: cellGhost}
	switch {
	case m.draft != nil && m.draft.Day == day.ISODate:
		top := m.rowOf(m.draft.StartMin)
		lines := []string{"New", m.draft.StartTime() + "-" + m.draft.EndTime()}
		paint(grid, top, max(m.rowEnd(m.draft.EndMin), top+1), 0, inner, ghost, lines)
	case hasPreview && preview.Day == day.ISODate:
		top := m.rowOf(preview.StartMin)
		lines := []string{preview.Label, strings.TrimSpace(preview.Duration + " " + preview.Annotation)}
		paint(grid, top, max(m.rowEnd(preview.EndMin), top+1), 0, inner, ghost, lines)
	}

	out := make([]string, m.rows)
	for r := range grid {
		out[r] = renderRow(grid[r])
	}
	return out
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	days := m.visibleDays()
	if len(days) == 0 {
		return formatter.FormatPlanHeader(m.store.Plan()) + "\n\n" + m.help.View(m.keys)
	}

	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", gutterWidth))
	for _, d := range days {
		b.WriteString(formatter.StyleHeader.Render(fit(d.DisplayDate, colWidth-1)))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	preview, hasPreview := m.ctrl.Preview()
	cols := make([][]string, len(days))
	for i, d := range days {
		cols[i] = m.renderDay(d, preview, hasPreview)
	}
	sep := formatter.StyleDim.Render("│")
	for r := range m.rows {
		b.WriteString(m.gutter(r))
		for i := range days {
			b.WriteString(cols[i][r])
			b.WriteString(sep)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine(preview, hasPreview))
	b.WriteString("\n")
	if m.draft != nil {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) titleLine() string {
	p := m.store.Plan()
	line := formatter.StyleHeader.Render("planboard") + "  " + formatter.Bold(p.Name) +
		formatter.Dim(fmt.Sprintf(" · %d %s", p.NumberOfDays, plural(p.NumberOfDays, "day", "days")))
	if n := len(m.store.Selection()); n > 0 {
		line += formatter.Dim(fmt.Sprintf(" · %d selected", n))
	}
	return line
}

func (m Model) gutter(row int) string {
	minutes := row * domain.MinutesPerDay / m.rows
	if minutes%60 != 0 || m.rowOf(minutes) != row {
		return strings.Repeat(" ", gutterWidth)
	}
	return formatter.Dim(fit(domain.MinutesToTime(minutes), gutterWidth))
}

func (m Model) statusLine(preview gesture.Preview, hasPreview bool) string {
	if hasPreview {
		parts := []string{preview.Label, preview.Duration}
		if preview.Annotation != "" {
			parts = append(parts, preview.Annotation)
		}
		return formatter.StyleYellow.Render(strings.Join(parts, "  "))
	}
	if m.failed {
		return formatter.Warn(m.status)
	}
	return formatter.Dim(m.status)
}

// fit truncates or pads s to exactly n runes.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return fmt.Sprintf("%-*s", n, string(r))
}
