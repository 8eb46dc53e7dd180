// Package export renders a plan for use outside the editor: JSON for
// re-import, CSV for spreadsheets, plain text for sharing, a printable
// PDF, and per-category time totals.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// Locale selects the language of headers and labels.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleJA Locale = "ja"
)

// ParseLocale accepts "en" or "ja"; anything else is an error.
func ParseLocale(s string) (Locale, error) {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case LocaleEN, LocaleJA:
		return l, nil
	case "":
		return LocaleEN, nil
	}
	return "", fmt.Errorf("unsupported locale %q (want en or ja)", s)
}

// Labels are the localized strings used by the exporters.
type Labels struct {
	CSVHeader     []string
	Uncategorized string
	NotesPrefix   string
	Until         string
	Total         string
}

// LabelsFor returns the labels of a locale, English for unknown ones.
func LabelsFor(l Locale) Labels {
	if l == LocaleJA {
		return Labels{
			CSVHeader:     []string{"アクティビティ名", "開始日", "開始時刻", "終了日", "終了時刻", "カテゴリ", "メモ"},
			Uncategorized: "カテゴリなし",
			NotesPrefix:   "メモ",
			Until:         "〜",
			Total:         "合計計画時間",
		}
	}
	return Labels{
		CSVHeader:     []string{"Activity", "StartDate", "StartTime", "EndDate", "EndTime", "Category", "Notes"},
		Uncategorized: "Uncategorized",
		NotesPrefix:   "Notes",
		Until:         "~",
		Total:         "Total planned time",
	}
}

var jaWeekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatDate renders an ISO date as a section heading.
func FormatDate(iso string, l Locale) string {
	d, err := domain.ParseDate(iso)
	if err != nil {
		return iso
	}
	if l == LocaleJA {
		return fmt.Sprintf("%d年%d月%d日 (%s)", d.Year(), int(d.Month()), d.Day(), jaWeekdays[d.Weekday()])
	}
	return d.Format("Jan 2, 2006 (Mon)")
}

// FileName returns the download name for a plan: "plan-<name>.<ext>" with
// whitespace replaced by underscores, or "plan-export.<ext>".
func FileName(p domain.Plan, ext string) string {
	name := strings.Join(strings.Fields(p.Name), "_")
	if name == "" {
		name = "export"
	}
	return "plan-" + name + "." + ext
}

// categoryName resolves an activity's category for display.
func categoryName(categories []domain.Category, id string, labels Labels) (string, bool) {
	if c, ok := domain.FindCategory(categories, id); ok {
		return c.Name, true
	}
	return labels.Uncategorized, false
}

func startOf(a domain.Activity) time.Time {
	t, _ := a.StartInstant()
	return t
}
