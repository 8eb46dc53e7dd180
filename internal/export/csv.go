package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexanderramin/planboard/internal/domain"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes one row per activity in start order behind a localized
// header. Multi-day activities appear once with their full range.
func WriteCSV(w io.Writer, p domain.Plan, categories []domain.Category, l Locale) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	labels := LabelsFor(l)
	cw := csv.NewWriter(w)
	if err := cw.Write(labels.CSVHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, a := range p.SortedActivities() {
		category, _ := categoryName(categories, a.Category, labels)
		row := []string{a.Name, a.StartDate, a.StartTime, a.EndDate, a.EndTime, category, a.Notes}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing activity %s: %w", a.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
