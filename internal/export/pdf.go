package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/go-pdf/fpdf"
)

// WritePDF renders a printable itinerary: one section per plan day, each
// segment on its own line behind a swatch of its category color, and the
// category summary at the end. The built-in fonts only cover Latin-1, so
// text outside it is transliterated by fpdf's code page translator.
func WritePDF(w io.Writer, p domain.Plan, categories []domain.Category, l Locale) error {
	labels := LabelsFor(l)
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(p.Name, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(p.Name))
	pdf.Ln(12)

	byDay := timeline.ByDay(p.Activities, p.Days)
	for _, day := range p.Days {
		pdf.SetFont("Arial", "B", 13)
		// Headings stay in English; the core fonts cannot render kanji.
		pdf.Cell(0, 9, tr(FormatDate(day.ISODate, LocaleEN)))
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		segments := byDay[day.ISODate]
		if len(segments) == 0 {
			pdf.Cell(0, 7, "  -")
			pdf.Ln(7)
		}
		for _, seg := range segments {
			color := UncategorizedColor
			name, ok := categoryName(categories, seg.Activity.Category, labels)
			if c, found := domain.FindCategory(categories, seg.Activity.Category); found {
				color = c.Color
			}
			swatch(pdf, color)

			line := fmt.Sprintf("%s - %s  %s", seg.StartTime, seg.EndTime, seg.Activity.Name)
			if ok {
				line += " (" + name + ")"
			}
			if seg.IsContinuation() {
				line += " *"
			}
			pdf.Cell(0, 7, tr(line))
			pdf.Ln(7)
			if seg.IsFirstDay && seg.Activity.Notes != "" {
				pdf.SetX(pdf.GetX() + 6)
				pdf.MultiCell(0, 5, tr(seg.Activity.Notes), "", "", false)
			}
		}
		pdf.Ln(4)
	}

	s := Summarize(p, categories)
	if s.TotalMinutes > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 9, tr(labels.Total+": "+domain.FormatDuration(s.TotalMinutes)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 11)
		for _, c := range s.Categories {
			name := c.Name
			if c.ID == "" {
				name = labels.Uncategorized
			}
			swatch(pdf, c.Color)
			pdf.Cell(0, 7, tr(fmt.Sprintf("%s  %s  (%.0f%%)", name, domain.FormatDuration(c.Minutes), s.Percent(c))))
			pdf.Ln(7)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

// swatch draws a small filled square in a #rrggbb color at the cursor and
// advances past it.
func swatch(pdf *fpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetFillColor(r, g, b)
	x, y := pdf.GetXY()
	pdf.Rect(x, y+1.5, 4, 4, "F")
	pdf.SetX(x + 6)
}

func hexRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 204, 204, 204
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 204, 204, 204
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
