// Package proposal renders a generated proposal and its cost table as PDF.
package proposal

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"infralab/internal/pricing"
)

const (
	fontFamily = "Helvetica"
	title      = "Infrastructure Proposal"
)

// Section is one headed block of prose.
type Section struct {
	Heading string
	Body    string
}

// Document is everything printed on a proposal.
type Document struct {
	UseCase         string
	Goal            string
	Sections        []Section
	Costs           []pricing.LineItem
	TotalMonthlyUSD float64
}

// Render lays out doc on A4 pages and returns the PDF bytes.
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(Sanitize(s)) }

	pdf.AddPage()

	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 6, text("Use Case: "+orNA(doc.UseCase)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, text("Goal: "+orNA(doc.Goal)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, s := range doc.Sections {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 8, text(s.Heading), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		for _, line := range strings.Split(s.Body, "\n") {
			pdf.MultiCell(0, 6, text(line), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 8, "Cost Breakdown (Monthly)", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	row := func(service, count, unit, subtotal string) {
		pdf.CellFormat(80, 6, service, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, count, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, subtotal, "1", 1, "L", false, 0, "")
	}
	row("Service", "Count", "Unit $", "Subtotal $")
	for _, item := range doc.Costs {
		row(text(item.Service), strconv.Itoa(item.Count), money(item.UnitMonthlyUSD), money(item.SubtotalMonthlyUSD))
	}
	pdf.CellFormat(145, 6, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, money(doc.TotalMonthlyUSD), "1", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render proposal: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

var punctuation = strings.NewReplacer(
	"—", "-",
	"–", "-",
	"…", "...",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"•", "-",
)

// Sanitize maps common Unicode punctuation to ASCII and drops any rune the
// core PDF fonts cannot encode (outside Latin-1).
func Sanitize(s string) string {
	s = punctuation.Replace(s)
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return -1
		}
		return r
	}, s)
}
