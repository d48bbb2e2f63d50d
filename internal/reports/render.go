package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 5.0
	cellPad    = 1.5
)

var headingSizes = []float64{15, 12.5, 11}

// Render lays out doc as an A4 PDF.
func Render(doc Document) ([]byte, error) {
	orientation := "P"
	if doc.Landscape {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Title, true)
	pdf.AliasNbPages("")

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.title(doc.Title, doc.Subtitle)

	for _, s := range doc.Sections {
		r.section(s)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// text prepares s for the core fonts, which only carry cp1252 glyphs.
func (r *renderer) text(s string) string {
	return r.tr(sanitize(s))
}

var punctuation = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201c", `"`, "\u201d", `"`,
	"\u2013", "-", "\u2014", "-", "\u2022", "-", "\u2026", "...",
)

// sanitize folds typographic punctuation to ASCII and replaces any rune
// outside Latin-1 with '?'.
func sanitize(s string) string {
	s = punctuation.Replace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20, r >= 0x7f && r < 0xa0, r > 0xff:
			return '?'
		}
		return r
	}, s)
}

func (r *renderer) contentWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()
	return w - left - right
}

func (r *renderer) title(title, subtitle string) {
	r.pdf.SetFont(fontFamily, "B", 18)
	r.pdf.MultiCell(0, 9, r.text(title), "", "C", false)
	if subtitle != "" {
		r.pdf.SetFont(fontFamily, "", 10)
		r.pdf.MultiCell(0, 6, r.text(subtitle), "", "C", false)
	}
	r.pdf.Ln(6)
}

func (r *renderer) section(s Section) {
	if s.Heading != "" {
		level := min(max(s.Level, 0), len(headingSizes)-1)
		r.pdf.SetFont(fontFamily, "B", headingSizes[level])
		r.pdf.MultiCell(0, 7, r.text(s.Heading), "", "L", false)
		r.pdf.Ln(1)
	}

	r.pdf.SetFont(fontFamily, "", 10)
	for _, p := range s.Paragraphs {
		r.pdf.MultiCell(0, lineHeight, r.text(p), "", "L", false)
		r.pdf.Ln(2)
	}

	for _, b := range s.Bullets {
		left, _, _, _ := r.pdf.GetMargins()
		r.pdf.SetX(left + 4)
		r.pdf.MultiCell(r.contentWidth()-4, lineHeight, r.text("- "+b), "", "L", false)
	}
	if len(s.Bullets) > 0 {
		r.pdf.Ln(2)
	}

	for _, t := range s.Tables {
		r.table(t)
	}
}

func (r *renderer) table(t Table) {
	if len(t.Columns) == 0 {
		return
	}

	if t.Caption != "" {
		r.pdf.SetFont(fontFamily, "B", 10.5)
		r.pdf.MultiCell(0, 6, r.text(t.Caption), "", "L", false)
	}

	widths := t.columnWidths(r.contentWidth())

	r.pdf.SetFont(fontFamily, "B", 9)
	r.pdf.SetFillColor(220, 228, 240)
	r.row(t.Columns, widths, true)

	r.pdf.SetFont(fontFamily, "", 9)
	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		copy(cells, row)
		r.row(cells, widths, false)
	}
	r.pdf.Ln(4)
}

// row draws one table row whose height fits its tallest cell, breaking
// to a new page first when the row would not fit.
func (r *renderer) row(cells []string, widths []float64, header bool) {
	lines := make([][]string, len(cells))
	height := lineHeight
	for i, c := range cells {
		lines[i] = r.pdf.SplitText(sanitize(c), widths[i]-2*cellPad)
		height = max(height, float64(max(len(lines[i]), 1))*lineHeight)
	}
	height += cellPad

	_, pageHeight := r.pdf.GetPageSize()
	_, _, _, bottom := r.pdf.GetMargins()
	if r.pdf.GetY()+height > pageHeight-bottom {
		r.pdf.AddPage()
	}

	left, _, _, _ := r.pdf.GetMargins()
	y := r.pdf.GetY()
	x := left

	for i := range cells {
		style := "D"
		if header {
			style = "FD"
		}
		r.pdf.Rect(x, y, widths[i], height, style)

		for j, line := range lines[i] {
			r.pdf.SetXY(x+cellPad, y+cellPad/2+float64(j)*lineHeight)
			r.pdf.CellFormat(widths[i]-2*cellPad, lineHeight, r.tr(line), "", 0, "L", false, 0, "")
		}
		x += widths[i]
	}

	r.pdf.SetXY(left, y+height)
}
