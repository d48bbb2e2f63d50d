package reports

// Document is the renderer-neutral shape of a PDF report. Wide tables
// set Landscape.
type Document struct {
	Title     string
	Subtitle  string
	Landscape bool
	Sections  []Section
}

// Section is a heading followed by its content, rendered in field order:
// paragraphs, bullets, then tables. Level 0 is a top-level heading and
// higher levels render progressively smaller.
type Section struct {
	Heading    string
	Level      int
	Paragraphs []string
	Bullets    []string
	Tables     []Table
}

// Table is a bordered grid with a shaded header row. Widths are relative
// weights; when absent the columns share the page width equally.
type Table struct {
	Caption string
	Columns []string
	Widths  []float64
	Rows    [][]string
}

func (t Table) columnWidths(total float64) []float64 {
	n := len(t.Columns)
	widths := make([]float64, n)

	if len(t.Widths) != n {
		for i := range widths {
			widths[i] = total / float64(n)
		}
		return widths
	}

	var sum float64
	for _, w := range t.Widths {
		sum += w
	}
	for i, w := range t.Widths {
		widths[i] = total * w / sum
	}
	return widths
}
