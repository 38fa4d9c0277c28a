// Package block defines the content units produced by extraction backends and
// consumed by the output document builder. A Block is a sealed tagged variant:
// a styled paragraph, a table grid, or an image. Blocks belong to exactly one
// page and are discarded once written to the output.
package block

// Block is one extracted unit of page content. The concrete types are
// Paragraph, Table, and Image; no other implementations exist.
type Block interface {
	isBlock()
}

// TextRun is a span of text sharing one style.
type TextRun struct {
	Text      string
	Font      string
	Size      float64 // points; zero means unknown
	Bold      bool
	Italic    bool
	Underline bool
	Color     string // hex RRGGBB without '#'; empty means default
}

// Paragraph groups runs that form one output paragraph. An empty Paragraph is
// the placeholder substituted when a backend fails on a page.
type Paragraph struct {
	Runs []TextRun
}

// Span records a merged cell region anchored at (Row, Col), covering RowSpan
// rows and ColSpan columns. The anchor cell holds the content; covered cells
// are empty.
type Span struct {
	Row, Col         int
	RowSpan, ColSpan int
}

// Table is a grid of cell strings in row-major order. Rows may be ragged;
// consumers pad to the widest row.
type Table struct {
	Rows  [][]string
	Spans []Span
}

// Image is an encoded bitmap positioned on the source page. X and Y are the
// origin in PDF points from the top-left of the page; Width and Height are
// pixel dimensions.
type Image struct {
	Data   []byte
	Format string // "png", "jpeg"
	Width  int
	Height int
	X, Y   float64
}

func (Paragraph) isBlock() {}
func (Table) isBlock()     {}
func (Image) isBlock()     {}

// Text returns the concatenated run text of a paragraph.
func (p Paragraph) Text() string {
	var out string
	for _, r := range p.Runs {
		out += r.Text
	}
	return out
}

// IsEmpty reports whether the paragraph carries no visible text.
func (p Paragraph) IsEmpty() bool {
	for _, r := range p.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Cols returns the widest row length of the table.
func (t Table) Cols() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}
