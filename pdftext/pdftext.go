// Package pdftext extracts positioned text from PDF pages and reconstructs
// words, lines, and table grids from raw character placements. It backs the
// layout-preserving, general-purpose, and table-focused extraction paths; the
// underlying parsing is delegated to github.com/ledongthuc/pdf.
package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Config tunes the geometric heuristics. Zero values select defaults. The
// cutoffs are tunable on purpose: they are reading-order and grid-detection
// sensitivities, not facts about PDF.
type Config struct {
	// RowTolerance is the Y distance (points) within which characters belong
	// to the same row. Default 3.
	RowTolerance float64
	// WordGapFactor is the fraction of the font size that separates words on
	// a row. Default 0.3.
	WordGapFactor float64
	// XBucket and YBucket are the alignment bucket sizes (points) used for
	// grid detection. Defaults 5 and 3.
	XBucket, YBucket float64
	// MinGridCols and MinGridRows are the smallest grid treated as a table.
	// Defaults 2 and 2.
	MinGridCols, MinGridRows int
	// SpacingTolerance bounds how irregular column/row spacing may be while
	// still counting as a grid. Default 0.35.
	SpacingTolerance float64
}

func (c *Config) defaults() {
	if c.RowTolerance <= 0 {
		c.RowTolerance = 3
	}
	if c.WordGapFactor <= 0 {
		c.WordGapFactor = 0.3
	}
	if c.XBucket <= 0 {
		c.XBucket = 5
	}
	if c.YBucket <= 0 {
		c.YBucket = 3
	}
	if c.MinGridCols <= 0 {
		c.MinGridCols = 2
	}
	if c.MinGridRows <= 0 {
		c.MinGridRows = 2
	}
	if c.SpacingTolerance <= 0 {
		c.SpacingTolerance = 0.35
	}
}

// Document wraps an open PDF reader. Not safe for concurrent use; one
// conversion owns one Document.
type Document struct {
	f   *os.File
	r   *pdf.Reader
	cfg Config
}

// Open opens the PDF at path for text extraction.
func Open(path string, cfg Config) (*Document, error) {
	cfg.defaults()
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Document{f: f, r: r, cfg: cfg}, nil
}

func (d *Document) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

// NumPages returns the page count.
func (d *Document) NumPages() int { return d.r.NumPage() }

// PlainText returns the linear text of a 1-based page, NFC-normalized.
func (d *Document) PlainText(page int) (string, error) {
	p, err := d.page(page)
	if err != nil {
		return "", err
	}
	txt, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d plain text: %w", page, err)
	}
	return norm.NFC.String(txt), nil
}

// TextChars counts the extractable characters on a 1-based page. Used by
// classification to spot scanned pages cheaply.
func (d *Document) TextChars(page int) (int, error) {
	txt, err := d.PlainText(page)
	if err != nil {
		return 0, err
	}
	return len([]rune(strings.TrimSpace(txt))), nil
}

func (d *Document) page(page int) (pdf.Page, error) {
	if page < 1 || page > d.r.NumPage() {
		return pdf.Page{}, fmt.Errorf("page %d out of range 1..%d", page, d.r.NumPage())
	}
	p := d.r.Page(page)
	if p.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("page %d has no content", page)
	}
	return p, nil
}

// chars returns the raw positioned characters of a page, filtered of empty
// and whitespace-only entries.
func (d *Document) chars(page int) ([]pdf.Text, error) {
	p, err := d.page(page)
	if err != nil {
		return nil, err
	}
	content := p.Content()
	out := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" && t.S != " " {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
