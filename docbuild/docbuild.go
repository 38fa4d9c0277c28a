// Package docbuild assembles extracted blocks into a DOCX document. The DOCX
// serialization is github.com/fumiama/go-docx; this package owns every call
// into it so the orchestrator never sees library types. Blocks are appended
// strictly in the order given, pages are separated by explicit page breaks,
// and oversized images are scaled down to the usable page width with their
// aspect ratio preserved.
package docbuild

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"

	"github.com/fumiama/go-docx"
	xdraw "golang.org/x/image/draw"

	"github.com/wudi/pdf2word/block"
)

// Config tunes output assembly. Zero values select defaults.
type Config struct {
	// MaxImageWidthPx is the widest an inline image may be, in pixels at the
	// assumed 96 DPI of the word processor. Wider bitmaps are downscaled
	// proportionally. Default 624 (6.5 inches, A4/Letter minus margins).
	MaxImageWidthPx int
	// BoldTableHeader renders the first row of every table in bold.
	// Default true.
	BoldTableHeader *bool
}

func (c *Config) defaults() {
	if c.MaxImageWidthPx <= 0 {
		c.MaxImageWidthPx = 624
	}
	if c.BoldTableHeader == nil {
		t := true
		c.BoldTableHeader = &t
	}
}

// Builder accumulates one output document. Not safe for concurrent use; one
// conversion owns one Builder.
type Builder struct {
	cfg   Config
	doc   *docx.Docx
	pages int
}

// New creates an empty document builder.
func New(cfg Config) *Builder {
	cfg.defaults()
	return &Builder{
		cfg: cfg,
		doc: docx.New().WithDefaultTheme(),
	}
}

// StartPage begins a new source page. Every page after the first is preceded
// by an explicit page break so output pagination mirrors the input.
func (b *Builder) StartPage() {
	if b.pages > 0 {
		b.doc.AddParagraph().AddPageBreaks()
	}
	b.pages++
}

// Pages returns how many source pages have been started.
func (b *Builder) Pages() int { return b.pages }

// Add appends one block to the document.
func (b *Builder) Add(blk block.Block) error {
	switch v := blk.(type) {
	case block.Paragraph:
		b.addParagraph(v)
		return nil
	case block.Table:
		b.addTable(v)
		return nil
	case block.Image:
		return b.addImage(v)
	default:
		return fmt.Errorf("unknown block type %T", blk)
	}
}

func (b *Builder) addParagraph(p block.Paragraph) {
	para := b.doc.AddParagraph()
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		run := para.AddText(r.Text)
		if r.Font != "" {
			run.Font(r.Font, "", r.Font, "default")
		}
		if r.Size > 0 {
			// DOCX run sizes are half-points.
			run.Size(strconv.Itoa(int(r.Size * 2)))
		}
		if r.Bold {
			run.Bold()
		}
		if r.Italic {
			run.Italic()
		}
		if r.Underline {
			run.Underline("single")
		}
		if r.Color != "" {
			run.Color(r.Color)
		}
	}
}

func (b *Builder) addTable(t block.Table) {
	rows := len(t.Rows)
	cols := t.Cols()
	if rows == 0 || cols == 0 {
		return
	}
	tbl := b.doc.AddTable(rows, cols, 0, nil)
	covered := coveredCells(t.Spans)
	for ri, row := range t.Rows {
		if ri >= len(tbl.TableRows) {
			break
		}
		for ci := 0; ci < cols && ci < len(tbl.TableRows[ri].TableCells); ci++ {
			if covered[[2]int{ri, ci}] {
				continue
			}
			text := ""
			if ci < len(row) {
				text = row[ci]
			}
			if text == "" {
				continue
			}
			run := tbl.TableRows[ri].TableCells[ci].AddParagraph().AddText(text)
			if ri == 0 && *b.cfg.BoldTableHeader {
				run.Bold()
			}
		}
	}
	// Breathing room after the table, as word processors do not separate
	// a table from the following paragraph on their own.
	b.doc.AddParagraph()
}

// coveredCells maps the cells hidden under merge spans (everything a span
// covers except its anchor).
func coveredCells(spans []block.Span) map[[2]int]bool {
	covered := make(map[[2]int]bool)
	for _, s := range spans {
		for r := s.Row; r < s.Row+max(s.RowSpan, 1); r++ {
			for c := s.Col; c < s.Col+max(s.ColSpan, 1); c++ {
				if r == s.Row && c == s.Col {
					continue
				}
				covered[[2]int{r, c}] = true
			}
		}
	}
	return covered
}

func (b *Builder) addImage(img block.Image) error {
	data, err := b.fit(img)
	if err != nil {
		return fmt.Errorf("prepare image: %w", err)
	}
	if _, err := b.doc.AddParagraph().AddInlineDrawing(data); err != nil {
		return fmt.Errorf("add image: %w", err)
	}
	return nil
}

// fit downscales a bitmap wider than the usable page width, preserving the
// aspect ratio. Narrower images pass through untouched.
func (b *Builder) fit(img block.Image) ([]byte, error) {
	if img.Width <= b.cfg.MaxImageWidthPx {
		return img.Data, nil
	}
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", img.Format, err)
	}
	w := b.cfg.MaxImageWidthPx
	h := src.Bounds().Dy() * w / src.Bounds().Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode scaled image: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path, flushing and closing the file on every
// path out.
func (b *Builder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := b.doc.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
