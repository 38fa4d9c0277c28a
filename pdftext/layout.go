package pdftext

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/wudi/pdf2word/block"
)

// word is a run of adjacent characters sharing a row and style.
type word struct {
	text string
	x, y float64
	w    float64
	font string
	size float64
}

func (wd word) right() float64 { return wd.x + wd.w }

// region is a rectangle in PDF coordinates (origin bottom-left).
type region struct {
	x0, y0, x1, y1 float64
}

func (r region) contains(x, y float64) bool {
	return x >= r.x0 && x <= r.x1 && y >= r.y0 && y <= r.y1
}

// Layout returns the page content as styled paragraphs and detected tables in
// top-to-bottom reading order. Text that falls inside a detected table region
// is emitted only through the table, never duplicated as a paragraph.
func (d *Document) Layout(page int) ([]block.Block, error) {
	return d.extract(page, true)
}

// Tables returns detected tables plus the remaining page text as plain
// paragraphs, again in reading order. This is the table-focused path: grid
// structure is preserved exactly, text styling is not attempted.
func (d *Document) Tables(page int) ([]block.Block, error) {
	return d.extract(page, false)
}

// Plain returns the page text as unstyled paragraphs, one per line.
func (d *Document) Plain(page int) ([]block.Block, error) {
	txt, err := d.PlainText(page)
	if err != nil {
		return nil, err
	}
	var out []block.Block
	for _, line := range strings.Split(txt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, block.Paragraph{Runs: []block.TextRun{{Text: line}}})
	}
	return out, nil
}

func (d *Document) extract(page int, styled bool) ([]block.Block, error) {
	chars, err := d.chars(page)
	if err != nil {
		return nil, err
	}
	rows := groupRows(chars, d.cfg.RowTolerance)
	words := rowsToWords(rows, d.cfg.WordGapFactor)

	tables, regions := d.detectGrids(words)

	type item struct {
		y   float64
		blk block.Block
	}
	var items []item
	for i, t := range tables {
		items = append(items, item{y: regions[i].y1, blk: t})
	}
	for _, row := range words {
		kept := row[:0:0]
		for _, wd := range row {
			if !insideAny(wd, regions) {
				kept = append(kept, wd)
			}
		}
		if len(kept) == 0 {
			continue
		}
		para := rowParagraph(kept, styled)
		if para.IsEmpty() {
			continue
		}
		items = append(items, item{y: kept[0].y, blk: para})
	}

	// Higher Y first: PDF coordinates grow upward.
	sort.SliceStable(items, func(i, j int) bool { return items[i].y > items[j].y })

	out := make([]block.Block, len(items))
	for i, it := range items {
		out[i] = it.blk
	}
	return out, nil
}

func insideAny(wd word, regions []region) bool {
	for _, r := range regions {
		if r.contains(wd.x, wd.y) {
			return true
		}
	}
	return false
}

// groupRows buckets characters by Y coordinate, then orders rows top to
// bottom and characters left to right within each row.
func groupRows(texts []pdf.Text, tol float64) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}
	var buckets []bucket
	for _, t := range texts {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-tol && t.Y <= buckets[i].yMax+tol {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })
	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		sort.SliceStable(b.texts, func(x, y int) bool { return b.texts[x].X < b.texts[y].X })
		rows[i] = b.texts
	}
	return rows
}

// rowsToWords merges adjacent characters of each row into words. A gap wider
// than gapFactor times the font size starts a new word.
func rowsToWords(rows [][]pdf.Text, gapFactor float64) [][]word {
	out := make([][]word, 0, len(rows))
	for _, row := range rows {
		var words []word
		var cur *word
		for _, t := range row {
			if cur != nil && sameStyle(*cur, t) && gapOK(*cur, t, gapFactor) {
				cur.text += t.S
				cur.w = t.X + t.W - cur.x
				continue
			}
			if cur != nil {
				words = append(words, *cur)
			}
			cur = &word{text: t.S, x: t.X, y: t.Y, w: t.W, font: t.Font, size: t.FontSize}
		}
		if cur != nil {
			words = append(words, *cur)
		}
		if len(words) > 0 {
			out = append(out, words)
		}
	}
	return out
}

func sameStyle(wd word, t pdf.Text) bool {
	return wd.font == t.Font && wd.size == t.FontSize
}

func gapOK(wd word, t pdf.Text, gapFactor float64) bool {
	threshold := gapFactor * wd.size
	if threshold <= 0 {
		threshold = 3
	}
	return t.X-wd.right() <= threshold
}

// rowParagraph turns one row of words into a paragraph. Consecutive words
// that share font and size collapse into one run separated by spaces.
func rowParagraph(words []word, styled bool) block.Paragraph {
	var runs []block.TextRun
	for _, wd := range words {
		text := strings.TrimRight(wd.text, "\n")
		if text == "" {
			continue
		}
		if n := len(runs); n > 0 && (!styled || sameRunStyle(runs[n-1], wd)) {
			runs[n-1].Text += " " + text
			continue
		}
		run := block.TextRun{Text: text}
		if styled {
			run.Font = familyName(wd.font)
			run.Size = wd.size
			run.Bold = boldFont(wd.font)
			run.Italic = italicFont(wd.font)
		}
		runs = append(runs, run)
	}
	return block.Paragraph{Runs: runs}
}

func sameRunStyle(run block.TextRun, wd word) bool {
	return run.Font == familyName(wd.font) && run.Size == wd.size &&
		run.Bold == boldFont(wd.font) && run.Italic == italicFont(wd.font)
}

// familyName strips the subset prefix ("ABCDEF+") and any style suffix from a
// PDF font name, leaving the family.
func familyName(font string) string {
	if i := strings.IndexByte(font, '+'); i == 6 {
		font = font[i+1:]
	}
	if i := strings.IndexAny(font, "-,"); i > 0 {
		font = font[:i]
	}
	return font
}

func boldFont(font string) bool {
	l := strings.ToLower(font)
	return strings.Contains(l, "bold") || strings.Contains(l, "black") || strings.Contains(l, "heavy")
}

func italicFont(font string) bool {
	l := strings.ToLower(font)
	return strings.Contains(l, "italic") || strings.Contains(l, "oblique")
}
