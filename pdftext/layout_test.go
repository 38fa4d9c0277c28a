package pdftext

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func char(s string, x, y float64, font string, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: size * 0.5, Font: font, FontSize: size}
}

func TestGroupRowsOrdersTopToBottom(t *testing.T) {
	texts := []pdf.Text{
		char("b", 10, 500, "Helvetica", 12),
		char("a", 10, 700, "Helvetica", 12),
		char("c", 20, 701, "Helvetica", 12), // same row as "a" within tolerance
	}
	rows := groupRows(texts, 3)
	if len(rows) != 2 {
		t.Fatalf("groupRows() = %d rows, want 2", len(rows))
	}
	if rows[0][0].S != "a" || rows[0][1].S != "c" {
		t.Fatalf("top row = %q %q, want a c", rows[0][0].S, rows[0][1].S)
	}
	if rows[1][0].S != "b" {
		t.Fatalf("bottom row = %q, want b", rows[1][0].S)
	}
}

func TestRowsToWordsMergesAdjacentChars(t *testing.T) {
	row := []pdf.Text{
		char("H", 10, 700, "Helvetica", 12),
		char("i", 16, 700, "Helvetica", 12), // touching: gap 0
		char("go", 40, 700, "Helvetica", 12), // far: new word
	}
	words := rowsToWords([][]pdf.Text{row}, 0.3)
	if len(words) != 1 {
		t.Fatalf("expected 1 row, got %d", len(words))
	}
	got := words[0]
	if len(got) != 2 {
		t.Fatalf("expected 2 words, got %d: %+v", len(got), got)
	}
	if got[0].text != "Hi" || got[1].text != "go" {
		t.Fatalf("words = %q %q, want Hi go", got[0].text, got[1].text)
	}
}

func TestRowsToWordsSplitsOnStyleChange(t *testing.T) {
	row := []pdf.Text{
		char("a", 10, 700, "Helvetica", 12),
		char("b", 16, 700, "Helvetica-Bold", 12),
	}
	words := rowsToWords([][]pdf.Text{row}, 0.3)
	if len(words[0]) != 2 {
		t.Fatalf("expected style change to split words, got %+v", words[0])
	}
}

func TestRowParagraphStyles(t *testing.T) {
	words := []word{
		{text: "Bold", x: 10, y: 700, w: 30, font: "ABCDEF+Arial-Bold", size: 14},
		{text: "title", x: 45, y: 700, w: 30, font: "ABCDEF+Arial-Bold", size: 14},
		{text: "plain", x: 90, y: 700, w: 30, font: "Helvetica", size: 11},
	}
	p := rowParagraph(words, true)
	if len(p.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(p.Runs), p.Runs)
	}
	first := p.Runs[0]
	if first.Text != "Bold title" || !first.Bold || first.Font != "Arial" || first.Size != 14 {
		t.Fatalf("unexpected first run: %+v", first)
	}
	second := p.Runs[1]
	if second.Text != "plain" || second.Bold || second.Font != "Helvetica" {
		t.Fatalf("unexpected second run: %+v", second)
	}
}

func TestRowParagraphUnstyledCollapses(t *testing.T) {
	words := []word{
		{text: "a", font: "F1", size: 10},
		{text: "b", font: "F2", size: 12},
	}
	p := rowParagraph(words, false)
	if len(p.Runs) != 1 || p.Runs[0].Text != "a b" {
		t.Fatalf("unstyled paragraph = %+v, want single run \"a b\"", p.Runs)
	}
	if p.Runs[0].Font != "" || p.Runs[0].Bold {
		t.Fatalf("unstyled run should carry no style: %+v", p.Runs[0])
	}
}

func TestFontNameHeuristics(t *testing.T) {
	tests := []struct {
		font   string
		family string
		bold   bool
		italic bool
	}{
		{"ABCDEF+TimesNewRoman-BoldItalic", "TimesNewRoman", true, true},
		{"Helvetica-Oblique", "Helvetica", false, true},
		{"Arial,Bold", "Arial", true, false},
		{"Courier", "Courier", false, false},
	}
	for _, tt := range tests {
		if got := familyName(tt.font); got != tt.family {
			t.Fatalf("familyName(%q) = %q, want %q", tt.font, got, tt.family)
		}
		if got := boldFont(tt.font); got != tt.bold {
			t.Fatalf("boldFont(%q) = %v, want %v", tt.font, got, tt.bold)
		}
		if got := italicFont(tt.font); got != tt.italic {
			t.Fatalf("italicFont(%q) = %v, want %v", tt.font, got, tt.italic)
		}
	}
}

func TestRegionContains(t *testing.T) {
	r := region{x0: 10, y0: 10, x1: 100, y1: 100}
	if !r.contains(50, 50) {
		t.Fatal("expected point inside region")
	}
	if r.contains(5, 50) || r.contains(50, 101) {
		t.Fatal("expected points outside region")
	}
	w := word{x: 50, y: 50}
	if !insideAny(w, []region{r}) {
		t.Fatal("insideAny should find the region")
	}
}
