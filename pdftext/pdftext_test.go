package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wudi/pdf2word/block"
)

// writeTextPDF assembles a single-page PDF whose content stream draws the
// given lines of Helvetica text, computing stream lengths and xref offsets
// as it goes.
func writeTextPDF(t *testing.T, lines ...string) string {
	t.Helper()

	var content strings.Builder
	y := 712
	for _, line := range lines {
		fmt.Fprintf(&content, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", y, line)
		y -= 22
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n \n", off, 0)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)

	path := filepath.Join(t.TempDir(), "text.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf"), Config{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPlainTextRoundTrip(t *testing.T) {
	d, err := Open(writeTextPDF(t, "Hello World", "Second line"), Config{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()

	if got := d.NumPages(); got != 1 {
		t.Fatalf("NumPages() = %d, want 1", got)
	}
	txt, err := d.PlainText(1)
	if err != nil {
		t.Fatalf("PlainText() error = %v", err)
	}
	for _, want := range []string{"Hello", "World", "Second", "line"} {
		if !strings.Contains(txt, want) {
			t.Fatalf("PlainText() = %q, missing %q", txt, want)
		}
	}
	chars, err := d.TextChars(1)
	if err != nil {
		t.Fatalf("TextChars() error = %v", err)
	}
	if chars < len("Hello World")+len("Second line") {
		t.Fatalf("TextChars() = %d, want at least the drawn characters", chars)
	}

	if _, err := d.PlainText(2); err == nil {
		t.Fatal("expected error for page past end")
	}
}

func TestLayoutReadsContentStream(t *testing.T) {
	d, err := Open(writeTextPDF(t, "Hello World", "Second line"), Config{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()

	blocks, err := d.Layout(1)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	var paras []block.Paragraph
	for _, b := range blocks {
		if p, ok := b.(block.Paragraph); ok {
			paras = append(paras, p)
		}
	}
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d (%+v)", len(paras), blocks)
	}
	if got := paras[0].Text(); !strings.Contains(got, "Hello World") {
		t.Fatalf("first paragraph = %q, want the top line", got)
	}
	if got := paras[1].Text(); !strings.Contains(got, "Second line") {
		t.Fatalf("second paragraph = %q, want the lower line", got)
	}
	if font := paras[0].Runs[0].Font; font != "Helvetica" {
		t.Fatalf("run font = %q, want Helvetica", font)
	}
	if size := paras[0].Runs[0].Size; size != 12 {
		t.Fatalf("run size = %v, want 12", size)
	}
}

func TestPlainReadsContentStream(t *testing.T) {
	d, err := Open(writeTextPDF(t, "Hello World"), Config{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()

	blocks, err := d.Plain(1)
	if err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("expected at least one paragraph")
	}
	joined := ""
	for _, b := range blocks {
		if p, ok := b.(block.Paragraph); ok {
			joined += p.Text() + "\n"
		}
	}
	if !strings.Contains(joined, "Hello") || !strings.Contains(joined, "World") {
		t.Fatalf("Plain() text = %q, want the drawn line", joined)
	}
}
