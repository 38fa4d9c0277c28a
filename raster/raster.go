// Package raster renders PDF pages to images for OCR. The rendering itself is
// MuPDF via github.com/gen2brain/go-fitz; the Renderer interface exists so
// tests can substitute a fake without a CGO toolchain.
package raster

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// Renderer rasterizes pages of one open document. Implementations are not
// safe for concurrent use; each conversion owns its own Renderer.
type Renderer interface {
	// NumPages returns the page count of the document.
	NumPages() int
	// RenderPNG renders the 1-based page to an encoded PNG at the given DPI.
	RenderPNG(page int, dpi float64) ([]byte, error)
	Close() error
}

// Open opens the PDF at path with the MuPDF-backed renderer.
func Open(path string) (Renderer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf for rendering %s: %w", path, err)
	}
	return &fitzRenderer{doc: doc}, nil
}

type fitzRenderer struct {
	doc *fitz.Document
}

func (r *fitzRenderer) NumPages() int { return r.doc.NumPage() }

func (r *fitzRenderer) RenderPNG(page int, dpi float64) ([]byte, error) {
	if page < 1 || page > r.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, r.doc.NumPage())
	}
	// go-fitz pages are zero-based.
	data, err := r.doc.ImagePNG(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return data, nil
}

func (r *fitzRenderer) Close() error { return r.doc.Close() }
