package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/wudi/pdf2word/block"
	"github.com/wudi/pdf2word/classify"
	"github.com/wudi/pdf2word/ocr"
	"github.com/wudi/pdf2word/pdfinfo"
	"github.com/wudi/pdf2word/pdftext"
	"github.com/wudi/pdf2word/raster"
)

// fileSource bundles the per-document collaborators. The rasterizer is opened
// lazily: most conversions never touch OCR.
type fileSource struct {
	path string
	cfg  Config

	info *pdfinfo.Info
	text *pdftext.Document
	rend raster.Renderer
}

func openFileSource(path string, cfg Config) (source, error) {
	info, err := pdfinfo.Inspect(path)
	if err != nil {
		return nil, err
	}
	text, err := pdftext.Open(path, cfg.Text)
	if err != nil {
		return nil, err
	}
	return &fileSource{path: path, cfg: cfg, info: info, text: text}, nil
}

func (s *fileSource) pages() int { return s.info.PageCount }

func (s *fileSource) stats(ctx context.Context, page int, withGrids bool) (classify.PageStats, error) {
	if err := ctx.Err(); err != nil {
		return classify.PageStats{}, err
	}
	chars, err := s.text.TextChars(page)
	if err != nil {
		return classify.PageStats{}, fmt.Errorf("count text: %w", err)
	}
	st := classify.PageStats{
		Page:      page,
		TextChars: chars,
		HasImages: s.info.PageHasImages(page),
	}
	if withGrids {
		grids, err := s.text.GridCount(page)
		if err != nil {
			return classify.PageStats{}, fmt.Errorf("detect grids: %w", err)
		}
		st.Tables = grids
	}
	return st, nil
}

func (s *fileSource) extract(ctx context.Context, page int, kind backendKind) ([]block.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch kind {
	case backendGeneral:
		return s.text.Plain(page)
	case backendTable:
		return s.text.Tables(page)
	case backendOCR:
		return s.ocrPage(ctx, page)
	default:
		return s.text.Layout(page)
	}
}

// ocrPage renders the page and runs recognition, then keeps any extractable
// embedded text after the recognized text so partially scanned pages lose
// nothing.
func (s *fileSource) ocrPage(ctx context.Context, page int) ([]block.Block, error) {
	if s.rend == nil {
		rend, err := raster.Open(s.path)
		if err != nil {
			return nil, err
		}
		s.rend = rend
	}
	png, err := s.rend.RenderPNG(page, float64(s.cfg.DPI))
	if err != nil {
		return nil, err
	}
	in := ocr.PNGInput(page, png,
		ocr.WithLanguages(s.cfg.Languages...),
		ocr.WithDPI(s.cfg.DPI),
	)
	res, err := s.cfg.Engine.Recognize(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.cfg.Engine.Name(), err)
	}

	var out []block.Block
	for _, line := range strings.Split(res.PlainText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, block.Paragraph{Runs: []block.TextRun{{Text: line}}})
	}
	if embedded, err := s.text.Plain(page); err == nil {
		out = append(out, embedded...)
	}
	if len(out) == 0 {
		out = []block.Block{block.Paragraph{}}
	}
	return out, nil
}

func (s *fileSource) images(pages []int) (map[int][]block.Image, error) {
	withImages := pages[:0:0]
	for _, p := range pages {
		if s.info.PageHasImages(p) {
			withImages = append(withImages, p)
		}
	}
	if len(withImages) == 0 {
		return nil, nil
	}
	return pdfinfo.ExtractPageImages(s.path, withImages)
}

func (s *fileSource) close() error {
	err := s.text.Close()
	if s.rend != nil {
		if cerr := s.rend.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
