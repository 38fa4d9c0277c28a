// Package convert orchestrates PDF to DOCX conversion. It decides which
// extraction backend to run for a document or page (layout-preserving,
// plain-text, table-focused, or OCR), invokes the collaborators behind narrow
// interfaces, and assembles the extracted blocks into one output document in
// strict input page order. Convert is the only contract other code should
// depend on.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/wudi/pdf2word/block"
	"github.com/wudi/pdf2word/classify"
	"github.com/wudi/pdf2word/docbuild"
	"github.com/wudi/pdf2word/ocr"
	"github.com/wudi/pdf2word/pdftext"
)

// Config configures a Converter. Zero values select defaults; there is no
// ambient global state, including for the OCR engine handle.
type Config struct {
	// Logger receives progress and diagnostics. Default slog.Default().
	Logger *slog.Logger
	// Engine performs character recognition. Default: Tesseract.
	Engine ocr.Engine
	// Languages are OCR trained-data hints, e.g. "eng". Default ["eng"].
	Languages []string
	// DPI is the rasterization resolution for OCR. Default 300.
	DPI int
	// SamplePages bounds how many pages feed the document-level
	// classification vote. Default 8; negative means all pages.
	SamplePages int
	// Thresholds tunes scanned/table classification cutoffs.
	Thresholds classify.Thresholds
	// Text tunes the geometric extraction heuristics.
	Text pdftext.Config
	// Build tunes output assembly.
	Build docbuild.Config
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Engine == nil {
		c.Engine = ocr.NewTesseractEngine()
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"eng"}
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.SamplePages == 0 {
		c.SamplePages = 8
	}
}

// Request describes one conversion. Immutable once constructed.
type Request struct {
	InputPath  string
	OutputPath string // empty: input path with extension changed to .docx
	Method     Method // empty: auto
	// FirstPage and LastPage bound the converted range, 1-based inclusive.
	// Zero means unbounded on that side.
	FirstPage, LastPage int
}

// Result reports the outcome of one conversion.
type Result struct {
	Success     bool
	OutputPath  string
	Pages       int
	Diagnostics []string
	Err         error
}

// backendKind names the extraction path chosen for a page.
type backendKind int

const (
	backendLayout backendKind = iota
	backendGeneral
	backendTable
	backendOCR
)

func (b backendKind) String() string {
	switch b {
	case backendGeneral:
		return "general"
	case backendTable:
		return "table"
	case backendOCR:
		return "ocr"
	default:
		return "layout"
	}
}

// source is the per-document collaborator bundle. The production
// implementation wraps the PDF parsing, rasterization, OCR, and probing
// libraries; tests substitute an instrumented fake through the Converter's
// factory hook.
type source interface {
	pages() int
	// stats measures a page for classification. withGrids controls whether
	// grid detection runs (it is the expensive part).
	stats(ctx context.Context, page int, withGrids bool) (classify.PageStats, error)
	// extract pulls the page's blocks through the given backend.
	extract(ctx context.Context, page int, kind backendKind) ([]block.Block, error)
	// images returns embedded images for the given pages, keyed by page.
	images(pages []int) (map[int][]block.Image, error)
	close() error
}

// Converter converts PDF files to DOCX. Safe for concurrent use: each
// conversion opens and exclusively owns its own document handles.
type Converter struct {
	cfg Config
	log *slog.Logger

	// openSource is swapped in tests to avoid real collaborators.
	openSource func(path string) (source, error)
}

// New creates a Converter.
func New(cfg Config) *Converter {
	cfg.defaults()
	c := &Converter{cfg: cfg, log: cfg.Logger}
	c.openSource = func(path string) (source, error) { return openFileSource(path, c.cfg) }
	return c
}

// Convert runs one conversion and always returns a Result; Result.Err carries
// a *Error with the failure kind when Success is false. The output file
// handle is flushed and closed before return on every path that creates it.
func (c *Converter) Convert(ctx context.Context, req Request) Result {
	method := req.Method
	if method == "" {
		method = MethodAuto
	}
	if _, err := ParseMethod(string(method)); err != nil {
		return failure("", err)
	}
	outPath := req.OutputPath
	if outPath == "" {
		outPath = defaultOutputPath(req.InputPath)
	}

	if _, err := os.Stat(req.InputPath); err != nil {
		return failure(outPath, failf(KindInputNotFound, "stat input: %w", err))
	}

	src, err := c.openSource(req.InputPath)
	if err != nil {
		return failure(outPath, failf(KindUnsupportedInput, "open input: %w", err))
	}
	defer src.close()

	first, last, err := pageRange(req, src.pages())
	if err != nil {
		return failure(outPath, err)
	}

	c.log.Info("starting conversion",
		"input", req.InputPath, "output", outPath,
		"method", string(method), "pages", src.pages())

	plan, diags, err := c.plan(ctx, src, method, first, last)
	if err != nil {
		return failure(outPath, err)
	}

	res := c.assemble(ctx, src, plan, outPath, method.perPage())
	res.Diagnostics = append(diags, res.Diagnostics...)
	if res.Success {
		c.log.Info("conversion complete", "output", res.OutputPath, "pages", res.Pages)
	} else {
		c.log.Error("conversion failed", "input", req.InputPath, "error", res.Err)
	}
	return res
}

// pagePlan fixes, before extraction starts, which backend handles each page.
type pagePlan struct {
	first, last int
	backends    map[int]backendKind
}

// plan classifies as much of the document as the method requires and returns
// the routing decision per page.
func (c *Converter) plan(ctx context.Context, src source, method Method, first, last int) (pagePlan, []string, error) {
	plan := pagePlan{first: first, last: last, backends: make(map[int]backendKind, last-first+1)}
	var diags []string

	switch method {
	case MethodLayout, MethodGeneral, MethodTable, MethodOCR:
		kind := map[Method]backendKind{
			MethodLayout:  backendLayout,
			MethodGeneral: backendGeneral,
			MethodTable:   backendTable,
			MethodOCR:     backendOCR,
		}[method]
		for p := first; p <= last; p++ {
			plan.backends[p] = kind
		}
		return plan, nil, nil
	}

	// Auto and hybrid need per-page classes: hybrid to route each page,
	// auto to find the pages that must be OCRed regardless of the vote.
	classes := make(map[int]classify.PageClass, last-first+1)
	for p := first; p <= last; p++ {
		if err := ctx.Err(); err != nil {
			return pagePlan{}, nil, failf(KindBackendFailure, "classification canceled: %w", err)
		}
		st, err := src.stats(ctx, p, true)
		if err != nil {
			// A page that cannot even be measured is routed to OCR: the
			// rasterizer does not depend on the text layer being sane.
			diags = append(diags, fmt.Sprintf("page %d: classification failed (%v), assuming scanned", p, err))
			classes[p] = classify.ClassImageOnly
			continue
		}
		classes[p] = classify.Page(st, c.cfg.Thresholds)
	}

	if method == MethodHybrid {
		for p := first; p <= last; p++ {
			plan.backends[p] = backendFor(classes[p])
			if classes[p] == classify.ClassImageOnly {
				diags = append(diags, fmt.Sprintf("page %d required OCR fallback", p))
			}
		}
		return plan, diags, nil
	}

	// Auto: one document-wide decision from a sampled vote, with scanned
	// pages still forced through OCR.
	sampled := samplePages(first, last, c.cfg.SamplePages)
	vote := make([]classify.PageClass, 0, len(sampled))
	for _, p := range sampled {
		vote = append(vote, classes[p])
	}
	docClass := classify.Document(vote)
	c.log.Debug("document classified", "class", docClass.String(), "sampled", len(sampled))

	base := backendLayout
	switch docClass {
	case classify.DocTableHeavy:
		base = backendTable
	case classify.DocScanned:
		base = backendOCR
	}
	for p := first; p <= last; p++ {
		plan.backends[p] = base
		if classes[p] == classify.ClassImageOnly && base != backendOCR {
			plan.backends[p] = backendOCR
			diags = append(diags, fmt.Sprintf("page %d required OCR fallback", p))
		}
	}
	return plan, diags, nil
}

func backendFor(class classify.PageClass) backendKind {
	switch class {
	case classify.ClassTableHeavy:
		return backendTable
	case classify.ClassImageOnly:
		return backendOCR
	default:
		return backendLayout
	}
}

// assemble runs the per-page extraction loop and persists the output. Pages
// are strictly sequential: output order must equal input order, and the
// collaborators are not reentrant across one document handle.
func (c *Converter) assemble(ctx context.Context, src source, plan pagePlan, outPath string, tolerant bool) Result {
	builder := docbuild.New(c.cfg.Build)
	var diags []string

	embedded := c.embeddedImages(src, plan)

	for p := plan.first; p <= plan.last; p++ {
		if err := ctx.Err(); err != nil {
			return failure(outPath, pageFailf(KindBackendFailure, p, "conversion canceled: %w", err))
		}
		kind := plan.backends[p]
		builder.StartPage()

		blocks, err := src.extract(ctx, p, kind)
		if err != nil {
			if !tolerant {
				return failure(outPath, pageFailf(KindBackendFailure, p, "%s extraction: %w", kind, err))
			}
			// Partial-failure tolerance: keep document structure with an
			// empty placeholder and carry on.
			c.log.Warn("page extraction failed, substituting placeholder", "page", p, "backend", kind.String(), "error", err)
			diags = append(diags, fmt.Sprintf("page %d: %s extraction failed (%v), substituted empty placeholder", p, kind, err))
			blocks = []block.Block{block.Paragraph{}}
		}
		if kind != backendOCR {
			for _, img := range embedded[p] {
				blocks = append(blocks, img)
			}
		}

		for _, blk := range blocks {
			if err := builder.Add(blk); err != nil {
				c.log.Warn("block dropped", "page", p, "error", err)
				diags = append(diags, fmt.Sprintf("page %d: block dropped (%v)", p, err))
			}
		}
		c.log.Debug("page assembled", "page", p, "backend", kind.String(), "blocks", len(blocks))
	}

	if err := builder.Save(outPath); err != nil {
		return failure(outPath, failf(KindWriteError, "save output: %w", err))
	}
	return Result{
		Success:     true,
		OutputPath:  outPath,
		Pages:       builder.Pages(),
		Diagnostics: diags,
	}
}

// embeddedImages fetches embedded page images for the non-OCR pages of the
// plan. Failures degrade to text-only output rather than aborting.
func (c *Converter) embeddedImages(src source, plan pagePlan) map[int][]block.Image {
	var pages []int
	for p := plan.first; p <= plan.last; p++ {
		if plan.backends[p] != backendOCR {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		return nil
	}
	imgs, err := src.images(pages)
	if err != nil {
		c.log.Warn("embedded image extraction failed", "error", err)
		return nil
	}
	return imgs
}

func pageRange(req Request, pages int) (int, int, error) {
	first, last := req.FirstPage, req.LastPage
	if first <= 0 {
		first = 1
	}
	if last <= 0 || last > pages {
		last = pages
	}
	if pages == 0 {
		return 0, 0, failf(KindUnsupportedInput, "document has no pages")
	}
	if first > last || first > pages {
		return 0, 0, failf(KindUnsupportedInput, "page range %d-%d out of bounds for %d pages", req.FirstPage, req.LastPage, pages)
	}
	return first, last, nil
}

// samplePages picks the classification sample: the first n pages of the
// range, or all of them when n is negative or the range is small.
func samplePages(first, last, n int) []int {
	var out []int
	for p := first; p <= last; p++ {
		if n > 0 && len(out) >= n {
			break
		}
		out = append(out, p)
	}
	return out
}

func defaultOutputPath(input string) string {
	if i := strings.LastIndexByte(input, '.'); i > strings.LastIndexByte(input, '/') {
		return input[:i] + ".docx"
	}
	return input + ".docx"
}

func failure(outPath string, err error) Result {
	return Result{OutputPath: outPath, Err: err}
}
