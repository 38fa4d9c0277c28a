// Command pdf2word converts PDF documents to DOCX, choosing among
// layout-preserving, plain-text, table-focused, and OCR extraction backends,
// or blending them per page in hybrid mode.
//
// Usage:
//
//	pdf2word [flags] <input.pdf>
//	pdf2word -batch <dir> [flags]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/wudi/pdf2word/convert"
)

type options struct {
	input   string
	output  string
	method  convert.Method
	batch   string
	first   int
	last    int
	langs   []string
	dpi     int
	jobs    int
	verbose bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf2word: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdf2word: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdf2word [flags] <input.pdf>\n")
		flag.PrintDefaults()
	}
	output := flag.String("o", "", "Output path (default: input with .docx extension)")
	method := flag.String("m", "auto", "Conversion method: auto|hybrid|layout|general|table|ocr")
	batch := flag.String("batch", "", "Convert every PDF in the given directory")
	pages := flag.String("pages", "", "Page range, e.g. 2-5 or 3")
	langs := flag.String("lang", "eng", "OCR languages, comma separated (e.g. eng,deu)")
	dpi := flag.Int("dpi", 300, "OCR rasterization DPI")
	jobs := flag.Int("jobs", 0, "Parallel conversions in batch mode (default: number of CPUs)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	m, err := convert.ParseMethod(*method)
	if err != nil {
		return options{}, err
	}
	opts.method = m
	opts.output = *output
	opts.batch = *batch
	opts.dpi = *dpi
	opts.jobs = *jobs
	opts.verbose = *verbose
	for _, l := range strings.Split(*langs, ",") {
		if l = strings.TrimSpace(l); l != "" {
			opts.langs = append(opts.langs, l)
		}
	}
	if opts.first, opts.last, err = parsePageRange(*pages); err != nil {
		return options{}, err
	}

	if *batch == "" {
		if flag.NArg() != 1 {
			flag.Usage()
			return options{}, fmt.Errorf("missing input pdf")
		}
		opts.input = flag.Arg(0)
	} else if flag.NArg() != 0 {
		return options{}, fmt.Errorf("-batch does not take an input file argument")
	}
	return opts, nil
}

func parsePageRange(s string) (int, int, error) {
	if s == "" {
		return 0, 0, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	first, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || first < 1 {
		return 0, 0, fmt.Errorf("bad page range %q", s)
	}
	if !ok {
		return first, first, nil
	}
	last, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || last < first {
		return 0, 0, fmt.Errorf("bad page range %q", s)
	}
	return first, last, nil
}

func run(opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	conv := convert.New(convert.Config{
		Logger:    logger,
		Languages: opts.langs,
		DPI:       opts.dpi,
	})
	req := convert.Request{
		InputPath:  opts.input,
		OutputPath: opts.output,
		Method:     opts.method,
		FirstPage:  opts.first,
		LastPage:   opts.last,
	}
	ctx := context.Background()

	if opts.batch != "" {
		res, err := conv.Batch(ctx, opts.batch, opts.jobs, req)
		if err != nil {
			return err
		}
		for _, f := range res.Files {
			reportResult(logger, f.Input, f.Result)
		}
		if n := res.Failed(); n > 0 {
			return fmt.Errorf("%d of %d files failed", n, len(res.Files))
		}
		return nil
	}

	result := conv.Convert(ctx, req)
	reportResult(logger, opts.input, result)
	if !result.Success {
		return result.Err
	}
	return nil
}

func reportResult(logger *slog.Logger, input string, res convert.Result) {
	for _, d := range res.Diagnostics {
		logger.Warn(d, "input", input)
	}
	if res.Success {
		fmt.Printf("%s -> %s (%d pages)\n", input, res.OutputPath, res.Pages)
	} else {
		fmt.Printf("%s: FAILED: %v\n", input, res.Err)
	}
}
