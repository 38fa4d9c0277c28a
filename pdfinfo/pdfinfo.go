// Package pdfinfo probes PDF documents through pdfcpu: open-and-validate for
// early rejection of non-PDF input, page counting, per-page embedded image
// detection for scan classification, and image extraction for inline
// placement in the output document.
package pdfinfo

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Info summarizes a validated PDF.
type Info struct {
	PageCount  int
	pageImages map[int]bool
}

// Inspect opens and validates the PDF at path. A failure here means the file
// is not a PDF this tool can read (corrupted, truncated, or encrypted beyond
// pdfcpu's capability); callers translate that into their own error taxonomy.
func Inspect(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, relaxedConf())
	if err != nil {
		return nil, fmt.Errorf("read pdf %s: %w", path, err)
	}

	info := &Info{
		PageCount:  ctx.PageCount,
		pageImages: make(map[int]bool, ctx.PageCount),
	}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		info.pageImages[pageNr] = pageHasImages(ctx, pageNr)
	}
	return info, nil
}

// PageHasImages reports whether the 1-based page carries embedded image
// XObjects.
func (i *Info) PageHasImages(page int) bool { return i.pageImages[page] }

// HasImages reports whether any page carries embedded images.
func (i *Info) HasImages() bool {
	for _, v := range i.pageImages {
		if v {
			return true
		}
	}
	return false
}

func relaxedConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// pageHasImages prefers the optimizer's per-page image index and falls back
// to scanning the xref table for image stream dictionaries.
func pageHasImages(ctx *model.Context, pageNr int) bool {
	if ctx.Optimize != nil {
		return len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
