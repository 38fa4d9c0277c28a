package pdfinfo

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/wudi/pdf2word/block"
)

// ExtractPageImages pulls the embedded images of the selected 1-based pages
// into memory, keyed by page number. pdfcpu only offers file-based image
// extraction, so the images take a round trip through a temporary directory.
// Positions are not recoverable through this path; images carry zero origins
// and are appended after the page's text blocks.
func ExtractPageImages(path string, pages []int) (map[int][]block.Image, error) {
	if len(pages) == 0 {
		return nil, nil
	}
	tmpDir, err := os.MkdirTemp("", "pdf2word-img-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	selected := make([]string, len(pages))
	for i, p := range pages {
		selected[i] = strconv.Itoa(p)
	}
	if err := api.ExtractImagesFile(path, tmpDir, selected, relaxedConf()); err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("read temp dir: %w", err)
	}

	out := make(map[int][]block.Image)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		page, ok := pageFromImageName(entry.Name())
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read extracted image %s: %w", entry.Name(), err)
		}
		img, ok := decodeImage(data)
		if !ok {
			continue
		}
		out[page] = append(out[page], img)
	}
	return out, nil
}

// pageFromImageName parses the page number out of pdfcpu's extracted image
// file naming, "<base>_<page>_<resource>.<ext>".
func pageFromImageName(name string) (int, bool) {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return 0, false
	}
	page, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

func decodeImage(data []byte) (block.Image, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Unsupported encodings (e.g. raw CMYK tiffs) are skipped rather
		// than failing the page.
		return block.Image{}, false
	}
	return block.Image{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, true
}
