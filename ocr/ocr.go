// Package ocr defines the abstraction for plugging a character-recognition
// engine into the conversion pipeline. The interface is intentionally small
// so engines can be backed by native libraries or remote services without
// leaking provider-specific concerns into callers. Engines are passed into
// the orchestrator explicitly; there is no ambient default.
package ocr

import (
	"context"
	"fmt"
)

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
)

// Input encapsulates a single rendered page submitted for OCR.
type Input struct {
	// ID is an optional caller-provided identifier that is echoed back in the
	// corresponding Result.
	ID string
	// Image is the encoded image payload in the format specified by Format.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// Page is the 1-based PDF page the image was rendered from.
	Page int
	// DPI carries the effective dots-per-inch for the image. Providers such
	// as Tesseract use this for scaling and layout heuristics; zero means
	// unknown.
	DPI int
	// Languages is a list of trained-data hints (e.g., "eng", "deu").
	Languages []string
	// Metadata passes engine-specific knobs (e.g., "tessedit_pageseg_mode")
	// without hard-coding them into the API surface.
	Metadata map[string]string
}

// Result captures OCR output for a single input image.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// PlainText contains the linearized text recognized from the image.
	PlainText string
	// Confidence is the mean word confidence in [0,1], zero when unknown.
	Confidence float64
	// Language indicates the dominant language requested, if any.
	Language string
}

// Engine is the simplest OCR provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// BatchEngine handles multiple images in a single call, enabling providers
// that amortize setup costs or remote round-trips.
type BatchEngine interface {
	Engine
	RecognizeBatch(ctx context.Context, inputs []Input) ([]Result, error)
}

// InputOption mutates an OCR input before submission.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// PNGInput builds an OCR input from a rendered page image. The generated ID
// is stable for the page number to simplify correlation with diagnostics.
func PNGInput(page int, data []byte, opts ...InputOption) Input {
	in := Input{
		ID:     fmt.Sprintf("page-%d", page),
		Image:  data,
		Format: ImageFormatPNG,
		Page:   page,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
