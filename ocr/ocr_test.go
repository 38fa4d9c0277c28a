package ocr

import (
	"reflect"
	"testing"
)

func TestPNGInput(t *testing.T) {
	meta := map[string]string{"tessedit_pageseg_mode": "6"}
	in := PNGInput(4, []byte{1, 2, 3},
		WithLanguages("eng", "spa"),
		WithDPI(300),
		WithMetadata(meta),
	)
	if in.Format != ImageFormatPNG {
		t.Fatalf("unexpected format: %v", in.Format)
	}
	if in.Page != 4 {
		t.Fatalf("unexpected page: %d", in.Page)
	}
	if got := in.ID; got != "page-4" {
		t.Fatalf("unexpected id: %s", got)
	}
	if len(in.Image) != 3 {
		t.Fatalf("expected image payload to be carried")
	}
	if !reflect.DeepEqual(in.Languages, []string{"eng", "spa"}) {
		t.Fatalf("unexpected languages: %+v", in.Languages)
	}
	if in.DPI != 300 {
		t.Fatalf("unexpected dpi: %d", in.DPI)
	}
	meta["tessedit_pageseg_mode"] = "7"
	if in.Metadata["tessedit_pageseg_mode"] != "6" {
		t.Fatalf("metadata was not copied: %+v", in.Metadata)
	}
}

func TestWithMetadataClearsEmpty(t *testing.T) {
	in := Input{Metadata: map[string]string{"k": "v"}}
	WithMetadata(nil)(&in)
	if in.Metadata != nil {
		t.Fatalf("expected metadata cleared, got %+v", in.Metadata)
	}
}

func TestTesseractOptions(t *testing.T) {
	in := Input{}
	WithTesseractPSM(6)(&in)
	if got := in.Metadata["tessedit_pageseg_mode"]; got != "6" {
		t.Fatalf("expected PSM to be set, got %q", got)
	}
	WithTesseractWhitelist("ABC")(&in)
	if got := in.Metadata["tessedit_char_whitelist"]; got != "ABC" {
		t.Fatalf("expected whitelist to be set, got %q", got)
	}
}
