package convert

import "fmt"

// Method selects the extraction strategy.
type Method string

const (
	// MethodAuto classifies the document once and uses one backend for every
	// page, except that scanned pages still go through OCR.
	MethodAuto Method = "auto"
	// MethodHybrid classifies and routes every page individually.
	MethodHybrid Method = "hybrid"
	// MethodLayout uses layout-preserving extraction for the whole document.
	MethodLayout Method = "layout"
	// MethodGeneral uses plain-text extraction for the whole document.
	MethodGeneral Method = "general"
	// MethodTable uses table-focused extraction for the whole document.
	MethodTable Method = "table"
	// MethodOCR rasterizes and recognizes every page.
	MethodOCR Method = "ocr"
)

// ParseMethod validates a CLI/API method string. Empty selects auto.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "":
		return MethodAuto, nil
	case MethodAuto, MethodHybrid, MethodLayout, MethodGeneral, MethodTable, MethodOCR:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown method %q (want auto|hybrid|layout|general|table|ocr)", s)
	}
}

// perPage reports whether the method routes backends page by page rather than
// committing to a single backend for the whole document.
func (m Method) perPage() bool { return m == MethodAuto || m == MethodHybrid }
