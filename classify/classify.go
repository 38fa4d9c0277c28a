// Package classify decides, per page and per document, which extraction
// backend suits the content: layout-preserving extraction for ordinary text,
// table-focused extraction for grid-heavy pages, OCR for scanned pages. The
// decision functions are pure so routing policy can be tested without opening
// a PDF.
package classify

// PageClass tags a single page.
type PageClass int

const (
	// ClassText marks a page with ordinary extractable text.
	ClassText PageClass = iota
	// ClassTableHeavy marks a page dominated by at least one detected grid.
	ClassTableHeavy
	// ClassImageOnly marks a page with near-zero extractable text and a
	// rendered image, i.e. a scan that needs OCR.
	ClassImageOnly
)

func (c PageClass) String() string {
	switch c {
	case ClassTableHeavy:
		return "table"
	case ClassImageOnly:
		return "image-only"
	default:
		return "text"
	}
}

// DocClass tags a whole document by majority vote over sampled pages.
type DocClass int

const (
	DocText DocClass = iota
	DocTableHeavy
	DocScanned
)

func (c DocClass) String() string {
	switch c {
	case DocTableHeavy:
		return "table-heavy"
	case DocScanned:
		return "scanned"
	default:
		return "text"
	}
}

// PageStats carries the cheap per-page measurements the heuristics consume.
type PageStats struct {
	Page      int // 1-based
	TextChars int // extractable characters on the page
	Tables    int // detected multi-row/multi-column grids
	HasImages bool
}

// Thresholds tunes the classification heuristics. The cutoffs are deliberate
// configuration rather than constants; the defaults mirror common practice
// (a page under ~50 extractable characters that carries an image is treated
// as scanned) but carry no deeper rationale.
type Thresholds struct {
	// MinTextChars is the character count below which a page with images is
	// considered image-only. Default 50.
	MinTextChars int
	// MinTables is the grid count at which a page is table-heavy. Default 1.
	MinTables int
}

func (t *Thresholds) defaults() {
	if t.MinTextChars <= 0 {
		t.MinTextChars = 50
	}
	if t.MinTables <= 0 {
		t.MinTables = 1
	}
}

// Page classifies a single page from its stats.
func Page(s PageStats, th Thresholds) PageClass {
	th.defaults()
	if s.TextChars < th.MinTextChars && s.HasImages {
		return ClassImageOnly
	}
	if s.Tables >= th.MinTables {
		return ClassTableHeavy
	}
	return ClassText
}

// Document derives the document-level class as the majority vote across the
// sampled page classes. Image-only pages never win the vote on their own
// unless they are the majority; callers that must OCR individual scanned
// pages regardless of the vote use the per-page classes directly.
func Document(pages []PageClass) DocClass {
	var text, table, image int
	for _, c := range pages {
		switch c {
		case ClassTableHeavy:
			table++
		case ClassImageOnly:
			image++
		default:
			text++
		}
	}
	switch {
	case image > text && image > table:
		return DocScanned
	case table > text && table >= image:
		return DocTableHeavy
	default:
		return DocText
	}
}
