package pdftext

import (
	"math"
	"sort"
	"strings"

	"github.com/wudi/pdf2word/block"
)

// GridCount reports how many table grids the page appears to contain. Used by
// classification; the full cell contents are not materialized.
func (d *Document) GridCount(page int) (int, error) {
	chars, err := d.chars(page)
	if err != nil {
		return 0, err
	}
	rows := groupRows(chars, d.cfg.RowTolerance)
	words := rowsToWords(rows, d.cfg.WordGapFactor)
	tables, _ := d.detectGrids(words)
	return len(tables), nil
}

// detectGrids looks for words aligned into consistent columns and rows and
// materializes each such grid as a table. Returns the tables and the page
// regions they occupy so callers can suppress duplicate paragraph output.
//
// The heuristic: bucket word origins on a coarse X/Y lattice, keep X buckets
// with enough vertically aligned words as column candidates and Y buckets
// with enough horizontally aligned words as row candidates, then demand
// roughly even spacing before committing to a grid.
func (d *Document) detectGrids(rows [][]word) ([]block.Table, []region) {
	var all []word
	for _, r := range rows {
		all = append(all, r...)
	}
	if len(all) < d.cfg.MinGridCols*d.cfg.MinGridRows {
		return nil, nil
	}

	xBuckets := make(map[int]int)
	yBuckets := make(map[int]int)
	for _, wd := range all {
		xBuckets[int(wd.x/d.cfg.XBucket)]++
		yBuckets[int(wd.y/d.cfg.YBucket)]++
	}

	// A column candidate needs MinGridRows vertically aligned words, a row
	// candidate MinGridCols horizontally aligned ones; anything stricter
	// makes grids at the configured minimum undetectable.
	var colXs []float64
	for key, n := range xBuckets {
		if n >= d.cfg.MinGridRows {
			colXs = append(colXs, float64(key)*d.cfg.XBucket)
		}
	}
	var rowYs []float64
	for key, n := range yBuckets {
		if n >= d.cfg.MinGridCols {
			rowYs = append(rowYs, float64(key)*d.cfg.YBucket)
		}
	}
	if len(colXs) < d.cfg.MinGridCols || len(rowYs) < d.cfg.MinGridRows {
		return nil, nil
	}

	sort.Float64s(colXs)
	sort.Sort(sort.Reverse(sort.Float64Slice(rowYs))) // top row first

	if !evenSpacing(colXs, d.cfg.SpacingTolerance) || !evenSpacing(rowYs, d.cfg.SpacingTolerance) {
		return nil, nil
	}

	cells := make([][]string, len(rowYs))
	for r := range cells {
		cells[r] = make([]string, len(colXs))
	}
	assigned := 0
	reg := region{x0: math.MaxFloat64, y0: math.MaxFloat64}
	for _, wd := range all {
		r := nearestIndex(rowYs, wd.y, d.cfg.YBucket*2)
		c := nearestIndex(colXs, wd.x, d.cfg.XBucket*2)
		if r < 0 || c < 0 {
			continue
		}
		if cells[r][c] != "" {
			cells[r][c] += " "
		}
		cells[r][c] += wd.text
		assigned++
		reg.x0 = math.Min(reg.x0, wd.x)
		reg.x1 = math.Max(reg.x1, wd.right())
		reg.y0 = math.Min(reg.y0, wd.y)
		reg.y1 = math.Max(reg.y1, wd.y)
	}
	if assigned < d.cfg.MinGridCols*d.cfg.MinGridRows {
		return nil, nil
	}

	tbl := cleanTable(cells)
	if len(tbl.Rows) < d.cfg.MinGridRows {
		return nil, nil
	}

	reg.y0 -= d.cfg.YBucket
	reg.y1 += d.cfg.YBucket
	return []block.Table{tbl}, []region{reg}
}

// cleanTable trims cell text and drops rows with no content.
func cleanTable(cells [][]string) block.Table {
	var rows [][]string
	for _, row := range cells {
		empty := true
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return block.Table{Rows: rows}
}

// evenSpacing reports whether consecutive gaps stay within tolerance of
// their mean, the signature of a deliberate grid rather than incidental
// alignment.
func evenSpacing(positions []float64, tolerance float64) bool {
	if len(positions) < 2 {
		return false
	}
	gaps := make([]float64, len(positions)-1)
	var sum float64
	for i := range gaps {
		gaps[i] = math.Abs(positions[i+1] - positions[i])
		sum += gaps[i]
	}
	mean := sum / float64(len(gaps))
	if mean == 0 {
		return false
	}
	for _, g := range gaps {
		if math.Abs(g-mean)/mean > tolerance {
			return false
		}
	}
	return true
}

// nearestIndex returns the index of the closest position within maxDist of v,
// or -1 when nothing is close enough.
func nearestIndex(positions []float64, v, maxDist float64) int {
	best, bestDist := -1, maxDist
	for i, p := range positions {
		if d := math.Abs(p - v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
