// Package gridscan detects key-value rows and tabular regions inside decoded
// spreadsheet grids. Detection is heuristic: it runs over typed cell values
// with 1-indexed row/column addressing and never touches the underlying file
// format.
package gridscan

import (
	"strconv"
	"strings"
)

// CellKind discriminates typed cell values.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
)

// CellValue is one typed cell. Formulas are pre-evaluated by the decoder, so
// a numeric formula cell arrives here as a plain number.
type CellValue struct {
	Kind CellKind
	Num  float64
	Str  string
}

// Text builds a text cell. A blank string still counts as text; emptiness is
// decided by the decoder, not here.
func Text(s string) CellValue { return CellValue{Kind: KindText, Str: s} }

// Number builds a numeric cell.
func Number(f float64) CellValue { return CellValue{Kind: KindNumber, Num: f} }

// IsEmpty reports whether the cell holds no value.
func (v CellValue) IsEmpty() bool { return v.Kind == KindEmpty }

// String renders the cell for header names and raw dumps.
func (v CellValue) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	}
	return ""
}

// AsAny returns the cell's native value: float64, string, or nil.
func (v CellValue) AsAny() any {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindText:
		return v.Str
	}
	return nil
}

// CoerceNumeric returns the numeric reading of a cell when one exists:
// numbers pass through, numeric-looking text parses, other text is returned
// trimmed, empty cells yield nil.
func CoerceNumeric(v CellValue) any {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindText:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	}
	return nil
}

// Grid is one sheet's worth of typed cells, addressed 1-indexed.
type Grid struct {
	Name string
	rows [][]CellValue
}

// NewGrid builds a grid from row data, rows[0] being sheet row 1.
func NewGrid(name string, rows [][]CellValue) *Grid {
	return &Grid{Name: name, rows: rows}
}

// MaxRow returns the number of the last row.
func (g *Grid) MaxRow() int { return len(g.rows) }

// MaxCol returns the widest row's column count.
func (g *Grid) MaxCol() int {
	max := 0
	for _, r := range g.rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// Cell returns the cell at 1-indexed (row, col); out-of-range reads are empty.
func (g *Grid) Cell(row, col int) CellValue {
	if row < 1 || row > len(g.rows) {
		return CellValue{}
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return CellValue{}
	}
	return r[col-1]
}

// RowSpan returns cells (row,1)..(row,maxCol) as a fixed-width slice.
func (g *Grid) RowSpan(row, maxCol int) []CellValue {
	out := make([]CellValue, maxCol)
	for c := 1; c <= maxCol; c++ {
		out[c-1] = g.Cell(row, c)
	}
	return out
}
