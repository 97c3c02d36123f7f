package gridscan

import (
	"fmt"
	"regexp"
	"strings"
)

// KeyValue is one detected label/value row.
type KeyValue struct {
	Row      int    `json:"row"`
	Key      string `json:"key"`
	Value    any    `json:"value"`
	RawKey   string `json:"raw_key"`
	RawValue any    `json:"raw_value"`
}

// Table is one detected tabular region. Rows map cleaned header names to raw
// cell values by position.
type Table struct {
	StartRow int              `json:"start_row"`
	EndRow   int              `json:"end_row"`
	Headers  []string         `json:"headers"`
	Rows     []map[string]any `json:"rows"`
}

var (
	colonRun = regexp.MustCompile(`[:]+`)
	spaceRun = regexp.MustCompile(`\s+`)
)

// CleanKey strips colons and collapses whitespace in a raw label.
func CleanKey(key string) string {
	cleaned := strings.TrimSpace(colonRun.ReplaceAllString(key, ""))
	return spaceRun.ReplaceAllString(cleaned, " ")
}

// textish reports whether a cell is usable as a key: a string of 1-200
// characters that is not purely digits with dots and dashes.
func textish(v CellValue) bool {
	if v.Kind != KindText {
		return false
	}
	s := strings.TrimSpace(v.Str)
	if len(s) == 0 || len(s) > 200 {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, s)
	return !allDigits(stripped)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func nonEmptyCount(cells []CellValue) int {
	n := 0
	for _, c := range cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// DetectKeyValues scans rows 1..MaxRow for label/value pairs: exactly 2-3
// non-empty cells with a text-like first cell. A third cell is tolerated as
// auxiliary data and ignored. Results are deduplicated by case-insensitive
// cleaned key, first occurrence retained.
func DetectKeyValues(g *Grid, maxCol int) []KeyValue {
	if maxCol <= 0 {
		maxCol = g.MaxCol()
	}

	var pairs []KeyValue
	for r := 1; r <= g.MaxRow(); r++ {
		cells := g.RowSpan(r, maxCol)
		cnt := nonEmptyCount(cells)
		if cnt < 2 || cnt > 3 {
			continue
		}

		var idxs []int
		for i, c := range cells {
			if !c.IsEmpty() {
				idxs = append(idxs, i)
			}
		}

		key, value := cells[idxs[0]], cells[idxs[1]]
		if !textish(key) {
			continue
		}
		cleaned := CleanKey(key.Str)
		if cleaned == "" {
			continue
		}

		pairs = append(pairs, KeyValue{
			Row:      r,
			Key:      cleaned,
			Value:    CoerceNumeric(value),
			RawKey:   strings.TrimSpace(key.Str),
			RawValue: value.AsAny(),
		})
	}

	seen := make(map[string]bool, len(pairs))
	deduped := pairs[:0]
	for _, p := range pairs {
		lower := strings.ToLower(p.Key)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// headerKeywords are the lowercased substrings whose presence marks a row as
// a likely table header even when its string ratio is low.
var headerKeywords = []string{
	"info", "code", "name", "description", "unit", "cost", "consumption", "savings",
}

// HeaderFeatures is the feature vector header classification runs on.
type HeaderFeatures struct {
	NonEmpty    int
	StringRatio float64
	KeywordHit  bool
}

// Features computes the header feature vector for a row.
func Features(cells []CellValue) HeaderFeatures {
	var f HeaderFeatures
	strCount := 0
	for _, c := range cells {
		if c.IsEmpty() {
			continue
		}
		f.NonEmpty++
		if c.Kind == KindText {
			strCount++
			lower := strings.ToLower(c.Str)
			for _, kw := range headerKeywords {
				if strings.Contains(lower, kw) {
					f.KeywordHit = true
					break
				}
			}
		}
	}
	if f.NonEmpty > 0 {
		f.StringRatio = float64(strCount) / float64(f.NonEmpty)
	}
	return f
}

// IsHeader classifies the feature vector.
func (f HeaderFeatures) IsHeader() bool {
	return f.NonEmpty >= 2 && (f.StringRatio >= 0.4 || f.KeywordHit)
}

// cleanHeaders turns a header row into unique column names: blanks become
// col_N placeholders, duplicates get an occurrence suffix (_2, _3, ...).
func cleanHeaders(cells []CellValue) []string {
	out := make([]string, 0, len(cells))
	used := make(map[string]bool, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(c.String())
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		base := name
		for j := 2; used[name]; j++ {
			name = fmt.Sprintf("%s_%d", base, j)
		}
		used[name] = true
		out = append(out, name)
	}
	return out
}

// extendDown returns the last non-blank row of a table whose header sits at
// headerRow. The body ends at the first run of two consecutive fully-empty
// rows; a single interior blank row does not terminate it.
func extendDown(g *Grid, headerRow, maxCol int) int {
	end := headerRow
	blankRun := 0
	for r := headerRow + 1; r <= g.MaxRow(); r++ {
		if nonEmptyCount(g.RowSpan(r, maxCol)) == 0 {
			blankRun++
			if blankRun >= 2 {
				return end
			}
			continue
		}
		blankRun = 0
		end = r
	}
	return end
}

// DetectTables scans top-to-bottom for header-like rows followed by at least
// one non-empty row, and consumes each detected region before resuming, so
// regions never overlap. Tables with no data rows are discarded.
func DetectTables(g *Grid, maxCol int) []Table {
	if maxCol <= 0 {
		maxCol = g.MaxCol()
	}

	var tables []Table
	r := 1
	for r <= g.MaxRow() {
		cells := g.RowSpan(r, maxCol)
		if !Features(cells).IsHeader() {
			r++
			continue
		}
		if r+1 > g.MaxRow() || nonEmptyCount(g.RowSpan(r+1, maxCol)) < 1 {
			r++
			continue
		}

		end := extendDown(g, r, maxCol)
		headers := cleanHeaders(cells)

		var data []map[string]any
		for rr := r + 1; rr <= end; rr++ {
			vals := g.RowSpan(rr, maxCol)
			if nonEmptyCount(vals) == 0 {
				continue
			}
			n := len(headers)
			if len(vals) < n {
				n = len(vals)
			}
			rowMap := make(map[string]any, n)
			for i := 0; i < n; i++ {
				rowMap[headers[i]] = vals[i].AsAny()
			}
			data = append(data, rowMap)
		}

		if len(data) > 0 {
			tables = append(tables, Table{
				StartRow: r,
				EndRow:   end,
				Headers:  headers,
				Rows:     data,
			})
		}
		r = end + 1
	}
	return tables
}
