// Package segment locates titled sections, repeating sub-records, and
// caption-identified tables within a document block stream. All matching runs
// against normalized paragraph text, case-insensitively, anchored at the start
// of the text. Absence is a soft result, never an error.
package segment

import (
	"regexp"

	"github.com/itac-tools/reportrecon/internal/docmodel"
)

// matchesStart reports whether re matches at the very beginning of s.
func matchesStart(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

// titleIndex returns the index of the first paragraph at or after from whose
// normalized text matches re, or -1.
func titleIndex(blocks []docmodel.Block, re *regexp.Regexp, from int) int {
	for i := from; i < len(blocks); i++ {
		p, ok := blocks[i].(docmodel.Paragraph)
		if !ok {
			continue
		}
		if matchesStart(re, docmodel.Normalize(p.Text())) {
			return i
		}
	}
	return -1
}

// Section returns the half-open block range starting at the first paragraph
// matching title and ending just before the earliest following paragraph that
// matches any pattern in next. With no next match the section runs to the end
// of the stream. A missing title yields nil.
func Section(blocks []docmodel.Block, title *regexp.Regexp, next []*regexp.Regexp) []docmodel.Block {
	start := titleIndex(blocks, title, 0)
	if start < 0 {
		return nil
	}

	end := len(blocks)
	for _, re := range next {
		if idx := titleIndex(blocks, re, start+1); idx >= 0 && idx < end {
			end = idx
		}
	}
	return blocks[start:end]
}

// SubRecords collects every span starting at a paragraph matching item, in
// document order. Each span ends at the next sibling start or at the earliest
// following paragraph matching any groupEnd pattern, whichever comes first;
// the final span otherwise runs to the end of the stream. Spans never overlap.
func SubRecords(blocks []docmodel.Block, item *regexp.Regexp, groupEnd []*regexp.Regexp) [][]docmodel.Block {
	var starts []int
	for i, b := range blocks {
		p, ok := b.(docmodel.Paragraph)
		if !ok {
			continue
		}
		if matchesStart(item, docmodel.Normalize(p.Text())) {
			starts = append(starts, i)
		}
	}

	var spans [][]docmodel.Block
	for k, start := range starts {
		end := len(blocks)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		for _, re := range groupEnd {
			if idx := titleIndex(blocks, re, start+1); idx >= 0 && idx < end {
				end = idx
			}
		}
		spans = append(spans, blocks[start:end])
	}
	return spans
}

// TableByCaption finds every paragraph matching one of the caption patterns
// and takes the first table block after it as a candidate. The last candidate
// wins: earlier ones are usually table-of-contents references, and the final
// occurrence in a linearly read document is the authoritative one. ok is
// false when no caption matches or no table follows any match.
func TableByCaption(blocks []docmodel.Block, captions []*regexp.Regexp) (docmodel.Table, bool) {
	var candidates []docmodel.Table
	for i, b := range blocks {
		p, ok := b.(docmodel.Paragraph)
		if !ok {
			continue
		}
		text := docmodel.Normalize(p.Text())
		matched := false
		for _, re := range captions {
			if matchesStart(re, text) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for j := i + 1; j < len(blocks); j++ {
			if t, ok := blocks[j].(docmodel.Table); ok {
				candidates = append(candidates, t)
				break
			}
		}
	}

	if len(candidates) == 0 {
		return docmodel.Table{}, false
	}
	return candidates[len(candidates)-1], true
}
