// Package docmodel defines the decoded document block stream: an ordered
// sequence of paragraphs and tables produced once per parse and treated as
// immutable by everything downstream.
package docmodel

import (
	"regexp"
	"strings"
)

// Alignment is a paragraph-level alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Block is one unit of a document's linear content stream: a Paragraph or a Table.
type Block interface {
	Kind() BlockKind
}

// BlockKind discriminates Block variants.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindTable     BlockKind = "table"
)

// Run is a span of paragraph text with uniform styling.
type Run struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold"`
	Italic bool   `json:"italic"`
}

// Paragraph is a styled text block.
type Paragraph struct {
	Runs      []Run
	Alignment Alignment
}

func (Paragraph) Kind() BlockKind { return KindParagraph }

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Cell holds the nested block sequence of one table cell.
type Cell struct {
	Blocks []Block
}

// Text returns the cell's paragraph text joined by newlines.
// Nested tables contribute nothing; the report templates never nest data
// inside them.
func (c Cell) Text() string {
	var parts []string
	for _, b := range c.Blocks {
		if p, ok := b.(Paragraph); ok {
			parts = append(parts, p.Text())
		}
	}
	return strings.Join(parts, "\n")
}

// Table is a grid of cells, each holding its own block sequence.
type Table struct {
	Rows [][]Cell
}

func (Table) Kind() BlockKind { return KindTable }

var wsRun = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace runs to single spaces and trims the ends.
// All title and caption matching operates on normalized text.
func Normalize(s string) string {
	return strings.TrimSpace(wsRun.ReplaceAllString(s, " "))
}

// Para builds a plain single-run paragraph. Test and fixture helper.
func Para(text string) Paragraph {
	return Paragraph{Runs: []Run{{Text: text}}}
}

// TextCell builds a cell holding one plain paragraph.
func TextCell(text string) Cell {
	return Cell{Blocks: []Block{Para(text)}}
}
