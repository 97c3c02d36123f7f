package docmodel

import (
	"fmt"
	"strings"
)

// escapeHTML escapes the three characters that would break markup.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// ParagraphHTML renders a paragraph with bold/italic inline markers and a
// text-align style for non-left alignments.
func ParagraphHTML(p Paragraph) string {
	if len(p.Runs) == 0 {
		return "<p></p>"
	}
	var parts []string
	for _, r := range p.Runs {
		t := escapeHTML(r.Text)
		if t == "" {
			continue
		}
		if r.Bold {
			t = "<b>" + t + "</b>"
		}
		if r.Italic {
			t = "<i>" + t + "</i>"
		}
		parts = append(parts, t)
	}
	align := p.Alignment
	if align == "" {
		align = AlignLeft
	}
	style := ""
	if align != AlignLeft {
		style = fmt.Sprintf(" style=%q", "text-align:"+string(align))
	}
	return "<p" + style + ">" + strings.Join(parts, "") + "</p>"
}

// TableHTML renders a table as a bordered nested grid.
func TableHTML(t Table) string {
	var rows []string
	for _, row := range t.Rows {
		var cells []string
		for _, cell := range row {
			var inner strings.Builder
			for _, b := range cell.Blocks {
				if p, ok := b.(Paragraph); ok {
					inner.WriteString(ParagraphHTML(p))
				}
			}
			cells = append(cells, "<td>"+inner.String()+"</td>")
		}
		rows = append(rows, "<tr>"+strings.Join(cells, "")+"</tr>")
	}
	return "<table border='1' cellpadding='4' cellspacing='0' style='border-collapse:collapse;width:100%'>" +
		strings.Join(rows, "") + "</table>"
}

// RenderHTML renders a block sequence as newline-joined HTML fragments.
func RenderHTML(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		switch v := b.(type) {
		case Paragraph:
			parts = append(parts, ParagraphHTML(v))
		case Table:
			parts = append(parts, TableHTML(v))
		}
	}
	return strings.Join(parts, "\n")
}

// ParagraphJSON is the structural form of a paragraph.
type ParagraphJSON struct {
	Type      string `json:"type"`
	Alignment string `json:"alignment"`
	Runs      []Run  `json:"runs"`
}

// CellJSON is the structural form of a table cell.
type CellJSON struct {
	Paragraphs []ParagraphJSON `json:"paragraphs"`
}

// TableJSON is the structural form of a table.
type TableJSON struct {
	Type string       `json:"type"`
	Rows [][]CellJSON `json:"rows"`
}

func paragraphJSON(p Paragraph) ParagraphJSON {
	align := p.Alignment
	if align == "" {
		align = AlignLeft
	}
	out := ParagraphJSON{Type: string(KindParagraph), Alignment: string(align)}
	for _, r := range p.Runs {
		if r.Text != "" {
			out.Runs = append(out.Runs, r)
		}
	}
	return out
}

func tableJSON(t Table) TableJSON {
	out := TableJSON{Type: string(KindTable)}
	for _, row := range t.Rows {
		var cells []CellJSON
		for _, cell := range row {
			var cj CellJSON
			for _, b := range cell.Blocks {
				if p, ok := b.(Paragraph); ok {
					cj.Paragraphs = append(cj.Paragraphs, paragraphJSON(p))
				}
			}
			cells = append(cells, cj)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// RenderJSON converts a block sequence to its structural form, one record per
// block. The result marshals directly with encoding/json.
func RenderJSON(blocks []Block) []any {
	out := make([]any, 0, len(blocks))
	for _, b := range blocks {
		switch v := b.(type) {
		case Paragraph:
			out = append(out, paragraphJSON(v))
		case Table:
			out = append(out, tableJSON(v))
		}
	}
	return out
}

// RenderTableJSON converts a single table to its structural form.
func RenderTableJSON(t Table) TableJSON {
	return tableJSON(t)
}
