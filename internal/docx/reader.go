// Package docx decodes the WordprocessingML body of a .docx archive into the
// document block model. Only content that carries report text is decoded:
// paragraphs with styled runs and tables with nested cell blocks. Drawings,
// fields, and revision markup are skipped.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/itac-tools/reportrecon/internal/docmodel"
)

const documentPart = "word/document.xml"

// ReadFile opens a .docx archive and returns its body as an ordered block stream.
func ReadFile(path string) ([]docmodel.Block, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, eris.Wrap(err, "docx: open archive")
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, eris.Wrap(err, "docx: open document part")
		}
		defer rc.Close() //nolint:errcheck
		return Parse(rc)
	}

	return nil, eris.Errorf("docx: %s not found in archive", documentPart)
}

// Parse decodes a document.xml stream into the block model. Matching is by
// local element name so the WordprocessingML namespace prefix is irrelevant.
func Parse(r io.Reader) ([]docmodel.Block, error) {
	dec := xml.NewDecoder(r)
	var blocks []docmodel.Block
	inBody := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "docx: read token")
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "body":
			inBody = true
		case "p":
			if !inBody {
				continue
			}
			p, err := parseParagraph(dec, se)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, p)
		case "tbl":
			if !inBody {
				continue
			}
			t, err := parseTable(dec, se)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, t)
		}
	}

	return blocks, nil
}

func parseParagraph(dec *xml.Decoder, start xml.StartElement) (docmodel.Paragraph, error) {
	p := docmodel.Paragraph{Alignment: docmodel.AlignLeft}
	for {
		tok, err := dec.Token()
		if err != nil {
			return p, eris.Wrap(err, "docx: parse paragraph")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				align, err := parseParaProps(dec, t)
				if err != nil {
					return p, err
				}
				p.Alignment = align
			case "r":
				run, err := parseRun(dec, t)
				if err != nil {
					return p, err
				}
				if run.Text != "" {
					p.Runs = append(p.Runs, run)
				}
			case "hyperlink":
				runs, err := parseHyperlink(dec, t)
				if err != nil {
					return p, err
				}
				p.Runs = append(p.Runs, runs...)
			default:
				if err := dec.Skip(); err != nil {
					return p, eris.Wrap(err, "docx: skip paragraph child")
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return p, nil
			}
		}
	}
}

// parseParaProps extracts the paragraph alignment from pPr.
func parseParaProps(dec *xml.Decoder, start xml.StartElement) (docmodel.Alignment, error) {
	align := docmodel.AlignLeft
	for {
		tok, err := dec.Token()
		if err != nil {
			return align, eris.Wrap(err, "docx: parse paragraph properties")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "jc" {
				switch attrVal(t, "val") {
				case "center":
					align = docmodel.AlignCenter
				case "right", "end":
					align = docmodel.AlignRight
				}
			}
			if err := dec.Skip(); err != nil {
				return align, eris.Wrap(err, "docx: skip property")
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return align, nil
			}
		}
	}
}

func parseHyperlink(dec *xml.Decoder, start xml.StartElement) ([]docmodel.Run, error) {
	var runs []docmodel.Run
	for {
		tok, err := dec.Token()
		if err != nil {
			return runs, eris.Wrap(err, "docx: parse hyperlink")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "r" {
				run, err := parseRun(dec, t)
				if err != nil {
					return runs, err
				}
				if run.Text != "" {
					runs = append(runs, run)
				}
				continue
			}
			if err := dec.Skip(); err != nil {
				return runs, eris.Wrap(err, "docx: skip hyperlink child")
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return runs, nil
			}
		}
	}
}

func parseRun(dec *xml.Decoder, start xml.StartElement) (docmodel.Run, error) {
	var run docmodel.Run
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return run, eris.Wrap(err, "docx: parse run")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := parseRunProps(dec, t, &run); err != nil {
					return run, err
				}
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return run, eris.Wrap(err, "docx: decode text")
				}
				sb.WriteString(text)
			case "tab":
				sb.WriteByte('\t')
				if err := dec.Skip(); err != nil {
					return run, eris.Wrap(err, "docx: skip tab")
				}
			case "br", "cr":
				sb.WriteByte('\n')
				if err := dec.Skip(); err != nil {
					return run, eris.Wrap(err, "docx: skip break")
				}
			default:
				if err := dec.Skip(); err != nil {
					return run, eris.Wrap(err, "docx: skip run child")
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				run.Text = sb.String()
				return run, nil
			}
		}
	}
}

func parseRunProps(dec *xml.Decoder, start xml.StartElement, run *docmodel.Run) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return eris.Wrap(err, "docx: parse run properties")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "b":
				run.Bold = onOff(t)
			case "i":
				run.Italic = onOff(t)
			}
			if err := dec.Skip(); err != nil {
				return eris.Wrap(err, "docx: skip run property")
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

func parseTable(dec *xml.Decoder, start xml.StartElement) (docmodel.Table, error) {
	var tbl docmodel.Table
	for {
		tok, err := dec.Token()
		if err != nil {
			return tbl, eris.Wrap(err, "docx: parse table")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tr" {
				row, err := parseRow(dec, t)
				if err != nil {
					return tbl, err
				}
				tbl.Rows = append(tbl.Rows, row)
				continue
			}
			if err := dec.Skip(); err != nil {
				return tbl, eris.Wrap(err, "docx: skip table child")
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return tbl, nil
			}
		}
	}
}

func parseRow(dec *xml.Decoder, start xml.StartElement) ([]docmodel.Cell, error) {
	var row []docmodel.Cell
	for {
		tok, err := dec.Token()
		if err != nil {
			return row, eris.Wrap(err, "docx: parse row")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tc" {
				cell, err := parseCell(dec, t)
				if err != nil {
					return row, err
				}
				row = append(row, cell)
				continue
			}
			if err := dec.Skip(); err != nil {
				return row, eris.Wrap(err, "docx: skip row child")
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return row, nil
			}
		}
	}
}

func parseCell(dec *xml.Decoder, start xml.StartElement) (docmodel.Cell, error) {
	var cell docmodel.Cell
	for {
		tok, err := dec.Token()
		if err != nil {
			return cell, eris.Wrap(err, "docx: parse cell")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := parseParagraph(dec, t)
				if err != nil {
					return cell, err
				}
				cell.Blocks = append(cell.Blocks, p)
			case "tbl":
				nested, err := parseTable(dec, t)
				if err != nil {
					return cell, err
				}
				cell.Blocks = append(cell.Blocks, nested)
			default:
				if err := dec.Skip(); err != nil {
					return cell, eris.Wrap(err, "docx: skip cell child")
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return cell, nil
			}
		}
	}
}

// attrVal returns the value of the named attribute, matched by local name.
func attrVal(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// onOff reads a WordprocessingML toggle property. A bare element means on;
// an explicit val of false/0/none means off.
func onOff(se xml.StartElement) bool {
	switch attrVal(se, "val") {
	case "false", "0", "none":
		return false
	}
	return true
}
