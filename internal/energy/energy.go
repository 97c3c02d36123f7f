// Package energy parses per-stream usage, cost, and unit-cost records out of
// narrative report tables, and defines the record shapes shared with the
// workbook-side extraction.
package energy

import (
	"strings"

	"github.com/itac-tools/reportrecon/internal/docmodel"
	"github.com/itac-tools/reportrecon/internal/normalize"
)

// UnitCost is a per-unit price such as $0.102/kWh.
type UnitCost struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Period is the reporting window a report's figures cover.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Entry is one energy or waste stream: canonical type, per-unit usage
// figures, annual cost, and optional unit cost. OriginalName keeps the
// source label when the record comes from a workbook row.
type Entry struct {
	Type         string             `json:"type"`
	OriginalName string             `json:"original_name,omitempty"`
	Usage        map[string]float64 `json:"usage"`
	Cost         float64            `json:"cost"`
	UnitCost     *UnitCost          `json:"unit_cost"`
}

// Report is an ordered list of energy entries plus the period they cover.
// Workbook-side reports also carry summary totals.
type Report struct {
	Period  Period             `json:"period"`
	Data    []Entry            `json:"data"`
	Summary map[string]float64 `json:"summary,omitempty"`
}

// FromSection builds the document-side energy report from the blocks of the
// annual energy usage section. The period comes from the first paragraph
// naming one; entries come from the first table in the section.
func FromSection(blocks []docmodel.Block) Report {
	report := Report{Data: []Entry{}}

	for _, b := range blocks {
		p, ok := b.(docmodel.Paragraph)
		if !ok {
			continue
		}
		if period, ok := ParsePeriod(p.Text()); ok {
			report.Period = period
			break
		}
	}

	for _, b := range blocks {
		tbl, ok := b.(docmodel.Table)
		if !ok {
			continue
		}
		if entries := FromTable(tbl); len(entries) > 0 {
			report.Data = entries
		}
		break
	}
	return report
}

// FromTable parses one energy usage table: one row per stream with type,
// usage, cost, and unit cost cells. The first row is the header; rows with
// fewer than four cells are skipped.
func FromTable(tbl docmodel.Table) []Entry {
	if len(tbl.Rows) <= 1 {
		return nil
	}

	var entries []Entry
	for _, row := range tbl.Rows[1:] {
		if len(row) < 4 {
			continue
		}
		// Footnote markers on the type label do not survive canonicalization.
		name := strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(row[0].Text()), "**", ""))
		entries = append(entries, Entry{
			Type:     normalize.EnergyType(name),
			Usage:    ParseUsage(row[1].Text()),
			Cost:     ParseCost(row[2].Text()),
			UnitCost: ParseUnitCost(row[3].Text()),
		})
	}
	return entries
}
