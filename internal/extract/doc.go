// Package extract pulls structured assessment data out of parsed report
// documents and scanned workbooks. The document side slices a block stream
// into the narrative sections of an assessment report and reads the general
// information and energy tables out of them; the workbook side reads the
// corresponding sheets of the assessment workbook.
package extract

import (
	"regexp"
	"strings"

	"github.com/itac-tools/reportrecon/internal/docmodel"
	"github.com/itac-tools/reportrecon/internal/energy"
	"github.com/itac-tools/reportrecon/internal/normalize"
	"github.com/itac-tools/reportrecon/internal/segment"
)

var (
	generalInfoTitle   = regexp.MustCompile(`(?i)^\s*General\s+Information\b`)
	annualEnergyTitle  = regexp.MustCompile(`(?i)^\s*Annual\s+Energy\s+Usages\s+and\s+Costs\b`)
	carbonTitle        = regexp.MustCompile(`(?i)^\s*Carbon\s+Footprint\b`)
	bestPracticesTitle = regexp.MustCompile(`(?i)^\s*Summary\s+of\s+Best\s+Practices\b`)
	companyBackground  = regexp.MustCompile(`(?i)^\s*COMPANY\s+BACKGROUND\b`)

	recTableCaptions = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*Table\s*1[.-]3\b.*Recommendation\s+Summary\s+Table`),
		regexp.MustCompile(`(?i)^\s*Table\s*1[.-]3\b.*Assessment\s+Recommendation\s+Summary\s+Table`),
	}

	arTitle    = regexp.MustCompile(`(?i)^\s*AR\s+No\.\s*\d+\b`)
	arGroupEnd = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*(5(\.|$)|INDUSTRIAL\s+CONTROL|CONCLUSIONS?|REFERENCES?|APPENDIX)`),
	}
)

// Document holds the sections carved out of a report block stream plus the
// structured records read from them.
type Document struct {
	GeneralInformation []docmodel.Block
	AnnualEnergy       []docmodel.Block
	CarbonFootprint    []docmodel.Block
	RecommendationTable *docmodel.Table
	Recommendations    [][]docmodel.Block

	GeneralInfo  map[string]any
	EnergyReport energy.Report
}

// FromBlocks segments a parsed report into its assessment sections and
// extracts the structured records. Missing sections leave their slice nil
// and their record empty.
func FromBlocks(blocks []docmodel.Block) *Document {
	d := &Document{
		GeneralInformation: segment.Section(blocks, generalInfoTitle, []*regexp.Regexp{
			annualEnergyTitle, carbonTitle, bestPracticesTitle,
		}),
		AnnualEnergy: segment.Section(blocks, annualEnergyTitle, []*regexp.Regexp{
			carbonTitle, bestPracticesTitle,
		}),
		CarbonFootprint: segment.Section(blocks, carbonTitle, []*regexp.Regexp{
			bestPracticesTitle, companyBackground,
		}),
		Recommendations: segment.SubRecords(blocks, arTitle, arGroupEnd),
	}
	if tbl, ok := segment.TableByCaption(blocks, recTableCaptions); ok {
		d.RecommendationTable = &tbl
	}
	d.GeneralInfo = GeneralInfoFields(d.GeneralInformation)
	d.EnergyReport = energy.FromSection(d.AnnualEnergy)
	return d
}

// GeneralInfoFields reads the first table in a general-information section
// as "Label: value" cells. Labels canonicalize through the field alias
// tables; product fields keep their raw string, everything else parses to a
// number. Cells without a colon are skipped.
func GeneralInfoFields(blocks []docmodel.Block) map[string]any {
	fields := map[string]any{}
	var tbl docmodel.Table
	found := false
	for _, b := range blocks {
		if t, ok := b.(docmodel.Table); ok {
			tbl = t
			found = true
			break
		}
	}
	if !found {
		return fields
	}
	for _, row := range tbl.Rows {
		for _, cell := range row {
			text := strings.TrimSpace(cell.Text())
			label, value, ok := strings.Cut(text, ":")
			if !ok {
				continue
			}
			label = strings.TrimSpace(label)
			value = strings.TrimSpace(value)
			key, aliased := normalize.FieldKey(label)
			if key == "" {
				continue
			}
			if normalize.ProductKey(key, aliased) {
				fields[key] = value
				continue
			}
			n, _ := normalize.Numeric(value)
			fields[key] = n
		}
	}
	return fields
}
