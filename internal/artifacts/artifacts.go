// Package artifacts writes extraction output to disk for offline
// inspection: HTML or JSON renderings of the document sections and one CSV
// per detected workbook table.
package artifacts

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/itac-tools/reportrecon/internal/docmodel"
	"github.com/itac-tools/reportrecon/internal/extract"
	"github.com/itac-tools/reportrecon/internal/gridscan"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName sanitizes a sheet or section name for use in a file name:
// anything outside [A-Za-z0-9._-] becomes an underscore, capped at 40
// characters.
func SafeName(name string) string {
	safe := unsafeChars.ReplaceAllString(strings.TrimSpace(name), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "sheet"
	}
	if len(safe) > 40 {
		safe = safe[:40]
	}
	return safe
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "artifacts: create json file")
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "artifacts: encode json")
	}
	return nil
}

// WriteDocumentHTML renders each extracted document section to its own HTML
// file in dir and returns the written paths. Absent sections are skipped.
func WriteDocumentHTML(dir string, doc *extract.Document) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "artifacts: create output dir")
	}

	var written []string
	write := func(name string, blocks []docmodel.Block) error {
		if len(blocks) == 0 {
			return nil
		}
		path := filepath.Join(dir, name+".html")
		if err := os.WriteFile(path, []byte(docmodel.RenderHTML(blocks)), 0o644); err != nil {
			return eris.Wrapf(err, "artifacts: write %s", path)
		}
		written = append(written, path)
		return nil
	}

	if err := write("general_information", doc.GeneralInformation); err != nil {
		return written, err
	}
	if err := write("annual_energy_usages_and_costs", doc.AnnualEnergy); err != nil {
		return written, err
	}
	if err := write("carbon_footprint", doc.CarbonFootprint); err != nil {
		return written, err
	}
	if doc.RecommendationTable != nil {
		if err := write("recommendation_summary_table", []docmodel.Block{*doc.RecommendationTable}); err != nil {
			return written, err
		}
	}
	for i, rec := range doc.Recommendations {
		if err := write(fmt.Sprintf("AR_%02d", i+1), rec); err != nil {
			return written, err
		}
	}
	return written, nil
}

// documentSectionsJSON is the structural form of the extracted sections.
type documentSectionsJSON struct {
	GeneralInformation  []any               `json:"general_information"`
	AnnualEnergy        []any               `json:"annual_energy_usages_and_costs"`
	CarbonFootprint     []any               `json:"carbon_footprint"`
	RecommendationTable *docmodel.TableJSON `json:"recommendation_summary_table"`
	Recommendations     [][]any             `json:"recommendations"`
	GeneralInfo         map[string]any      `json:"general_info"`
	EnergyReport        any                 `json:"energy_report"`
}

// WriteDocumentJSON writes the structural rendering of every extracted
// section plus the canonical records to a single JSON file.
func WriteDocumentJSON(path string, doc *extract.Document) error {
	out := documentSectionsJSON{
		GeneralInformation: docmodel.RenderJSON(doc.GeneralInformation),
		AnnualEnergy:       docmodel.RenderJSON(doc.AnnualEnergy),
		CarbonFootprint:    docmodel.RenderJSON(doc.CarbonFootprint),
		Recommendations:    make([][]any, 0, len(doc.Recommendations)),
		GeneralInfo:        doc.GeneralInfo,
		EnergyReport:       doc.EnergyReport,
	}
	if doc.RecommendationTable != nil {
		tj := docmodel.RenderTableJSON(*doc.RecommendationTable)
		out.RecommendationTable = &tj
	}
	for _, rec := range doc.Recommendations {
		out.Recommendations = append(out.Recommendations, docmodel.RenderJSON(rec))
	}
	return WriteJSON(path, out)
}

// WriteTableCSVs writes every detected table to its own CSV file in dir,
// named <safe-sheet>_tableN.csv, and returns the written paths in sheet
// name order.
func WriteTableCSVs(dir string, sheets map[string]extract.SheetScan) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "artifacts: create tables dir")
	}

	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		for i, tbl := range sheets[name].Tables {
			path := filepath.Join(dir, fmt.Sprintf("%s_table%d.csv", SafeName(name), i+1))
			if err := writeTableCSV(path, tbl); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	return written, nil
}

func writeTableCSV(path string, tbl gridscan.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "artifacts: create csv file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(tbl.Headers); err != nil {
		return eris.Wrap(err, "artifacts: write csv header")
	}
	for _, row := range tbl.Rows {
		record := make([]string, len(tbl.Headers))
		for i, h := range tbl.Headers {
			record[i] = cellString(row[h])
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "artifacts: write csv row")
		}
	}
	return nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
