package recon

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/itac-tools/reportrecon/internal/docx"
	"github.com/itac-tools/reportrecon/internal/extract"
	"github.com/itac-tools/reportrecon/internal/gridscan"
)

// Options tunes a reconciliation run.
type Options struct {
	Tolerance  float64
	MaxColumns int
}

// Report is the full comparison report for one document/workbook pair.
type Report struct {
	GeneralComparison GeneralComparison `json:"general_comparison"`
	EnergyComparison  EnergyComparison  `json:"energy_comparison"`
	Success           bool              `json:"success"`
}

// ValidateInputs rejects inputs with the wrong file extension before any
// decoding starts.
func ValidateInputs(docPath, xlsxPath string) error {
	if ext := strings.ToLower(filepath.Ext(docPath)); ext != ".docx" {
		return eris.Errorf("unsupported document format %q: want .docx", ext)
	}
	if ext := strings.ToLower(filepath.Ext(xlsxPath)); ext != ".xlsx" {
		return eris.Errorf("unsupported workbook format %q: want .xlsx", ext)
	}
	return nil
}

// ReconcileFiles runs one full extract-then-compare pass over a report
// document and its assessment workbook. Decode failures abort the run; a
// missing section or sheet only leaves its side of the comparison empty.
func ReconcileFiles(docPath, xlsxPath string, opts Options) (*Report, error) {
	if err := ValidateInputs(docPath, xlsxPath); err != nil {
		return nil, err
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	blocks, err := docx.ReadFile(docPath)
	if err != nil {
		return nil, eris.Wrap(err, "recon: read document")
	}
	doc := extract.FromBlocks(blocks)

	grids, err := gridscan.OpenWorkbook(xlsxPath)
	if err != nil {
		return nil, eris.Wrap(err, "recon: read workbook")
	}
	wb := extract.FromGrids(grids, opts.MaxColumns)

	zap.L().Info("recon: extracted both sides",
		zap.Int("doc_blocks", len(blocks)),
		zap.Int("doc_fields", len(doc.GeneralInfo)),
		zap.Int("sheets", len(wb.SheetNames)),
		zap.Int("excel_fields", len(wb.GeneralInfo)),
	)

	return &Report{
		GeneralComparison: CompareGeneralInfo(doc.GeneralInfo, wb.GeneralInfo, opts.Tolerance),
		EnergyComparison:  CompareEnergyData(doc.EnergyReport, wb.EnergyWaste, opts.Tolerance),
		Success:           true,
	}, nil
}
