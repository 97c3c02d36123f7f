package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itac-tools/reportrecon/internal/artifacts"
	"github.com/itac-tools/reportrecon/internal/extract"
	"github.com/itac-tools/reportrecon/internal/gridscan"
)

var (
	extractXlsxPath      string
	extractXlsxOutJSON   string
	extractXlsxTablesDir string
)

var extractXlsxCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Scan an assessment workbook and dump what was detected",
	Long: `Runs the key-value and table detectors over every sheet, writes the
scan summary as JSON, and exports each detected table to its own CSV.

Examples:
  reportrecon extract xlsx --xlsx workbook.xlsx --out-json scan.json
  reportrecon extract xlsx --xlsx workbook.xlsx --tables-dir tables/`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		grids, err := gridscan.OpenWorkbook(extractXlsxPath)
		if err != nil {
			return eris.Wrap(err, "extract xlsx: read workbook")
		}
		wb := extract.FromGrids(grids, cfg.Scan.MaxColumns)

		if extractXlsxOutJSON != "" {
			if err := ensureDirFor(extractXlsxOutJSON); err != nil {
				return err
			}
			if err := artifacts.WriteJSON(extractXlsxOutJSON, wb); err != nil {
				return err
			}
			zap.L().Info("wrote scan summary", zap.String("path", extractXlsxOutJSON))
		}

		if extractXlsxTablesDir != "" {
			written, err := artifacts.WriteTableCSVs(extractXlsxTablesDir, wb.Sheets)
			if err != nil {
				return err
			}
			zap.L().Info("wrote table exports",
				zap.String("dir", extractXlsxTablesDir),
				zap.Int("files", len(written)),
			)
		}

		return nil
	},
}

// ensureDirFor creates the parent directory of path when needed.
func ensureDirFor(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return eris.Wrap(os.MkdirAll(dir, 0o755), "create output dir")
}

func init() {
	extractXlsxCmd.Flags().StringVar(&extractXlsxPath, "xlsx", "", "assessment workbook path (.xlsx)")
	extractXlsxCmd.Flags().StringVar(&extractXlsxOutJSON, "out-json", "scan_summary.json", "path for the JSON scan summary")
	extractXlsxCmd.Flags().StringVar(&extractXlsxTablesDir, "tables-dir", "tables", "directory for per-table CSV exports")
	extractXlsxCmd.MarkFlagRequired("xlsx") //nolint:errcheck
	extractCmd.AddCommand(extractXlsxCmd)
}
