package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itac-tools/reportrecon/internal/fetcher"
	"github.com/itac-tools/reportrecon/internal/recon"
)

var (
	compareDoc       string
	compareXlsx      string
	compareOutput    string
	compareTolerance float64
	compareRecord    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a report document against its assessment workbook",
	Long: `Runs one full extract-then-compare pass and writes the comparison
report as JSON.

Inputs are local paths or http(s):// / ftp:// URLs; remote inputs are
fetched to a temp directory first.

Examples:
  reportrecon compare --doc report.docx --xlsx workbook.xlsx
  reportrecon compare --doc https://host/report.docx --xlsx workbook.xlsx --output out.json
  reportrecon compare --doc report.docx --xlsx workbook.xlsx --record`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		docPath, err := resolveInput(ctx, compareDoc)
		if err != nil {
			return eris.Wrap(err, "compare: resolve document")
		}
		xlsxPath, err := resolveInput(ctx, compareXlsx)
		if err != nil {
			return eris.Wrap(err, "compare: resolve workbook")
		}

		tolerance := compareTolerance
		if tolerance == 0 {
			tolerance = cfg.Compare.Tolerance
		}

		report, runErr := recon.ReconcileFiles(docPath, xlsxPath, recon.Options{
			Tolerance:  tolerance,
			MaxColumns: cfg.Scan.MaxColumns,
		})

		if compareRecord {
			if err := recordRun(ctx, report, runErr); err != nil {
				zap.L().Error("compare: record run", zap.Error(err))
			}
		}
		if runErr != nil {
			return runErr
		}

		return writeReport(report)
	},
}

// resolveInput fetches remote inputs into a temp dir and returns a local
// path either way.
func resolveInput(ctx context.Context, input string) (string, error) {
	if !fetcher.IsRemote(input) {
		return input, nil
	}

	dir, err := os.MkdirTemp("", "reportrecon-fetch-")
	if err != nil {
		return "", eris.Wrap(err, "create temp dir")
	}
	// The temp dir outlives this call: the comparison still has to read
	// the file. It lives until process exit.
	local, err := fetcher.FetchToDir(ctx, cfg.Fetch, input, dir)
	if err != nil {
		return "", err
	}
	zap.L().Info("fetched remote input", zap.String("url", input), zap.String("path", local))
	return local, nil
}

func recordRun(ctx context.Context, report *recon.Report, runErr error) error {
	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	run, err := st.CreateRun(ctx, compareDoc, compareXlsx)
	if err != nil {
		return err
	}
	if runErr != nil {
		return st.FailRun(ctx, run.ID, runErr)
	}
	if err := st.CompleteRun(ctx, run.ID, report); err != nil {
		return err
	}
	zap.L().Info("recorded run", zap.String("id", run.ID))
	return nil
}

func writeReport(report *recon.Report) error {
	out := os.Stdout
	if compareOutput != "" {
		f, err := os.Create(compareOutput)
		if err != nil {
			return eris.Wrap(err, "compare: create output file")
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(report), "compare: write report")
}

func init() {
	compareCmd.Flags().StringVar(&compareDoc, "doc", "", "report document path or URL (.docx)")
	compareCmd.Flags().StringVar(&compareXlsx, "xlsx", "", "assessment workbook path or URL (.xlsx)")
	compareCmd.Flags().StringVar(&compareOutput, "output", "", "write the JSON report here instead of stdout")
	compareCmd.Flags().Float64Var(&compareTolerance, "tolerance", 0, "relative numeric tolerance (default from config)")
	compareCmd.Flags().BoolVar(&compareRecord, "record", false, "record this comparison in the run history store")
	compareCmd.MarkFlagRequired("doc")  //nolint:errcheck
	compareCmd.MarkFlagRequired("xlsx") //nolint:errcheck
	rootCmd.AddCommand(compareCmd)
}
