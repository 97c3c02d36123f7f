package main

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itac-tools/reportrecon/internal/artifacts"
	"github.com/itac-tools/reportrecon/internal/docx"
	"github.com/itac-tools/reportrecon/internal/extract"
)

var (
	extractDocPath   string
	extractDocFormat string
	extractDocOutDir string
)

var extractDocCmd = &cobra.Command{
	Use:   "doc",
	Short: "Extract the sections and records of a report document",
	Long: `Parses the document, slices it into its assessment sections, and
writes one artifact per section (html format) or a single structural dump
(json format).

Examples:
  reportrecon extract doc --doc report.docx --out-dir artifacts/
  reportrecon extract doc --doc report.docx --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		blocks, err := docx.ReadFile(extractDocPath)
		if err != nil {
			return eris.Wrap(err, "extract doc: read document")
		}
		doc := extract.FromBlocks(blocks)

		switch extractDocFormat {
		case "html":
			written, err := artifacts.WriteDocumentHTML(extractDocOutDir, doc)
			if err != nil {
				return err
			}
			zap.L().Info("wrote section artifacts",
				zap.String("dir", extractDocOutDir),
				zap.Int("files", len(written)),
			)
		case "json":
			path := filepath.Join(extractDocOutDir, "extracted_sections.json")
			if err := ensureDirFor(path); err != nil {
				return err
			}
			if err := artifacts.WriteDocumentJSON(path, doc); err != nil {
				return err
			}
			zap.L().Info("wrote section dump", zap.String("path", path))
		default:
			return eris.Errorf("extract doc: unknown format %q (want html or json)", extractDocFormat)
		}

		return nil
	},
}

func init() {
	extractDocCmd.Flags().StringVar(&extractDocPath, "doc", "", "report document path (.docx)")
	extractDocCmd.Flags().StringVar(&extractDocFormat, "format", "html", "artifact format: html or json")
	extractDocCmd.Flags().StringVar(&extractDocOutDir, "out-dir", "artifacts", "directory for written artifacts")
	extractDocCmd.MarkFlagRequired("doc") //nolint:errcheck
	extractCmd.AddCommand(extractDocCmd)
}
