package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itac-tools/reportrecon/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "reportrecon",
	Short: "Reconcile an assessment report document against its workbook",
	Long:  "Extracts comparable fields from a narrative assessment report (.docx) and its supporting workbook (.xlsx), normalizes them to canonical keys, and reports field-level agreement under a relative tolerance.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
