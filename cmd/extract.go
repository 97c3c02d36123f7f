package main

import (
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one side of a comparison for offline inspection",
	Long:  "Commands for extracting and dumping the structured data of a report document or an assessment workbook without running a comparison.",
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
