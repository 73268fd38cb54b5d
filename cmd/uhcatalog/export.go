// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mkealoha/uhcatalog/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write CSV and JSON exports of the combined dataset",
	Long: `Export reads the combined record files and writes the cross-institution
CSV (data/csv/combined_courses.csv), per-institution CSVs under
data/csv/individual/, and the combined JSON array
(data/csv/combined_courses.json). Columns follow the dataset field
contract; absent optional fields export as empty cells.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Bool("skip-individual", false, "skip the per-institution CSV files")
	exportCmd.Flags().Bool("skip-json", false, "skip the combined JSON export")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)

	if _, err := export.WriteCombinedCSV(dir, os.Stdout); err != nil {
		return err
	}

	if skip, _ := cmd.Flags().GetBool("skip-individual"); !skip {
		if err := export.WriteIndividualCSVs(dir, os.Stdout); err != nil {
			return err
		}
	}

	if skip, _ := cmd.Flags().GetBool("skip-json"); !skip {
		if err := export.WriteCombinedJSON(dir, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
