// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkealoha/uhcatalog/internal/export"
	"github.com/mkealoha/uhcatalog/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report statistics over the combined dataset",
	Long: `Stats loads the combined record files into an in-memory SQLite database
and reports record counts, column completeness, per-institution and
per-prefix breakdowns, units distribution, and metadata label frequencies.
With --check it also validates dataset invariants (required fields, known
IPEDS IDs, the IPEDS-to-source-file mapping, duplicate courses) and exits
non-zero on violations.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Int("top", 0, "length of the top-prefix and top-department tables (default 15)")
	statsCmd.Flags().Bool("check", false, "validate dataset invariants")
	statsCmd.Flags().String("report", "", "also write the report as YAML to this path")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	courses, err := export.ReadCombined(dataDir(cmd))
	if err != nil {
		return err
	}

	store, err := stats.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Load(courses); err != nil {
		return err
	}

	topN, _ := cmd.Flags().GetInt("top")
	report, err := store.BuildReport(topN)
	if err != nil {
		return err
	}
	if err := report.WriteTable(os.Stdout); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := report.WriteYAML(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "report: %s\n", path)
	}

	if check, _ := cmd.Flags().GetBool("check"); check {
		findings, err := store.Check()
		if err != nil {
			return err
		}
		for _, f := range findings {
			fmt.Fprintf(os.Stdout, "violation: %s\n", f)
		}
		if len(findings) > 0 {
			return fmt.Errorf("%d invariant violation(s)", len(findings))
		}
		fmt.Fprintln(os.Stdout, "all invariants hold")
	}
	return nil
}
