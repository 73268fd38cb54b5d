// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkealoha/uhcatalog/internal/combine"
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge clean record files per institution",
	Long: `Combine merges an institution's clean record files (including variant
files such as graduate catalogs), removes duplicate courses keeping the
record with more populated fields, sorts by prefix and number, and writes
data/combined/<institution>_courses.json.`,
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	insts, err := selectedInstitutions(cmd)
	if err != nil {
		return err
	}

	result := combine.CombineBatch(insts, dataDir(cmd), os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d institution(s) failed combining", result.Failed)
	}
	return nil
}
