// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkealoha/uhcatalog/internal/clean"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize raw course records",
	Long: `Clean applies universal and per-institution normalization rules to the
raw record files: whitespace trimming, scraping artifact removal, embedded
metadata extraction, metadata label canonicalization, and incomplete-record
filtering. Output goes to data/clean/ with the raw files' basenames.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().Bool("keep-incomplete", false, "pass records missing prefix, number, or title through instead of dropping them")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	insts, err := selectedInstitutions(cmd)
	if err != nil {
		return err
	}

	keepIncomplete, _ := cmd.Flags().GetBool("keep-incomplete")
	cfg := types.CleanConfig{
		DropIncomplete: !keepIncomplete,
		DataDir:        dataDir(cmd),
	}

	result := clean.CleanBatch(insts, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d institution(s) failed cleaning", result.Failed)
	}
	return nil
}
