// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkealoha/uhcatalog/internal/scrape"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultPageDelay = 500 * time.Millisecond
	defaultUserAgent = "uhcatalog/0.1"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch HTML catalogs and extract raw course records",
	Long: `Scrape crawls each selected institution's catalog site and writes raw
course records to data/raw/<institution>_courses.json plus a per-run YAML
summary. Institutions whose raw file already exists are skipped. Campuses
that publish a PDF catalog are handled by the convert stage and excluded
here.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	scrapeCmd.Flags().Duration("delay", 0, "delay between page fetches within one campus (default 500ms)")
	scrapeCmd.Flags().Int("max-parallel", 0, "campuses scraped concurrently (default 4)")
	scrapeCmd.Flags().Int("max-pages", 0, "cap index pagination per campus (default unlimited)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	insts, err := selectedInstitutions(cmd)
	if err != nil {
		return err
	}

	// Explicitly requesting a PDF campus is an error; an unfiltered run
	// just leaves them for the convert stage.
	if !cmd.Flags().Changed("source") {
		htmlOnly := insts[:0]
		for _, inst := range insts {
			if inst.Format != types.FormatPDF {
				htmlOnly = append(htmlOnly, inst)
			}
		}
		insts = htmlOnly
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultPageDelay
	}
	maxParallel, _ := cmd.Flags().GetInt("max-parallel")
	maxPages, _ := cmd.Flags().GetInt("max-pages")

	cfg := types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		PageDelay:   delay,
		MaxParallel: maxParallel,
		MaxPages:    maxPages,
		DataDir:     dataDir(cmd),
	}

	client := &http.Client{Timeout: cfg.Timeout}

	result := scrape.ScrapeBatch(cmd.Context(), client, insts, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d institution(s) failed scraping", result.Failed)
	}
	return nil
}
