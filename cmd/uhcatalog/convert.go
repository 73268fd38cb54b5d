// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkealoha/uhcatalog/internal/convert"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

const defaultConvertTimeout = 5 * time.Minute

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Extract raw course records from PDF catalogs",
	Long: `Convert downloads each PDF-catalog institution's catalog (if not already
under data/pdf/), runs pdftotext in a container to get layout-preserving
text, and parses the text into raw course records under data/raw/. HTML
campuses are handled by the scrape stage and excluded here.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("runtime", "", "container runtime: docker or podman (default auto-detect)")
	convertCmd.Flags().String("image", "", "container image providing pdftotext")
	convertCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	convertCmd.Flags().Duration("convert-timeout", 0, "per-PDF conversion timeout (default 5m)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	insts, err := selectedInstitutions(cmd)
	if err != nil {
		return err
	}

	// Explicitly requesting an HTML campus is an error; an unfiltered run
	// just leaves them for the scrape stage.
	if !cmd.Flags().Changed("source") {
		pdfOnly := insts[:0]
		for _, inst := range insts {
			if inst.Format == types.FormatPDF {
				pdfOnly = append(pdfOnly, inst)
			}
		}
		insts = pdfOnly
	}

	runtimeName, _ := cmd.Flags().GetString("runtime")
	image, _ := cmd.Flags().GetString("image")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	convertTimeout, _ := cmd.Flags().GetDuration("convert-timeout")
	if convertTimeout == 0 {
		convertTimeout = defaultConvertTimeout
	}

	cfg := types.ConvertConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Runtime:        runtimeName,
		Image:          image,
		ConvertTimeout: convertTimeout,
		DataDir:        dataDir(cmd),
	}

	converter, err := convert.NewPDFToTextConverter(cfg.Runtime, cfg.Image)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}

	result := convert.ConvertBatch(cmd.Context(), converter, client, insts, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d institution(s) failed conversion", result.Failed)
	}
	return nil
}
