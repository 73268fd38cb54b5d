// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/internal/httputil"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of institutions processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any institution failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// pdfPath returns where an institution's catalog PDF lives under the data
// root.
func pdfPath(dataDir string, inst types.Institution) string {
	return filepath.Join(dataDir, dataset.PDFDir, inst.Key+"_catalog.pdf")
}

// ConvertCatalog produces one institution's raw record file from its PDF
// catalog. The PDF is downloaded from the catalog URL if not already on
// disk; conversion is skipped when the raw record file already exists.
func ConvertCatalog(ctx context.Context, c Converter, client *http.Client, inst types.Institution, cfg types.ConvertConfig, w io.Writer) (skipped bool, err error) {
	if inst.Format != types.FormatPDF {
		return false, fmt.Errorf("%s publishes an HTML catalog; use the scrape stage", inst.Key)
	}

	outPath := dataset.Path(cfg.DataDir, dataset.RawDir, inst)
	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", inst.Key)
		return true, nil
	}

	pdf := pdfPath(cfg.DataDir, inst)
	if _, err := os.Stat(pdf); os.IsNotExist(err) {
		fmt.Fprintf(w, "downloading: %s\n", inst.Key)
		if err := downloadPDF(ctx, client, inst.CatalogURL, pdf, cfg.HTTPConfig); err != nil {
			return false, fmt.Errorf("downloading catalog for %s: %w", inst.Key, err)
		}
	}

	convertCtx := ctx
	if cfg.ConvertTimeout > 0 {
		var cancel context.CancelFunc
		convertCtx, cancel = context.WithTimeout(ctx, cfg.ConvertTimeout)
		defer cancel()
	}

	fmt.Fprintf(w, "converting: %s\n", inst.Key)
	text, err := c.Convert(convertCtx, pdf)
	if err != nil {
		return false, fmt.Errorf("converting %s: %w", inst.Key, err)
	}

	courses := ParseCatalogText(text, inst)
	if len(courses) == 0 {
		return false, fmt.Errorf("converting %s: no course records extracted", inst.Key)
	}

	stamp := time.Now().UTC().Format("2006-01-02 15:04:05")
	for i := range courses {
		courses[i].ExtractionTimestamp = types.Str(stamp)
	}

	if err := dataset.WriteCourses(outPath, courses); err != nil {
		return false, err
	}

	fmt.Fprintf(w, "converted: %s (%d records)\n", inst.Key, len(courses))
	return false, nil
}

// ConvertBatch processes the PDF-catalog institutions sequentially,
// printing per-institution status and returning a summary. One failure
// never aborts the batch.
func ConvertBatch(ctx context.Context, c Converter, client *http.Client, insts []types.Institution, cfg types.ConvertConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, inst := range insts {
		skipped, err := ConvertCatalog(ctx, c, client, inst, cfg, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed: %s (%v)\n", inst.Key, err)
			result.Failed++
		case skipped:
			result.Skipped++
		default:
			result.Converted++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// downloadPDF fetches url to destPath via a temp file renamed on success.
func downloadPDF(ctx context.Context, client *http.Client, url, destPath string, cfg types.HTTPConfig) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(destPath), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".convert-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
