// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape fetches HTML course catalogs and extracts raw course
// records. Each catalog family (paginated preview pages, department block
// pages, subject tables, Drupal nodes, course cards) has its own Strategy;
// campuses sharing a family share the strategy. PDF catalogs are handled
// by the convert stage instead.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/internal/httputil"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// Result is the outcome of scraping one institution's catalog.
type Result struct {
	Courses []types.Course
	Pages   int
	Errors  []string
}

// Strategy extracts course records from one catalog family.
type Strategy interface {
	// Name returns the catalog family identifier.
	Name() string

	// Fetch crawls the institution's catalog and returns raw course
	// records. Per-page failures after the first page are collected in
	// Result.Errors rather than aborting the crawl.
	Fetch(ctx context.Context, client *http.Client, inst types.Institution, cfg types.ScrapeConfig) (Result, error)
}

// StrategyFor selects the strategy matching the institution's catalog
// format. PDF campuses have no scrape strategy.
func StrategyFor(inst types.Institution) (Strategy, error) {
	switch inst.Format {
	case types.FormatManoa:
		return manoaStrategy{}, nil
	case types.FormatBlocks:
		return blocksStrategy{}, nil
	case types.FormatTable:
		return tableStrategy{}, nil
	case types.FormatDrupal:
		return drupalStrategy{}, nil
	case types.FormatCards:
		return cardsStrategy{}, nil
	case types.FormatPDF:
		return nil, fmt.Errorf("%s publishes a PDF catalog; use the convert stage", inst.Key)
	default:
		return nil, fmt.Errorf("no scrape strategy for catalog format %q", inst.Format)
	}
}

// BatchResult holds the outcome of a batch scrape run.
type BatchResult struct {
	Scraped int
	Skipped int
	Failed  int
}

// Total returns the total number of institutions processed.
func (r BatchResult) Total() int {
	return r.Scraped + r.Skipped + r.Failed
}

// HasFailures reports whether any institution failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ScrapeInstitution crawls one institution's catalog and writes the raw
// record file plus a run summary. If the record file already exists the
// crawl is skipped.
func ScrapeInstitution(ctx context.Context, client *http.Client, inst types.Institution, cfg types.ScrapeConfig, w io.Writer) (skipped bool, err error) {
	outPath := dataset.Path(cfg.DataDir, dataset.RawDir, inst)
	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", inst.Key)
		return true, nil
	}

	strategy, err := StrategyFor(inst)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(w, "scraping: %s (%s)\n", inst.Key, strategy.Name())
	started := time.Now().UTC()

	res, err := strategy.Fetch(ctx, client, inst, cfg)
	if err != nil {
		return false, fmt.Errorf("scraping %s: %w", inst.Key, err)
	}
	if len(res.Courses) == 0 {
		return false, fmt.Errorf("scraping %s: no course records extracted", inst.Key)
	}

	stamp := started.Format("2006-01-02 15:04:05")
	for i := range res.Courses {
		res.Courses[i].InstIPEDS = inst.IPEDS
		res.Courses[i].SourceFile = inst.SourceFile()
		if res.Courses[i].ExtractionTimestamp == nil {
			res.Courses[i].ExtractionTimestamp = types.Str(stamp)
		}
	}

	if err := dataset.WriteCourses(outPath, res.Courses); err != nil {
		return false, err
	}
	if err := WriteSummary(summaryPath(cfg.DataDir, inst), newSummary(inst, started, res)); err != nil {
		return false, err
	}

	fmt.Fprintf(w, "scraped: %s (%d records, %d pages)\n", inst.Key, len(res.Courses), res.Pages)
	return false, nil
}

// ScrapeBatch crawls the given institutions in parallel, bounded by
// cfg.MaxParallel. One institution's failure never aborts the batch.
func ScrapeBatch(ctx context.Context, client *http.Client, insts []types.Institution, cfg types.ScrapeConfig, w io.Writer) BatchResult {
	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 4
	}

	sw := &syncWriter{w: w}
	var mu sync.Mutex
	var result BatchResult

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, inst := range insts {
		inst := inst
		g.Go(func() error {
			skipped, err := ScrapeInstitution(gctx, client, inst, cfg, sw)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				fmt.Fprintf(sw, "failed: %s (%v)\n", inst.Key, err)
				result.Failed++
			case skipped:
				result.Skipped++
			default:
				result.Scraped++
			}
			return nil
		})
	}
	g.Wait()

	fmt.Fprintf(w, "\nBatch summary: %d scraped, %d skipped, %d failed (total: %d)\n",
		result.Scraped, result.Skipped, result.Failed, result.Total())
	return result
}

// syncWriter serializes progress lines from concurrent scrapers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// fetchDoc GETs a catalog page and parses it into a goquery document.
func fetchDoc(ctx context.Context, client *http.Client, pageURL string, cfg types.HTTPConfig) (*goquery.Document, error) {
	body, err := httputil.Fetch(ctx, client, pageURL, cfg)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return doc, nil
}

// resolveURL makes href absolute against the page it appeared on.
func resolveURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// sortedKeys returns the map's keys in lexicographic order so assembled
// metadata strings are deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pause sleeps for the politeness delay, returning early on cancellation.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
