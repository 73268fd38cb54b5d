// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean applies per-institution cleaning rules to raw course
// records: whitespace and artifact removal, scratch-field stripping,
// provenance stamping from the institution registry, description-embedded
// metadata extraction, and metadata canonicalization. Raw files in
// data/raw become cleaned files of the same name in data/clean.
package clean

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/internal/metadata"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// CleanCourse applies the universal and per-format rules to one record.
// The second return value is false when the record is incomplete (missing
// prefix, number, or title) and should be dropped.
func CleanCourse(c types.Course, inst types.Institution) (types.Course, bool) {
	c.CoursePrefix = strings.TrimSpace(c.CoursePrefix)
	c.CourseNumber = strings.TrimSpace(c.CourseNumber)
	c.CourseTitle = strings.TrimSpace(c.CourseTitle)
	c.DeptName = strings.TrimSpace(c.DeptName)
	trimOptional(&c.CourseDesc)
	trimOptional(&c.NumUnits)
	trimOptional(&c.Metadata)

	switch inst.Format {
	case types.FormatManoa:
		cleanManoa(&c)
	case types.FormatBlocks:
		extractEmbeddedMetadata(&c)
	}

	if c.CoursePrefix == "" || c.CourseNumber == "" || c.CourseTitle == "" {
		return c, false
	}

	// Registry is the single source of provenance; whatever the scraper
	// stamped is overwritten.
	c.InstIPEDS = inst.IPEDS
	c.SourceFile = inst.SourceFile()

	// Scratch fields never leave the raw stage.
	c.SourceURL = nil
	c.ExtractionTimestamp = nil

	if c.DeptName == "" {
		c.DeptName = c.CoursePrefix
	}

	canonicalizeMetadata(&c)

	return c, true
}

// canonicalizeMetadata reparses the raw metadata string, normalizes
// shorthand labels, and rebuilds the canonical sorted form. An empty
// result leaves the field absent.
func canonicalizeMetadata(c *types.Course) {
	if c.Metadata == nil {
		return
	}
	fields := NormalizeLabels(metadata.Parse(*c.Metadata))
	if canonical := metadata.Canonical(fields); canonical != "" {
		c.Metadata = types.Str(canonical)
	} else {
		c.Metadata = nil
	}
}

// trimOptional trims an optional field, collapsing it to absent when the
// trimmed value is empty. Empty strings never stand in for missing data.
func trimOptional(p **string) {
	if *p == nil {
		return
	}
	v := strings.TrimSpace(**p)
	if v == "" {
		*p = nil
		return
	}
	*p = types.Str(v)
}

// BatchResult holds the outcome of a batch clean run.
type BatchResult struct {
	Cleaned int
	Skipped int
	Failed  int
}

// Total returns the total number of institutions processed.
func (r BatchResult) Total() int {
	return r.Cleaned + r.Skipped + r.Failed
}

// HasFailures reports whether any institution failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// CleanInstitution cleans every raw record file for one institution into
// the clean stage directory, preserving file names (variant files such as
// hilo_courses_grad.json stay separate until the combine stage).
func CleanInstitution(inst types.Institution, cfg types.CleanConfig, w io.Writer) (skipped bool, err error) {
	files, err := dataset.InstitutionFiles(cfg.DataDir, dataset.RawDir, inst)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "skipped: %s (no raw file)\n", inst.Key)
		return true, nil
	}

	total, kept := 0, 0
	for _, inPath := range files {
		courses, err := dataset.ReadCourses(inPath)
		if err != nil {
			return false, err
		}

		cleaned := make([]types.Course, 0, len(courses))
		for _, c := range courses {
			cc, ok := CleanCourse(c, inst)
			if !ok && cfg.DropIncomplete {
				continue
			}
			cleaned = append(cleaned, cc)
		}

		outPath := filepath.Join(cfg.DataDir, dataset.CleanDir, filepath.Base(inPath))
		if err := dataset.WriteCourses(outPath, cleaned); err != nil {
			return false, err
		}
		total += len(courses)
		kept += len(cleaned)
	}

	fmt.Fprintf(w, "cleaned: %s (%d of %d records kept)\n", inst.Key, kept, total)
	return false, nil
}

// CleanBatch cleans the given institutions in parallel. One institution's
// failure never aborts the batch.
func CleanBatch(insts []types.Institution, cfg types.CleanConfig, w io.Writer) BatchResult {
	sw := &syncWriter{w: w}
	var mu sync.Mutex
	var result BatchResult

	var g errgroup.Group
	g.SetLimit(4)
	for _, inst := range insts {
		inst := inst
		g.Go(func() error {
			skipped, err := CleanInstitution(inst, cfg, sw)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				fmt.Fprintf(sw, "failed: %s (%v)\n", inst.Key, err)
				result.Failed++
			case skipped:
				result.Skipped++
			default:
				result.Cleaned++
			}
			return nil
		})
	}
	g.Wait()

	fmt.Fprintf(w, "\nBatch summary: %d cleaned, %d skipped, %d failed (total: %d)\n",
		result.Cleaned, result.Skipped, result.Failed, result.Total())
	return result
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
