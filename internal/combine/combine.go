// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package combine merges one institution's cleaned record sets into a
// single deduplicated, sorted file. Most campuses have one clean file;
// Hilo contributes undergraduate and graduate sets that meet here.
package combine

import (
	"fmt"
	"io"
	"sort"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// BatchResult holds the outcome of a batch combine run.
type BatchResult struct {
	Combined int
	Skipped  int
	Failed   int
}

// Total returns the total number of institutions processed.
func (r BatchResult) Total() int {
	return r.Combined + r.Skipped + r.Failed
}

// HasFailures reports whether any institution failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Merge deduplicates records by (course_prefix, course_number) and sorts
// them. On a collision the record with more populated fields wins; ties
// keep the first seen.
func Merge(sets ...[]types.Course) []types.Course {
	byKey := make(map[string]types.Course)
	var order []string

	for _, set := range sets {
		for _, c := range set {
			key := c.Key()
			prev, ok := byKey[key]
			if !ok {
				byKey[key] = c
				order = append(order, key)
				continue
			}
			if c.FieldCount() > prev.FieldCount() {
				byKey[key] = c
			}
		}
	}

	merged := make([]types.Course, 0, len(order))
	for _, key := range order {
		merged = append(merged, byKey[key])
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CoursePrefix != merged[j].CoursePrefix {
			return merged[i].CoursePrefix < merged[j].CoursePrefix
		}
		return merged[i].CourseNumber < merged[j].CourseNumber
	})
	return merged
}

// CombineInstitution merges one institution's clean files into
// data/combined/<inst>_courses.json.
func CombineInstitution(inst types.Institution, dataDir string, w io.Writer) (skipped bool, err error) {
	files, err := dataset.InstitutionFiles(dataDir, dataset.CleanDir, inst)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "skipped: %s (no clean file)\n", inst.Key)
		return true, nil
	}

	sets := make([][]types.Course, 0, len(files))
	total := 0
	for _, path := range files {
		courses, err := dataset.ReadCourses(path)
		if err != nil {
			return false, err
		}
		sets = append(sets, courses)
		total += len(courses)
	}

	merged := Merge(sets...)
	if err := dataset.WriteCourses(dataset.Path(dataDir, dataset.CombinedDir, inst), merged); err != nil {
		return false, err
	}

	fmt.Fprintf(w, "combined: %s (%d records from %d file(s), %d duplicates removed)\n",
		inst.Key, len(merged), len(files), total-len(merged))
	return false, nil
}

// CombineBatch merges every given institution's record sets, printing
// per-institution status and returning a summary.
func CombineBatch(insts []types.Institution, dataDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, inst := range insts {
		skipped, err := CombineInstitution(inst, dataDir, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed: %s (%v)\n", inst.Key, err)
			result.Failed++
		case skipped:
			result.Skipped++
		default:
			result.Combined++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d combined, %d skipped, %d failed (total: %d)\n",
		result.Combined, result.Skipped, result.Failed, result.Total())
	return result
}
