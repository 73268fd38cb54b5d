// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads and writes the per-institution course record files
// the pipeline stages exchange. Every stage directory holds JSON arrays
// named <institution>_courses.json (plus variant suffixes such as
// <institution>_courses_grad.json); the stage directories live under one
// data root.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

// Stage directory names under the data root.
const (
	PDFDir      = "pdf"
	RawDir      = "raw"
	CleanDir    = "clean"
	CombinedDir = "combined"
	CSVDir      = "csv"
)

// Path returns the record file for one institution in one stage directory.
func Path(dataDir, stage string, inst types.Institution) string {
	return filepath.Join(dataDir, stage, inst.SourceFile())
}

// ReadCourses loads a JSON array of course records from path.
func ReadCourses(path string) ([]types.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var courses []types.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return courses, nil
}

// WriteCourses writes courses as an indented JSON array, creating the
// parent directory if needed. The write goes through a temp file renamed
// into place so a failed run never leaves a truncated record file.
func WriteCourses(path string, courses []types.Course) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling courses: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dataset-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// InstitutionFiles returns the record files for one institution in a stage
// directory, sorted. This picks up variant files alongside the primary one
// (hilo ships undergraduate and graduate sets as hilo_courses.json and
// hilo_courses_grad.json).
func InstitutionFiles(dataDir, stage string, inst types.Institution) ([]string, error) {
	pattern := filepath.Join(dataDir, stage, inst.Key+"_courses*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// StageFiles returns all record files in a stage directory, sorted. A
// missing stage directory is not an error; it returns an empty list.
func StageFiles(dataDir, stage string) ([]string, error) {
	dir := filepath.Join(dataDir, stage)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
