//go:build mage

// Package main contains Mage build targets for uhcatalog developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkealoha/uhcatalog/internal/dataset"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"data/pdf",
	"data/raw",
	"data/clean",
	"data/combined",
	"data/csv/individual",
}

// Init creates the data directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Data directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "uhcatalog"
	cmdPkg  = "./cmd/uhcatalog"
	dataDir = "data"
)

// Stats prints project metrics: Go production/test LOC and record counts
// per pipeline stage.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	for _, stage := range []string{dataset.RawDir, dataset.CleanDir, dataset.CombinedDir} {
		files, records, err := countStageRecords(stage)
		if err != nil {
			return err
		}
		fmt.Printf("Records (%s): %d in %d files\n", stage, records, files)
	}
	return nil
}

// countStageRecords totals records across one stage directory's files.
func countStageRecords(stage string) (files, records int, err error) {
	paths, err := dataset.StageFiles(dataDir, stage)
	if err != nil {
		return 0, 0, err
	}
	for _, path := range paths {
		courses, err := dataset.ReadCourses(path)
		if err != nil {
			return 0, 0, fmt.Errorf("reading %s: %w", path, err)
		}
		files++
		records += len(courses)
	}
	return files, records, nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		isTest := filepath.Ext(path) == ".go" && len(path) > 8 && path[len(path)-8:] == "_test.go"
		isGo := filepath.Ext(path) == ".go"
		if !isGo {
			return nil
		}
		if testOnly && !isTest {
			return nil
		}
		if !testOnly && isTest {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range splitLines(data) {
			if len(line) > 0 {
				total++
			}
		}
		return nil
	})
	return total, err
}

// splitLines splits data by newline, returning each line as a trimmed string.
func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			line := trimSpace(data[start:i])
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(data) {
		line := trimSpace(data[start:])
		lines = append(lines, line)
	}
	return lines
}

// trimSpace returns a string with leading and trailing whitespace removed.
func trimSpace(b []byte) string {
	start, end := 0, len(b)
	for start < end && (b[start] == ' ' || b[start] == '\t' || b[start] == '\r') {
		start++
	}
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t' || b[end-1] == '\r') {
		end--
	}
	return string(b[start:end])
}
