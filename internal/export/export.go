// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the combined catalog dataset as CSV and JSON:
// one cross-institution CSV, one CSV per institution, and the flat
// combined JSON array. Column order is fixed; absent optional fields are
// empty cells.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// Columns is the canonical CSV column order, matching the field contract.
var Columns = []string{
	"course_prefix",
	"course_number",
	"course_title",
	"course_desc",
	"num_units",
	"dept_name",
	"inst_ipeds",
	"metadata",
	"source_file",
}

func row(c types.Course) []string {
	return []string{
		c.CoursePrefix,
		c.CourseNumber,
		c.CourseTitle,
		types.StrVal(c.CourseDesc),
		types.StrVal(c.NumUnits),
		c.DeptName,
		strconv.Itoa(c.InstIPEDS),
		types.StrVal(c.Metadata),
		c.SourceFile,
	}
}

// sortForExport orders records by (source_file, prefix, number).
func sortForExport(courses []types.Course) {
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].SourceFile != courses[j].SourceFile {
			return courses[i].SourceFile < courses[j].SourceFile
		}
		if courses[i].CoursePrefix != courses[j].CoursePrefix {
			return courses[i].CoursePrefix < courses[j].CoursePrefix
		}
		return courses[i].CourseNumber < courses[j].CourseNumber
	})
}

// WriteCSV writes courses in canonical column order to w.
func WriteCSV(w io.Writer, courses []types.Course) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range courses {
		if err := cw.Write(row(c)); err != nil {
			return fmt.Errorf("writing record %s: %w", c.Key(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCombined loads every combined record file under the data root into
// one slice, sorted for export.
func ReadCombined(dataDir string) ([]types.Course, error) {
	files, err := dataset.StageFiles(dataDir, dataset.CombinedDir)
	if err != nil {
		return nil, err
	}

	var all []types.Course
	for _, path := range files {
		courses, err := dataset.ReadCourses(path)
		if err != nil {
			return nil, err
		}
		all = append(all, courses...)
	}
	sortForExport(all)
	return all, nil
}

// WriteCombinedCSV writes all combined records to
// data/csv/combined_courses.csv and returns the record count.
func WriteCombinedCSV(dataDir string, w io.Writer) (int, error) {
	courses, err := ReadCombined(dataDir)
	if err != nil {
		return 0, err
	}

	path := filepath.Join(dataDir, dataset.CSVDir, "combined_courses.csv")
	if err := writeCSVFile(path, courses); err != nil {
		return 0, err
	}
	fmt.Fprintf(w, "exported: %s (%d records)\n", path, len(courses))
	return len(courses), nil
}

// WriteIndividualCSVs writes one CSV per institution under
// data/csv/individual/.
func WriteIndividualCSVs(dataDir string, w io.Writer) error {
	courses, err := ReadCombined(dataDir)
	if err != nil {
		return err
	}

	byFile := make(map[string][]types.Course)
	for _, c := range courses {
		byFile[c.SourceFile] = append(byFile[c.SourceFile], c)
	}

	names := make([]string, 0, len(byFile))
	for name := range byFile {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		base := name[:len(name)-len(filepath.Ext(name))]
		path := filepath.Join(dataDir, dataset.CSVDir, "individual", base+".csv")
		if err := writeCSVFile(path, byFile[name]); err != nil {
			return err
		}
		fmt.Fprintf(w, "exported: %s (%d records)\n", path, len(byFile[name]))
	}
	return nil
}

// WriteCombinedJSON writes the full cross-institution array (flat Course
// shape) to data/csv/combined_courses.json.
func WriteCombinedJSON(dataDir string, w io.Writer) error {
	courses, err := ReadCombined(dataDir)
	if err != nil {
		return err
	}

	path := filepath.Join(dataDir, dataset.CSVDir, "combined_courses.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "exported: %s (%d records)\n", path, len(courses))
	return nil
}

func writeCSVFile(path string, courses []types.Course) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, courses); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
