// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

func testCourses() []types.Course {
	return []types.Course{
		{
			CoursePrefix: "ENG", CourseNumber: "100",
			CourseTitle: "Composition I",
			CourseDesc:  types.Str("Written communication."),
			NumUnits:    types.Str("3"),
			DeptName:    "English", InstIPEDS: 141565,
			Metadata:   types.Str("Prerequisites: placement; Semester Offered: Fall"),
			SourceFile: "hilo_courses.json",
		},
		{
			CoursePrefix: "ENG", CourseNumber: "200",
			CourseTitle: "Composition II",
			NumUnits:    types.Str("3"),
			DeptName:    "English", InstIPEDS: 141565,
			Metadata:   types.Str("Prerequisites: ENG 100"),
			SourceFile: "hilo_courses.json",
		},
		{
			CoursePrefix: "CINE", CourseNumber: "350",
			CourseTitle: "Documentary Film",
			CourseDesc:  types.Str("History of documentary."),
			NumUnits:    types.Str("V"),
			DeptName:    "Cinematic Arts", InstIPEDS: 141574,
			SourceFile:  "manoa_courses.json",
		},
	}
}

func loadedStore(t *testing.T, courses []types.Course) *Store {
	t.Helper()
	s, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Load(courses))
	return s
}

// --- report ---

func TestBuildReport(t *testing.T) {
	s := loadedStore(t, testCourses())

	r, err := s.BuildReport(0)
	require.NoError(t, err)

	assert.Equal(t, 3, r.TotalRecords)

	nulls := map[string]int{}
	for _, c := range r.Columns {
		nulls[c.Name] = c.Nulls
	}
	assert.Equal(t, 1, nulls["course_desc"])
	assert.Equal(t, 0, nulls["num_units"])
	assert.Equal(t, 1, nulls["metadata"])

	require.Len(t, r.BySourceFile, 2)
	assert.Equal(t, "hilo_courses.json", r.BySourceFile[0].Value)
	assert.Equal(t, 2, r.BySourceFile[0].Count)
	assert.InDelta(t, 66.7, r.BySourceFile[0].Percent, 0.1)

	require.NotEmpty(t, r.TopPrefixes)
	assert.Equal(t, "ENG", r.TopPrefixes[0].Value)
	assert.Equal(t, 2, r.TopPrefixes[0].Count)

	labels := map[string]int{}
	for _, cs := range r.MetadataLabels {
		labels[cs.Value] = cs.Count
	}
	assert.Equal(t, 2, labels["Prerequisites"])
	assert.Equal(t, 1, labels["Semester Offered"])
}

func TestBuildReportTopN(t *testing.T) {
	s := loadedStore(t, testCourses())

	r, err := s.BuildReport(1)
	require.NoError(t, err)

	assert.Len(t, r.TopPrefixes, 1)
	assert.Len(t, r.TopDepartments, 1)
}

func TestBuildReportEmpty(t *testing.T) {
	s := loadedStore(t, nil)

	r, err := s.BuildReport(0)
	require.NoError(t, err)

	assert.Equal(t, 0, r.TotalRecords)
	for _, c := range r.Columns {
		assert.Zero(t, c.NullPercent)
	}
}

func TestWriteTable(t *testing.T) {
	s := loadedStore(t, testCourses())
	r, err := s.BuildReport(0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteTable(&buf))

	out := buf.String()
	assert.Contains(t, out, "total records")
	assert.Contains(t, out, "hilo_courses.json")
	assert.Contains(t, out, "metadata labels")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	s := loadedStore(t, testCourses())
	r, err := s.BuildReport(0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reports", "stats.yaml")
	require.NoError(t, r.WriteYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, r.TotalRecords, got.TotalRecords)
	assert.Equal(t, len(r.BySourceFile), len(got.BySourceFile))
}

// --- checks ---

func TestCheckCleanDataset(t *testing.T) {
	s := loadedStore(t, testCourses())

	findings, err := s.Check()
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestCheckFindsViolations(t *testing.T) {
	courses := testCourses()
	courses = append(courses,
		// empty title
		types.Course{
			CoursePrefix: "MATH", CourseNumber: "100",
			DeptName: "Mathematics", InstIPEDS: 141565,
			SourceFile: "hilo_courses.json",
		},
		// unknown IPEDS
		types.Course{
			CoursePrefix: "BIO", CourseNumber: "101",
			CourseTitle: "Biology", DeptName: "Biology",
			InstIPEDS: 999999, SourceFile: "hilo_courses.json",
		},
		// source_file does not match the campus
		types.Course{
			CoursePrefix: "ART", CourseNumber: "101",
			CourseTitle: "Drawing", DeptName: "Art",
			InstIPEDS: 141574, SourceFile: "hilo_courses.json",
		},
		// duplicate of ENG 100 at hilo
		types.Course{
			CoursePrefix: "ENG", CourseNumber: "100",
			CourseTitle: "Composition I", DeptName: "English",
			InstIPEDS: 141565, SourceFile: "hilo_courses.json",
		},
	)
	s := loadedStore(t, courses)

	findings, err := s.Check()
	require.NoError(t, err)

	byCheck := map[string]int{}
	for _, f := range findings {
		byCheck[f.Check]++
	}
	assert.Equal(t, 1, byCheck["required fields"], "empty course_title")
	assert.Equal(t, 1, byCheck["known institutions"])
	assert.Equal(t, 1, byCheck["source file mapping"])
	assert.Equal(t, 1, byCheck["duplicate courses"])
}

func TestFindingString(t *testing.T) {
	f := Finding{Check: "duplicate courses", Detail: "ENG 100 appears 2 times for IPEDS 141565"}
	assert.Equal(t, "duplicate courses: ENG 100 appears 2 times for IPEDS 141565", f.String())
}
