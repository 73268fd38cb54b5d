// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkealoha/uhcatalog/internal/dataset"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

const mauiCatalogText = `HAWAIIAN STUDIES

HWST 100 Piko Hawaii: Hawaiian Cultural Foundations (3 credits)
An exploration of Hawaiian cultural foundations through language,
history, and practice. Prerequisite(s): Placement at ENG 100.

HWST 270 Hawaiian Mythology (3 credits)
Survey of Hawaiian oral traditions and mythology.

ACCOUNTING

ACC 124 Principles of Accounting I (V)
Introduction to accounting theory and practice.
`

func TestParseCatalogText(t *testing.T) {
	inst, _ := types.InstitutionByKey("maui")

	courses := ParseCatalogText(mauiCatalogText, inst)
	if len(courses) != 3 {
		t.Fatalf("got %d courses, want 3: %+v", len(courses), courses)
	}

	c := courses[0]
	if c.Key() != "HWST 100" {
		t.Errorf("key = %q", c.Key())
	}
	if c.CourseTitle != "Piko Hawaii: Hawaiian Cultural Foundations" {
		t.Errorf("title = %q", c.CourseTitle)
	}
	if types.StrVal(c.NumUnits) != "3" {
		t.Errorf("units = %q", types.StrVal(c.NumUnits))
	}
	if c.DeptName != "Hawaiian Studies" {
		t.Errorf("dept = %q", c.DeptName)
	}
	if c.InstIPEDS != inst.IPEDS || c.SourceFile != "maui_courses.json" {
		t.Errorf("provenance = %d %q", c.InstIPEDS, c.SourceFile)
	}

	// The prerequisite sentence moves from the description to metadata.
	desc := types.StrVal(c.CourseDesc)
	if strings.Contains(desc, "Prerequisite") {
		t.Errorf("prerequisite left in description: %q", desc)
	}
	if got := types.StrVal(c.Metadata); !strings.Contains(got, "Prerequisites: Placement at ENG 100.") {
		t.Errorf("metadata = %q", got)
	}

	if courses[1].Key() != "HWST 270" || types.StrVal(courses[1].Metadata) != "" {
		t.Errorf("second course = %+v", courses[1])
	}
	if courses[2].DeptName != "Accounting" || types.StrVal(courses[2].NumUnits) != "V" {
		t.Errorf("third course = %+v", courses[2])
	}
}

func TestParseCatalogTextEmpty(t *testing.T) {
	inst, _ := types.InstitutionByKey("maui")
	if courses := ParseCatalogText("no course blocks here", inst); len(courses) != 0 {
		t.Errorf("got %d courses, want 0", len(courses))
	}
}

// fakeConverter returns canned text, or an error.
type fakeConverter struct {
	text string
	err  error
}

func (f *fakeConverter) Convert(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func writePDFFixture(t *testing.T, dataDir string, inst types.Institution) {
	t.Helper()
	path := pdfPath(dataDir, inst)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("%PDF-1.4 fixture"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConvertCatalog(t *testing.T) {
	dataDir := t.TempDir()
	inst, _ := types.InstitutionByKey("maui")
	writePDFFixture(t, dataDir, inst)

	cfg := types.ConvertConfig{DataDir: dataDir}
	conv := &fakeConverter{text: mauiCatalogText}

	var out bytes.Buffer
	skipped, err := ConvertCatalog(context.Background(), conv, http.DefaultClient, inst, cfg, &out)
	if err != nil {
		t.Fatal(err)
	}
	if skipped {
		t.Fatal("first run should not be skipped")
	}

	courses, err := dataset.ReadCourses(dataset.Path(dataDir, dataset.RawDir, inst))
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 3 {
		t.Fatalf("got %d records, want 3", len(courses))
	}
	if courses[0].ExtractionTimestamp == nil {
		t.Error("extraction timestamp not stamped")
	}

	// Second run skips.
	skipped, err = ConvertCatalog(context.Background(), conv, http.DefaultClient, inst, cfg, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !skipped {
		t.Error("second run should be skipped")
	}
}

func TestConvertCatalogDownloadsMissingPDF(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("%PDF-1.4 served"))
	}))
	defer ts.Close()

	dataDir := t.TempDir()
	inst, _ := types.InstitutionByKey("westoahu")
	inst.CatalogURL = ts.URL + "/catalog.pdf"

	cfg := types.ConvertConfig{DataDir: dataDir}
	conv := &fakeConverter{text: mauiCatalogText}

	var out bytes.Buffer
	if _, err := ConvertCatalog(context.Background(), conv, ts.Client(), inst, cfg, &out); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(pdfPath(dataDir, inst))
	if err != nil {
		t.Fatalf("PDF not downloaded: %v", err)
	}
	if string(data) != "%PDF-1.4 served" {
		t.Errorf("PDF content = %q", data)
	}
}

func TestConvertBatchContinuesAfterFailure(t *testing.T) {
	dataDir := t.TempDir()
	maui, _ := types.InstitutionByKey("maui")
	honolulu, _ := types.InstitutionByKey("honolulu")
	writePDFFixture(t, dataDir, maui)
	writePDFFixture(t, dataDir, honolulu)

	cfg := types.ConvertConfig{DataDir: dataDir}

	// First institution converts, second fails.
	conv := &stubConverter{results: map[string]error{
		pdfPath(dataDir, honolulu): errors.New("container exited"),
	}}

	var out bytes.Buffer
	result := ConvertBatch(context.Background(), conv, http.DefaultClient,
		[]types.Institution{maui, honolulu}, cfg, &out)

	if result.Converted != 1 || result.Failed != 1 {
		t.Errorf("result = %+v", result)
	}
	if !strings.Contains(out.String(), "failed: honolulu") {
		t.Errorf("progress output missing failure line:\n%s", out.String())
	}
}

// stubConverter fails for configured paths and returns fixture text
// otherwise.
type stubConverter struct {
	results map[string]error
}

func (s *stubConverter) Convert(_ context.Context, pdfPath string) (string, error) {
	if err := s.results[pdfPath]; err != nil {
		return "", err
	}
	return mauiCatalogText, nil
}

func TestConvertCatalogRejectsHTMLCampus(t *testing.T) {
	inst, _ := types.InstitutionByKey("manoa")
	var out bytes.Buffer
	_, err := ConvertCatalog(context.Background(), &fakeConverter{}, http.DefaultClient,
		inst, types.ConvertConfig{DataDir: t.TempDir()}, &out)
	if err == nil {
		t.Error("HTML campus should be rejected by the convert stage")
	}
}

// fakeRuntime implements container.Runtime so converter tests can observe
// the context handed to the container run.
type fakeRuntime struct{}

func (f *fakeRuntime) Name() string             { return "docker" }
func (f *fakeRuntime) Available() bool          { return true }
func (f *fakeRuntime) ImageExists(string) error { return nil }

func (f *fakeRuntime) Run(ctx context.Context, _ string, _ []string, _ io.Reader, _ io.Writer) error {
	return ctx.Err()
}

func TestPDFToTextConverterHonorsContext(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "catalog.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &PDFToTextConverter{Runtime: &fakeRuntime{}, Image: "pdftotext:latest"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// An expired conversion deadline must cut the container run short
	// instead of waiting out a hung process.
	if _, err := c.Convert(ctx, pdf); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert should surface the cancelled context, got: %v", err)
	}
}
