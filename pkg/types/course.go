// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Course is one catalog entry. The JSON keys are the dataset's field
// contract and must not change: downstream consumers join on them.
//
// Optional fields are pointers so a field absent from the source catalog
// stays absent (null) in the output instead of collapsing to "".
type Course struct {
	// CoursePrefix is the subject prefix (e.g. "CINE", "ACC").
	CoursePrefix string `json:"course_prefix" yaml:"course_prefix"`

	// CourseNumber is the catalog number, possibly with a letter suffix
	// (e.g. "350", "101B").
	CourseNumber string `json:"course_number" yaml:"course_number"`

	// CourseTitle is the course title as printed in the catalog.
	CourseTitle string `json:"course_title" yaml:"course_title"`

	// CourseDesc is the catalog description. Absent in a small share of
	// records (no description printed).
	CourseDesc *string `json:"course_desc,omitempty" yaml:"course_desc,omitempty"`

	// NumUnits is the credit count as a string. Not strictly numeric:
	// "V" marks variable-credit courses.
	NumUnits *string `json:"num_units,omitempty" yaml:"num_units,omitempty"`

	// DeptName is the offering department.
	DeptName string `json:"dept_name" yaml:"dept_name"`

	// InstIPEDS is the federal IPEDS identifier of the institution.
	// Immutable grouping key; determines SourceFile.
	InstIPEDS int `json:"inst_ipeds" yaml:"inst_ipeds"`

	// Metadata is the raw semi-structured attribute text
	// ("Prerequisites: ...; Repeatable: ..."). Parsed downstream; the raw
	// string is always retained.
	Metadata *string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// SourceFile names the per-institution dataset file this record
	// belongs to (e.g. "manoa_courses.json").
	SourceFile string `json:"source_file" yaml:"source_file"`

	// SourceURL is the page the record was scraped from. Scratch field:
	// present in raw stage files only, cleared by the clean stage.
	SourceURL *string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// ExtractionTimestamp records when the scrape ran. Scratch field,
	// cleared by the clean stage.
	ExtractionTimestamp *string `json:"extraction_timestamp,omitempty" yaml:"extraction_timestamp,omitempty"`
}

// ParsedCourse is a Course plus the parsed view of its metadata string.
// Used by diagnostic output; pipeline stage files keep the flat shape.
type ParsedCourse struct {
	Course `yaml:",inline"`

	// MetadataFields maps metadata labels to values as produced by the
	// metadata extractor.
	MetadataFields map[string]string `json:"metadata_fields,omitempty" yaml:"metadata_fields,omitempty"`
}

// Key returns the course identity within one institution ("CINE 350").
func (c Course) Key() string {
	return c.CoursePrefix + " " + c.CourseNumber
}

// UID returns a short stable identifier across institutions, derived from
// prefix, number, and IPEDS ID.
func (c Course) UID() string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", c.CoursePrefix, c.CourseNumber, c.InstIPEDS)))
	return hex.EncodeToString(h[:])[:12]
}

// FieldCount reports how many fields carry data. Used when deduplicating:
// the record with more populated fields wins.
func (c Course) FieldCount() int {
	n := 0
	for _, s := range []string{c.CoursePrefix, c.CourseNumber, c.CourseTitle, c.DeptName, c.SourceFile} {
		if s != "" {
			n++
		}
	}
	for _, p := range []*string{c.CourseDesc, c.NumUnits, c.Metadata} {
		if p != nil && *p != "" {
			n++
		}
	}
	if c.InstIPEDS != 0 {
		n++
	}
	return n
}

// Str returns a pointer to s, for filling optional Course fields.
func Str(s string) *string { return &s }

// StrVal dereferences p, returning "" when p is nil.
func StrVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
