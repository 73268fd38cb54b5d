// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
)

// CatalogFormat names the markup family a campus publishes its catalog in.
// Each format has a matching parser; campuses sharing a format share it.
type CatalogFormat string

const (
	// FormatManoa is the paginated catalog with one page per course and
	// bolded metadata labels.
	FormatManoa CatalogFormat = "manoa"

	// FormatBlocks is department pages built from
	// <p><strong>PREFIX NUMBER Title (units)</strong> description</p> blocks.
	FormatBlocks CatalogFormat = "blocks"

	// FormatTable is subject tables with one course row per line.
	FormatTable CatalogFormat = "table"

	// FormatDrupal is Drupal course nodes with field--name-field-* classed
	// attribute divs.
	FormatDrupal CatalogFormat = "drupal"

	// FormatCards is course cards titled "PREFIXNUMBER - Title" with
	// labeled attribute rows.
	FormatCards CatalogFormat = "cards"

	// FormatPDF marks campuses whose catalog is published as a PDF; records
	// come from the convert stage rather than the scraper.
	FormatPDF CatalogFormat = "pdf"
)

// Institution is one University of Hawaii system campus. The set of
// institutions is fixed: ten campuses, each with a unique IPEDS ID and a
// dataset file derived from its key.
type Institution struct {
	// Key is the short identifier used in file names and CLI flags.
	Key string `json:"key" yaml:"key"`

	// Name is the full campus name.
	Name string `json:"name" yaml:"name"`

	// IPEDS is the federal institution identifier.
	IPEDS int `json:"ipeds" yaml:"ipeds"`

	// Format selects the catalog parser.
	Format CatalogFormat `json:"format" yaml:"format"`

	// CatalogURL is the catalog index page, or the catalog PDF for
	// FormatPDF campuses. Overridable via a sources file.
	CatalogURL string `json:"catalog_url" yaml:"catalog_url"`
}

// SourceFile returns the per-institution dataset file name. This is the
// single definition of the IPEDS-to-file mapping: one institution, one file.
func (i Institution) SourceFile() string {
	return i.Key + "_courses.json"
}

var institutions = []Institution{
	{Key: "hawaiicc", Name: "Hawaii Community College", IPEDS: 141556, Format: FormatBlocks, CatalogURL: "https://hawaii.hawaii.edu/catalog/courses"},
	{Key: "hilo", Name: "University of Hawaii at Hilo", IPEDS: 141565, Format: FormatBlocks, CatalogURL: "https://hilo.hawaii.edu/catalog/courses"},
	{Key: "honolulu", Name: "Honolulu Community College", IPEDS: 141680, Format: FormatPDF, CatalogURL: "https://www.honolulu.hawaii.edu/catalog/catalog.pdf"},
	{Key: "kapiolani", Name: "Kapiolani Community College", IPEDS: 141705, Format: FormatTable, CatalogURL: "https://kapiolani.hawaii.edu/academics/course-catalog"},
	{Key: "kauai", Name: "Kauai Community College", IPEDS: 141748, Format: FormatDrupal, CatalogURL: "https://www.kauai.hawaii.edu/courses"},
	{Key: "leeward", Name: "Leeward Community College", IPEDS: 141796, Format: FormatCards, CatalogURL: "https://www.leeward.hawaii.edu/catalog/courses"},
	{Key: "manoa", Name: "University of Hawaii at Manoa", IPEDS: 141574, Format: FormatManoa, CatalogURL: "https://catalog.manoa.hawaii.edu/courses"},
	{Key: "maui", Name: "University of Hawaii Maui College", IPEDS: 141839, Format: FormatPDF, CatalogURL: "https://maui.hawaii.edu/catalog/catalog.pdf"},
	{Key: "westoahu", Name: "University of Hawaii - West Oahu", IPEDS: 141981, Format: FormatPDF, CatalogURL: "https://westoahu.hawaii.edu/catalog/catalog.pdf"},
	{Key: "windward", Name: "Windward Community College", IPEDS: 142064, Format: FormatBlocks, CatalogURL: "https://windward.hawaii.edu/catalog/courses"},
}

// Institutions returns all ten campuses, sorted by key.
func Institutions() []Institution {
	out := make([]Institution, len(institutions))
	copy(out, institutions)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// InstitutionByKey looks up a campus by its short key.
func InstitutionByKey(key string) (Institution, error) {
	for _, inst := range institutions {
		if inst.Key == key {
			return inst, nil
		}
	}
	return Institution{}, fmt.Errorf("unknown institution %q (known: %v)", key, InstitutionKeys())
}

// InstitutionByIPEDS looks up a campus by its IPEDS identifier.
func InstitutionByIPEDS(id int) (Institution, error) {
	for _, inst := range institutions {
		if inst.IPEDS == id {
			return inst, nil
		}
	}
	return Institution{}, fmt.Errorf("unknown IPEDS id %d", id)
}

// InstitutionKeys returns the sorted campus keys.
func InstitutionKeys() []string {
	keys := make([]string, 0, len(institutions))
	for _, inst := range institutions {
		keys = append(keys, inst.Key)
	}
	sort.Strings(keys)
	return keys
}
