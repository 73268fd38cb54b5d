// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import "github.com/mkealoha/uhcatalog/internal/metadata"

// canonicalLabels maps the shorthand labels the ten catalogs use to the
// canonical label set. Labels not listed pass through unchanged.
var canonicalLabels = map[string]string{
	"Pre":                            "Prerequisites",
	"Prereq":                         "Prerequisites",
	"Prerequisite":                   "Prerequisites",
	"Prerequisite(s)":                "Prerequisites",
	"Coreq":                          "Corequisites",
	"Co-req":                         "Corequisites",
	"Corequisite":                    "Corequisites",
	"Corequisite(s)":                 "Corequisites",
	"Rec Prep":                       "Recommended Preparation",
	"Recommended":                    "Recommended Preparation",
	"Recommended Course Preparation": "Recommended Preparation",
	"Semesters Offered":              "Semester Offered",
	"Offered":                        "Semester Offered",
	"General Education Designation":  "General Education Designation(s)",
}

// NormalizeLabels rewrites shorthand keys in a parsed metadata mapping to
// their canonical forms, merging values when the canonical key is already
// present.
func NormalizeLabels(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for label, value := range fields {
		if canonical, ok := canonicalLabels[label]; ok {
			label = canonical
		}
		metadata.Add(out, label, value)
	}
	return out
}
