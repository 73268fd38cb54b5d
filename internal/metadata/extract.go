// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata parses the semi-structured attribute text attached to
// catalog course records ("Prerequisites: ...; Repeatable: ...") into a
// label-to-value mapping. Parsing is pure, never fails, and never drops
// text: fragments that fit no label land in an overflow bucket.
package metadata

import (
	"sort"
	"strings"
)

// Unrecognized is the overflow key for segments that carry no label.
// Text is concatenated there with Separator rather than dropped.
const Unrecognized = "_unrecognized"

// Separator joins segments in the raw form and appended fragments in the
// Unrecognized bucket. Bucket text round-trips: a re-parsed tail fragment
// has no label and falls back into the bucket.
const Separator = "; "

// ValueSeparator joins a repeated label's values. It must not contain the
// segment separator, or the joined tail would re-parse as an unlabeled
// fragment and migrate into the bucket.
const ValueSeparator = ", "

// knownLabels is the set of labels observed across the ten campus catalogs.
// It is not a whitelist: unknown labels pass through verbatim. The set feeds
// downstream statistics and the cleaners' label normalization.
var knownLabels = map[string]bool{
	"Prerequisites":                    true,
	"Corequisites":                     true,
	"Repeatable":                       true,
	"Grade Option":                     true,
	"Major Restrictions":               true,
	"General Education Designation(s)": true,
	"Recommended Preparation":          true,
	"Semester Offered":                 true,
	"Class Hours":                      true,
	"Contact Hours":                    true,
	"Cross-list":                       true,
	"Lecture Hours":                    true,
	"Lab Hours":                        true,
	"Course Student Learning Outcomes": true,
	"Credits":                          true,
	"Attributes":                       true,
}

// Parse splits a raw metadata string into a label-to-value mapping.
//
// Segments are separated by semicolons. Each segment splits on its first
// colon into (label, value), both whitespace-trimmed; values keep trailing
// periods as-is since they may end mid-abbreviation. A segment without a
// colon, or with an empty label, is appended to the Unrecognized bucket.
// A label seen twice has its values concatenated with ValueSeparator.
//
// Absent input returns an empty, non-nil map. Parse never fails: malformed
// input degrades to whatever fields could be recovered.
func Parse(raw string) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return fields
	}

	for _, seg := range strings.Split(raw, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		label, value, found := strings.Cut(seg, ":")
		if !found {
			Add(fields, Unrecognized, seg)
			continue
		}

		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label == "" {
			Add(fields, Unrecognized, seg)
			continue
		}
		Add(fields, label, value)
	}
	return fields
}

// Add sets fields[label] = value, concatenating when the label is already
// present so repeated labels lose no data. Bucket entries join with
// Separator (they re-parse back into the bucket); labeled values join with
// ValueSeparator so the merged value survives a Parse/Canonical round trip
// as one segment.
func Add(fields map[string]string, label, value string) {
	if prev, ok := fields[label]; ok && prev != "" {
		if value == "" {
			return
		}
		sep := ValueSeparator
		if label == Unrecognized {
			sep = Separator
		}
		fields[label] = prev + sep + value
		return
	}
	fields[label] = value
}

// Canonical rebuilds the raw metadata form from a parsed mapping: keys in
// lexicographic order, "Label: value" segments joined by Separator, empty
// values skipped. Parsing the result reproduces the same mapping.
func Canonical(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if fields[k] == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, Separator)
}

// Known reports whether label is in the expected label set.
func Known(label string) bool {
	return knownLabels[label]
}

// KnownLabels returns the expected label set, sorted.
func KnownLabels() []string {
	labels := make([]string, 0, len(knownLabels))
	for l := range knownLabels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// LabelCounts tallies label frequency over a set of raw metadata strings.
// Empty strings count toward nothing; the Unrecognized bucket is tallied
// like any other key.
func LabelCounts(raws []string) map[string]int {
	counts := make(map[string]int)
	for _, raw := range raws {
		for label := range Parse(raw) {
			counts[label]++
		}
	}
	return counts
}
