// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"regexp"
	"strings"

	"github.com/mkealoha/uhcatalog/internal/metadata"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// The block-page catalogs (Hilo, Hawaii CC, Windward) embed metadata
// inside the description text instead of a separate attribute. Each
// pattern captures up to the next period; the attributes parenthetical is
// captured whole, and goes first so it cannot leak into a sentence
// capture.
var embeddedPatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"Attributes", regexp.MustCompile(`\(Attributes:\s*([^)]+)\)`)},
	{"Prerequisites", regexp.MustCompile(`(?i)(?:Pre|Prereq|Prerequisites?):\s*([^.]+)\.?`)},
	{"Corequisites", regexp.MustCompile(`(?i)(?:Co-?req|Co-?requisites?):\s*([^.]+)\.?`)},
	{"Recommended Preparation", regexp.MustCompile(`(?i)(?:Rec Prep|Recommended Preparation|Recommended):\s*([^.]+)\.?`)},
	{"Semester Offered", regexp.MustCompile(`(?i)(?:Semesters? Offered|Offered):\s*([^.]+)\.?`)},
	{"Class Hours", regexp.MustCompile(`(?i)(?:Class Hours|Credits):\s*([^.]+)\.?`)},
}

var (
	multiSpaceRE   = regexp.MustCompile(`\s+`)
	multiPeriodRE  = regexp.MustCompile(`\.+`)
	orphanPeriodRE = regexp.MustCompile(`\s+\.`)
)

// extractEmbeddedMetadata moves recognized metadata fragments out of the
// description and into the metadata string under canonical labels, then
// normalizes the leftover text.
func extractEmbeddedMetadata(c *types.Course) {
	if c.CourseDesc == nil {
		return
	}
	desc := *c.CourseDesc

	fields := make(map[string]string)
	for _, p := range embeddedPatterns {
		m := p.re.FindStringSubmatch(desc)
		if m == nil {
			continue
		}
		metadata.Add(fields, p.label, strings.TrimSpace(m[1]))
		desc = p.re.ReplaceAllString(desc, "")
	}

	if len(fields) > 0 {
		// Merge with any metadata the scraper already attached.
		if c.Metadata != nil {
			for label, value := range metadata.Parse(*c.Metadata) {
				metadata.Add(fields, label, value)
			}
		}
		c.Metadata = types.Str(metadata.Canonical(fields))
	}

	desc = multiSpaceRE.ReplaceAllString(desc, " ")
	desc = orphanPeriodRE.ReplaceAllString(desc, ".")
	desc = multiPeriodRE.ReplaceAllString(desc, ".")
	desc = strings.Trim(desc, " .")
	if desc == "" {
		c.CourseDesc = nil
		return
	}
	c.CourseDesc = types.Str(desc + ".")
}
