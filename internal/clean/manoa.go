// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"regexp"
	"strings"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

// Catalog navigation artifacts that cling to scraped Manoa values.
var manoaArtifacts = []string{
	"Print (opens a new window)",
	"Help (opens a new window)",
}

var (
	unitsTokenRE  = regexp.MustCompile(`^[A-Za-z0-9.]+$`)
	unitsPrefixRE = regexp.MustCompile(`(?s)^([A-Za-z0-9.]+)\s*\n(.*)$`)
	doubleSemiRE  = regexp.MustCompile(`;\s*;`)
)

// cleanManoa removes catalog-viewer artifacts and repairs the raw
// description, which begins with the credit token the scraper could not
// separate from the text that follows it.
func cleanManoa(c *types.Course) {
	c.CourseTitle = stripArtifacts(c.CourseTitle)
	if c.CourseDesc != nil {
		c.CourseDesc = types.Str(stripArtifacts(*c.CourseDesc))
	}
	if c.Metadata != nil {
		m := stripArtifacts(*c.Metadata)
		m = strings.Trim(doubleSemiRE.ReplaceAllString(m, ";"), "; ")
		c.Metadata = types.Str(m)
	}
	trimOptional(&c.CourseDesc)
	trimOptional(&c.Metadata)

	if c.CourseDesc == nil {
		return
	}
	desc := *c.CourseDesc

	// A description that is entirely a units token ("3", "V", "1.5") is a
	// misplaced credit value, not a description.
	if unitsTokenRE.MatchString(desc) {
		c.NumUnits = types.Str(desc)
		c.CourseDesc = nil
		return
	}

	// A description opening with a units token on its own line splits
	// into the credit value and the remainder.
	if m := unitsPrefixRE.FindStringSubmatch(desc); m != nil {
		c.NumUnits = types.Str(m[1])
		rest := strings.TrimSpace(m[2])
		if rest == "" {
			c.CourseDesc = nil
		} else {
			c.CourseDesc = types.Str(rest)
		}
	}
}

func stripArtifacts(s string) string {
	for _, a := range manoaArtifacts {
		s = strings.ReplaceAll(s, a, "")
	}
	return strings.TrimSpace(s)
}
