// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

var (
	// courseHeaderRE matches a course block opening line:
	// "ACC 124 Principles of Accounting I (3 credits)".
	courseHeaderRE = regexp.MustCompile(`^([A-Z]{2,4})\s+(\d+[A-Z]*)\s+(.+?)\s+\(([0-9]+(?:\.[0-9]+)?(?:-[0-9.]+)?|V)(?:\s+credits?)?\)\s*$`)

	// sectionHeaderRE matches an all-caps subject heading line.
	sectionHeaderRE = regexp.MustCompile(`^([A-Z][A-Z &/,'-]{2,})$`)

	prereqSentenceRE = regexp.MustCompile(`(?:Prerequisite\(s\)|Prerequisites?|Prereq):\s*([^.]*\.?)`)
	coreqSentenceRE  = regexp.MustCompile(`(?:Corequisite\(s\)|Corequisites?|Coreq):\s*([^.]*\.?)`)

	spacesRE = regexp.MustCompile(`\s+`)
)

// ParseCatalogText extracts course records from layout-preserved catalog
// text. A course block opens with "PREFIX NUMBER Title (N credits)" and
// runs until the next block, section heading, or blank line gap; all-caps
// lines between blocks name the current subject section. Embedded
// prerequisite and corequisite sentences move from the description into
// the metadata string.
func ParseCatalogText(text string, inst types.Institution) []types.Course {
	var courses []types.Course
	var current *types.Course
	var descLines []string
	dept := ""

	flush := func() {
		if current == nil {
			return
		}
		finishTextCourse(current, descLines)
		courses = append(courses, *current)
		current = nil
		descLines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if m := courseHeaderRE.FindStringSubmatch(line); m != nil {
			flush()
			current = &types.Course{
				CoursePrefix: m[1],
				CourseNumber: m[2],
				CourseTitle:  strings.TrimSpace(m[3]),
				NumUnits:     types.Str(m[4]),
				DeptName:     dept,
				InstIPEDS:    inst.IPEDS,
				SourceFile:   inst.SourceFile(),
			}
			continue
		}

		if sectionHeaderRE.MatchString(line) && !strings.ContainsAny(line, "0123456789") {
			flush()
			dept = titleCase(line)
			continue
		}

		if line == "" {
			flush()
			continue
		}

		if current != nil {
			descLines = append(descLines, line)
		}
	}
	flush()

	return courses
}

// finishTextCourse assembles the description, pulling embedded
// prerequisite and corequisite sentences into the metadata string.
func finishTextCourse(c *types.Course, descLines []string) {
	desc := strings.Join(descLines, " ")

	var parts []string
	if m := prereqSentenceRE.FindStringSubmatch(desc); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			parts = append(parts, "Prerequisites: "+v)
		}
		desc = prereqSentenceRE.ReplaceAllString(desc, "")
	}
	if m := coreqSentenceRE.FindStringSubmatch(desc); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			parts = append(parts, "Corequisites: "+v)
		}
		desc = coreqSentenceRE.ReplaceAllString(desc, "")
	}

	desc = strings.TrimSpace(spacesRE.ReplaceAllString(desc, " "))
	if desc != "" {
		c.CourseDesc = types.Str(desc)
	}
	if len(parts) > 0 {
		c.Metadata = types.Str(strings.Join(parts, "; "))
	}
}

// titleCase lowercases an all-caps heading and capitalizes each word:
// "HAWAIIAN STUDIES" -> "Hawaiian Studies".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if w == "and" || w == "of" || w == "the" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
