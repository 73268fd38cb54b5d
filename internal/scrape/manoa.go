// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

// manoaStrategy crawls the Manoa catalog: paginated index pages link to
// one preview page per course. The preview page carries the course header
// in an h1, a "Credits:" line, the description, and bolded metadata labels
// whose values follow as sibling text.
type manoaStrategy struct{}

func (manoaStrategy) Name() string { return "manoa" }

var (
	manoaTitleRE   = regexp.MustCompile(`^([A-Z]+)\s+([0-9A-Z]+)\s*-\s*(.*)$`)
	manoaCreditsRE = regexp.MustCompile(`Credits:\s*([0-9]+(?:\.[0-9]+)?)`)
)

func (s manoaStrategy) Fetch(ctx context.Context, client *http.Client, inst types.Institution, cfg types.ScrapeConfig) (Result, error) {
	var res Result
	seen := make(map[string]bool)

	for page := 0; ; page++ {
		if cfg.MaxPages > 0 && page >= cfg.MaxPages {
			break
		}

		indexURL := fmt.Sprintf("%s?page=%d", inst.CatalogURL, page)
		doc, err := fetchDoc(ctx, client, indexURL, cfg.HTTPConfig)
		if err != nil {
			if page == 0 {
				return res, err
			}
			res.Errors = append(res.Errors, err.Error())
			break
		}
		res.Pages++

		links := courseLinks(doc, indexURL, seen)
		if len(links) == 0 {
			break
		}

		for _, link := range links {
			if err := pause(ctx, cfg.PageDelay); err != nil {
				return res, err
			}
			courseDoc, err := fetchDoc(ctx, client, link, cfg.HTTPConfig)
			if err != nil {
				res.Errors = append(res.Errors, err.Error())
				continue
			}
			res.Pages++
			if c, ok := parseManoaCourse(courseDoc, link); ok {
				res.Courses = append(res.Courses, c)
			}
		}
	}

	return res, nil
}

// courseLinks collects unseen course preview links from an index page.
func courseLinks(doc *goquery.Document, pageURL string, seen map[string]bool) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "preview_course") {
			return
		}
		abs := resolveURL(pageURL, href)
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})
	return links
}

// parseManoaCourse extracts one course from a preview page. The record
// keeps the preview page's quirks (the description starts with the credit
// token, navigation artifacts may cling to values); the clean stage
// removes them.
func parseManoaCourse(doc *goquery.Document, pageURL string) (types.Course, bool) {
	container := doc.Find(`td.block_content[colspan="2"]`).First()
	if container.Length() == 0 {
		return types.Course{}, false
	}

	header := strings.TrimSpace(container.Find("h1#course_preview_title").Text())
	m := manoaTitleRE.FindStringSubmatch(header)
	if m == nil {
		return types.Course{}, false
	}

	c := types.Course{
		CoursePrefix: m[1],
		CourseNumber: m[2],
		CourseTitle:  strings.TrimSpace(m[3]),
		DeptName:     manoaDepartments[m[1]],
		SourceURL:    types.Str(pageURL),
	}

	fullText := container.Text()
	if um := manoaCreditsRE.FindStringSubmatch(fullText); um != nil {
		c.NumUnits = types.Str(um[1])
	}

	fields := make(map[string]string)
	label := ""
	var value strings.Builder
	flush := func() {
		if label != "" {
			if v := strings.TrimSpace(value.String()); v != "" {
				fields[label] = v
			}
		}
		value.Reset()
	}
	container.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "strong" {
			flush()
			label = strings.TrimSuffix(strings.TrimSpace(node.Text()), ":")
			return
		}
		value.WriteString(node.Text())
	})
	flush()

	// The text after the Credits label is the credit token plus the
	// description, not a metadata value.
	if desc, ok := fields["Credits"]; ok {
		c.CourseDesc = types.Str(desc)
		delete(fields, "Credits")
	}
	delete(fields, "")

	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, l := range sortedKeys(fields) {
			parts = append(parts, l+": "+fields[l])
		}
		c.Metadata = types.Str(strings.Join(parts, "; "))
	}

	return c, true
}

// manoaDepartments translates course prefixes to offering departments.
// Prefixes not listed here leave dept_name empty; the clean stage falls
// back to the prefix.
var manoaDepartments = map[string]string{
	"ACC":  "Accounting",
	"AMST": "American Studies",
	"ANTH": "Anthropology",
	"ARCH": "Architecture",
	"ART":  "Art and Art History",
	"ASTR": "Astronomy",
	"BIOL": "Biology",
	"BOT":  "Botany",
	"CEE":  "Civil and Environmental Engineering",
	"CHEM": "Chemistry",
	"CINE": "Cinematic Arts",
	"COM":  "Communication",
	"ECON": "Economics",
	"EE":   "Electrical Engineering",
	"ENG":  "English",
	"GEO":  "Geography and Environment",
	"HIST": "History",
	"ICS":  "Information and Computer Sciences",
	"JOUR": "Journalism",
	"KRS":  "Kinesiology and Rehabilitation Science",
	"LING": "Linguistics",
	"MATH": "Mathematics",
	"ME":   "Mechanical Engineering",
	"MICR": "Microbiology",
	"MUS":  "Music",
	"NURS": "Nursing",
	"OCN":  "Oceanography",
	"PHIL": "Philosophy",
	"PHYS": "Physics and Astronomy",
	"POLS": "Political Science",
	"PSY":  "Psychology",
	"SOC":  "Sociology",
	"SW":   "Social Work",
	"THEA": "Theatre and Dance",
	"ZOOL": "Zoology",
}
