// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkealoha/uhcatalog/pkg/types"
)

// cardsStrategy crawls course-card catalogs (Leeward). The index links
// each course with "PREFIXNUMBER - Title" text; the course page titles
// the card the same way and lists labeled sections (Description, Credits,
// Prerequisites, Recommended Course Preparation, Contact Hours) as an h3
// label followed by the value element.
type cardsStrategy struct{}

func (cardsStrategy) Name() string { return "cards" }

var (
	cardTitleRE = regexp.MustCompile(`^([A-Z]+)(\d+[A-Z]*)\s*-\s*([^(]+)`)
	cardUnitsRE = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?|V)\s*credit`)
)

func (s cardsStrategy) Fetch(ctx context.Context, client *http.Client, inst types.Institution, cfg types.ScrapeConfig) (Result, error) {
	var res Result

	index, err := fetchDoc(ctx, client, inst.CatalogURL, cfg.HTTPConfig)
	if err != nil {
		return res, err
	}
	res.Pages++

	for _, link := range cardLinks(index, inst.CatalogURL) {
		if cfg.MaxPages > 0 && res.Pages >= cfg.MaxPages {
			break
		}
		if err := pause(ctx, cfg.PageDelay); err != nil {
			return res, err
		}
		doc, err := fetchDoc(ctx, client, link, cfg.HTTPConfig)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Pages++
		if c, ok := parseCardPage(doc, link); ok {
			res.Courses = append(res.Courses, c)
		}
	}

	return res, nil
}

// cardLinks collects course page links from the index: anchors whose text
// starts with a course code.
func cardLinks(doc *goquery.Document, pageURL string) []string {
	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if !cardTitleRE.MatchString(strings.TrimSpace(a.Text())) {
			return
		}
		href, _ := a.Attr("href")
		abs := resolveURL(pageURL, href)
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})
	return links
}

func parseCardPage(doc *goquery.Document, pageURL string) (types.Course, bool) {
	header := strings.TrimSpace(doc.Find("h2").First().Text())
	m := cardTitleRE.FindStringSubmatch(header)
	if m == nil {
		return types.Course{}, false
	}

	c := types.Course{
		CoursePrefix: m[1],
		CourseNumber: m[2],
		CourseTitle:  strings.TrimSpace(m[3]),
		DeptName:     leewardDepartments[m[1]],
		SourceURL:    types.Str(pageURL),
	}

	sections := make(map[string]string)
	doc.Find("h3").Each(func(_ int, h3 *goquery.Selection) {
		label := strings.TrimSpace(h3.Text())
		value := strings.TrimSpace(h3.Next().Text())
		if label != "" && value != "" {
			sections[label] = value
		}
	})

	if desc := sections["Description"]; desc != "" {
		c.CourseDesc = types.Str(desc)
	}
	if credits := sections["Credits"]; credits != "" {
		if um := cardUnitsRE.FindStringSubmatch(credits); um != nil {
			c.NumUnits = types.Str(um[1])
		} else {
			c.NumUnits = types.Str(credits)
		}
	}

	var parts []string
	for _, label := range []string{"Prerequisites", "Recommended Course Preparation", "Contact Hours"} {
		if v := sections[label]; v != "" {
			parts = append(parts, label+": "+v)
		}
	}
	if len(parts) > 0 {
		c.Metadata = types.Str(strings.Join(parts, "; "))
	}

	return c, true
}

// leewardDepartments translates course prefixes to department names; the
// card pages carry no department heading.
var leewardDepartments = map[string]string{
	"ACC":  "Accounting",
	"ANTH": "Anthropology",
	"ART":  "Arts and Humanities",
	"BIOL": "Biological Sciences",
	"BOT":  "Biological Sciences",
	"BUS":  "Business",
	"CHEM": "Physical Sciences",
	"DMED": "Digital Media",
	"ECON": "Social Sciences",
	"ED":   "Education",
	"ENG":  "Language Arts",
	"HIST": "Social Sciences",
	"ICS":  "Information and Computer Science",
	"MATH": "Mathematics",
	"MUS":  "Arts and Humanities",
	"NURS": "Nursing",
	"PHIL": "Arts and Humanities",
	"PHYS": "Physical Sciences",
	"PSY":  "Social Sciences",
	"SOC":  "Social Sciences",
}
