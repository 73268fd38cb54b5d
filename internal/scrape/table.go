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

// tableStrategy crawls subject-table catalogs (Kapiolani). Each subject
// page carries a blue department header table ("ACCOUNTING (ACC) COURSES")
// followed by one gray table per course: a "PREFIXNUMBER: Title" link row,
// then description, "Credits:", and "Prereq:"/"Coreq:" rows.
type tableStrategy struct{}

func (tableStrategy) Name() string { return "table" }

var (
	tableDeptRE    = regexp.MustCompile(`^(.+?)\s*\([A-Z]+\)\s*COURSES?`)
	tableCourseRE  = regexp.MustCompile(`^([A-Z]+)(\d+[A-Z]*):?\s*(.*)$`)
	tableCreditsRE = regexp.MustCompile(`Credits:\s*(\d+(?:\.\d+)?|V)`)
)

func (s tableStrategy) Fetch(ctx context.Context, client *http.Client, inst types.Institution, cfg types.ScrapeConfig) (Result, error) {
	var res Result

	index, err := fetchDoc(ctx, client, inst.CatalogURL, cfg.HTTPConfig)
	if err != nil {
		return res, err
	}
	res.Pages++
	res.Courses = append(res.Courses, parseSubjectTables(index, inst.CatalogURL)...)

	for _, link := range departmentLinks(index, inst.CatalogURL) {
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
		res.Courses = append(res.Courses, parseSubjectTables(doc, link)...)
	}

	return res, nil
}

// parseSubjectTables walks the page's tables in document order, tracking
// the current department from header tables and extracting a course from
// each course table.
func parseSubjectTables(doc *goquery.Document, pageURL string) []types.Course {
	var courses []types.Course
	dept := ""

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		style, _ := table.Attr("style")
		switch {
		case strings.Contains(style, "royalblue"):
			text := strings.TrimSpace(table.Find("td").First().Text())
			if m := tableDeptRE.FindStringSubmatch(text); m != nil {
				dept = strings.TrimSpace(m[1])
			}
		case strings.Contains(style, "lightgray"):
			if c, ok := parseCourseTable(table, dept, pageURL); ok {
				courses = append(courses, c)
			}
		}
	})
	return courses
}

func parseCourseTable(table *goquery.Selection, dept, pageURL string) (types.Course, bool) {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return types.Course{}, false
	}

	header := strings.TrimSpace(rows.First().Find("a").First().Text())
	m := tableCourseRE.FindStringSubmatch(header)
	if m == nil {
		return types.Course{}, false
	}

	c := types.Course{
		CoursePrefix: m[1],
		CourseNumber: m[2],
		CourseTitle:  strings.TrimSpace(m[3]),
		DeptName:     dept,
		SourceURL:    types.Str(pageURL),
	}

	var descParts, metaParts []string
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		text := strings.TrimSpace(row.Find("td").First().Text())
		switch {
		case text == "":
		case strings.HasPrefix(text, "Credits:"):
			if cm := tableCreditsRE.FindStringSubmatch(text); cm != nil {
				c.NumUnits = types.Str(cm[1])
			}
		case strings.Contains(text, "Prereq:") || strings.Contains(text, "Coreq:"):
			metaParts = append(metaParts, text)
		default:
			descParts = append(descParts, text)
		}
	})

	if len(descParts) > 0 {
		c.CourseDesc = types.Str(strings.Join(descParts, " "))
	}
	if len(metaParts) > 0 {
		c.Metadata = types.Str(strings.Join(metaParts, "; "))
	}
	return c, true
}
