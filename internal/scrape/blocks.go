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

// blocksStrategy crawls catalogs built from department pages of course
// blocks: <p><strong>PREFIX NUMBER Title (units)</strong> description</p>.
// The index page links each department page with an href ending in
// "-courses" (Hilo adds "-gr" pages for graduate offerings).
type blocksStrategy struct{}

func (blocksStrategy) Name() string { return "blocks" }

var blocksCourseRE = regexp.MustCompile(`^([A-Z]+)\s+(\d+[A-Z]*)\s+(.+?)\s*\(([^)]+)\)$`)

func (s blocksStrategy) Fetch(ctx context.Context, client *http.Client, inst types.Institution, cfg types.ScrapeConfig) (Result, error) {
	var res Result

	index, err := fetchDoc(ctx, client, inst.CatalogURL, cfg.HTTPConfig)
	if err != nil {
		return res, err
	}
	res.Pages++

	links := departmentLinks(index, inst.CatalogURL)
	for _, link := range links {
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
		res.Courses = append(res.Courses, parseBlocksPage(doc, link)...)
	}

	return res, nil
}

// departmentLinks collects department course page links from the index.
func departmentLinks(doc *goquery.Document, pageURL string) []string {
	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.HasSuffix(href, "-courses") && !strings.HasSuffix(href, "-gr") {
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

// parseBlocksPage extracts every course block on one department page. The
// department name comes from the page heading, text before any trailing
// parenthetical ("Accounting (ACC) Courses" -> "Accounting").
func parseBlocksPage(doc *goquery.Document, pageURL string) []types.Course {
	heading := doc.Find("h1#page-content-title").First()
	if heading.Length() == 0 {
		heading = doc.Find("h1").First()
	}
	dept := strings.TrimSpace(heading.Text())
	if i := strings.Index(dept, "("); i >= 0 {
		dept = strings.TrimSpace(dept[:i])
	}

	var courses []types.Course
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		strong := p.Find("strong").First()
		if strong.Length() == 0 {
			return
		}
		header := strings.TrimSpace(strong.Text())
		m := blocksCourseRE.FindStringSubmatch(header)
		if m == nil {
			return
		}

		desc := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p.Text()), header))

		c := types.Course{
			CoursePrefix: m[1],
			CourseNumber: m[2],
			CourseTitle:  strings.TrimSpace(m[3]),
			NumUnits:     types.Str(strings.TrimSpace(m[4])),
			DeptName:     dept,
			SourceURL:    types.Str(pageURL),
		}
		if desc != "" {
			c.CourseDesc = types.Str(desc)
		}
		courses = append(courses, c)
	})
	return courses
}
