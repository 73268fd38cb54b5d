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

// drupalStrategy crawls Drupal course-node catalogs (Kauai). Each course
// renders as a node headed by an h3 link whose href encodes the course
// code ("/accounting-acc/acc-124"), with attribute values in
// field--name-field-* classed elements.
type drupalStrategy struct{}

func (drupalStrategy) Name() string { return "drupal" }

var drupalHrefRE = regexp.MustCompile(`/([a-z0-9-]+)/([a-z]+)-(\d+[a-z]*)/?$`)

func (s drupalStrategy) Fetch(ctx context.Context, client *http.Client, inst types.Institution, cfg types.ScrapeConfig) (Result, error) {
	var res Result

	doc, err := fetchDoc(ctx, client, inst.CatalogURL, cfg.HTTPConfig)
	if err != nil {
		return res, err
	}
	res.Pages++
	res.Courses = parseDrupalNodes(doc, inst.CatalogURL)
	return res, nil
}

func parseDrupalNodes(doc *goquery.Document, pageURL string) []types.Course {
	var courses []types.Course
	doc.Find("h3").Each(func(_ int, h3 *goquery.Selection) {
		link := h3.Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		m := drupalHrefRE.FindStringSubmatch(href)
		if m == nil {
			return
		}

		prefix := strings.ToUpper(m[2])
		number := strings.ToUpper(m[3])
		node := h3.Parent()

		title := strings.TrimSpace(link.Find(".field--name-field-item").First().Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}

		c := types.Course{
			CoursePrefix: prefix,
			CourseNumber: number,
			CourseTitle:  title,
			DeptName:     deptFromSlug(m[1], prefix),
			SourceURL:    types.Str(resolveURL(pageURL, href)),
		}

		if credits := fieldText(node, "field--name-field-credits"); credits != "" {
			c.NumUnits = types.Str(credits)
		}
		if desc := fieldText(node, "field--name-field-description"); desc != "" {
			c.CourseDesc = types.Str(desc)
		}

		var parts []string
		addPart := func(label, value string) {
			if value != "" {
				parts = append(parts, label+": "+value)
			}
		}
		addPart("Class Hours", fieldText(node, "field--name-field-class-hours"))
		addPart("Semester Offered", fieldItems(node, "field--name-field-class-code"))
		addPart("Prerequisites", fieldText(node, "field--name-field-prerequisites"))
		addPart("Corequisites", fieldText(node, "field--name-field-corequisites"))
		addPart("Course Student Learning Outcomes", fieldText(node, "field--name-field-student-learning-outcomes"))
		if len(parts) > 0 {
			c.Metadata = types.Str(strings.Join(parts, "; "))
		}

		courses = append(courses, c)
	})
	return courses
}

// fieldText returns the first field__item value under the named Drupal
// field class.
func fieldText(node *goquery.Selection, class string) string {
	return strings.TrimSpace(node.Find("."+class).First().Find(".field__item").First().Text())
}

// fieldItems joins every field__item value under the named field class
// with ", " (multi-valued fields such as semesters offered).
func fieldItems(node *goquery.Selection, class string) string {
	var items []string
	node.Find("." + class).First().Find(".field__item").Each(func(_ int, item *goquery.Selection) {
		if v := strings.TrimSuffix(strings.TrimSpace(item.Text()), ","); v != "" {
			items = append(items, v)
		}
	})
	return strings.Join(items, ", ")
}

// deptFromSlug recovers the department name from the node path slug:
// "accounting-acc" with prefix ACC becomes "Accounting".
func deptFromSlug(slug, prefix string) string {
	slug = strings.TrimSuffix(slug, "-"+strings.ToLower(prefix))
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
