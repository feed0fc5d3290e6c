/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package courses

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/internal"
)

const MaxPages = 10

// Search fetches the first pages result pages for query concurrently and
// returns the courses found, in page order with repeated names dropped.
func (client *Client) Search(ctx context.Context, query string,
	pages int) ([]club.Course, error) {

	pages = max(1, min(pages, MaxPages))

	results := make([][]club.Course, pages)
	g, gCtx := errgroup.WithContext(ctx)
	for page := 1; page <= pages; page++ {
		g.Go(func() error {
			doc, err := client.fetchDoc(gCtx, client.pageURL(query, page))
			if err != nil {
				return fmt.Errorf("error fetching course page %v for %q: %w",
					page, query, err)
			}
			if doc != nil {
				results[page-1] = parseCourses(doc)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	courses := make([]club.Course, 0)
	for _, pageCourses := range results {
		for _, c := range pageCourses {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			courses = append(courses, c)
		}
	}

	return courses, nil
}

func (client *Client) pageURL(query string, page int) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))

	return client.baseURL + "?" + q.Encode()
}

// fetchDoc returns nil and no error when the page does not exist.
func (client *Client) fetchDoc(ctx context.Context,
	pageURL string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, pageURL)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// parseCourses reads name, location and distance cells from the rows of
// table#courses.
func parseCourses(doc *goquery.Document) []club.Course {
	var courses []club.Course
	doc.Find("table#courses tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			// header row
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		if name == "" {
			return
		}
		courses = append(courses, club.Course{
			Name:     strings.Join(strings.Fields(name), " "),
			Location: strings.TrimSpace(cells.Eq(1).Text()),
			Distance: strings.TrimSpace(cells.Eq(2).Text()),
		})
	})

	return courses
}
