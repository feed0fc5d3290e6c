/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/courses"
	"github.com/mikeb26/golfclub-teebot/internal"
)

// this program exists just to seed the http cache for the course directory

func main() {
	pages := flag.Int("pages", 3, "Result pages to fetch per query")
	flag.Parse()

	queries := flag.Args()
	if len(queries) == 0 {
		queries = defaultQueries()
	}

	ctx := context.Background()
	client := courses.NewClient(ctx, os.Getenv(internal.EnvCourseDirURL),
		os.Getenv(internal.EnvCacheBucket))

	for _, q := range queries {
		found, err := client.Search(ctx, q, *pages)
		time.Sleep(2 * time.Second) // avoid pegging the directory
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded %v: %d courses\n", q, len(found))
	}
}

// defaultQueries returns the distinct regions of the built-in catalog.
func defaultQueries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range club.DefaultCourses() {
		region, _, _ := strings.Cut(c.Location, " ")
		if region == "" || seen[region] {
			continue
		}
		seen[region] = true
		out = append(out, region)
	}
	return out
}
