/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package courses looks up golf courses in a remote course directory whose
// result pages list courses in an HTML table.
package courses

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mikeb26/golfclub-teebot/internal/httpcache"
)

// DefaultDirectoryURL is used when GOLFCLUB_COURSE_DIRECTORY is unset.
const DefaultDirectoryURL = "https://golfclub-teebot.s3.amazonaws.com/directory/search"

// course listings change rarely
const cacheMaxAge = 7 * 24 * time.Hour

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a Client for the directory at baseURL whose responses
// are cached in bucket (or in memory when bucket is empty).
func NewClient(ctx context.Context, baseURL string, bucket string) *Client {
	if baseURL == "" {
		baseURL = DefaultDirectoryURL
	}

	return &Client{
		httpClient: httpcache.NewCachedHttpClient(ctx, bucket, cacheMaxAge),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}
