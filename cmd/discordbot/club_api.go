/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
	"github.com/mikeb26/golfclub-teebot/internal"
)

// clubClient talks to the club backend served by clubapi.
type clubClient struct {
	baseURL    string
	httpClient *http.Client
}

func newClubClient(baseURL string) *clubClient {
	return &clubClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// apiError carries the backend's error message for non-2xx responses.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return e.Message
}

// do sends body (if non-nil) as JSON to path and decodes the response into
// out.
func (c *clubClient) do(ctx context.Context, method string, path string,
	body any, out any) error {

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("unable to encode %v request: %w", path, err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("unable to fetch %v (new): %w", path, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v (do): %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apiError{Status: resp.StatusCode}
		var eb struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&eb) == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to parse %v: %w", path, err)
	}
	return nil
}

func (c *clubClient) getMembers(ctx context.Context,
	search string) ([]club.Member, error) {

	path := "/api/members"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var members []club.Member
	err := c.do(ctx, http.MethodGet, path, nil, &members)
	return members, err
}

func (c *clubClient) getMember(ctx context.Context, id int64) (*club.Member, error) {
	var m club.Member
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/members/%d", id),
		nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *clubClient) getMemberStats(ctx context.Context,
	id int64) (club.Stats, error) {

	var stats club.Stats
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/members/%d/stats", id),
		nil, &stats)
	return stats, err
}

type previewResult struct {
	Groups []grouping.Group `json:"groups"`
	Spread float64          `json:"spread"`
}

func (c *clubClient) previewGroups(ctx context.Context, ids []int64,
	cfg grouping.Config) (previewResult, error) {

	body := struct {
		MemberIDs []int64         `json:"memberIds"`
		Config    grouping.Config `json:"config"`
	}{MemberIDs: ids, Config: cfg}

	var res previewResult
	err := c.do(ctx, http.MethodPost, "/api/groups/preview", body, &res)
	return res, err
}

func (c *clubClient) getSchedules(ctx context.Context) ([]club.Schedule, error) {
	var scheds []club.Schedule
	err := c.do(ctx, http.MethodGet, "/api/schedules", nil, &scheds)
	return scheds, err
}
