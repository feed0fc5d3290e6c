/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/golfclub-teebot/grouping"
	"github.com/mikeb26/golfclub-teebot/internal"
	"github.com/mikeb26/golfclub-teebot/internal/httpcache"
)

const rosterCacheMaxAge = 10 * time.Minute

func parseArgs() (string, grouping.Config) {
	fs := flag.CommandLine
	cfg, err := parseFlags(fs, os.Args[1:])
	if err != nil || fs.NArg() != 1 {
		if err != nil {
			fmt.Fprintln(fs.Output(), err)
		}
		usage()
		os.Exit(1)
	}

	return fs.Arg(0), cfg
}

func parseFlags(fs *flag.FlagSet, args []string) (grouping.Config, error) {
	fs.Usage = usage
	mode := fs.String("mode", string(grouping.ModeEqual), "equal, handicap or random")
	size := fs.Int("size", grouping.DefaultGroupSize, "Players per group")
	separate := fs.Bool("separate-gender", false, "Group men and women separately")
	seed := fs.Int64("seed", -1, "Seed for reproducible random groups")
	if err := fs.Parse(args); err != nil {
		return grouping.Config{}, err
	}

	m, err := grouping.ParseMode(*mode)
	if err != nil {
		return grouping.Config{}, err
	}
	cfg := grouping.Config{Mode: m, SeparateGender: *separate, GroupSize: *size}
	if *seed >= 0 {
		s := uint64(*seed)
		cfg.Seed = &s
	}
	return cfg, cfg.Validate()
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage:\n\n%v [--mode equal|handicap|random] [--size n] [--separate-gender] [--seed n] <file|url>\n\nRead a roster and print balanced tee groups.\n",
		os.Args[0])
}

// newRosterClient returns the cached client used for http(s) rosters. The
// cache is kept in the GOLFCLUB_CACHE_BUCKET S3 bucket when that is set.
func newRosterClient(ctx context.Context) *http.Client {
	return httpcache.NewCachedHttpClient(ctx, os.Getenv(internal.EnvCacheBucket),
		rosterCacheMaxAge)
}

// load reads src from a local file or, for http(s) sources, through client.
func load(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(src)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func looksLikeHTML(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	return bytes.Contains(bytes.ToLower(trimmed[:min(len(trimmed), 512)]),
		[]byte("<html")) || bytes.Contains(bytes.ToLower(trimmed), []byte("<table"))
}
