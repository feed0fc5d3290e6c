/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mikeb26/golfclub-teebot/api"
	"github.com/mikeb26/golfclub-teebot/internal"
	"github.com/mikeb26/golfclub-teebot/s3store"
	"github.com/mikeb26/golfclub-teebot/sqlstore"
)

type serverConfig struct {
	port           int
	dbPath         string
	scheduleBucket string
	quiet          bool
}

// parseConfig reads flags, falling back to the environment for anything not
// given on the command line.
func parseConfig(args []string, getenv func(string) string,
	output io.Writer) (serverConfig, error) {

	cfg := serverConfig{
		port:           internal.DefaultPort,
		dbPath:         internal.DefaultDatabasePath,
		scheduleBucket: getenv(internal.EnvScheduleBkt),
	}
	if p := getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q", p)
		}
		cfg.port = port
	}
	if p := getenv(internal.EnvDatabasePath); p != "" {
		cfg.dbPath = p
	}

	fs := flag.NewFlagSet("clubapi", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.port, "p", cfg.port, "Port to listen on")
	fs.StringVar(&cfg.dbPath, "db", cfg.dbPath, "Path to the club database")
	fs.StringVar(&cfg.scheduleBucket, "schedule-bucket", cfg.scheduleBucket,
		"Keep schedules in this S3 bucket instead of the database")
	fs.BoolVar(&cfg.quiet, "q", false, "Disable per-request logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.port <= 0 || cfg.port > 65535 {
		return cfg, fmt.Errorf("invalid port %d", cfg.port)
	}

	return cfg, nil
}

// buildDeps wires the stores: everything lives in store unless schedules
// were redirected to an S3 bucket.
func buildDeps(ctx context.Context, cfg serverConfig,
	store *sqlstore.Store) (api.Deps, error) {

	deps := api.Deps{
		Members:   store,
		Schedules: store,
		Courses:   store,
		Rounds:    store,
	}
	if cfg.scheduleBucket == "" {
		return deps, nil
	}

	bucket := s3store.NewBucket(ctx, cfg.scheduleBucket, "golfclub", false)
	if err := bucket.Init(); err != nil {
		return deps, err
	}
	deps.Schedules = s3store.NewScheduleStore(bucket)
	log.Printf("clubapi: schedules stored in s3://%v", bucket.Name())

	return deps, nil
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("clubapi: failed to read .env: %v", err)
	}

	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("clubapi: %v", err)
	}

	ctx := context.Background()
	store, err := sqlstore.Open(cfg.dbPath)
	if err != nil {
		log.Fatalf("clubapi: failed to open %v: %v", cfg.dbPath, err)
	}
	defer store.Close()

	deps, err := buildDeps(ctx, cfg, store)
	if err != nil {
		log.Fatalf("clubapi: %v", err)
	}
	srv := api.NewServer(deps)
	srv.RequestLogging = !cfg.quiet

	log.Printf("clubapi: listening on :%d (db %v)", cfg.port, cfg.dbPath)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.port),
		srv.Router()); err != nil {
		log.Fatalf("clubapi: serve failed: %v", err)
	}
}
