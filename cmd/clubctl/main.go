/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/courses"
	"github.com/mikeb26/golfclub-teebot/grouping"
	"github.com/mikeb26/golfclub-teebot/internal"
	"github.com/mikeb26/golfclub-teebot/sqlstore"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":          handleHelp,
	"members":       handleMembers,
	"member-add":    handleMemberAdd,
	"courses":       handleCourses,
	"course-import": handleCourseImport,
	"group":         handleGroup,
	"schedule":      handleSchedule,
	"schedules":     handleSchedules,
	"unschedule":    handleUnschedule,
	"rounds":        handleRounds,
	"round-add":     handleRoundAdd,
	"stats":         handleStats,
	"seed":          handleSeed,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func defaultDBPath() string {
	if p := os.Getenv(internal.EnvDatabasePath); p != "" {
		return p
	}
	return internal.DefaultDatabasePath
}

// newFlagSet returns a FlagSet carrying the shared --db flag.
func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	db := fs.String("db", defaultDBPath(), "Path to the club database")
	return fs, db
}

func openStore(path string) *sqlstore.Store {
	store, err := sqlstore.Open(path)
	if err != nil {
		log.Fatalf("Error opening database %v: %v", path, err)
	}
	return store
}

func handleMembers(ctx context.Context, args []string) {
	fs, db := newFlagSet("members")
	gender := fs.String("gender", "", "Only members of this gender")
	mtype := fs.String("type", "", "Only members of this type")
	search := fs.String("search", "", "Match name, email or phone")
	sortBy := fs.String("sort", "", "Sort by name, handicap or joinDate")
	all := fs.Bool("all", false, "Include inactive members")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	sort, err := club.ParseMemberSort(*sortBy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	members, err := store.ListMembers(ctx, club.MemberFilter{
		Gender:          *gender,
		Type:            *mtype,
		Search:          *search,
		Sort:            sort,
		IncludeInactive: *all,
	})
	if err != nil {
		log.Fatalf("Error listing members: %v", err)
	}
	fmt.Print(club.BuildMembersOutput(members))
}

func handleMemberAdd(ctx context.Context, args []string) {
	fs, db := newFlagSet("member-add")
	name := fs.String("name", "", "Member name")
	handicap := fs.Float64("handicap", 0, "Handicap")
	gender := fs.String("gender", "male", "male or female")
	mtype := fs.String("type", string(club.TypeRegular), "Member type")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if strings.TrimSpace(*name) == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --name.")
		fs.Usage()
		os.Exit(1)
	}
	g, err := grouping.ParseGender(*gender)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	m := club.Member{
		Name:     *name,
		Handicap: *handicap,
		Gender:   g,
		Type:     club.MemberType(*mtype),
		Email:    *email,
		Phone:    *phone,
	}
	if err := store.CreateMember(ctx, &m); err != nil {
		log.Fatalf("Error adding member %v: %v", *name, err)
	}
	fmt.Printf("Added %v (MemberID:%d)\n", m.Name, m.ID)
}

func handleCourses(ctx context.Context, args []string) {
	fs, db := newFlagSet("courses")
	query := fs.String("query", "", "Text to match in course name or location")
	limit := fs.Int("limit", club.DefaultCourseLimit, "Maximum results")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	found, err := store.SearchCourses(ctx, *query, *limit)
	if err != nil {
		log.Fatalf("Error searching courses: %v", err)
	}
	fmt.Print(club.BuildCoursesOutput(found))
}

func handleCourseImport(ctx context.Context, args []string) {
	fs, db := newFlagSet("course-import")
	query := fs.String("query", "", "Directory search text")
	pages := fs.Int("pages", 1, "Result pages to read (1-10)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *query == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --query.")
		fs.Usage()
		os.Exit(1)
	}

	client := courses.NewClient(ctx, os.Getenv(internal.EnvCourseDirURL),
		os.Getenv(internal.EnvCacheBucket))
	found, err := client.Search(ctx, *query, *pages)
	if err != nil {
		log.Fatalf("Error searching course directory: %v", err)
	}

	store := openStore(*db)
	defer store.Close()
	added, err := store.ImportCourses(ctx, found)
	if err != nil {
		log.Fatalf("Error importing courses: %v", err)
	}
	fmt.Printf("Found %d courses, imported %d new\n", len(found), added)
}

// groupFlags registers the grouping options shared by group and schedule.
type groupFlags struct {
	ids            *string
	mode           *string
	size           *int
	separateGender *bool
	seed           *int64
}

func addGroupFlags(fs *flag.FlagSet) *groupFlags {
	return &groupFlags{
		ids:            fs.String("ids", "", "Comma separated member IDs"),
		mode:           fs.String("mode", "equal", "equal, handicap or random"),
		size:           fs.Int("size", grouping.DefaultGroupSize, "Players per group"),
		separateGender: fs.Bool("separate-gender", false, "Group men and women separately"),
		seed:           fs.Int64("seed", -1, "Seed for reproducible random groups"),
	}
}

func (gf *groupFlags) parse() ([]int64, grouping.Config, error) {
	ids, err := internal.ParseIDs(*gf.ids)
	if err != nil {
		return nil, grouping.Config{}, err
	}
	mode, err := grouping.ParseMode(*gf.mode)
	if err != nil {
		return nil, grouping.Config{}, err
	}
	cfg := grouping.Config{
		Mode:           mode,
		SeparateGender: *gf.separateGender,
		GroupSize:      *gf.size,
	}
	if *gf.seed >= 0 {
		seed := uint64(*gf.seed)
		cfg.Seed = &seed
	}
	return ids, cfg, nil
}

func handleGroup(ctx context.Context, args []string) {
	fs, db := newFlagSet("group")
	gf := addGroupFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	ids, cfg, err := gf.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	planner := &club.Planner{Members: store, Schedules: store}
	groups, err := planner.Preview(ctx, ids, cfg)
	if err != nil {
		log.Fatalf("Error forming groups: %v", err)
	}
	fmt.Print(club.BuildGroupsOutput(groups))
}

func handleSchedule(ctx context.Context, args []string) {
	fs, db := newFlagSet("schedule")
	date := fs.String("date", "", "Tee date")
	teeTime := fs.String("time", "", "Tee time (HH:MM)")
	course := fs.String("course", "", "Course name")
	gf := addGroupFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	ids, cfg, err := gf.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	planner := &club.Planner{Members: store, Schedules: store}
	sched, err := planner.Schedule(ctx, club.ScheduleRequest{
		Date:       *date,
		Time:       *teeTime,
		CourseName: *course,
		MemberIDs:  ids,
		Config:     cfg,
	})
	if err != nil {
		log.Fatalf("Error scheduling: %v", err)
	}
	fmt.Print(club.BuildSchedulesOutput([]club.Schedule{*sched}))
}

func handleSchedules(ctx context.Context, args []string) {
	fs, db := newFlagSet("schedules")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	scheds, err := store.ListSchedules(ctx)
	if err != nil {
		log.Fatalf("Error listing schedules: %v", err)
	}
	fmt.Print(club.BuildSchedulesOutput(scheds))
	if len(scheds) > 0 {
		fmt.Printf("\nRun '%s unschedule --id <ScheduleID>' to delete a schedule\n",
			os.Args[0])
	}
}

func handleUnschedule(ctx context.Context, args []string) {
	fs, db := newFlagSet("unschedule")
	id := fs.Int64("id", 0, "Schedule ID to delete")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *id <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --id ScheduleID.")
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	if err := store.DeleteSchedule(ctx, *id); err != nil {
		if errors.Is(err, club.ErrNotFound) {
			log.Fatalf("Schedule %d not found", *id)
		}
		log.Fatalf("Error deleting schedule %d: %v", *id, err)
	}
	fmt.Printf("Deleted schedule %d\n", *id)
}

func handleRounds(ctx context.Context, args []string) {
	fs, db := newFlagSet("rounds")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	rounds, err := store.ListRounds(ctx)
	if err != nil {
		log.Fatalf("Error listing rounds: %v", err)
	}
	if len(rounds) == 0 {
		fmt.Println("No rounds recorded")
		return
	}
	for _, r := range rounds {
		fmt.Printf("%s  %s (RoundID:%d)\n", r.Date, r.CourseName, r.ID)
		for _, p := range r.Players {
			fmt.Printf("  - %s: %d\n", p.Name, p.Score)
		}
	}
}

// parseScores parses "key=score,..." pairs.
func parseScores(s string) ([][2]string, error) {
	var out [][2]string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid score %q; expected key=score", f)
		}
		out = append(out, [2]string{strings.TrimSpace(key), strings.TrimSpace(val)})
	}
	return out, nil
}

func buildPlayers(scores string, guests string) ([]club.RoundPlayer, error) {
	var players []club.RoundPlayer
	memberScores, err := parseScores(scores)
	if err != nil {
		return nil, err
	}
	for _, kv := range memberScores {
		id, err := strconv.ParseInt(kv[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid member id %q", kv[0])
		}
		score, err := strconv.Atoi(kv[1])
		if err != nil {
			return nil, fmt.Errorf("invalid score %q", kv[1])
		}
		players = append(players, club.RoundPlayer{MemberID: &id, Score: score})
	}

	guestScores, err := parseScores(guests)
	if err != nil {
		return nil, err
	}
	for _, kv := range guestScores {
		score, err := strconv.Atoi(kv[1])
		if err != nil {
			return nil, fmt.Errorf("invalid score %q", kv[1])
		}
		players = append(players, club.RoundPlayer{Name: kv[0], Score: score})
	}
	return players, nil
}

func handleRoundAdd(ctx context.Context, args []string) {
	fs, db := newFlagSet("round-add")
	date := fs.String("date", "", "Date played")
	course := fs.String("course", "", "Course name")
	scores := fs.String("scores", "", "memberID=score pairs, comma separated")
	guests := fs.String("guests", "", "name=score pairs for guests")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	players, err := buildPlayers(*scores, *guests)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	r := club.Round{Date: *date, CourseName: *course, Players: players}
	if err := store.CreateRound(ctx, &r); err != nil {
		log.Fatalf("Error recording round: %v", err)
	}
	fmt.Printf("Recorded round %d with %d players\n", r.ID, len(r.Players))
}

func handleStats(ctx context.Context, args []string) {
	fs, db := newFlagSet("stats")
	id := fs.Int64("id", 0, "Member ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *id <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --id MemberID.")
		fs.Usage()
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()
	m, err := store.GetMember(ctx, *id)
	if err != nil {
		log.Fatalf("Error fetching member %d: %v", *id, err)
	}
	rounds, err := store.ListRounds(ctx)
	if err != nil {
		log.Fatalf("Error listing rounds: %v", err)
	}
	fmt.Print(club.BuildStatsOutput(m.Name, club.MemberStats(rounds, m.ID)))
}

func handleSeed(ctx context.Context, args []string) {
	fs, db := newFlagSet("seed")
	file := fs.String("file", "", "Seed file (YAML or JSON)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --file.")
		fs.Usage()
		os.Exit(1)
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Error reading %v: %v", *file, err)
	}
	seed, err := club.ParseSeed(data)
	if err != nil {
		log.Fatalf("Error parsing %v: %v", *file, err)
	}

	store := openStore(*db)
	defer store.Close()
	res, err := club.ApplySeed(ctx, store, store, seed)
	if err != nil {
		log.Fatalf("Error seeding: %v", err)
	}
	fmt.Printf("Imported %d members and %d scores", res.Members, res.Rounds)
	if res.Skipped > 0 {
		fmt.Printf(" (%d scores for unknown members skipped)", res.Skipped)
	}
	fmt.Println()
}
