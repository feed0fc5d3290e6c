/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("/tmp/golf.db")

	assert.Contains(t, dsn, "_journal_mode=WAL")
	assert.Contains(t, dsn, "_busy_timeout=5000")
	assert.Contains(t, dsn, "_synchronous=NORMAL")
	assert.Contains(t, dsn, "_foreign_keys=on")
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := OpenTestStore(t)
	require.NoError(t, Migrate(s.db))
}

func addMember(t *testing.T, s *Store, m club.Member) club.Member {
	t.Helper()
	require.NoError(t, s.CreateMember(context.Background(), &m))
	require.Positive(t, m.ID)
	return m
}

func TestMemberCRUD(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	kim := addMember(t, s, club.Member{Name: "김골프", Handicap: 12.5,
		Badges: []string{"이글"}})

	got, err := s.GetMember(ctx, kim.ID)
	require.NoError(t, err)
	assert.Equal(t, "김골프", got.Name)
	assert.Equal(t, grouping.Male, got.Gender)
	assert.Equal(t, club.TypeRegular, got.Type)
	assert.Equal(t, club.StatusActive, got.Status)
	assert.Equal(t, []string{"이글"}, got.Badges)
	assert.True(t, fixed.Equal(got.JoinDate), "join date %v", got.JoinDate)

	got.Handicap = 10
	got.Intro = "hello"
	require.NoError(t, s.UpdateMember(ctx, got))
	got, err = s.GetMember(ctx, kim.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Handicap)
	assert.Equal(t, "hello", got.Intro)

	require.NoError(t, s.DeleteMember(ctx, kim.ID))
	_, err = s.GetMember(ctx, kim.ID)
	assert.ErrorIs(t, err, club.ErrNotFound)
	assert.ErrorIs(t, s.DeleteMember(ctx, kim.ID), club.ErrNotFound)
	assert.ErrorIs(t, s.UpdateMember(ctx, got), club.ErrNotFound)
}

func TestCreateMemberRejectsMissingName(t *testing.T) {
	s := OpenTestStore(t)
	err := s.CreateMember(context.Background(), &club.Member{Name: "  "})
	assert.ErrorIs(t, err, club.ErrMissingFields)
}

func TestListMembersFilters(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	a := addMember(t, s, club.Member{Name: "Alice Park", Handicap: 8,
		Gender: grouping.Female, Email: "alice@example.com"})
	b := addMember(t, s, club.Member{Name: "Bob Lee", Handicap: 20,
		Phone: "010-5555-1212", Type: club.TypeTeachPro})
	c := addMember(t, s, club.Member{Name: "Chris Kim", Handicap: 14,
		Status: club.StatusInactive})

	ids := func(ms []club.Member) []int64 {
		out := []int64{}
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	cases := []struct {
		name string
		f    club.MemberFilter
		want []int64
	}{
		{"default", club.MemberFilter{}, []int64{b.ID, a.ID}},
		{"inactive too", club.MemberFilter{IncludeInactive: true}, []int64{c.ID, b.ID, a.ID}},
		{"female", club.MemberFilter{Gender: "female"}, []int64{a.ID}},
		{"all", club.MemberFilter{Gender: club.FilterAll, Type: club.FilterAll}, []int64{b.ID, a.ID}},
		{"type", club.MemberFilter{Type: string(club.TypeTeachPro)}, []int64{b.ID}},
		{"search name", club.MemberFilter{Search: "ALICE"}, []int64{a.ID}},
		{"search phone", club.MemberFilter{Search: "5555"}, []int64{b.ID}},
		{"by handicap", club.MemberFilter{Sort: club.SortHandicap, IncludeInactive: true},
			[]int64{a.ID, c.ID, b.ID}},
		{"by name", club.MemberFilter{Sort: club.SortName}, []int64{a.ID, b.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListMembers(ctx, tc.f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestGetMembersKeepsRequestOrder(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)
	a := addMember(t, s, club.Member{Name: "a"})
	b := addMember(t, s, club.Member{Name: "b"})

	got, err := s.GetMembers(ctx, []int64{b.ID, 999, a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	got, err = s.GetMembers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchCoursesSeedsAndLimits(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	all, err := s.SearchCourses(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, club.DefaultCourseLimit)

	jeju, err := s.SearchCourses(ctx, "제주", 0)
	require.NoError(t, err)
	assert.Len(t, jeju, 3)

	yongin, err := s.SearchCourses(ctx, "용인", 2)
	require.NoError(t, err)
	assert.Len(t, yongin, 2)

	c := club.Course{Name: "Pebble Beach", Location: "California"}
	require.NoError(t, s.AddCourse(ctx, &c))
	assert.Positive(t, c.ID)

	found, err := s.SearchCourses(ctx, "pebble", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "California", found[0].Location)

	assert.ErrorIs(t, s.AddCourse(ctx, &club.Course{}), club.ErrMissingFields)
}

func TestImportCoursesSkipsKnownNames(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	added, err := s.ImportCourses(ctx, []club.Course{
		{Name: "안양 컨트리클럽"},
		{Name: "Augusta National", Location: "Georgia"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	found, err := s.SearchCourses(ctx, "안양", 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestScheduleRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)
	planner := &club.Planner{Members: s, Schedules: s}

	var ids []int64
	for i, h := range []float64{4, 12, 15, 24, 28} {
		m := addMember(t, s, club.Member{Name: string(rune('A' + i)), Handicap: h})
		ids = append(ids, m.ID)
	}

	sched, err := planner.Schedule(ctx, club.ScheduleRequest{
		Date: "2026-03-08", Time: "7:30", CourseName: "남서울 컨트리클럽",
		MemberIDs: ids,
		Config:    grouping.Config{Mode: grouping.ModeHandicap, GroupSize: 4},
	})
	require.NoError(t, err)
	require.Positive(t, sched.ID)

	later, err := planner.Schedule(ctx, club.ScheduleRequest{
		Date: "2026-03-01", Time: "9:00", CourseName: "뉴서울 컨트리클럽",
		MemberIDs: ids[:2], Config: grouping.DefaultConfig(),
	})
	require.NoError(t, err)

	got, err := s.GetSchedule(ctx, sched.ID)
	require.NoError(t, err)
	assert.Equal(t, "07:30", got.Time)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "A조", got.Groups[0].Name)
	assert.Equal(t, 1, got.Groups[1].ID)
	assert.Equal(t, sched.Groups, got.Groups)

	// the stored snapshot survives the member leaving the club
	require.NoError(t, s.DeleteMember(ctx, ids[4]))
	got, err = s.GetSchedule(ctx, sched.ID)
	require.NoError(t, err)
	assert.Equal(t, "E", got.Groups[1].Members[0].Name)

	list, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, later.ID, list[0].ID)
	assert.Equal(t, sched.ID, list[1].ID)
	assert.Len(t, list[1].Members(), 5)

	require.NoError(t, s.DeleteSchedule(ctx, sched.ID))
	_, err = s.GetSchedule(ctx, sched.ID)
	assert.ErrorIs(t, err, club.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSchedule(ctx, sched.ID), club.ErrNotFound)
}

func TestScheduleWithoutGroups(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	sched := &club.Schedule{Date: "2026-04-01", Time: "06:40", CourseName: "설해원"}
	require.NoError(t, s.CreateSchedule(ctx, sched))
	got, err := s.GetSchedule(ctx, sched.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Groups)
	assert.Empty(t, got.Groups)
}

func TestRounds(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)
	kim := addMember(t, s, club.Member{Name: "김골프"})

	diff := 12
	first := &club.Round{Date: "2026-02-01", CourseName: "송추 컨트리클럽",
		Players: []club.RoundPlayer{
			{MemberID: &kim.ID, Score: 84, Diff: &diff},
			{Name: "guest", Score: 101},
		}}
	require.NoError(t, s.CreateRound(ctx, first))
	assert.Equal(t, "김골프", first.Players[0].Name)

	second := &club.Round{Date: "2026-03-01", Players: []club.RoundPlayer{
		{MemberID: &kim.ID, Score: 80}}}
	require.NoError(t, s.CreateRound(ctx, second))

	rounds, err := s.ListRounds(ctx)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, second.ID, rounds[0].ID)
	require.Len(t, rounds[1].Players, 2)
	require.NotNil(t, rounds[1].Players[0].Diff)
	assert.Equal(t, 12, *rounds[1].Players[0].Diff)
	assert.Nil(t, rounds[1].Players[1].MemberID)

	stats := club.MemberStats(rounds, kim.ID)
	assert.Equal(t, 2, stats.Rounds)
	assert.Equal(t, 82.0, stats.AvgScore)
	assert.Equal(t, []int{84, 80}, stats.RecentTrend)

	unknown := int64(404)
	err = s.CreateRound(ctx, &club.Round{Date: "2026-03-02",
		Players: []club.RoundPlayer{{MemberID: &unknown, Score: 90}}})
	assert.ErrorIs(t, err, club.ErrUnknownMember)

	// deleting a member keeps the scores as guest entries
	require.NoError(t, s.DeleteMember(ctx, kim.ID))
	rounds, err = s.ListRounds(ctx)
	require.NoError(t, err)
	assert.Nil(t, rounds[0].Players[0].MemberID)
	assert.Equal(t, "김골프", rounds[0].Players[0].Name)
}
