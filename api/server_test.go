/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
	"github.com/mikeb26/golfclub-teebot/sqlstore"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := sqlstore.OpenTestStore(t)
	s := NewServer(Deps{Members: store, Schedules: store, Courses: store,
		Rounds: store})
	s.RequestLogging = false
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

// do sends body (if non-nil) as JSON and decodes the response into out (if
// non-nil), returning the status code.
func do(t *testing.T, srv *httptest.Server, method, path string, body any,
	out any) int {

	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createMember(t *testing.T, srv *httptest.Server, body map[string]any) club.Member {
	t.Helper()
	var m club.Member
	require.Equal(t, http.StatusCreated, do(t, srv, "POST", "/api/members", body, &m))
	return m
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	var out map[string]string
	assert.Equal(t, http.StatusOK, do(t, srv, "GET", "/health", nil, &out))
	assert.Equal(t, "ok", out["status"])
}

func TestMembersAPI(t *testing.T) {
	srv := newTestServer(t)

	kim := createMember(t, srv, map[string]any{"name": "김골프", "handicap": 12,
		"phone": "010-1111-2222"})
	assert.Equal(t, grouping.Male, kim.Gender)
	assert.Equal(t, club.TypeRegular, kim.Type)
	lee := createMember(t, srv, map[string]any{"name": "이프로", "handicap": 3,
		"gender": "여", "type": "티칭프로"})
	assert.Equal(t, grouping.Female, lee.Gender)

	var list []club.Member
	require.Equal(t, http.StatusOK, do(t, srv, "GET", "/api/members?sort=handicap", nil, &list))
	require.Len(t, list, 2)
	assert.Equal(t, lee.ID, list[0].ID)

	require.Equal(t, http.StatusOK, do(t, srv, "GET",
		"/api/members?gender=%EC%A0%84%EC%B2%B4&search=1111", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, kim.ID, list[0].ID)

	var updated club.Member
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", pathf("/api/members/%d", kim.ID),
		map[string]any{"handicap": 9.5, "intro": "안녕하세요"}, &updated))
	assert.Equal(t, 9.5, updated.Handicap)
	assert.Equal(t, "김골프", updated.Name)
	assert.Equal(t, "안녕하세요", updated.Intro)

	var errOut errorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/members",
		map[string]any{"handicap": 1}, &errOut))
	assert.Contains(t, errOut.Message, "missing required fields")
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "GET", "/api/members?sort=age", nil, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "PUT", "/api/members/abc",
		map[string]any{}, nil))

	assert.Equal(t, http.StatusOK, do(t, srv, "DELETE", pathf("/api/members/%d", kim.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, do(t, srv, "DELETE", pathf("/api/members/%d", kim.ID), nil, &errOut))
	assert.Equal(t, "Not Found", errOut.Error)
	assert.Equal(t, http.StatusNotFound, do(t, srv, "PUT", pathf("/api/members/%d", kim.ID),
		map[string]any{"name": "x"}, nil))
}

func TestUpdateMemberInvalidStatus(t *testing.T) {
	srv := newTestServer(t)
	kim := createMember(t, srv, map[string]any{"name": "김골프", "handicap": 12})

	var errOut errorResponse
	require.Equal(t, http.StatusBadRequest, do(t, srv, "PUT", pathf("/api/members/%d", kim.ID),
		map[string]any{"status": "bogus"}, &errOut))
	assert.Contains(t, errOut.Message, "invalid field")

	var got club.Member
	require.Equal(t, http.StatusOK, do(t, srv, "GET", pathf("/api/members/%d", kim.ID), nil, &got))
	assert.Equal(t, club.StatusActive, got.Status)
}

func TestCoursesAPI(t *testing.T) {
	srv := newTestServer(t)

	var courses []club.Course
	require.Equal(t, http.StatusOK, do(t, srv, "GET", "/api/courses", nil, &courses))
	assert.Len(t, courses, club.DefaultCourseLimit)

	require.Equal(t, http.StatusOK, do(t, srv, "GET",
		"/api/golfcourses?query=%EC%A0%9C%EC%A3%BC&limit=2", nil, &courses))
	assert.Len(t, courses, 2)

	var added club.Course
	require.Equal(t, http.StatusOK, do(t, srv, "POST", "/api/courses",
		map[string]any{"name": "St Andrews", "location": "Scotland"}, &added))
	assert.Positive(t, added.ID)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, "GET", "/api/courses?limit=-1", nil, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/courses",
		map[string]any{"location": "nowhere"}, nil))
}

func TestSchedulesAPI(t *testing.T) {
	srv := newTestServer(t)

	var ids []int64
	for i, h := range []float64{4, 12, 15, 24, 28} {
		m := createMember(t, srv, map[string]any{"name": string(rune('A' + i)),
			"handicap": h})
		ids = append(ids, m.ID)
	}

	var preview previewResponse
	require.Equal(t, http.StatusOK, do(t, srv, "POST", "/api/groups/preview",
		map[string]any{"memberIds": ids, "config": map[string]any{
			"balancingMode": "handicap", "groupSize": 3}}, &preview))
	require.Len(t, preview.Groups, 2)
	assert.Equal(t, "A조", preview.Groups[0].Name)
	assert.Equal(t, 15.7, preview.Spread)

	var formed club.Schedule
	require.Equal(t, http.StatusOK, do(t, srv, "POST", "/api/schedules",
		map[string]any{"date": "2026-04-04", "time": "7:00",
			"courseName": "송추 컨트리클럽", "memberIds": ids}, &formed))
	// default config: equal mode, foursomes
	require.Len(t, formed.Groups, 2)
	assert.Len(t, formed.Groups[0].Members, 3)
	assert.Equal(t, "07:00", formed.Time)

	var manual club.Schedule
	require.Equal(t, http.StatusOK, do(t, srv, "POST", "/api/schedules",
		map[string]any{"date": "2026-04-01", "time": "08:10",
			"courseName": "기흥 컨트리클럽", "groups": []map[string]any{
				{"name": "A조", "members": []map[string]any{{"id": ids[0]}, {"id": ids[4]}}},
			}}, &manual))
	require.Len(t, manual.Groups, 1)
	assert.Equal(t, 32.0, manual.Groups[0].TotalHandicap)

	var list []club.Schedule
	require.Equal(t, http.StatusOK, do(t, srv, "GET", "/api/schedules", nil, &list))
	require.Len(t, list, 2)
	assert.Equal(t, manual.ID, list[0].ID)

	var got club.Schedule
	require.Equal(t, http.StatusOK, do(t, srv, "GET", pathf("/api/schedules/%d", formed.ID), nil, &got))
	assert.Equal(t, formed.Groups, got.Groups)

	var errOut errorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/groups/preview",
		map[string]any{"memberIds": ids[:1]}, &errOut))
	assert.Equal(t, club.ErrTooFewMembers.Error(), errOut.Message)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/groups/preview",
		map[string]any{"memberIds": ids, "config": map[string]any{"groupSize": 0}}, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/schedules",
		map[string]any{"date": "2026-04-04", "time": "7:00", "memberIds": ids}, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/schedules",
		map[string]any{"date": "2026-04-04", "time": "7:00", "courseName": "x",
			"memberIds": []int64{ids[0], 9999}}, nil))

	assert.Equal(t, http.StatusNoContent, do(t, srv, "DELETE", pathf("/api/schedules/%d", formed.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", pathf("/api/schedules/%d", formed.ID), nil, nil))
}

func TestPreviewCriterionAndDuplicates(t *testing.T) {
	srv := newTestServer(t)

	var ids []int64
	for i, h := range []float64{4, 12, 15, 24, 28} {
		m := createMember(t, srv, map[string]any{"name": string(rune('A' + i)),
			"handicap": h})
		ids = append(ids, m.ID)
	}
	cfg := map[string]any{"balancingMode": "handicap", "groupSize": 3}

	var preview previewResponse
	require.Equal(t, http.StatusOK, do(t, srv, "POST", "/api/groups/preview",
		map[string]any{"memberIds": ids, "config": cfg, "criterion": "sum"}, &preview))
	assert.Equal(t, grouping.CriterionSum, preview.Criterion)
	assert.Equal(t, 21.0, preview.Spread)

	require.Equal(t, http.StatusOK, do(t, srv, "POST", "/api/groups/preview",
		map[string]any{"memberIds": ids, "config": cfg}, &preview))
	assert.Equal(t, grouping.CriterionAvg, preview.Criterion)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/groups/preview",
		map[string]any{"memberIds": ids, "config": cfg, "criterion": "median"}, nil))

	var errOut errorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/groups/preview",
		map[string]any{"memberIds": []int64{ids[0], ids[0], ids[1]}}, &errOut))
	assert.Contains(t, errOut.Message, club.ErrDuplicateMember.Error())
}

func TestScheduleGroupsValidationAPI(t *testing.T) {
	srv := newTestServer(t)
	a := createMember(t, srv, map[string]any{"name": "김골프", "handicap": 12})
	b := createMember(t, srv, map[string]any{"name": "이프로", "handicap": 3})

	group := func(name string, ids ...int64) map[string]any {
		members := []map[string]any{}
		for _, id := range ids {
			members = append(members, map[string]any{"id": id})
		}
		return map[string]any{"name": name, "members": members}
	}
	cases := []struct {
		name   string
		groups []map[string]any
		want   string
	}{
		{"empty group", []map[string]any{group("A조", a.ID, b.ID), group("B조")},
			club.ErrMissingFields.Error()},
		{"repeated across groups", []map[string]any{group("A조", a.ID, b.ID),
			group("B조", a.ID)}, club.ErrDuplicateMember.Error()},
		{"repeated within group", []map[string]any{group("A조", a.ID, a.ID)},
			club.ErrDuplicateMember.Error()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var errOut errorResponse
			require.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/schedules",
				map[string]any{"date": "2026-04-01", "time": "08:10",
					"courseName": "기흥 컨트리클럽", "groups": c.groups}, &errOut))
			assert.Contains(t, errOut.Message, c.want)
		})
	}

	var list []club.Schedule
	require.Equal(t, http.StatusOK, do(t, srv, "GET", "/api/schedules", nil, &list))
	assert.Empty(t, list)
}

func TestRoundsAndStatsAPI(t *testing.T) {
	srv := newTestServer(t)
	kim := createMember(t, srv, map[string]any{"name": "김골프"})

	for i, score := range []int{88, 84, 91} {
		var round club.Round
		require.Equal(t, http.StatusCreated, do(t, srv, "POST", "/api/rounds",
			map[string]any{"date": pathf("2026-02-0%d", i+1), "courseName": "화산 컨트리클럽",
				"players": []map[string]any{{"memberId": kim.ID, "score": score}}},
			&round))
		assert.Positive(t, round.ID)
	}

	var errOut errorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, srv, "POST", "/api/rounds",
		map[string]any{"date": "2026-02-05"}, &errOut))
	assert.Equal(t, "missing required fields", errOut.Message)

	var rounds []club.Round
	require.Equal(t, http.StatusOK, do(t, srv, "GET", "/api/rounds", nil, &rounds))
	require.Len(t, rounds, 3)
	assert.Equal(t, "2026-02-03", rounds[0].Date)

	var stats club.Stats
	require.Equal(t, http.StatusOK, do(t, srv, "GET", pathf("/api/members/%d/stats", kim.ID), nil, &stats))
	assert.Equal(t, 3, stats.Rounds)
	assert.Equal(t, 87.7, stats.AvgScore)
	assert.Equal(t, 84, stats.BestScore)
	assert.Equal(t, []int{88, 84, 91}, stats.RecentTrend)

	assert.Equal(t, http.StatusNotFound, do(t, srv, "GET", "/api/members/999/stats", nil, nil))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest("OPTIONS", srv.URL+"/api/members", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
