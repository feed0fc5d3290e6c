/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"net/http"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
)

// scheduleBody creates a schedule either from organizer-arranged groups or
// by forming groups from memberIds and config. memberIds wins when both are
// given.
type scheduleBody struct {
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	CourseName string          `json:"courseName"`
	Groups     []groupBody     `json:"groups"`
	MemberIDs  []int64         `json:"memberIds"`
	Config     grouping.Config `json:"config"`
}

type groupBody struct {
	Name    string `json:"name"`
	Members []struct {
		ID int64 `json:"id"`
	} `json:"members"`
}

type previewBody struct {
	MemberIDs []int64         `json:"memberIds"`
	Config    grouping.Config `json:"config"`
	// Criterion selects the metric Spread compares: "avg" (default) or "sum".
	Criterion string `json:"criterion"`
}

type previewResponse struct {
	Groups    []grouping.Group   `json:"groups"`
	Criterion grouping.Criterion `json:"criterion"`
	// Spread is the difference between the highest and lowest group metric.
	Spread float64 `json:"spread"`
}

func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	scheds, err := s.deps.Schedules.ListSchedules(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scheds)
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sched, err := s.deps.Schedules.GetSchedule(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) createSchedule(w http.ResponseWriter, r *http.Request) {
	body := scheduleBody{Config: grouping.DefaultConfig()}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	var sched *club.Schedule
	var err error
	if len(body.MemberIDs) > 0 {
		sched, err = s.planner.Schedule(r.Context(), club.ScheduleRequest{
			Date:       body.Date,
			Time:       body.Time,
			CourseName: body.CourseName,
			MemberIDs:  body.MemberIDs,
			Config:     body.Config,
		})
	} else {
		sels := make([]club.GroupSelection, len(body.Groups))
		for i, g := range body.Groups {
			sels[i].Name = g.Name
			for _, m := range g.Members {
				sels[i].MemberIDs = append(sels[i].MemberIDs, m.ID)
			}
		}
		sched, err = s.planner.ScheduleGroups(r.Context(), body.Date, body.Time,
			body.CourseName, sels)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.deps.Schedules.DeleteSchedule(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) previewGroups(w http.ResponseWriter, r *http.Request) {
	body := previewBody{Config: grouping.DefaultConfig()}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	crit, err := grouping.ParseCriterion(body.Criterion)
	if err != nil {
		writeError(w, r, err)
		return
	}
	groups, err := s.planner.Preview(r.Context(), body.MemberIDs, body.Config)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{
		Groups:    groups,
		Criterion: crit,
		Spread:    grouping.Spread(groups, crit),
	})
}
