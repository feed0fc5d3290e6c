/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package api serves the club's members, courses, schedules and rounds as a
// JSON REST API.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mikeb26/golfclub-teebot/club"
)

// Deps are the stores the server reads and writes.
type Deps struct {
	Members   club.MemberDirectory
	Schedules club.ScheduleStore
	Courses   club.CourseCatalog
	Rounds    club.RoundLog
}

type Server struct {
	deps    Deps
	planner *club.Planner

	// RequestLogging enables chi's per-request log line.
	RequestLogging bool
}

func NewServer(deps Deps) *Server {
	return &Server{
		deps: deps,
		planner: &club.Planner{
			Members:   deps.Members,
			Schedules: deps.Schedules,
		},
		RequestLogging: true,
	}
}

// Router returns the handler for every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	if s.RequestLogging {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("The golf club backend is running!\n"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Get("/", s.listMembers)
			r.Post("/", s.createMember)
			r.Get("/{id}", s.getMember)
			r.Put("/{id}", s.updateMember)
			r.Delete("/{id}", s.deleteMember)
			r.Get("/{id}/stats", s.memberStats)
		})
		courses := func(r chi.Router) {
			r.Get("/", s.searchCourses)
			r.Post("/", s.addCourse)
		}
		r.Route("/courses", courses)
		r.Route("/golfcourses", courses)
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", s.listSchedules)
			r.Post("/", s.createSchedule)
			r.Get("/{id}", s.getSchedule)
			r.Delete("/{id}", s.deleteSchedule)
		})
		r.Route("/rounds", func(r chi.Router) {
			r.Get("/", s.listRounds)
			r.Post("/", s.createRound)
		})
		r.Post("/groups/preview", s.previewGroups)
	})

	return r
}
