/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
)

// memberBody is the member payload for POST and PUT. Absent fields leave the
// stored value alone on PUT.
type memberBody struct {
	Name     *string            `json:"name"`
	Email    *string            `json:"email"`
	Phone    *string            `json:"phone"`
	Handicap *float64           `json:"handicap"`
	Gender   *string            `json:"gender"`
	Type     *club.MemberType   `json:"type"`
	Status   *club.MemberStatus `json:"status"`
	Badges   []string           `json:"badges"`
	Intro    *string            `json:"intro"`
}

func (b *memberBody) applyTo(m *club.Member) error {
	if b.Name != nil {
		m.Name = *b.Name
	}
	if b.Email != nil {
		m.Email = *b.Email
	}
	if b.Phone != nil {
		m.Phone = *b.Phone
	}
	if b.Handicap != nil {
		m.Handicap = *b.Handicap
	}
	if b.Gender != nil {
		g, err := grouping.ParseGender(*b.Gender)
		if err != nil {
			return fmt.Errorf("%w: %w", errBadRequest, err)
		}
		m.Gender = g
	}
	if b.Type != nil {
		m.Type = *b.Type
	}
	if b.Status != nil {
		m.Status = *b.Status
	}
	if b.Badges != nil {
		m.Badges = b.Badges
	}
	if b.Intro != nil {
		m.Intro = *b.Intro
	}
	return nil
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := club.ParseMemberSort(q.Get("sort"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	includeInactive, _ := strconv.ParseBool(q.Get("includeInactive"))

	members, err := s.deps.Members.ListMembers(r.Context(), club.MemberFilter{
		Gender:          q.Get("gender"),
		Type:            q.Get("type"),
		Search:          q.Get("search"),
		Sort:            sort,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.deps.Members.GetMember(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) createMember(w http.ResponseWriter, r *http.Request) {
	var body memberBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	var m club.Member
	if err := body.applyTo(&m); err != nil {
		writeError(w, r, err)
		return
	}
	// new members always start active
	m.Status = club.StatusActive
	if err := s.deps.Members.CreateMember(r.Context(), &m); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body memberBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	m, err := s.deps.Members.GetMember(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := body.applyTo(m); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.deps.Members.UpdateMember(r.Context(), m); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.deps.Members.DeleteMember(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK,
		map[string]string{"message": "Member deleted successfully"})
}

func (s *Server) memberStats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.deps.Members.GetMember(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	rounds, err := s.deps.Rounds.ListRounds(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, club.MemberStats(rounds, id))
}
