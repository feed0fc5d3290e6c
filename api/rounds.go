/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"net/http"

	"github.com/mikeb26/golfclub-teebot/club"
)

func (s *Server) listRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.deps.Rounds.ListRounds(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rounds)
}

func (s *Server) createRound(w http.ResponseWriter, r *http.Request) {
	var round club.Round
	if err := decodeJSON(w, r, &round); err != nil {
		writeError(w, r, err)
		return
	}
	round.ID = 0
	if err := s.deps.Rounds.CreateRound(r.Context(), &round); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, round)
}
