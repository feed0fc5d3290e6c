/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mikeb26/golfclub-teebot/club"
)

// ListRounds returns every round with its players, newest first.
func (s *Store) ListRounds(ctx context.Context) ([]club.Round, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date, course_name
		FROM round ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	rounds := make([]club.Round, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var r club.Round
		if err := rows.Scan(&r.ID, &r.Date, &r.CourseName); err != nil {
			return nil, fmt.Errorf("list rounds: %w", err)
		}
		r.Players = []club.RoundPlayer{}
		index[r.ID] = len(rounds)
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	prows, err := s.db.QueryContext(ctx, `SELECT round_id, member_id, name,
		score, diff FROM round_player ORDER BY round_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list round players: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var roundID int64
		var memberID, diff sql.NullInt64
		var p club.RoundPlayer
		err := prows.Scan(&roundID, &memberID, &p.Name, &p.Score, &diff)
		if err != nil {
			return nil, fmt.Errorf("list round players: %w", err)
		}
		if memberID.Valid {
			p.MemberID = &memberID.Int64
		}
		if diff.Valid {
			d := int(diff.Int64)
			p.Diff = &d
		}
		if i, ok := index[roundID]; ok {
			rounds[i].Players = append(rounds[i].Players, p)
		}
	}
	return rounds, prows.Err()
}

// CreateRound validates and stores r, setting r.ID. Players that reference a
// member without giving a name take the member's name.
func (s *Store) CreateRound(ctx context.Context, r *club.Round) error {
	if err := r.Normalize(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range r.Players {
			p := &r.Players[i]
			p.Name = strings.TrimSpace(p.Name)
			if p.MemberID == nil {
				continue
			}
			var name string
			err := tx.QueryRowContext(ctx,
				"SELECT name FROM member WHERE id = ?", *p.MemberID).Scan(&name)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %v", club.ErrUnknownMember, *p.MemberID)
			} else if err != nil {
				return fmt.Errorf("create round: %w", err)
			}
			if p.Name == "" {
				p.Name = name
			}
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO round (date, course_name) VALUES (?, ?)", r.Date,
			r.CourseName)
		if err != nil {
			return fmt.Errorf("create round: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for pos, p := range r.Players {
			var memberID, diff any
			if p.MemberID != nil {
				memberID = *p.MemberID
			}
			if p.Diff != nil {
				diff = *p.Diff
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO round_player (round_id,
				position, member_id, name, score, diff) VALUES (?, ?, ?, ?, ?, ?)`,
				id, pos, memberID, p.Name, p.Score, diff)
			if err != nil {
				return fmt.Errorf("create round player %v: %w", p.Name, err)
			}
		}

		r.ID = id
		return nil
	})
}
