/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
)

const memberColumns = `id, name, email, phone, handicap, gender, type, status,
	join_date, badges, intro`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (club.Member, error) {
	var m club.Member
	var gender, mtype, status, badges string
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Handicap, &gender,
		&mtype, &status, &m.JoinDate, &badges, &m.Intro)
	if err != nil {
		return m, err
	}
	m.Gender = grouping.Gender(gender)
	m.Type = club.MemberType(mtype)
	m.Status = club.MemberStatus(status)
	m.Badges = []string{}
	if badges != "" {
		if err := json.Unmarshal([]byte(badges), &m.Badges); err != nil {
			return m, fmt.Errorf("member %v badges: %w", m.ID, err)
		}
	}
	return m, nil
}

func encodeBadges(badges []string) (string, error) {
	if badges == nil {
		badges = []string{}
	}
	buf, err := json.Marshal(badges)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func memberOrderBy(by club.MemberSort) string {
	switch by {
	case club.SortName:
		return "name ASC, id DESC"
	case club.SortHandicap:
		return "handicap ASC, id DESC"
	case club.SortJoinDate:
		return "join_date DESC, id DESC"
	default:
		return "id DESC"
	}
}

func (s *Store) ListMembers(ctx context.Context,
	f club.MemberFilter) ([]club.Member, error) {

	var where []string
	var args []any
	if !f.IncludeInactive {
		where = append(where, "status = ?")
		args = append(args, string(club.StatusActive))
	}
	if g := strings.TrimSpace(f.Gender); g != "" && g != club.FilterAll {
		where = append(where, "gender = ?")
		args = append(args, g)
	}
	if ty := strings.TrimSpace(f.Type); ty != "" && ty != club.FilterAll {
		where = append(where, "type = ?")
		args = append(args, ty)
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		where = append(where, `(instr(lower(name), ?) > 0 OR
			instr(lower(email), ?) > 0 OR instr(phone, ?) > 0)`)
		args = append(args, q, q, q)
	}

	query := "SELECT " + memberColumns + " FROM member"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + memberOrderBy(f.Sort)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]club.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("list members: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) GetMember(ctx context.Context, id int64) (*club.Member, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM member WHERE id = ?", id)
	m, err := scanMember(row)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &m, nil
}

func (s *Store) GetMembers(ctx context.Context,
	ids []int64) ([]club.Member, error) {

	if len(ids) == 0 {
		return []club.Member{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, "SELECT "+memberColumns+
		" FROM member WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]club.Member, len(ids))
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("get members: %w", err)
		}
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members := make([]club.Member, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			members = append(members, m)
		}
	}
	return members, nil
}

// CreateMember fills defaults, validates and inserts m, setting m.ID.
func (s *Store) CreateMember(ctx context.Context, m *club.Member) error {
	m.ApplyDefaults(s.now().UTC())
	if err := m.Validate(); err != nil {
		return err
	}
	badges, err := encodeBadges(m.Badges)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO member (name, email, phone,
		handicap, gender, type, status, join_date, badges, intro)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, m.Name, m.Email, m.Phone,
		m.Handicap, string(m.Gender), string(m.Type), string(m.Status),
		m.JoinDate, badges, m.Intro)
	if err != nil {
		return fmt.Errorf("create member %v: %w", m.Name, err)
	}
	m.ID, err = res.LastInsertId()
	return err
}

// UpdateMember overwrites every stored field of m.ID with m.
func (s *Store) UpdateMember(ctx context.Context, m *club.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	badges, err := encodeBadges(m.Badges)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE member SET name = ?, email = ?,
		phone = ?, handicap = ?, gender = ?, type = ?, status = ?, badges = ?,
		intro = ? WHERE id = ?`, m.Name, m.Email, m.Phone, m.Handicap,
		string(m.Gender), string(m.Type), string(m.Status), badges, m.Intro,
		m.ID)
	if err != nil {
		return fmt.Errorf("update member %v: %w", m.ID, err)
	}
	return expectOneRow(res)
}

func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete member %v: %w", id, err)
	}
	return expectOneRow(res)
}
