/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
)

// CreateSchedule stores s with its groups and member snapshots, setting
// s.ID and s.CreatedAt.
func (s *Store) CreateSchedule(ctx context.Context, sched *club.Schedule) error {
	if err := sched.Normalize(); err != nil {
		return err
	}
	createdAt := s.now().UTC()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO schedule (date, time,
			course_name, created_at) VALUES (?, ?, ?, ?)`, sched.Date,
			sched.Time, sched.CourseName, createdAt)
		if err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for pos, g := range sched.Groups {
			res, err := tx.ExecContext(ctx, `INSERT INTO schedule_group
				(schedule_id, position, name, total_handicap, avg_handicap)
				VALUES (?, ?, ?, ?, ?)`, id, pos, g.Name, g.TotalHandicap,
				g.AvgHandicap)
			if err != nil {
				return fmt.Errorf("create schedule group %v: %w", g.Name, err)
			}
			groupID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for mpos, m := range g.Members {
				_, err := tx.ExecContext(ctx, `INSERT INTO schedule_group_member
					(group_id, position, member_id, name, handicap, gender)
					VALUES (?, ?, ?, ?, ?, ?)`, groupID, mpos, m.ID, m.Name,
					m.Handicap, string(m.Gender))
				if err != nil {
					return fmt.Errorf("create schedule group %v member %v: %w",
						g.Name, m.ID, err)
				}
			}
		}

		sched.ID = id
		sched.CreatedAt = createdAt
		return nil
	})
}

func (s *Store) GetSchedule(ctx context.Context,
	id int64) (*club.Schedule, error) {

	var sched club.Schedule
	err := s.db.QueryRowContext(ctx, `SELECT id, date, time, course_name,
		created_at FROM schedule WHERE id = ?`, id).Scan(&sched.ID, &sched.Date,
		&sched.Time, &sched.CourseName, &sched.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}

	groups, err := s.loadGroups(ctx, "WHERE g.schedule_id = ?", id)
	if err != nil {
		return nil, err
	}
	sched.Groups = groups[id]
	if sched.Groups == nil {
		sched.Groups = []grouping.Group{}
	}
	return &sched, nil
}

func (s *Store) ListSchedules(ctx context.Context) ([]club.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date, time, course_name,
		created_at FROM schedule ORDER BY date, time, id`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	scheds := make([]club.Schedule, 0)
	for rows.Next() {
		var sched club.Schedule
		err := rows.Scan(&sched.ID, &sched.Date, &sched.Time,
			&sched.CourseName, &sched.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		scheds = append(scheds, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	groups, err := s.loadGroups(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range scheds {
		scheds[i].Groups = groups[scheds[i].ID]
		if scheds[i].Groups == nil {
			scheds[i].Groups = []grouping.Group{}
		}
	}
	return scheds, nil
}

// loadGroups reads groups and their members, keyed by schedule id, in
// formation order.
func (s *Store) loadGroups(ctx context.Context, where string,
	args ...any) (map[int64][]grouping.Group, error) {

	rows, err := s.db.QueryContext(ctx, `SELECT g.schedule_id, g.position,
		g.name, g.total_handicap, g.avg_handicap, m.member_id, m.name,
		m.handicap, m.gender
		FROM schedule_group g
		LEFT JOIN schedule_group_member m ON m.group_id = g.id `+where+`
		ORDER BY g.schedule_id, g.position, m.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("load schedule groups: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]grouping.Group)
	for rows.Next() {
		var schedID int64
		var g grouping.Group
		var memberID sql.NullInt64
		var name, gender sql.NullString
		var handicap sql.NullFloat64
		err := rows.Scan(&schedID, &g.ID, &g.Name, &g.TotalHandicap,
			&g.AvgHandicap, &memberID, &name, &handicap, &gender)
		if err != nil {
			return nil, fmt.Errorf("load schedule groups: %w", err)
		}

		groups := out[schedID]
		if len(groups) == 0 || groups[len(groups)-1].ID != g.ID {
			g.Members = []grouping.Member{}
			groups = append(groups, g)
		}
		if memberID.Valid {
			last := &groups[len(groups)-1]
			last.Members = append(last.Members, grouping.Member{
				ID:       memberID.Int64,
				Name:     name.String,
				Handicap: handicap.Float64,
				Gender:   grouping.Gender(gender.String),
			})
		}
		out[schedID] = groups
	}
	return out, rows.Err()
}

func (s *Store) DeleteSchedule(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM schedule WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete schedule %v: %w", id, err)
	}
	return expectOneRow(res)
}
