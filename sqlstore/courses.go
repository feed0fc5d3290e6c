/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/mikeb26/golfclub-teebot/club"
)

// SearchCourses returns courses whose name or location contains query. An
// empty catalog is first seeded with club.DefaultCourses().
func (s *Store) SearchCourses(ctx context.Context, query string,
	limit int) ([]club.Course, error) {

	if limit <= 0 {
		limit = club.DefaultCourseLimit
	}
	if err := s.seedCourses(ctx); err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, location, distance
		FROM course
		WHERE ? = '' OR instr(lower(name), ?) > 0 OR instr(lower(location), ?) > 0
		ORDER BY id LIMIT ?`, q, q, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search courses %q: %w", query, err)
	}
	defer rows.Close()

	courses := make([]club.Course, 0)
	for rows.Next() {
		var c club.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.Distance); err != nil {
			return nil, fmt.Errorf("search courses %q: %w", query, err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) seedCourses(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		err := tx.QueryRowContext(ctx, "SELECT count(*) FROM course").Scan(&count)
		if err != nil {
			return fmt.Errorf("count courses: %w", err)
		}
		if count > 0 {
			return nil
		}
		log.Printf("sqlstore.seedCourses: seeding %v golf courses",
			len(club.DefaultCourses()))
		for _, c := range club.DefaultCourses() {
			if err := insertCourse(ctx, tx, &c); err != nil {
				return err
			}
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertCourse(ctx context.Context, db execer, c *club.Course) error {
	res, err := db.ExecContext(ctx, `INSERT INTO course (name, location,
		distance) VALUES (?, ?, ?)`, c.Name, c.Location, c.Distance)
	if err != nil {
		return fmt.Errorf("add course %v: %w", c.Name, err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (s *Store) AddCourse(ctx context.Context, c *club.Course) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	return insertCourse(ctx, s.db, c)
}

// ImportCourses adds the courses whose name is not yet in the catalog and
// returns how many were added. The default catalog is seeded first so an
// import never suppresses it.
func (s *Store) ImportCourses(ctx context.Context,
	courses []club.Course) (int, error) {

	if err := s.seedCourses(ctx); err != nil {
		return 0, err
	}
	added := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range courses {
			c := &courses[i]
			c.Name = strings.TrimSpace(c.Name)
			if err := c.Validate(); err != nil {
				return err
			}
			var exists bool
			err := tx.QueryRowContext(ctx,
				"SELECT EXISTS (SELECT 1 FROM course WHERE name = ?)",
				c.Name).Scan(&exists)
			if err != nil {
				return fmt.Errorf("import course %v: %w", c.Name, err)
			}
			if exists {
				continue
			}
			if err := insertCourse(ctx, tx, c); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
