/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mikeb26/golfclub-teebot/grouping"
	"github.com/mikeb26/golfclub-teebot/internal"
)

// Schedule is a tee time at a course together with the groups formed for it.
type Schedule struct {
	ID         int64            `json:"id"`
	Date       string           `json:"date"` // YYYY-MM-DD
	Time       string           `json:"time"` // HH:MM
	CourseName string           `json:"courseName"`
	Groups     []grouping.Group `json:"groups"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Members flattens the schedule's groups in group order.
func (s *Schedule) Members() []grouping.Member {
	var out []grouping.Member
	for _, g := range s.Groups {
		out = append(out, g.Members...)
	}
	return out
}

// Normalize validates the schedule and rewrites its date and time into
// canonical form.
func (s *Schedule) Normalize() error {
	var err error
	s.CourseName = strings.TrimSpace(s.CourseName)
	if s.CourseName == "" {
		return fmt.Errorf("%w: course name", ErrMissingFields)
	}
	s.Date, err = internal.NormalizeDate(s.Date)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFields, err)
	}
	s.Time, err = internal.NormalizeTime(s.Time)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFields, err)
	}
	if s.Groups == nil {
		s.Groups = []grouping.Group{}
	}
	return nil
}

// SortSchedules orders schedules by date then tee time, earliest first.
func SortSchedules(scheds []Schedule) {
	sort.SliceStable(scheds, func(i, j int) bool {
		if scheds[i].Date != scheds[j].Date {
			return scheds[i].Date < scheds[j].Date
		}
		if scheds[i].Time != scheds[j].Time {
			return scheds[i].Time < scheds[j].Time
		}
		return scheds[i].ID < scheds[j].ID
	})
}
