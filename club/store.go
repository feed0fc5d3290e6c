/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"context"
)

// MemberDirectory supplies member records. GetMembers returns the members
// for ids in the order requested and skips ids it does not know.
type MemberDirectory interface {
	ListMembers(ctx context.Context, f MemberFilter) ([]Member, error)
	GetMember(ctx context.Context, id int64) (*Member, error)
	GetMembers(ctx context.Context, ids []int64) ([]Member, error)
	CreateMember(ctx context.Context, m *Member) error
	UpdateMember(ctx context.Context, m *Member) error
	DeleteMember(ctx context.Context, id int64) error
}

// ScheduleStore persists formed schedules. CreateSchedule assigns the ID
// and CreatedAt; ListSchedules returns earliest tee time first.
type ScheduleStore interface {
	CreateSchedule(ctx context.Context, s *Schedule) error
	GetSchedule(ctx context.Context, id int64) (*Schedule, error)
	ListSchedules(ctx context.Context) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error
}

type CourseCatalog interface {
	// SearchCourses returns at most limit courses whose name or location
	// contains query. limit <= 0 means DefaultCourseLimit.
	SearchCourses(ctx context.Context, query string, limit int) ([]Course, error)
	AddCourse(ctx context.Context, c *Course) error
}

// RoundLog keeps played rounds. ListRounds returns newest first.
type RoundLog interface {
	ListRounds(ctx context.Context) ([]Round, error)
	CreateRound(ctx context.Context, r *Round) error
}
