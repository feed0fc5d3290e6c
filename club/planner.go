/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mikeb26/golfclub-teebot/grouping"
)

// MinSelection is the fewest members a grouping request may select.
const MinSelection = 2

var (
	ErrTooFewMembers   = errors.New("select at least 2 members")
	ErrUnknownMember   = errors.New("unknown member")
	ErrDuplicateMember = errors.New("member selected more than once")
)

// checkUnique rejects an id that appears more than once in ids. seen carries
// ids from earlier selections and may be nil.
func checkUnique(ids []int64, seen map[int64]bool) error {
	if seen == nil {
		seen = make(map[int64]bool, len(ids))
	}
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: %v", ErrDuplicateMember, id)
		}
		seen[id] = true
	}
	return nil
}

// Planner turns a member selection into groups and persists them as
// schedules.
type Planner struct {
	Members   MemberDirectory
	Schedules ScheduleStore
}

type ScheduleRequest struct {
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	CourseName string          `json:"courseName"`
	MemberIDs  []int64         `json:"memberIds"`
	Config     grouping.Config `json:"config"`
}

// Preview resolves memberIDs against the directory and forms groups without
// saving anything. The selection order is preserved as the engine's input
// order.
func (p *Planner) Preview(ctx context.Context, memberIDs []int64,
	cfg grouping.Config) ([]grouping.Group, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(memberIDs) < MinSelection {
		return nil, ErrTooFewMembers
	}
	if err := checkUnique(memberIDs, nil); err != nil {
		return nil, err
	}

	members, err := p.Members.GetMembers(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("loading selected members: %w", err)
	}
	if len(members) != len(memberIDs) {
		known := make(map[int64]bool, len(members))
		for _, m := range members {
			known[m.ID] = true
		}
		for _, id := range memberIDs {
			if !known[id] {
				return nil, fmt.Errorf("%w: %v", ErrUnknownMember, id)
			}
		}
	}

	selected := make([]grouping.Member, len(members))
	for i, m := range members {
		selected[i] = m.ForGrouping()
	}
	return grouping.FormGroups(selected, cfg)
}

// Schedule forms groups for req and saves them as a new schedule.
func (p *Planner) Schedule(ctx context.Context,
	req ScheduleRequest) (*Schedule, error) {

	sched := &Schedule{
		Date:       req.Date,
		Time:       req.Time,
		CourseName: req.CourseName,
	}
	// reject a bad date or course before doing any grouping work
	if err := sched.Normalize(); err != nil {
		return nil, err
	}

	groups, err := p.Preview(ctx, req.MemberIDs, req.Config)
	if err != nil {
		return nil, err
	}
	sched.Groups = groups

	if err := p.Schedules.CreateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}
	return sched, nil
}

// SaveSchedule persists groups the caller already formed, e.g. a preview
// the organizer accepted.
func (p *Planner) SaveSchedule(ctx context.Context, sched *Schedule) error {
	if err := sched.Normalize(); err != nil {
		return err
	}
	if err := p.Schedules.CreateSchedule(ctx, sched); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	return nil
}

// GroupSelection is a group an organizer put together by hand.
type GroupSelection struct {
	// Name overrides the positional label when set.
	Name      string  `json:"name"`
	MemberIDs []int64 `json:"memberIds"`
}

// ScheduleGroups saves a schedule whose groups were arranged by the caller.
// Member details are read from the directory so the stored groups carry the
// same snapshot and totals as formed groups. Every group needs at least one
// member and no member may appear twice.
func (p *Planner) ScheduleGroups(ctx context.Context, date string,
	teeTime string, courseName string,
	sels []GroupSelection) (*Schedule, error) {

	sched := &Schedule{
		Date:       date,
		Time:       teeTime,
		CourseName: courseName,
	}
	if err := sched.Normalize(); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	for idx, sel := range sels {
		if len(sel.MemberIDs) == 0 {
			return nil, fmt.Errorf("%w: group %v has no members",
				ErrMissingFields, idx+1)
		}
		if err := checkUnique(sel.MemberIDs, seen); err != nil {
			return nil, fmt.Errorf("group %v: %w", idx+1, err)
		}
	}

	for idx, sel := range sels {
		members, err := p.Members.GetMembers(ctx, sel.MemberIDs)
		if err != nil {
			return nil, fmt.Errorf("loading group %v members: %w", idx, err)
		}
		if len(members) != len(sel.MemberIDs) {
			return nil, fmt.Errorf("%w in group %v", ErrUnknownMember, idx+1)
		}
		gm := make([]grouping.Member, len(members))
		for i, m := range members {
			gm[i] = m.ForGrouping()
		}
		g := grouping.NewGroup(idx, gm)
		if name := strings.TrimSpace(sel.Name); name != "" {
			g.Name = name
		}
		sched.Groups = append(sched.Groups, g)
	}

	if err := p.Schedules.CreateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("saving schedule: %w", err)
	}
	return sched, nil
}
