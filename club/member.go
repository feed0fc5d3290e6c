/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mikeb26/golfclub-teebot/grouping"
)

type MemberType string

const (
	TypeRegular  MemberType = "정회원"
	TypeTeachPro MemberType = "티칭프로"
	TypeGeneral  MemberType = "일반회원"
	TypeDormant  MemberType = "휴면회원"
)

type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"
)

// FilterAll ("all") disables a gender or type filter, as does "".
const FilterAll = "전체"

var (
	ErrNotFound      = errors.New("not found")
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidField  = errors.New("invalid field")
)

// Member is a club member as kept by the member directory.
type Member struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email,omitempty"`
	Phone    string          `json:"phone,omitempty"`
	Handicap float64         `json:"handicap"`
	Gender   grouping.Gender `json:"gender"`
	Type     MemberType      `json:"type"`
	Status   MemberStatus    `json:"status"`
	JoinDate time.Time       `json:"joinDate"`
	Badges   []string        `json:"badges"`
	Intro    string          `json:"intro,omitempty"`
}

// ForGrouping returns the subset of m the grouping engine reads.
func (m Member) ForGrouping() grouping.Member {
	return grouping.Member{
		ID:       m.ID,
		Name:     m.Name,
		Handicap: m.Handicap,
		Gender:   m.Gender,
	}
}

// ApplyDefaults fills the fields a new member may omit.
func (m *Member) ApplyDefaults(now time.Time) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Gender == "" {
		m.Gender = grouping.Male
	}
	if m.Type == "" {
		m.Type = TypeRegular
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	if m.JoinDate.IsZero() {
		m.JoinDate = now
	}
	if m.Badges == nil {
		m.Badges = []string{}
	}
}

func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: member name", ErrMissingFields)
	}
	if m.Gender != grouping.Male && m.Gender != grouping.Female {
		return fmt.Errorf("%w: gender %q", ErrInvalidField, m.Gender)
	}
	switch m.Status {
	case StatusActive, StatusInactive:
	default:
		return fmt.Errorf("%w: status %q", ErrInvalidField, m.Status)
	}
	return nil
}

type MemberSort string

const (
	SortDefault  MemberSort = ""
	SortName     MemberSort = "name"
	SortHandicap MemberSort = "handicap"
	SortJoinDate MemberSort = "joinDate"
)

type MemberFilter struct {
	Gender string
	Type   string
	// Search matches name, email or phone, case-insensitively.
	Search          string
	Sort            MemberSort
	IncludeInactive bool
}

func filterValue(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == FilterAll {
		return "", false
	}
	return s, true
}

// Match reports whether m passes every criterion of f except sorting.
func (f MemberFilter) Match(m Member) bool {
	if !f.IncludeInactive && m.Status != StatusActive {
		return false
	}
	if g, ok := filterValue(f.Gender); ok && string(m.Gender) != g {
		return false
	}
	if ty, ok := filterValue(f.Type); ok && string(m.Type) != ty {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Email), q) &&
			!strings.Contains(m.Phone, q) {
			return false
		}
	}
	return true
}

// FilterMembers applies f to members and returns the matches in f's sort
// order. Stores that cannot filter natively use this.
func FilterMembers(members []Member, f MemberFilter) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	SortMembers(out, f.Sort)
	return out
}

// SortMembers orders members by name or handicap ascending, by join date
// newest first, or by default newest id first.
func SortMembers(members []Member, by MemberSort) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		switch by {
		case SortName:
			return a.Name < b.Name
		case SortHandicap:
			return a.Handicap < b.Handicap
		case SortJoinDate:
			return a.JoinDate.After(b.JoinDate)
		default:
			return a.ID > b.ID
		}
	})
}

func ParseMemberSort(s string) (MemberSort, error) {
	switch MemberSort(strings.TrimSpace(s)) {
	case SortDefault:
		return SortDefault, nil
	case SortName:
		return SortName, nil
	case SortHandicap:
		return SortHandicap, nil
	case SortJoinDate:
		return SortJoinDate, nil
	}
	return "", fmt.Errorf("unknown member sort %q", s)
}
