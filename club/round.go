/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mikeb26/golfclub-teebot/internal"
)

// RecentRounds is how many rounds MemberStats reports in RecentTrend.
const RecentRounds = 5

// Round is one logged outing and the scores turned in.
type Round struct {
	ID         int64         `json:"id"`
	Date       string        `json:"date"`
	CourseName string        `json:"courseName"`
	Players    []RoundPlayer `json:"players"`
}

type RoundPlayer struct {
	// MemberID is nil for guests.
	MemberID *int64 `json:"memberId,omitempty"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	// Diff is the score relative to par, when known.
	Diff *int `json:"diff,omitempty"`
}

func (r *Round) Normalize() error {
	if strings.TrimSpace(r.Date) == "" || len(r.Players) == 0 {
		return ErrMissingFields
	}
	date, err := internal.NormalizeDate(r.Date)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFields, err)
	}
	r.Date = date
	r.CourseName = strings.TrimSpace(r.CourseName)
	for i, p := range r.Players {
		if strings.TrimSpace(p.Name) == "" && p.MemberID == nil {
			return fmt.Errorf("%w: player %d needs a name or member id",
				ErrMissingFields, i+1)
		}
	}
	return nil
}

// SortRoundsNewestFirst orders rounds by date, most recent first.
func SortRoundsNewestFirst(rounds []Round) {
	sort.SliceStable(rounds, func(i, j int) bool {
		if rounds[i].Date != rounds[j].Date {
			return rounds[i].Date > rounds[j].Date
		}
		return rounds[i].ID > rounds[j].ID
	})
}

type Stats struct {
	MemberID  int64   `json:"memberId"`
	Rounds    int     `json:"rounds"`
	AvgScore  float64 `json:"avgScore"`
	BestScore int     `json:"bestScore"`
	// RecentTrend holds up to RecentRounds scores, oldest first.
	RecentTrend []int `json:"recentTrend"`
}

// MemberStats summarizes memberID's scores across rounds. rounds may be in
// any order.
func MemberStats(rounds []Round, memberID int64) Stats {
	sorted := append([]Round(nil), rounds...)
	SortRoundsNewestFirst(sorted)

	stats := Stats{MemberID: memberID, RecentTrend: []int{}}
	var scores []int // newest first
	for _, r := range sorted {
		for _, p := range r.Players {
			if p.MemberID != nil && *p.MemberID == memberID {
				scores = append(scores, p.Score)
			}
		}
	}
	if len(scores) == 0 {
		return stats
	}

	total := 0
	stats.BestScore = scores[0]
	for _, s := range scores {
		total += s
		stats.BestScore = min(stats.BestScore, s)
	}
	stats.Rounds = len(scores)
	stats.AvgScore = math.Round(float64(total)/float64(len(scores))*10) / 10

	recent := scores[:min(RecentRounds, len(scores))]
	for i := len(recent) - 1; i >= 0; i-- {
		stats.RecentTrend = append(stats.RecentTrend, recent[i])
	}
	return stats
}
