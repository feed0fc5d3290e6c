/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mikeb26/golfclub-teebot/grouping"
)

// Seed is a roster export: members plus the scores they turned in. IDs are
// local to the file and only link scores to members.
type Seed struct {
	Members []SeedMember `yaml:"members"`
	Scores  []SeedScore  `yaml:"scores"`
}

type SeedMember struct {
	ID       int64   `yaml:"id"`
	Name     string  `yaml:"name"`
	Email    string  `yaml:"email"`
	Phone    string  `yaml:"phone"`
	Handicap float64 `yaml:"handicap"`
	// Gender accepts male/female, M/F or 남/여.
	Gender string `yaml:"gender"`
	Type   string `yaml:"type"`
}

type SeedScore struct {
	MemberID   int64  `yaml:"member_id"`
	Date       string `yaml:"date"`
	Score      int    `yaml:"score"`
	CourseName string `yaml:"course_name"`
}

// ParseSeed reads a seed file in YAML or JSON.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	return &seed, nil
}

func (sm SeedMember) Member() (Member, error) {
	g, err := grouping.ParseGender(sm.Gender)
	if err != nil {
		return Member{}, fmt.Errorf("seed member %v (%v): %w", sm.ID, sm.Name, err)
	}
	return Member{
		Name:     strings.TrimSpace(sm.Name),
		Email:    sm.Email,
		Phone:    sm.Phone,
		Handicap: sm.Handicap,
		Gender:   g,
		Type:     MemberType(sm.Type),
	}, nil
}

// Roster returns the seed's members as grouping input, keeping file IDs.
func (s *Seed) Roster() ([]grouping.Member, error) {
	roster := make([]grouping.Member, 0, len(s.Members))
	for _, sm := range s.Members {
		m, err := sm.Member()
		if err != nil {
			return nil, err
		}
		m.ID = sm.ID
		roster = append(roster, m.ForGrouping())
	}
	return roster, nil
}

type SeedResult struct {
	Members int
	Rounds  int
	// Skipped counts scores for members missing from the file.
	Skipped int
}

// ApplySeed adds the seed's members to members and records each score as a
// one-player round. Existing data is left in place.
func ApplySeed(ctx context.Context, members MemberDirectory, rounds RoundLog,
	seed *Seed) (SeedResult, error) {

	var res SeedResult
	idMap := make(map[int64]int64, len(seed.Members))
	for _, sm := range seed.Members {
		m, err := sm.Member()
		if err != nil {
			return res, err
		}
		if err := members.CreateMember(ctx, &m); err != nil {
			return res, fmt.Errorf("seeding member %v: %w", sm.Name, err)
		}
		idMap[sm.ID] = m.ID
		res.Members++
	}

	for _, sc := range seed.Scores {
		id, ok := idMap[sc.MemberID]
		if !ok {
			res.Skipped++
			continue
		}
		r := Round{
			Date:       sc.Date,
			CourseName: sc.CourseName,
			Players:    []RoundPlayer{{MemberID: &id, Score: sc.Score}},
		}
		if err := rounds.CreateRound(ctx, &r); err != nil {
			return res, fmt.Errorf("seeding score for member %v: %w",
				sc.MemberID, err)
		}
		res.Rounds++
	}

	return res, nil
}
