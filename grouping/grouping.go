/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package grouping partitions a selection of club members into tee-time
// groups (foursomes by default).
//
// FormGroups is a deterministic sort-and-chunk heuristic, not an optimizer.
// Three balancing modes are supported:
//
//   - equal: sort by handicap, then deal members out snake-draft style so
//     every group's average lands close to the pool average
//   - handicap: sort by handicap and fill groups sequentially, so each group
//     holds players of similar skill
//   - random: shuffle, then fill groups sequentially
//
// With SeparateGender set, men and women are grouped independently (men
// first) and group labels continue across the two pools.
package grouping

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// IsFemale reports whether g classifies into the female pool. Unspecified
// or unrecognized genders classify as male.
func (g Gender) IsFemale() bool {
	return g == Female
}

// ParseGender accepts male or female in English, Korean (남, 여) or as a
// single letter. An empty string is male.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "male", "m", "남", "남성", "남자":
		return Male, nil
	case "female", "f", "여", "여성", "여자":
		return Female, nil
	}

	return "", fmt.Errorf("unknown gender %q", s)
}

// Member is the read-only view of a club member consumed by the engine.
type Member struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Handicap float64 `json:"handicap"`
	Gender   Gender  `json:"gender"`
}

type Mode string

const (
	ModeEqual    Mode = "equal"
	ModeHandicap Mode = "handicap"
	ModeRandom   Mode = "random"
)

const DefaultGroupSize = 4

var ErrInvalidConfig = errors.New("invalid grouping configuration")

// ParseMode converts user input into a Mode. An empty string selects
// ModeEqual.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeEqual:
		return ModeEqual, nil
	case ModeHandicap:
		return ModeHandicap, nil
	case ModeRandom:
		return ModeRandom, nil
	}

	return "", fmt.Errorf("%w: unknown balancing mode %q", ErrInvalidConfig, s)
}

type Config struct {
	Mode           Mode `json:"balancingMode"`
	SeparateGender bool `json:"separateGender"`
	GroupSize      int  `json:"groupSize"`
	// Seed makes ModeRandom reproducible. nil uses the process-wide source.
	Seed *uint64 `json:"seed,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Mode:      ModeEqual,
		GroupSize: DefaultGroupSize,
	}
}

// Validate reports ErrInvalidConfig for a group size below one or an unknown
// mode.
func (cfg Config) Validate() error {
	if cfg.GroupSize < 1 {
		return fmt.Errorf("%w: group size must be at least 1, got %d",
			ErrInvalidConfig, cfg.GroupSize)
	}
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return err
	}

	return nil
}

type Group struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Members       []Member `json:"members"`
	TotalHandicap float64  `json:"totalHandicap"`
	AvgHandicap   float64  `json:"avgHandicap"`
}

// FormGroups partitions members into groups according to cfg.
//
// The caller's slice is never reordered. Member IDs are assumed unique;
// duplicates are neither detected nor removed. An empty selection yields an
// empty result and no error. The configuration is validated before any work
// is done.
func FormGroups(members []Member, cfg Config) ([]Group, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := ParseMode(string(cfg.Mode))

	// one scratch buffer per invocation; pools are sub-slices of it
	scratch := make([]Member, 0, len(members))
	var pools [][]Member
	if cfg.SeparateGender {
		for _, m := range members {
			if !m.Gender.IsFemale() {
				scratch = append(scratch, m)
			}
		}
		numMale := len(scratch)
		for _, m := range members {
			if m.Gender.IsFemale() {
				scratch = append(scratch, m)
			}
		}
		pools = append(pools, scratch[:numMale], scratch[numMale:])
	} else {
		scratch = append(scratch, members...)
		pools = append(pools, scratch)
	}

	var shuffler *rand.Rand
	if mode == ModeRandom && cfg.Seed != nil {
		shuffler = rand.New(rand.NewPCG(*cfg.Seed, *cfg.Seed))
	}

	groups := make([]Group, 0)
	for _, pool := range pools {
		if len(pool) == 0 {
			continue
		}
		orderPool(pool, mode, shuffler)

		var chunks [][]Member
		if mode == ModeEqual {
			chunks = snakeChunks(pool, cfg.GroupSize)
		} else {
			chunks = sequentialChunks(pool, cfg.GroupSize)
		}

		for _, chunk := range chunks {
			if len(chunk) == 0 {
				continue
			}
			groups = append(groups, NewGroup(len(groups), chunk))
		}
	}

	return groups, nil
}

func orderPool(pool []Member, mode Mode, shuffler *rand.Rand) {
	switch mode {
	case ModeRandom:
		swap := func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		}
		if shuffler != nil {
			shuffler.Shuffle(len(pool), swap)
		} else {
			rand.Shuffle(len(pool), swap)
		}
	default:
		// lowest handicap (best player) first; ties keep input order
		slices.SortStableFunc(pool, func(a, b Member) int {
			return cmp.Compare(a.Handicap, b.Handicap)
		})
	}
}

func numGroups(poolSize, groupSize int) int {
	return (poolSize + groupSize - 1) / groupSize
}

// snakeChunks deals pool out over ceil(n/groupSize) groups: forward on even
// cycles, reverse on odd cycles. Group sizes differ by at most one.
func snakeChunks(pool []Member, groupSize int) [][]Member {
	n := numGroups(len(pool), groupSize)
	chunks := make([][]Member, n)
	for idx, m := range pool {
		target := idx % n
		if (idx/n)%2 == 1 {
			target = n - 1 - target
		}
		chunks[target] = append(chunks[target], m)
	}

	return chunks
}

// sequentialChunks fills each group to groupSize before starting the next;
// only the last group may be short.
func sequentialChunks(pool []Member, groupSize int) [][]Member {
	chunks := make([][]Member, 0, numGroups(len(pool), groupSize))
	for start := 0; start < len(pool); start += groupSize {
		end := min(start+groupSize, len(pool))
		chunk := make([]Member, end-start)
		copy(chunk, pool[start:end])
		chunks = append(chunks, chunk)
	}

	return chunks
}

// NewGroup builds the group at position id, labeling it and computing its
// handicap totals. An empty group averages 0.
func NewGroup(id int, members []Member) Group {
	total := 0.0
	for _, m := range members {
		total += m.Handicap
	}
	avg := 0.0
	if len(members) > 0 {
		avg = RoundHandicap(total / float64(len(members)))
	}

	return Group{
		ID:            id,
		Name:          Label(id),
		Members:       members,
		TotalHandicap: total,
		AvgHandicap:   avg,
	}
}

// RoundHandicap rounds to one decimal place, halves away from zero.
func RoundHandicap(x float64) float64 {
	return math.Round(x*10) / 10
}
