/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package grouping

import (
	"fmt"
	"strings"
)

const (
	labelAlphabet = "ABCDEFGH"
	// "jo", Korean for "group"
	labelSuffix = "조"
)

// Label returns the display name for the group at position idx of a
// FormGroups result: A조 through H조, then A2조 through H2조, and so on.
func Label(idx int) string {
	if idx < 0 {
		idx = 0
	}
	letter := labelAlphabet[idx%len(labelAlphabet)]
	pass := idx/len(labelAlphabet) + 1
	if pass == 1 {
		return fmt.Sprintf("%c%s", letter, labelSuffix)
	}

	return fmt.Sprintf("%c%d%s", letter, pass, labelSuffix)
}

// Criterion selects the per-group metric compared by Spread.
type Criterion string

const (
	// CriterionAvg compares group average handicaps.
	CriterionAvg Criterion = "avg"
	// CriterionSum compares group handicap totals.
	CriterionSum Criterion = "sum"
)

// ParseCriterion reads a criterion name; empty means avg.
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(strings.ToLower(strings.TrimSpace(s))) {
	case "", CriterionAvg:
		return CriterionAvg, nil
	case CriterionSum:
		return CriterionSum, nil
	}

	return "", fmt.Errorf("%w: unknown balancing criterion %q",
		ErrInvalidConfig, s)
}

// Spread returns the difference between the largest and smallest group
// metric. Fewer than two groups have no spread.
func Spread(groups []Group, crit Criterion) float64 {
	if len(groups) < 2 {
		return 0
	}

	metric := func(g Group) float64 {
		if crit == CriterionSum {
			return g.TotalHandicap
		}
		return g.AvgHandicap
	}

	lo, hi := metric(groups[0]), metric(groups[0])
	for _, g := range groups[1:] {
		v := metric(g)
		lo = min(lo, v)
		hi = max(hi, v)
	}

	return RoundHandicap(hi - lo)
}
