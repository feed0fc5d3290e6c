/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeb26/golfclub-teebot/grouping"
)

func formatHandicap(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64)
}

func genderLabel(g grouping.Gender) string {
	if g.IsFemale() {
		return "F"
	}
	return "M"
}

// writeTable writes header and rows as left aligned columns separated by two
// spaces.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for i, cell := range r {
			if l := len([]rune(cell)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(cells)-1 {
				sb.WriteString(cell)
				continue
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))))
		}
		sb.WriteString("\n")
	}
	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
}

// BuildGroupsOutput formats formed groups into aligned per-group tables.
func BuildGroupsOutput(groups []grouping.Group) string {
	if len(groups) == 0 {
		return "No groups formed\n"
	}

	var sb strings.Builder
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("%s (%d players, avg %s, total %s)\n", g.Name,
			len(g.Members), formatHandicap(g.AvgHandicap),
			formatHandicap(g.TotalHandicap)))

		rows := make([][]string, 0, len(g.Members))
		for _, m := range g.Members {
			rows = append(rows, []string{m.Name, formatHandicap(m.Handicap),
				genderLabel(m.Gender)})
		}
		writeTable(&sb, []string{"Player", "Handicap", "Gender"}, rows)
		sb.WriteString("\n")
	}
	if len(groups) > 1 {
		sb.WriteString(fmt.Sprintf("Average handicap spread: %s\n",
			formatHandicap(grouping.Spread(groups, grouping.CriterionAvg))))
	}

	return sb.String()
}

// BuildMembersOutput formats members into an aligned table.
func BuildMembersOutput(members []Member) string {
	if len(members) == 0 {
		return "No members found\n"
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{strconv.FormatInt(m.ID, 10), m.Name,
			formatHandicap(m.Handicap), genderLabel(m.Gender), string(m.Type),
			string(m.Status)})
	}
	var sb strings.Builder
	writeTable(&sb, []string{"ID", "Name", "Handicap", "Gender", "Type",
		"Status"}, rows)

	return sb.String()
}

// BuildSchedulesOutput lists schedules with their groups' members.
func BuildSchedulesOutput(scheds []Schedule) string {
	if len(scheds) == 0 {
		return "No schedules found\n"
	}

	var sb strings.Builder
	for _, s := range scheds {
		sb.WriteString(fmt.Sprintf("%s %s  %s (ScheduleID:%d)\n", s.Date, s.Time,
			s.CourseName, s.ID))
		for _, g := range s.Groups {
			names := make([]string, 0, len(g.Members))
			for _, m := range g.Members {
				names = append(names, m.Name)
			}
			sb.WriteString(fmt.Sprintf("  - %s (avg %s): %s\n", g.Name,
				formatHandicap(g.AvgHandicap), strings.Join(names, ", ")))
		}
	}

	return sb.String()
}

func BuildCoursesOutput(courses []Course) string {
	if len(courses) == 0 {
		return "No courses found\n"
	}

	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{c.Name, c.Location, c.Distance})
	}
	var sb strings.Builder
	writeTable(&sb, []string{"Course", "Location", "Distance"}, rows)

	return sb.String()
}

// BuildStatsOutput summarizes a member's scoring.
func BuildStatsOutput(name string, stats Stats) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", name))
	if stats.Rounds == 0 {
		sb.WriteString("No rounds recorded\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Rounds: %d\n", stats.Rounds))
	sb.WriteString(fmt.Sprintf("Average score: %.1f\n", stats.AvgScore))
	sb.WriteString(fmt.Sprintf("Best score: %d\n", stats.BestScore))

	trend := make([]string, len(stats.RecentTrend))
	for i, s := range stats.RecentTrend {
		trend[i] = strconv.Itoa(s)
	}
	sb.WriteString(fmt.Sprintf("Recent: %s\n", strings.Join(trend, " → ")))

	return sb.String()
}
