/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package grouping

import (
	"testing"
)

func TestLabel(t *testing.T) {
	cases := []struct {
		idx  int
		want string
	}{
		{0, "A조"},
		{1, "B조"},
		{7, "H조"},
		{8, "A2조"},
		{9, "B2조"},
		{17, "B3조"},
		{-1, "A조"},
	}
	for _, c := range cases {
		if got := Label(c.idx); got != c.want {
			t.Errorf("Label(%d) = %q; want %q", c.idx, got, c.want)
		}
	}
}

func TestLabelsContinueAcrossPoolsAndWrap(t *testing.T) {
	var members []Member
	for i := 0; i < 30; i++ {
		g := Male
		if i >= 20 {
			g = Female
		}
		members = append(members, Member{ID: int64(i), Handicap: float64(i),
			Gender: g})
	}
	groups, err := FormGroups(members, Config{Mode: ModeHandicap,
		SeparateGender: true, GroupSize: 3})
	if err != nil {
		t.Fatalf("FormGroups returned error: %v", err)
	}
	// 20 men -> 7 groups, 10 women -> 4 groups
	if len(groups) != 11 {
		t.Fatalf("len(groups) = %d; want 11", len(groups))
	}
	for i, g := range groups {
		if g.ID != i {
			t.Errorf("groups[%d].ID = %d", i, g.ID)
		}
		if g.Name != Label(i) {
			t.Errorf("groups[%d].Name = %q; want %q", i, g.Name, Label(i))
		}
	}
	if groups[7].Name != "H조" || groups[8].Name != "A2조" {
		t.Errorf("wrap labels = %q,%q; want H조,A2조", groups[7].Name,
			groups[8].Name)
	}
	if !groups[7].Members[0].Gender.IsFemale() {
		t.Error("eighth group should start the female pool")
	}
}

func TestSpread(t *testing.T) {
	groups := []Group{
		{TotalHandicap: 40, AvgHandicap: 10},
		{TotalHandicap: 30, AvgHandicap: 7.5},
		{TotalHandicap: 51, AvgHandicap: 12.8},
	}
	if got := Spread(groups, CriterionAvg); got != 5.3 {
		t.Errorf("Spread(avg) = %v; want 5.3", got)
	}
	if got := Spread(groups, CriterionSum); got != 21 {
		t.Errorf("Spread(sum) = %v; want 21", got)
	}
	if got := Spread(groups[:1], CriterionAvg); got != 0 {
		t.Errorf("Spread(single) = %v; want 0", got)
	}
}

func TestParseCriterion(t *testing.T) {
	if c, err := ParseCriterion(""); err != nil || c != CriterionAvg {
		t.Errorf("ParseCriterion(\"\") = %q, %v", c, err)
	}
	if c, err := ParseCriterion("SUM"); err != nil || c != CriterionSum {
		t.Errorf("ParseCriterion(SUM) = %q, %v", c, err)
	}
	if _, err := ParseCriterion("median"); err == nil {
		t.Error("ParseCriterion(median) should fail")
	}
}

func TestParseGender(t *testing.T) {
	cases := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"", Male, false},
		{"male", Male, false},
		{"남", Male, false},
		{"F", Female, false},
		{" 여 ", Female, false},
		{"Female", Female, false},
		{"other", "", true},
	}
	for _, c := range cases {
		got, err := ParseGender(c.in)
		if (err != nil) != c.wantErr || got != c.want {
			t.Errorf("ParseGender(%q) = %q, %v", c.in, got, err)
		}
	}
}

func TestNewGroupEmpty(t *testing.T) {
	g := NewGroup(2, nil)
	if g.Name != "C조" || g.AvgHandicap != 0 || g.TotalHandicap != 0 {
		t.Errorf("NewGroup(2, nil) = %+v", g)
	}
}
