/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/golfclub-teebot/club"
	"github.com/mikeb26/golfclub-teebot/grouping"
	"github.com/mikeb26/golfclub-teebot/internal"
)

// parseRoster reads either an HTML page holding a members table or a YAML
// or JSON seed file.
func parseRoster(data []byte) ([]grouping.Member, error) {
	if looksLikeHTML(data) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return extractMembersFromPage(doc)
	}

	seed, err := club.ParseSeed(data)
	if err != nil {
		return nil, err
	}
	return seed.Roster()
}

// rosterColumns locates the columns of table#members by header text.
type rosterColumns struct {
	id, name, handicap, gender int
}

func findColumns(table *goquery.Selection) (rosterColumns, error) {
	cols := rosterColumns{id: -1, name: -1, handicap: -1, gender: -1}
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		switch strings.ToLower(strings.TrimSpace(th.Text())) {
		case "id", "번호":
			cols.id = i
		case "name", "이름":
			cols.name = i
		case "handicap", "핸디캡":
			cols.handicap = i
		case "gender", "성별":
			cols.gender = i
		}
	})
	if cols.name < 0 || cols.handicap < 0 {
		return cols, fmt.Errorf("members table needs name and handicap columns")
	}
	return cols, nil
}

// extractMembersFromPage parses the members table. Rows without a name are
// skipped and rows without an id are numbered by position.
func extractMembersFromPage(doc *goquery.Document) ([]grouping.Member, error) {
	table := doc.Find("table#members").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no members table found")
	}
	cols, err := findColumns(table)
	if err != nil {
		return nil, err
	}

	var members []grouping.Member
	var rowErr error
	table.Find("tbody tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		cell := func(idx int) string {
			if idx < 0 || idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		name := internal.NormalizeName(cell(cols.name))
		if name == "" {
			return true
		}
		m := grouping.Member{ID: int64(i + 1), Name: name}
		if id, err := strconv.ParseInt(cell(cols.id), 10, 64); err == nil {
			m.ID = id
		}
		if h, err := strconv.ParseFloat(cell(cols.handicap), 64); err == nil {
			m.Handicap = h
		}
		m.Gender, rowErr = grouping.ParseGender(cell(cols.gender))
		if rowErr != nil {
			rowErr = fmt.Errorf("row %d (%v): %w", i+1, name, rowErr)
			return false
		}
		members = append(members, m)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return members, nil
}
