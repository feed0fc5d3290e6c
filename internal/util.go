/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeDate accepts any date format dateparse understands and returns it
// as YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDateOrZero(s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	if t.IsZero() {
		return "", fmt.Errorf("date required")
	}
	return t.Format(DateLayout), nil
}

// NormalizeTime accepts a tee time such as "7:00", "07:00" or "7:05 PM" and
// returns it as HH:MM on a 24 hour clock.
func NormalizeTime(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("time required")
	}
	for _, layout := range []string{"15:04", "3:04PM", "3:04 PM", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", s)
}

// NormalizeName title-cases each whitespace separated part of a name and
// collapses runs of whitespace. Names without letters that have case (e.g.
// Hangul) pass through unchanged apart from the whitespace.
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		r := []rune(strings.ToLower(p))
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// ParseIDs parses a comma separated list of ids, ignoring empty entries.
func ParseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
