package query

import (
	"strings"
	"time"

	"chatvault/internal/container"
)

// DateBounds returns the calendar-day span of the dataset. When every row
// falls on a single day, the upper bound is pushed out one day so a range
// control always has two distinct endpoints. Rows without a reconstructed
// timestamp do not contribute.
func DateBounds(rows []container.Row) (time.Time, time.Time) {
	var min, max time.Time
	for _, r := range rows {
		if !r.TimeValid() {
			continue
		}
		d := DateOnly(r.Time)
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	if !min.IsZero() && min.Equal(max) {
		max = max.AddDate(0, 0, 1)
	}
	return min, max
}

// Filter applies the session's chat, sender, and date constraints and
// computes the search match list over the result. Search does not narrow the
// filtered rows; matches are indices into filtered for the navigation cursor.
func Filter(rows []container.Row, s State) (filtered []container.Row, matches []int) {
	for _, r := range rows {
		if s.Chat != All && r.ChatID != s.Chat {
			continue
		}
		if s.Sender != All && r.Sender != s.Sender {
			continue
		}
		if !inDateRange(r, s.Start, s.End) {
			continue
		}
		if s.Query != "" && Matches(r, s.Query) {
			matches = append(matches, len(filtered))
		}
		filtered = append(filtered, r)
	}
	return filtered, matches
}

// Matches reports whether the query is a case-insensitive substring of the
// message or of any translation variant the row carries.
func Matches(r container.Row, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Text), q) {
		return true
	}
	if r.HasDeepl && strings.Contains(strings.ToLower(r.Deepl), q) {
		return true
	}
	if r.HasM2M100 && strings.Contains(strings.ToLower(r.M2M100), q) {
		return true
	}
	return false
}

func inDateRange(r container.Row, start, end time.Time) bool {
	if start.IsZero() && end.IsZero() {
		return true
	}
	if !r.TimeValid() {
		return false
	}
	d := DateOnly(r.Time)
	if !start.IsZero() && d.Before(DateOnly(start)) {
		return false
	}
	if !end.IsZero() && d.After(DateOnly(end)) {
		return false
	}
	return true
}

// Chats returns the distinct chat identifiers in first-appearance order.
func Chats(rows []container.Row) []string {
	return distinct(rows, func(r container.Row) string { return r.ChatID })
}

// Senders returns the distinct sender aliases in first-appearance order.
func Senders(rows []container.Row) []string {
	return distinct(rows, func(r container.Row) string { return r.Sender })
}

func distinct(rows []container.Row, key func(container.Row) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
