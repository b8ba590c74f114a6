// Package query implements the viewer-facing filter, search-navigation, and
// pagination logic as pure functions over an explicit session state.
package query

import "time"

// All is the filter value matching every chat or sender.
const All = ""

// State is the interactive state one viewer session carries between
// recomputations. Nothing here is hidden or global; the presentation layer
// owns a State and passes it into each query function.
type State struct {
	Chat     string // All or a chat identifier (group key)
	Sender   string // All or a sender alias
	Start    time.Time
	End      time.Time // inclusive, date granularity
	Query    string
	PageSize int
	Page     int
	Cursor   int // position within the current match list
}

// SetQuery updates the free-text query. Any change invalidates the match
// list, so the cursor goes back to the first match.
func (s *State) SetQuery(q string) {
	if q != s.Query {
		s.Cursor = 0
	}
	s.Query = q
}

// DateOnly truncates a timestamp to its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
