package query

import "chatvault/internal/container"

// TotalPages returns ceil(total/pageSize), minimum 1 even for an empty set.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = 1
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage bounds a requested page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices one page out of the filtered rows. Pages are 1-based and
// together cover the rows exactly once.
func Paginate(filtered []container.Row, page, pageSize int) ([]container.Row, int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := TotalPages(len(filtered), pageSize)
	page = ClampPage(page, totalPages)

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return nil, totalPages
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}

// DefaultPage is the page shown before the user picks one: the page holding
// the current search hit when a search has matches, else page 1.
func DefaultPage(matches []int, cursor, pageSize int) int {
	if len(matches) == 0 {
		return 1
	}
	if cursor < 0 || cursor >= len(matches) {
		cursor = 0
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return matches[cursor]/pageSize + 1
}

// NextMatch advances the search cursor cyclically.
func NextMatch(cursor, matchCount int) int {
	if matchCount <= 0 {
		return 0
	}
	return (cursor + 1) % matchCount
}

// PrevMatch retreats the search cursor cyclically.
func PrevMatch(cursor, matchCount int) int {
	if matchCount <= 0 {
		return 0
	}
	return (cursor - 1 + matchCount) % matchCount
}
