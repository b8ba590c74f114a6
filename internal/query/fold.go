package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IndexFold returns the byte offsets [start, end) in s of the first
// case-insensitive occurrence of substr, or (-1, -1) when there is none.
// Offsets index the original string: case folding can change a rune's byte
// length, so positions found on a lowered copy must not be reused on s.
func IndexFold(s, substr string) (int, int) {
	if substr == "" {
		return 0, 0
	}
	target := []rune(strings.ToLower(substr))
	for i := range s {
		if end, ok := foldMatchAt(s, i, target); ok {
			return i, end
		}
	}
	return -1, -1
}

// foldMatchAt reports whether the runes of s starting at byte offset start
// lower to target, returning the byte offset just past the match.
func foldMatchAt(s string, start int, target []rune) (int, bool) {
	i := start
	for _, t := range target {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(r) != t {
			return 0, false
		}
		i += size
	}
	return i, true
}
