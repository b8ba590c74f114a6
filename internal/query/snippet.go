package query

// Snippet extracts a window of text around the first case-insensitive
// occurrence of query, wrapping the matched part in >>> <<< markers for later
// colorization. Without a match it returns the head of the text.
func Snippet(text, query string, contextChars int) string {
	start, end := IndexFold(text, query)
	if query == "" || start < 0 {
		if runes := []rune(text); len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}

	before := []rune(text[:start])
	after := []rune(text[end:])
	prefix, suffix := "", ""
	if len(before) > contextChars {
		before = before[len(before)-contextChars:]
		prefix = "..."
	}
	if len(after) > contextChars {
		after = after[:contextChars]
		suffix = "..."
	}
	return prefix + string(before) + ">>>" + text[start:end] + "<<<" + string(after) + suffix
}
