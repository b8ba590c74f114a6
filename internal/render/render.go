package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"chatvault/internal/container"
	"chatvault/internal/query"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background for the focused hit
	colorBoldRed = "\033[1;31m" // keyword highlights
)

// senderColors are the ANSI renditions of the viewer palette, indexed by
// query.PaletteIndex so plain output and the TUI agree on sender colors.
var senderColors = []string{
	"\033[1;33m", // yellow
	"\033[1;34m", // blue
	"\033[1;32m", // green
	"\033[1;35m", // magenta
	"\033[1;36m", // cyan
}

type Options struct {
	Query    string // search query for keyword highlighting
	Width    int    // wrap width (0 = no wrap)
	HitRow   int    // index within the page of the focused search hit, -1 for none
	Original bool   // show original text even when a translation is present
}

// highlightQuery wraps case-insensitive occurrences of the query in bold red.
// The query is one literal substring, matching the search predicate. Matches
// are located with query.IndexFold so the highlighted span stays on rune
// boundaries of the original text even when case folding changes byte lengths.
func highlightQuery(text, q string) string {
	if q == "" {
		return text
	}
	var b strings.Builder
	for {
		start, end := query.IndexFold(text, q)
		if start < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:start])
		b.WriteString(colorBoldRed)
		b.WriteString(text[start:end])
		b.WriteString(colorReset)
		text = text[end:]
	}
	return b.String()
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// displayText picks what to show for a row: the DeepL translation when the
// chat carries one and it is non-empty, else the original message.
func displayText(r container.Row, original bool) string {
	if !original && r.HasDeepl && strings.TrimSpace(r.Deepl) != "" {
		return r.Deepl
	}
	return r.Text
}

// timeLabel formats the row timestamp, falling back to the stored string for
// rows whose timestamp never parsed.
func timeLabel(r container.Row) string {
	if r.TimeValid() {
		return r.Time.Format("02.01.2006 15:04")
	}
	return r.Raw
}

// RenderPage renders one page of messages to ANSI text and returns the
// content plus the 0-based line number of the focused hit (-1 if none).
func RenderPage(rows []container.Row, opts Options) (string, int) {
	if len(rows) == 0 {
		return "(no messages match the current filters)", -1
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	separator := colorDim + "--------------------------------------------------" + colorReset
	wrapW := opts.Width

	writeLine := func(s string) {
		wrapped := wrapLine(s, wrapW)
		for _, wl := range wrapped {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	for i, r := range rows {
		isHit := i == opts.HitRow

		if i > 0 {
			writeLine(separator)
		}
		if isHit {
			hitLine = lineCount
		}

		senderColor := senderColors[query.PaletteIndex(r.Sender)]
		header := fmt.Sprintf("%s%s%s %s%s > %s%s",
			colorDim, r.ChatName, colorReset,
			senderColor, r.Sender, timeLabel(r), colorReset)
		if isHit {
			header = fmt.Sprintf("%s>> %s > %s <<%s", colorHit, r.Sender, timeLabel(r), colorReset)
		}
		writeLine(header)

		text := highlightQuery(displayText(r, opts.Original), opts.Query)
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(tl)
		}

		// translated rows keep the original visible, dimmed
		if !opts.Original && r.HasDeepl && strings.TrimSpace(r.Deepl) != "" && r.Deepl != r.Text {
			orig := colorDim + "original: " + r.Text + colorReset
			for _, tl := range strings.Split(indentLines(orig, "  "), "\n") {
				writeLine(tl)
			}
		}
		if r.HasM2M100 && strings.TrimSpace(r.M2M100) != "" && r.M2M100 != displayText(r, opts.Original) {
			alt := colorDim + "m2m100: " + r.M2M100 + colorReset
			for _, tl := range strings.Split(indentLines(alt, "  "), "\n") {
				writeLine(tl)
			}
		}
		writeLine("")
	}

	return b.String(), hitLine
}
