package render_test

import (
	"strings"
	"testing"

	"chatvault/internal/chatlog"
	"chatvault/internal/container"
	"chatvault/internal/render"
)

func testRows() []container.Row {
	return []container.Row{
		{
			ChatID: "a", ChatName: "Chat A", Sender: "alice",
			Text: "good morning", Raw: "2023-06-01 09:00:00",
			Time: chatlog.ParseTimestamp("2023-06-01 09:00:00"),
		},
		{
			ChatID: "a", ChatName: "Chat A", Sender: "bob",
			Text: "hallo welt", Raw: "2023-06-01 10:00:00",
			Time:     chatlog.ParseTimestamp("2023-06-01 10:00:00"),
			HasDeepl: true, Deepl: "hello world",
		},
	}
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	out, hitLine := render.RenderPage(testRows(), render.Options{Query: "hello", HitRow: 1})
	if hitLine < 0 {
		t.Errorf("hit line not reported")
	}
	if !strings.Contains(out, "good morning") {
		t.Errorf("non-matching rows must stay visible")
	}
	// translation preferred for display, original kept underneath
	if !strings.Contains(out, "hello") {
		t.Errorf("deepl translation not shown")
	}
	if !strings.Contains(out, "hallo welt") {
		t.Errorf("original text not shown alongside translation")
	}
}

func TestRenderPageOriginalOnly(t *testing.T) {
	t.Parallel()

	out, _ := render.RenderPage(testRows(), render.Options{Original: true, HitRow: -1})
	if !strings.Contains(out, "hallo welt") {
		t.Errorf("original text missing")
	}
	if strings.Contains(out, "hello world") {
		t.Errorf("translation shown despite original-only mode")
	}
}

func TestRenderPageEmpty(t *testing.T) {
	t.Parallel()

	out, hitLine := render.RenderPage(nil, render.Options{HitRow: -1})
	if hitLine != -1 {
		t.Errorf("hit line = %d for empty page", hitLine)
	}
	if out == "" {
		t.Errorf("empty page should still explain itself")
	}
}

// Case folding can change a rune's byte length (Ⱥ U+023A lowers to the
// byte-longer ⱥ U+2C65, İ U+0130 to the byte-shorter i). Highlighting must
// stay on the original string's rune boundaries through such folds.
func TestRenderPageFoldChangesByteLength(t *testing.T) {
	t.Parallel()

	rows := []container.Row{{
		ChatID: "a", ChatName: "Chat A", Sender: "x",
		Text: "Ⱥxx", Raw: "2023-06-01 09:00:00",
		Time: chatlog.ParseTimestamp("2023-06-01 09:00:00"),
	}}
	out, _ := render.RenderPage(rows, render.Options{Query: "xx", HitRow: -1})
	if !strings.Contains(out, "Ⱥ") {
		t.Errorf("rune before the match lost: %q", out)
	}
	if !strings.Contains(out, "\033[1;31mxx\033[0m") {
		t.Errorf("match after a byte-lengthening fold not highlighted: %q", out)
	}
}

func TestRenderPageFoldShrinksBytes(t *testing.T) {
	t.Parallel()

	rows := []container.Row{{
		ChatID: "a", ChatName: "Chat A", Sender: "x",
		Text: "İstanbul calling", Raw: "2023-06-01 09:00:00",
		Time: chatlog.ParseTimestamp("2023-06-01 09:00:00"),
	}}
	out, _ := render.RenderPage(rows, render.Options{Query: "istanbul", HitRow: -1})
	if !strings.Contains(out, "\033[1;31mİstanbul\033[0m") {
		t.Errorf("highlight misaligned after a byte-shortening fold: %q", out)
	}
}

func TestRenderPageMalformedTimestamp(t *testing.T) {
	t.Parallel()

	rows := []container.Row{{
		ChatID: "a", ChatName: "Chat A", Sender: "x",
		Text: "hi", Raw: "not-a-date",
	}}
	out, _ := render.RenderPage(rows, render.Options{HitRow: -1})
	if !strings.Contains(out, "not-a-date") {
		t.Errorf("malformed timestamp string should render verbatim")
	}
}
