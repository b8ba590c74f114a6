package query_test

import (
	"fmt"
	"testing"
	"time"

	"chatvault/internal/container"
	"chatvault/internal/query"
)

func row(chat, sender, text, day string) container.Row {
	t, _ := time.ParseInLocation("2006-01-02", day, time.UTC)
	return container.Row{
		ChatID: chat,
		Sender: sender,
		Text:   text,
		Time:   t,
	}
}

func testRows() []container.Row {
	return []container.Row{
		row("a", "alice", "good morning", "2023-06-01"),
		row("a", "bob", "hello there", "2023-06-01"),
		row("b", "alice", "HELLO again", "2023-06-02"),
		row("b", "bob", "unrelated", "2023-06-03"),
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	rows := testRows()

	tests := []struct {
		name  string
		state query.State
		want  int
	}{
		{"no constraints", query.State{}, 4},
		{"chat filter", query.State{Chat: "a"}, 2},
		{"sender filter", query.State{Sender: "alice"}, 2},
		{"chat and sender", query.State{Chat: "a", Sender: "alice"}, 1},
		{"date range", query.State{
			Start: time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2023, 6, 3, 0, 0, 0, 0, time.UTC),
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			filtered, _ := query.Filter(rows, tt.state)
			if len(filtered) != tt.want {
				t.Errorf("Filter() = %d rows, want %d", len(filtered), tt.want)
			}
		})
	}
}

func TestFilterMonotonic(t *testing.T) {
	t.Parallel()

	rows := testRows()
	base, _ := query.Filter(rows, query.State{})

	// each added constraint can only shrink the result
	narrower := []query.State{
		{Chat: "a"},
		{Chat: "a", Sender: "bob"},
		{Chat: "a", Sender: "bob", Query: "hello"},
	}
	prev := len(base)
	for _, s := range narrower {
		got, _ := query.Filter(rows, s)
		if len(got) > prev {
			t.Fatalf("filter with %+v grew the result: %d > %d", s, len(got), prev)
		}
		prev = len(got)
	}
}

func TestSearchDoesNotNarrow(t *testing.T) {
	t.Parallel()

	rows := testRows()
	filtered, matches := query.Filter(rows, query.State{Query: "hello"})

	if len(filtered) != 4 {
		t.Errorf("search removed rows from display: %d", len(filtered))
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2 (case-insensitive)", len(matches))
	}
	if filtered[matches[0]].Text != "hello there" || filtered[matches[1]].Text != "HELLO again" {
		t.Errorf("match indices wrong: %v", matches)
	}
}

func TestMatchesTranslationVariants(t *testing.T) {
	t.Parallel()

	r := container.Row{Text: "hallo", HasDeepl: true, Deepl: "hello world"}
	if !query.Matches(r, "WORLD") {
		t.Errorf("query should match the deepl variant")
	}
	r.HasDeepl = false
	if query.Matches(r, "WORLD") {
		t.Errorf("absent variant must not match")
	}
}

func TestDateBounds(t *testing.T) {
	t.Parallel()

	t.Run("multi day", func(t *testing.T) {
		t.Parallel()
		min, max := query.DateBounds(testRows())
		if min.Format("2006-01-02") != "2023-06-01" || max.Format("2006-01-02") != "2023-06-03" {
			t.Errorf("DateBounds() = %v, %v", min, max)
		}
	})

	t.Run("single day widened", func(t *testing.T) {
		t.Parallel()
		rows := []container.Row{row("a", "x", "hi", "2023-06-01")}
		min, max := query.DateBounds(rows)
		if min.Format("2006-01-02") != "2023-06-01" || max.Format("2006-01-02") != "2023-06-02" {
			t.Errorf("single-day bounds not widened: %v, %v", min, max)
		}
	})

	t.Run("invalid timestamps ignored", func(t *testing.T) {
		t.Parallel()
		rows := []container.Row{{ChatID: "a", Raw: "not-a-date"}}
		min, max := query.DateBounds(rows)
		if !min.IsZero() || !max.IsZero() {
			t.Errorf("bounds from invalid timestamps: %v, %v", min, max)
		}
	})
}

func TestCursorCycling(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 5} {
		cursor := 0
		for i := 0; i < n; i++ {
			cursor = query.NextMatch(cursor, n)
		}
		if cursor != 0 {
			t.Errorf("N=%d: %d applications of next did not return to start (%d)", n, n, cursor)
		}

		if got := query.PrevMatch(0, n); got != n-1 {
			t.Errorf("N=%d: PrevMatch(0) = %d, want %d", n, got, n-1)
		}
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	var rows []container.Row
	for i := 0; i < 10; i++ {
		rows = append(rows, row("a", "x", fmt.Sprintf("m%d", i), "2023-06-01"))
	}

	// pages cover all rows exactly once
	seen := map[string]int{}
	_, totalPages := query.Paginate(rows, 1, 3)
	if totalPages != 4 {
		t.Fatalf("totalPages = %d, want 4", totalPages)
	}
	for p := 1; p <= totalPages; p++ {
		pageRows, _ := query.Paginate(rows, p, 3)
		if len(pageRows) > 3 {
			t.Errorf("page %d has %d rows", p, len(pageRows))
		}
		for _, r := range pageRows {
			seen[r.Text]++
		}
	}
	if len(seen) != len(rows) {
		t.Errorf("pages cover %d distinct rows, want %d", len(seen), len(rows))
	}
	for text, n := range seen {
		if n != 1 {
			t.Errorf("row %q appeared %d times", text, n)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	t.Parallel()

	pageRows, totalPages := query.Paginate(nil, 1, 25)
	if totalPages != 1 {
		t.Errorf("totalPages = %d, want minimum 1", totalPages)
	}
	if len(pageRows) != 0 {
		t.Errorf("empty set produced rows")
	}
}

func TestClampPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, total, want int
	}{
		{0, 5, 1},
		{-3, 5, 1},
		{3, 5, 3},
		{9, 5, 5},
	}
	for _, tt := range tests {
		if got := query.ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestDefaultPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		matches []int
		cursor  int
		want    int
	}{
		{"no search", nil, 0, 1},
		{"hit on first page", []int{2}, 0, 1},
		{"hit on third page", []int{55}, 0, 3},
		{"cursor picks the hit", []int{2, 55}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := query.DefaultPage(tt.matches, tt.cursor, 25); got != tt.want {
				t.Errorf("DefaultPage(%v, %d) = %d, want %d", tt.matches, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestSetQueryResetsCursor(t *testing.T) {
	t.Parallel()

	s := query.State{Query: "hello", Cursor: 3}
	s.SetQuery("hello")
	if s.Cursor != 3 {
		t.Errorf("unchanged query reset the cursor")
	}
	s.SetQuery("")
	if s.Cursor != 0 {
		t.Errorf("clearing the query must reset the cursor, got %d", s.Cursor)
	}
}

func TestSenderColorDeterministic(t *testing.T) {
	t.Parallel()

	for _, sender := range []string{"", "alice", "@user:example.com"} {
		i := query.PaletteIndex(sender)
		if i < 0 || i >= len(query.Palette) {
			t.Fatalf("PaletteIndex(%q) = %d out of range", sender, i)
		}
		if j := query.PaletteIndex(sender); j != i {
			t.Errorf("PaletteIndex(%q) not deterministic: %d then %d", sender, i, j)
		}
	}
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	got := query.Snippet("the quick brown fox jumps over the lazy dog", "fox", 6)
	want := "...brown >>>fox<<< jumps..."
	if got != want {
		t.Errorf("Snippet() = %q, want %q", got, want)
	}
}

// Ⱥ U+023A lowers to the byte-longer ⱥ U+2C65; snippet offsets must follow
// the original string's rune boundaries, not a lowered copy's.
func TestSnippetFoldChangesByteLength(t *testing.T) {
	t.Parallel()

	got := query.Snippet("Ⱥxx", "xx", 6)
	want := "Ⱥ>>>xx<<<"
	if got != want {
		t.Errorf("Snippet() = %q, want %q", got, want)
	}
}

func TestIndexFold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		s, substr  string
		start, end int
	}{
		{"ascii", "Hello World", "world", 6, 11},
		{"absent", "hello", "xyz", -1, -1},
		{"empty query", "hello", "", 0, 0},
		{"fold grows bytes", "Ⱥxx", "xx", 2, 4},
		{"fold shrinks bytes", "İstanbul", "istanbul", 0, 9},
		{"match is the folding rune", "aȺb", "ⱥ", 1, 3},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			start, end := query.IndexFold(tc.s, tc.substr)
			if start != tc.start || end != tc.end {
				t.Errorf("IndexFold(%q, %q) = (%d, %d), want (%d, %d)",
					tc.s, tc.substr, start, end, tc.start, tc.end)
			}
		})
	}
}
