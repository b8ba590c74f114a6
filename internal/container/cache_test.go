package container

import (
	"testing"
	"time"

	"chatvault/internal/chatlog"
)

func TestCacheExpiry(t *testing.T) {
	t.Parallel()

	res := chatlog.Merge([]chatlog.Chat{
		{ID: "A", MessageCount: 1, Messages: []chatlog.Message{{
			Raw:    "2023-01-01 10:00:00",
			Time:   chatlog.ParseTimestamp("2023-01-01 10:00:00"),
			Sender: "x",
			Text:   "hi",
			ID:     -1,
		}}},
	})

	path := t.TempDir() + "/chats.db"
	db, err := Create(path, false)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := db.WriteChats(res); err != nil {
		t.Fatalf("WriteChats() error: %v", err)
	}
	db.Close()

	clock := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(10 * time.Minute)
	c.now = func() time.Time { return clock }

	first, _, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// inside the window the cached slice comes back, even if the file changed
	db, err = Create(path, true)
	if err != nil {
		t.Fatalf("Create(overwrite) error: %v", err)
	}
	db.Close()

	clock = clock.Add(5 * time.Minute)
	cached, _, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cached) != len(first) {
		t.Fatalf("cached load = %d rows, want %d", len(cached), len(first))
	}

	// past expiry the rewritten (now empty) container is visible
	clock = clock.Add(6 * time.Minute)
	fresh, _, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(fresh) != 0 {
		t.Fatalf("post-expiry load = %d rows, want 0", len(fresh))
	}
}
