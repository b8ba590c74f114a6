package chatlog

import (
	"math"
	"time"
)

// TimestampFormat is the canonical wire format for message timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// FallbackEpoch is the sort key for messages whose timestamp does not parse.
// Malformed timestamps sort before everything real instead of being dropped.
var FallbackEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Message is one chat message as ingested. Raw always holds the original
// timestamp string, even when it failed to parse.
type Message struct {
	Raw       string
	Time      time.Time // zero when Raw did not parse
	Sender    string
	Text      string
	ID        int64 // -1 when absent
	Deepl     string
	M2M100    string
	HasDeepl  bool
	HasM2M100 bool
}

// Valid reports whether the timestamp parsed against the canonical format.
func (m Message) Valid() bool {
	return !m.Time.IsZero()
}

// Unix returns the numeric timestamp in float seconds since epoch,
// NaN when the timestamp string did not parse.
func (m Message) Unix() float64 {
	if !m.Valid() {
		return math.NaN()
	}
	return float64(m.Time.Unix())
}

// SortKey is the timestamp used for message ordering.
func (m Message) SortKey() time.Time {
	if !m.Valid() {
		return FallbackEpoch
	}
	return m.Time
}

// Chat is one conversation thread. Messages keep document order until the
// merge engine sorts them; no other component mutates a Chat after ingestion.
type Chat struct {
	ID                string
	Name              string // explicit chat_name, may be empty
	UniqueSenderCount int
	MessageCount      int
	Messages          []Message
}

// DisplayName derives the chat name written to the container: the explicit
// name when present, else the part after the last colon in the identifier,
// else the identifier itself.
func (c Chat) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if i := lastColon(c.ID); i >= 0 {
		return c.ID[i+1:]
	}
	return c.ID
}

// HasDeepl reports whether any message carries a DeepL translation.
func (c Chat) HasDeepl() bool {
	for _, m := range c.Messages {
		if m.HasDeepl {
			return true
		}
	}
	return false
}

// HasM2M100 reports whether any message carries an M2M100 translation.
func (c Chat) HasM2M100() bool {
	for _, m := range c.Messages {
		if m.HasM2M100 {
			return true
		}
	}
	return false
}

func lastColon(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			return i
		}
	}
	return -1
}

// ParseTimestamp parses the canonical format, returning the zero time on
// failure. The caller keeps the original string either way.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(TimestampFormat, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
