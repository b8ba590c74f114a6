package container

import (
	"fmt"
	"strings"

	"chatvault/internal/chatlog"
)

// SanitizeID maps a chat identifier onto the container's group-naming scheme.
// Colons are the only characters the scheme forbids; each one becomes an
// underscore. The original identifier is kept as a group attribute so the
// substitution loses nothing.
func SanitizeID(id string) string {
	return strings.ReplaceAll(id, ":", "_")
}

// WriteChats serializes a merge result into the container, one group per
// chat in first-occurrence order. A chat with no messages still gets its
// group row; it just has no message columns. The whole write is one
// transaction, so a failure leaves no partial container content.
func (d *DB) WriteChats(res chatlog.MergeResult) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	chatStmt, err := tx.Prepare(
		`INSERT INTO chats (chat_id, original_chat_id, chat_name, message_count, unique_sender_count, has_deepl, has_m2m100)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer chatStmt.Close()

	msgStmt, err := tx.Prepare(
		`INSERT INTO messages (chat_id, seq, ts, ts_str, sender_alias, message, message_id, message_deepl, message_m2m100)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer msgStmt.Close()

	for _, id := range res.Order {
		chat := res.Chats[id]
		key := SanitizeID(id)

		var original any
		if key != id {
			original = id
		}

		hasDeepl := chat.HasDeepl()
		hasM2M100 := chat.HasM2M100()

		_, err = chatStmt.Exec(
			key,
			original,
			chat.DisplayName(),
			chat.MessageCount,
			chat.UniqueSenderCount,
			boolInt(hasDeepl),
			boolInt(hasM2M100),
		)
		if err != nil {
			return fmt.Errorf("write chat %s: %w", key, err)
		}

		for seq, m := range chat.Messages {
			var ts any
			if m.Valid() {
				ts = m.Unix()
			}
			var deepl, m2m100 string
			if hasDeepl {
				deepl = m.Deepl
			}
			if hasM2M100 {
				m2m100 = m.M2M100
			}
			_, err = msgStmt.Exec(key, seq, ts, m.Raw, m.Sender, m.Text, m.ID, deepl, m2m100)
			if err != nil {
				return fmt.Errorf("write chat %s message %d: %w", key, seq, err)
			}
		}
	}

	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
