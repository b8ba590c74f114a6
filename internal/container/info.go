package container

import "database/sql"

// GroupInfo is the inspectable shape of one group: its attributes, the
// length of its message columns, and which optional columns it carries.
type GroupInfo struct {
	ChatID            string
	OriginalChatID    string // empty unless sanitization occurred
	ChatName          string
	MessageCount      int
	UniqueSenderCount int
	HasDeepl          bool
	HasM2M100         bool
	Rows              int // actual message rows present
	FirstTimestamps   []string
}

// Groups lists every group in insertion order with its attributes, for the
// structure explorer. Unlike Load it does not skip dataset-less groups.
func (d *DB) Groups() ([]GroupInfo, error) {
	rows, err := d.db.Query(
		`SELECT chat_id, original_chat_id, chat_name, message_count, unique_sender_count, has_deepl, has_m2m100
		 FROM chats ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []GroupInfo
	for rows.Next() {
		var g GroupInfo
		var original sql.NullString
		if err := rows.Scan(&g.ChatID, &original, &g.ChatName,
			&g.MessageCount, &g.UniqueSenderCount, &g.HasDeepl, &g.HasM2M100); err != nil {
			return nil, err
		}
		if original.Valid {
			g.OriginalChatID = original.String
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		g := &groups[i]
		if err := d.db.QueryRow(
			"SELECT COUNT(*) FROM messages WHERE chat_id = ?", g.ChatID,
		).Scan(&g.Rows); err != nil {
			return nil, err
		}
		ts, err := d.db.Query(
			"SELECT ts_str FROM messages WHERE chat_id = ? ORDER BY seq LIMIT 5", g.ChatID,
		)
		if err != nil {
			return nil, err
		}
		for ts.Next() {
			var s string
			if err := ts.Scan(&s); err != nil {
				ts.Close()
				return nil, err
			}
			g.FirstTimestamps = append(g.FirstTimestamps, s)
		}
		if err := ts.Err(); err != nil {
			ts.Close()
			return nil, err
		}
		ts.Close()
	}
	return groups, nil
}
