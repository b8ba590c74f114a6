package container

import (
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"chatvault/internal/chatlog"
)

// Row is one message flattened out of its group: everything the viewer needs
// without a back-reference to the chat.
type Row struct {
	ChatID    string // group key, possibly sanitized
	ChatName  string
	FileName  string
	Time      time.Time // zero when neither timestamp field reconstructs
	Unix      float64   // NaN when the numeric timestamp is missing
	Raw       string    // verbatim timestamp string
	Sender    string
	Text      string
	ID        int64
	Deepl     string
	M2M100    string
	HasDeepl  bool
	HasM2M100 bool
}

// TimeValid reports whether the row has a reconstructed timestamp.
func (r Row) TimeValid() bool {
	return !r.Time.IsZero()
}

// Diagnostic records a group that could not be read. One corrupt chat never
// aborts the rest of the load.
type Diagnostic struct {
	ChatID string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("chat %s: %v", d.ChatID, d.Err)
}

type chatHeader struct {
	id        string
	name      string
	hasDeepl  bool
	hasM2M100 bool
}

// Load opens a container, flattens every group into rows, and closes it.
// Groups without the required message columns are skipped with a diagnostic.
// Timestamps rebuild from the string field when it parses, falling back to
// the numeric field; the string keeps precision the float may have lost.
func Load(path string) ([]Row, []Diagnostic, error) {
	db, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	fileName := filepath.Base(path)

	headers, err := db.chatHeaders()
	if err != nil {
		return nil, nil, fmt.Errorf("read chats: %w", err)
	}

	var rows []Row
	var diags []Diagnostic
	for _, h := range headers {
		chatRows, err := db.chatRows(h, fileName)
		if err != nil {
			diags = append(diags, Diagnostic{ChatID: h.id, Err: err})
			continue
		}
		// a group with no message columns is not a chat
		if len(chatRows) == 0 {
			continue
		}
		rows = append(rows, chatRows...)
	}
	return rows, diags, nil
}

func (d *DB) chatHeaders() ([]chatHeader, error) {
	rows, err := d.db.Query("SELECT chat_id, chat_name, has_deepl, has_m2m100 FROM chats ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []chatHeader
	for rows.Next() {
		var h chatHeader
		var name sql.NullString
		if err := rows.Scan(&h.id, &name, &h.hasDeepl, &h.hasM2M100); err != nil {
			return nil, err
		}
		if name.Valid && name.String != "" {
			h.name = name.String
		} else {
			h.name = fmt.Sprintf("Chat %s", h.id)
		}
		headers = append(headers, h)
	}
	return headers, rows.Err()
}

func (d *DB) chatRows(h chatHeader, fileName string) ([]Row, error) {
	rows, err := d.db.Query(
		`SELECT ts, ts_str, sender_alias, message, message_id, message_deepl, message_m2m100
		 FROM messages WHERE chat_id = ? ORDER BY seq`,
		h.id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var ts sql.NullFloat64
		var raw, sender, text sql.NullString
		var id sql.NullInt64
		var deepl, m2m100 sql.NullString
		if err := rows.Scan(&ts, &raw, &sender, &text, &id, &deepl, &m2m100); err != nil {
			return nil, err
		}
		// required message columns must be present
		if !raw.Valid || !sender.Valid || !text.Valid {
			return nil, fmt.Errorf("missing required message fields")
		}

		r := Row{
			ChatID:    h.id,
			ChatName:  h.name,
			FileName:  fileName,
			Raw:       raw.String,
			Sender:    sender.String,
			Text:      text.String,
			ID:        -1,
			HasDeepl:  h.hasDeepl,
			HasM2M100: h.hasM2M100,
		}
		if id.Valid {
			r.ID = id.Int64
		}
		if h.hasDeepl {
			r.Deepl = deepl.String
		}
		if h.hasM2M100 {
			r.M2M100 = m2m100.String
		}

		r.Unix = math.NaN()
		if ts.Valid {
			r.Unix = ts.Float64
		}
		if t := chatlog.ParseTimestamp(raw.String); !t.IsZero() {
			r.Time = t
		} else if ts.Valid && !math.IsNaN(ts.Float64) {
			r.Time = time.Unix(int64(ts.Float64), 0).UTC()
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
