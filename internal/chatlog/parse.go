package chatlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type exportChat struct {
	ChatID            string          `json:"chat_id"`
	ChatName          string          `json:"chat_name"`
	UniqueSenderCount int             `json:"unique_sender_count"`
	MessageCount      int             `json:"message_count"`
	Messages          []exportMessage `json:"messages"`
}

type exportMessage struct {
	Timestamp   string  `json:"timestamp"`
	SenderAlias string  `json:"sender_alias"`
	Message     string  `json:"message"`
	MessageID   *int64  `json:"message_id"`
	Deepl       *string `json:"message_deepl"`
	M2M100      *string `json:"message_m2m100"`
}

// Parse reads one chat-export document: an ordered array of chat objects.
// Document order of chats and message order within each chat are preserved.
// A message whose timestamp fails to parse is kept with its original string
// and a zero parsed time; ingestion never drops a message.
func Parse(r io.Reader) ([]Chat, error) {
	var doc []exportChat
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	chats := make([]Chat, 0, len(doc))
	for _, ec := range doc {
		c := Chat{
			ID:                ec.ChatID,
			Name:              ec.ChatName,
			UniqueSenderCount: ec.UniqueSenderCount,
			MessageCount:      ec.MessageCount,
			Messages:          make([]Message, 0, len(ec.Messages)),
		}
		for _, em := range ec.Messages {
			m := Message{
				Raw:    em.Timestamp,
				Time:   ParseTimestamp(em.Timestamp),
				Sender: em.SenderAlias,
				Text:   em.Message,
				ID:     -1,
			}
			if em.MessageID != nil {
				m.ID = *em.MessageID
			}
			if em.Deepl != nil {
				m.HasDeepl = true
				m.Deepl = *em.Deepl
			}
			if em.M2M100 != nil {
				m.HasM2M100 = true
				m.M2M100 = *em.M2M100
			}
			c.Messages = append(c.Messages, m)
		}
		chats = append(chats, c)
	}
	return chats, nil
}

// ParseFile parses one export document from disk.
func ParseFile(path string) ([]Chat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chats, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return chats, nil
}

// ParseFiles parses several export documents and concatenates their chats in
// argument order, ready for merging.
func ParseFiles(paths []string) ([]Chat, error) {
	var all []Chat
	for _, p := range paths {
		chats, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, chats...)
	}
	return all, nil
}
