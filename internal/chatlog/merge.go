package chatlog

import "sort"

// MergeResult maps chat identifiers to exactly one merged chat while
// remembering the order of first occurrence. Duplicates counts the incoming
// chats that were folded into an already-seen identifier.
type MergeResult struct {
	Order      []string
	Chats      map[string]*Chat
	Duplicates int
}

// Merge deduplicates chats sharing an identifier. The first occurrence is
// inserted as-is; later occurrences extend its message sequence, after which
// the aggregates are recomputed and the messages are stable-sorted by parsed
// timestamp (fallback epoch for malformed ones, so they sort first). This is
// the only place a Chat is mutated after ingestion.
func Merge(chats []Chat) MergeResult {
	res := MergeResult{Chats: make(map[string]*Chat)}
	for i := range chats {
		c := chats[i]
		existing, ok := res.Chats[c.ID]
		if !ok {
			cp := c
			res.Chats[c.ID] = &cp
			res.Order = append(res.Order, c.ID)
			continue
		}
		res.Duplicates++
		existing.Messages = append(existing.Messages, c.Messages...)
		existing.MessageCount = len(existing.Messages)
		existing.UniqueSenderCount = countSenders(existing.Messages)
		sort.SliceStable(existing.Messages, func(a, b int) bool {
			return existing.Messages[a].SortKey().Before(existing.Messages[b].SortKey())
		})
	}
	return res
}

func countSenders(msgs []Message) int {
	seen := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		seen[m.Sender] = struct{}{}
	}
	return len(seen)
}
