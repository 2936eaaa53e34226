package models

import "sort"

// Conversation is one row per counterpart, carrying the latest message
// exchanged with them.
type Conversation struct {
	CounterpartID   uint    `json:"counterpartId"`
	CounterpartName string  `json:"counterpartName,omitempty"`
	LastMessage     Message `json:"lastMessage"`
}

// after reports whether m is newer than o. Equal timestamps fall back to id.
func (m Message) after(o Message) bool {
	if !m.CreatedAt.Equal(o.CreatedAt) {
		return m.CreatedAt.After(o.CreatedAt)
	}
	return m.ID > o.ID
}

// SortThread orders messages oldest first.
func SortThread(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[j].after(msgs[i]) })
}

// GroupConversations reduces every message involving userID to one
// Conversation per counterpart. Rows are ordered newest first; rows whose
// latest messages share a timestamp are ordered by counterpart id ascending.
func GroupConversations(userID uint, msgs []Message) []Conversation {
	latest := make(map[uint]Message)
	for _, m := range msgs {
		var other uint
		switch userID {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}
		if cur, ok := latest[other]; !ok || m.after(cur) {
			latest[other] = m
		}
	}

	out := make([]Conversation, 0, len(latest))
	for id, m := range latest {
		out = append(out, Conversation{CounterpartID: id, LastMessage: m})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastMessage.CreatedAt, out[j].LastMessage.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return out[i].CounterpartID < out[j].CounterpartID
	})
	return out
}
