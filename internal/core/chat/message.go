// Package chat defines the chat message domain types and the store contract.
package chat

import (
	"time"
)

// Message is a single chat message. Messages are immutable once stored.
type Message struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Line renders a message the way the log displays it.
func (m Message) Line() string {
	return m.Author + ": " + m.Body
}

// Before reports whether m sorts before other in log order. Timestamps
// order messages; ties fall back to the store-assigned ID.
func (m Message) Before(other Message) bool {
	if m.CreatedAt.Equal(other.CreatedAt) {
		return m.ID < other.ID
	}
	return m.CreatedAt.Before(other.CreatedAt)
}
