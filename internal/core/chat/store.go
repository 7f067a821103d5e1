package chat

import (
	"context"
)

// Store defines the persistence contract for the message log.
type Store interface {
	// Initialize ensures the underlying schema exists. It is safe to call
	// repeatedly and when the backing file does not exist yet.
	Initialize(ctx context.Context) error

	// Append durably writes one message. The store assigns the ID and
	// timestamp. Returns an error wrapping ErrValidation if author or body
	// is blank.
	Append(ctx context.Context, author, body string) error

	// ReadAll returns every stored message ordered by timestamp, then ID.
	ReadAll(ctx context.Context) ([]Message, error)
}
