package store

import (
	"context"
	"errors"
	"time"
)

// MaxContentLength is the maximum allowed message content length in
// characters, counted after trimming leading and trailing whitespace.
const MaxContentLength = 1000

// Message represents a persisted chat message. Messages are immutable once
// created; there is no update or delete path.
type Message struct {
	ID        string // opaque identifier assigned by the store
	Seq       int64  // monotonic insertion sequence, secondary sort key
	Sender    string
	Content   string
	CreatedAt time.Time
}

var (
	// ErrUnavailable indicates the backing store cannot be reached.
	// Safe to retry with backoff.
	ErrUnavailable = errors.New("store unavailable")

	// ErrInvalidMessage indicates a message violates store invariants
	// (empty sender/content or content over the length cap).
	ErrInvalidMessage = errors.New("invalid message")
)

// MessageStore handles message persistence.
type MessageStore interface {
	// AppendMessage persists a new message. It assigns ID, Seq and, when
	// zero, CreatedAt on the passed message. Invariants are re-checked
	// here even though callers validate first.
	AppendMessage(ctx context.Context, msg *Message) error

	// ListMessages returns up to limit messages ordered ascending by
	// (CreatedAt, Seq). Limit must be positive.
	ListMessages(ctx context.Context, limit int) ([]*Message, error)
}

// Store aggregates the storage interfaces.
type Store interface {
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
