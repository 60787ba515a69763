package chat

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/store"
)

const (
	// MaxContentLength caps message content after trimming.
	MaxContentLength = store.MaxContentLength

	// MaxListLimit bounds every List snapshot. It is both the default and
	// the ceiling: the polling client always receives at most this many
	// messages.
	MaxListLimit = 100
)

// Service implements the message exchange operations on top of a store.
// It holds no mutable state of its own; visibility is delegated to the store.
type Service struct {
	store store.MessageStore
	log   *zerolog.Logger
}

// NewService creates the message exchange service.
func NewService(st store.MessageStore, logger *zerolog.Logger) *Service {
	return &Service{
		store: st,
		log:   logger,
	}
}

// Send validates an inbound (sender, content) pair and persists it.
// The fields arrive as decoded JSON values so the type check can run before
// any string handling; checks run in a fixed order to keep error messages
// deterministic. No write happens on any validation failure.
func (s *Service) Send(ctx context.Context, sender, content any) (*store.Message, error) {
	if sender == nil || content == nil {
		return nil, validationError(ErrCodeMissingField, "Sender and content are required")
	}

	senderStr, senderOK := sender.(string)
	contentStr, contentOK := content.(string)
	if !senderOK || !contentOK {
		return nil, validationError(ErrCodeInvalidType, "Sender and content must be strings")
	}

	senderStr = strings.TrimSpace(senderStr)
	contentStr = strings.TrimSpace(contentStr)
	if senderStr == "" || contentStr == "" {
		return nil, validationError(ErrCodeEmptyField, "Sender and content cannot be empty")
	}

	if utf8.RuneCountInString(contentStr) > MaxContentLength {
		return nil, validationError(ErrCodeContentTooLong,
			fmt.Sprintf("Message content too long (max %d characters)", MaxContentLength))
	}

	msg := &store.Message{
		Sender:  senderStr,
		Content: contentStr,
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	s.log.Debug().Str("id", msg.ID).Str("sender", msg.Sender).Msg("message stored")
	return msg, nil
}

// List returns a time-ordered snapshot of recent messages, oldest first.
// A non-positive limit falls back to MaxListLimit; larger values are clamped.
func (s *Service) List(ctx context.Context, limit int) ([]*store.Message, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	messages, err := s.store.ListMessages(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
