package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/store"
	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/store/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger := zerolog.New(nil)
	return NewService(st, &logger)
}

// downStore simulates an unreachable backend.
type downStore struct{}

func (downStore) AppendMessage(context.Context, *store.Message) error {
	return store.ErrUnavailable
}

func (downStore) ListMessages(context.Context, int) ([]*store.Message, error) {
	return nil, store.ErrUnavailable
}

func TestSend_ValidationOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		sender   any
		content  any
		wantCode string
		wantMsg  string
	}{
		{"missing both", nil, nil, ErrCodeMissingField, "Sender and content are required"},
		{"missing content", "User A", nil, ErrCodeMissingField, "Sender and content are required"},
		{"non-string sender", 42, "hi", ErrCodeInvalidType, "Sender and content must be strings"},
		{"non-string content", "User A", []any{"hi"}, ErrCodeInvalidType, "Sender and content must be strings"},
		// missing wins over wrong type when both apply
		{"missing beats type", nil, 42, ErrCodeMissingField, "Sender and content are required"},
		{"empty sender", "", "hi", ErrCodeEmptyField, "Sender and content cannot be empty"},
		{"whitespace sender", "   ", "hi", ErrCodeEmptyField, "Sender and content cannot be empty"},
		{"whitespace content", "User A", " \t ", ErrCodeEmptyField, "Sender and content cannot be empty"},
		{"content too long", "User A", strings.Repeat("x", 1001), ErrCodeContentTooLong, "Message content too long (max 1000 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(ctx, tt.sender, tt.content)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, vErr.Code)
			}
			if vErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, vErr.Message)
			}
		})
	}

	// Rejected sends must not persist anything.
	msgs, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected no persisted messages, got %d", len(msgs))
	}
}

func TestSend_ContentLengthBoundary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Exactly 1000 characters after trimming is accepted.
	msg, err := svc.Send(ctx, "User A", "  "+strings.Repeat("a", 1000)+"  ")
	if err != nil {
		t.Fatalf("expected 1000-char content accepted, got %v", err)
	}
	if len(msg.Content) != 1000 {
		t.Errorf("expected trimmed content of 1000 chars, got %d", len(msg.Content))
	}

	// 1001 characters is rejected.
	_, err = svc.Send(ctx, "User A", strings.Repeat("a", 1001))
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Code != ErrCodeContentTooLong {
		t.Errorf("expected content_too_long, got %v", err)
	}
}

func TestSend_ContentCapCountsCharactersNotBytes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// 600 two-byte characters (1200 bytes) are within the 1000-character cap.
	if _, err := svc.Send(ctx, "User A", strings.Repeat("é", 600)); err != nil {
		t.Fatalf("expected multibyte content within cap accepted, got %v", err)
	}

	// Exactly 1000 multibyte characters is the boundary.
	if _, err := svc.Send(ctx, "User A", strings.Repeat("é", 1000)); err != nil {
		t.Fatalf("expected 1000 multibyte chars accepted, got %v", err)
	}

	_, err := svc.Send(ctx, "User A", strings.Repeat("é", 1001))
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Code != ErrCodeContentTooLong {
		t.Errorf("expected content_too_long for 1001 multibyte chars, got %v", err)
	}
}

func TestSend_TrimsAndPersists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	msg, err := svc.Send(ctx, "  User A  ", "  hi there  ")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.Sender != "User A" || msg.Content != "hi there" {
		t.Errorf("expected trimmed fields, got %q / %q", msg.Sender, msg.Content)
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		t.Errorf("expected assigned id and timestamp, got %q / %v", msg.ID, msg.CreatedAt)
	}

	msgs, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Sender != "User A" || msgs[0].Content != "hi there" {
		t.Errorf("persisted message differs: %+v", msgs[0])
	}
}

func TestSend_TimestampsNonDecreasing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var last *store.Message
	for i := 0; i < 5; i++ {
		msg, err := svc.Send(ctx, "User A", "msg")
		if err != nil {
			t.Fatalf("send %d failed: %v", i, err)
		}
		if last != nil && msg.CreatedAt.Before(last.CreatedAt) {
			t.Errorf("timestamp decreased: %v after %v", msg.CreatedAt, last.CreatedAt)
		}
		last = msg
	}
}

func TestList_ClampsLimit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < MaxListLimit+20; i++ {
		if _, err := svc.Send(ctx, "User A", "msg"); err != nil {
			t.Fatalf("send %d failed: %v", i, err)
		}
	}

	for _, limit := range []int{0, -1, MaxListLimit + 500} {
		msgs, err := svc.List(ctx, limit)
		if err != nil {
			t.Fatalf("list with limit %d failed: %v", limit, err)
		}
		if len(msgs) != MaxListLimit {
			t.Errorf("limit %d: expected %d messages, got %d", limit, MaxListLimit, len(msgs))
		}
	}

	msgs, err := svc.List(ctx, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(msgs) != 10 {
		t.Errorf("expected 10 messages, got %d", len(msgs))
	}
}

func TestUnavailableStore_Propagates(t *testing.T) {
	logger := zerolog.New(nil)
	svc := NewService(downStore{}, &logger)
	ctx := context.Background()

	if _, err := svc.Send(ctx, "User A", "hi"); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable on send, got %v", err)
	}
	if _, err := svc.List(ctx, 10); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable on list, got %v", err)
	}

	// Validation still runs before the store is touched.
	_, err := svc.Send(ctx, "", "hi")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError before store access, got %v", err)
	}
}
