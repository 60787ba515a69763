package http

import (
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/chat"
	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/config"
	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/store"
	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/store/sqlite"
)

// newTestStore creates an in-memory SQLite store with the schema applied.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// newTestServer builds an HTTP server backed by the given store.
func newTestServer(t *testing.T, st store.MessageStore) *stdhttp.Server {
	t.Helper()

	disabledLogger := zerolog.New(nil)
	svc := chat.NewService(st, &disabledLogger)

	cfg := config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}

	return NewServer(svc, &cfg, &disabledLogger)
}
