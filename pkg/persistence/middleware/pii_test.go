package middleware_test

import (
	"context"
	"testing"

	"github.com/serenelab/wellspring/pkg/adapters/memory"
	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/persistence/middleware"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	// Mask email addresses and US-style phone numbers
	mw := middleware.NewPIIMiddleware([]string{
		`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		`\d{3}-\d{3}-\d{4}`,
	})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	threadID := "pii-thread"

	msg := domain.User("Reach me at jdoe@example.com or 555-123-4567, thanks")
	if err := secureStore.Append(ctx, threadID, msg); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// The caller's message value is untouched (Message is passed by value).
	if msg.Content != "Reach me at jdoe@example.com or 555-123-4567, thanks" {
		t.Error("Middleware modified the caller's message!")
	}

	// What hit the underlying store is masked.
	stored, err := underlyingStore.Load(ctx, threadID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 message, got %d", len(stored))
	}
	want := "Reach me at *** or ***, thanks"
	if stored[0].Content != want {
		t.Errorf("expected %q, got %q", want, stored[0].Content)
	}
	if stored[0].Role != domain.RoleUser {
		t.Errorf("role must pass through, got %q", stored[0].Role)
	}
}

func TestPIIMiddleware_PassThroughReads(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := middleware.NewPIIMiddleware([]string{`secret`})(underlyingStore)

	ctx := context.Background()
	if err := secureStore.Append(ctx, "t", domain.User("no sensitive data here")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	loaded, err := secureStore.Load(ctx, "t")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Content != "no sensitive data here" {
		t.Errorf("unexpected history: %+v", loaded)
	}

	threads, err := secureStore.Threads(ctx)
	if err != nil {
		t.Fatalf("Threads failed: %v", err)
	}
	if len(threads) != 1 || threads[0] != "t" {
		t.Errorf("unexpected threads: %v", threads)
	}

	if err := secureStore.Delete(ctx, "t"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	loaded, _ = secureStore.Load(ctx, "t")
	if len(loaded) != 0 {
		t.Errorf("thread should be gone, got %+v", loaded)
	}
}
