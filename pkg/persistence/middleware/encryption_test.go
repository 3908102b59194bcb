package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/serenelab/wellspring/pkg/adapters/memory"
	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	key := generateKey(t)
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	threadID := "enc-thread"

	if err := secureStore.Append(ctx, threadID, domain.User("I take sertraline daily")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// The underlying store only sees ciphertext.
	stored, err := underlyingStore.Load(ctx, threadID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 message, got %d", len(stored))
	}
	if strings.Contains(stored[0].Content, "sertraline") {
		t.Fatalf("plaintext leaked to underlying store: %q", stored[0].Content)
	}
	if !strings.HasPrefix(stored[0].Content, "enc:v1:") {
		t.Fatalf("expected envelope prefix, got %q", stored[0].Content)
	}
	if stored[0].Role != domain.RoleUser {
		t.Errorf("role stays in the clear, got %q", stored[0].Role)
	}

	// Loading via the middleware decrypts.
	loaded, err := secureStore.Load(ctx, threadID)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded[0].Content != "I take sertraline daily" {
		t.Errorf("decryption mismatch: %q", loaded[0].Content)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	ctx := context.Background()
	threadID := "rotation-thread"

	// 1. Append with OLD key.
	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)
	if err := secureStoreOld.Append(ctx, threadID, domain.User("written with old key")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// 2. Load with NEW key (active) + OLD key (fallback).
	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, threadID)
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded[0].Content != "written with old key" {
		t.Errorf("decryption with fallback key failed: %q", loaded[0].Content)
	}

	// 3. Append with NEW key, then verify OLD-key-only middleware fails.
	if err := secureStoreNew.Append(ctx, threadID, domain.Assistant("written with new key")); err != nil {
		t.Fatalf("Append with new key failed: %v", err)
	}
	if _, err := secureStoreOld.Load(ctx, threadID); err == nil {
		t.Error("expected failure when loading new-key ciphertext with old-key middleware")
	}
}

func TestEncryptionMiddleware_PlainLegacyMessagesPassThrough(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()

	// Message stored before encryption was enabled.
	if err := underlyingStore.Append(ctx, "t", domain.User("plain history")); err != nil {
		t.Fatal(err)
	}

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	loaded, err := secureStore.Load(ctx, "t")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded[0].Content != "plain history" {
		t.Errorf("legacy message mangled: %q", loaded[0].Content)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}

func TestChain_OrderIsOutermostFirst(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()

	key := generateKey(t)
	store := middleware.Chain(underlyingStore,
		middleware.NewPIIMiddleware([]string{`\d{3}-\d{3}-\d{4}`}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)

	if err := store.Append(ctx, "t", domain.User("call 555-123-4567")); err != nil {
		t.Fatal(err)
	}

	// PII runs before encryption: decrypting yields the masked text.
	loaded, err := store.Load(ctx, "t")
	if err != nil {
		t.Fatal(err)
	}
	if loaded[0].Content != "call ***" {
		t.Errorf("expected masked plaintext after decryption, got %q", loaded[0].Content)
	}
}
