package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/ports"
)

// encPrefix marks encrypted message content so plain legacy messages can be
// passed through on read.
const encPrefix = "enc:v1:"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ConversationStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts message content
// at rest using AES-GCM. Roles stay in the clear so histories remain
// enumerable; only the content is opaque.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.ConversationStore) ports.ConversationStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Append(ctx context.Context, threadID string, msg domain.Message) error {
	ciphertext, err := encrypt([]byte(msg.Content), m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt message: %w", err)
	}
	msg.Content = encPrefix + base64.StdEncoding.EncodeToString(ciphertext)
	return m.next.Append(ctx, threadID, msg)
}

func (m *encryptionMiddleware) Load(ctx context.Context, threadID string) ([]domain.Message, error) {
	msgs, err := m.next.Load(ctx, threadID)
	if err != nil {
		return nil, err
	}

	for i, msg := range msgs {
		if !strings.HasPrefix(msg.Content, encPrefix) {
			// Plain message from before encryption was enabled.
			continue
		}
		ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(msg.Content, encPrefix))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
		}
		plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt message: %w", err)
		}
		msgs[i].Content = string(plain)
	}
	return msgs, nil
}

func (m *encryptionMiddleware) Threads(ctx context.Context) ([]string, error) {
	return m.next.Threads(ctx)
}

func (m *encryptionMiddleware) Delete(ctx context.Context, threadID string) error {
	return m.next.Delete(ctx, threadID)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
