package redis

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"
	"github.com/serenelab/wellspring/pkg/domain"
)

// Store implements ports.ConversationStore using Redis.
// Each thread is a Redis list of JSON-encoded messages; an index set tracks
// known thread ids for enumeration.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for threads.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "wellspring:thread:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(threadID string) string {
	return s.prefix + threadID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Append pushes the message onto the thread list and records the id in the
// index set. RPUSH keeps per-thread insertion order; the pipeline keeps the
// list and the index consistent.
func (s *Store) Append(ctx context.Context, threadID string, msg domain.Message) error {
	if threadID == "" {
		return domain.ErrEmptyThreadID
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, s.key(threadID), data)
	pipe.SAdd(ctx, s.indexKey(), threadID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Load retrieves the full history in insertion order.
func (s *Store) Load(ctx context.Context, threadID string) ([]domain.Message, error) {
	if threadID == "" {
		return nil, domain.ErrEmptyThreadID
	}

	entries, err := s.client.LRange(ctx, s.key(threadID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read thread from redis: %w", err)
	}

	messages := make([]domain.Message, 0, len(entries))
	for _, entry := range entries {
		var msg domain.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Delete removes the thread list and its index entry. The pipeline keeps
// both consistent; unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	if threadID == "" {
		return domain.ErrEmptyThreadID
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(threadID))
	pipe.SRem(ctx, s.indexKey(), threadID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete thread from redis: %w", err)
	}
	return nil
}

// Threads returns all thread ids recorded in the index set.
func (s *Store) Threads(ctx context.Context) ([]string, error) {
	threads, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return threads, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
