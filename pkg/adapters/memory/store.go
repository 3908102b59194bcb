package memory

import (
	"context"
	"sync"

	"github.com/serenelab/wellspring/pkg/domain"
)

// Store implements ports.ConversationStore in memory.
// Safe for concurrent use. Not durable: intended for tests and ephemeral runs.
type Store struct {
	logs map[string][]domain.Message
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		logs: make(map[string][]domain.Message),
	}
}

// Append adds the message to the thread log, creating the thread if absent.
func (s *Store) Append(ctx context.Context, threadID string, msg domain.Message) error {
	if threadID == "" {
		return domain.ErrEmptyThreadID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[threadID] = append(s.logs[threadID], msg)
	return nil
}

// Load returns the full history in insertion order.
// Returns a copy so the caller can't mutate store state directly.
func (s *Store) Load(ctx context.Context, threadID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.logs[threadID]
	if !ok {
		return []domain.Message{}, nil
	}

	out := make([]domain.Message, len(log))
	copy(out, log)
	return out, nil
}

// Delete removes the thread log. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, threadID)
	return nil
}

// Threads returns all known thread ids.
func (s *Store) Threads(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	threads := make([]string, 0, len(s.logs))
	for id := range s.logs {
		threads = append(threads, id)
	}
	return threads, nil
}
