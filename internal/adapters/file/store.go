package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/serenelab/wellspring/pkg/domain"
)

// tmpPrefix marks in-flight write files in the base directory. They are
// renamed away on success and must never be listed as threads.
const tmpPrefix = "tmp-"

// Store implements ports.ConversationStore using the local filesystem.
// Each thread is stored as one JSON document in a configured directory, so a
// successful Append survives process restart.
type Store struct {
	BasePath string

	// Guards read-modify-write of individual thread files. Per-thread writers
	// are assumed single, but appends to different threads may race on
	// directory creation and listing.
	mu sync.Mutex
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".wellspring/threads".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".wellspring", "threads")
	}
	return &Store{BasePath: basePath}
}

// Append adds the message to the thread document, creating it if absent.
// The document is rewritten atomically: temp file, fsync, rename.
func (s *Store) Append(ctx context.Context, threadID string, msg domain.Message) error {
	if threadID == "" {
		return domain.ErrEmptyThreadID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	thread, err := s.read(threadID)
	if err != nil {
		return err
	}
	if thread == nil {
		thread = &domain.Thread{
			ID:        threadID,
			CreatedAt: time.Now().UTC(),
		}
	}
	thread.Messages = append(thread.Messages, msg)

	return s.write(threadID, thread)
}

// Load retrieves the full history from the thread document.
// A missing document yields an empty history, not an error.
func (s *Store) Load(ctx context.Context, threadID string) ([]domain.Message, error) {
	if threadID == "" {
		return nil, domain.ErrEmptyThreadID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	thread, err := s.read(threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return []domain.Message{}, nil
	}
	return thread.Messages, nil
}

// Delete removes the thread document. A missing document is a no-op.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	if threadID == "" {
		return domain.ErrEmptyThreadID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(threadID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete thread file: %w", err)
	}
	return nil
}

// Threads returns all thread ids found in the base directory. In-flight
// temp files from write are not thread documents and are skipped.
func (s *Store) Threads(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	var threads []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, tmpPrefix) {
			continue
		}
		threads = append(threads, name[:len(name)-len(".json")])
	}
	return threads, nil
}

func (s *Store) path(threadID string) string {
	return filepath.Join(s.BasePath, threadID+".json")
}

// read loads the thread document, or nil when it does not exist yet.
func (s *Store) read(threadID string) (*domain.Thread, error) {
	data, err := os.ReadFile(s.path(threadID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read thread file: %w", err)
	}

	var thread domain.Thread
	if err := json.Unmarshal(data, &thread); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thread: %w", err)
	}
	return &thread, nil
}

// write persists the thread document atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to
// the destination. The temp file lives in the same directory to ensure we are
// on the same filesystem (required for atomic rename).
func (s *Store) write(threadID string, thread *domain.Thread) error {
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure thread directory: %w", err)
	}

	data, err := json.MarshalIndent(thread, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal thread: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, tmpPrefix+threadID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(threadID)

	// On Windows, os.Rename fails if dest exists; remove it first. The tiny
	// delete-then-rename window is acceptable compared to a partial file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing thread file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to thread file: %w", err)
	}
	return nil
}
