package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serenelab/wellspring/pkg/domain"
)

// defaultNamePrefix marks a display name that has not been personalized yet.
const defaultNamePrefix = "Chat "

const nameSnippetLen = 30

// Session is per-connection mutable state. Not safe for concurrent use: each
// user connection owns exactly one Session and drives it from a single
// logical thread of control.
type Session struct {
	threadID   string
	threads    []string          // known ids, insertion order
	names      map[string]string // thread id -> display name
	history    []domain.Message  // the session's visible message list
	lastResult any

	now func() time.Time
}

// New initializes an empty session with a fresh thread id.
func New() *Session {
	s := &Session{
		names: make(map[string]string),
		now:   time.Now,
	}
	s.adopt(newThreadID())
	return s
}

// ThreadID returns the active thread id.
func (s *Session) ThreadID() string {
	return s.threadID
}

// Threads returns the thread ids known to this session, oldest first.
func (s *Session) Threads() []string {
	out := make([]string, len(s.threads))
	copy(out, s.threads)
	return out
}

// Reset starts a new chat: a fresh thread id, distinct from the prior one,
// with the session's visible message list cleared. The prior thread remains
// durably stored; only this session's view moves on.
func (s *Session) Reset() string {
	s.adopt(newThreadID())
	s.history = nil
	s.lastResult = nil
	return s.threadID
}

// Resume switches the session view to an existing thread. The caller is
// expected to refill the visible history from the store.
func (s *Session) Resume(threadID string, history []domain.Message) {
	s.adopt(threadID)
	s.history = make([]domain.Message, len(history))
	copy(s.history, history)
}

// Name returns the display name for a thread, falling back to the id.
func (s *Session) Name(threadID string) string {
	if name, ok := s.names[threadID]; ok {
		return name
	}
	return threadID
}

// NameFromFirstMessage sets the thread display name from the first user
// message, once: it only applies while the name still carries its default
// placeholder value.
func (s *Session) NameFromFirstMessage(threadID, userMessage string) {
	current := s.names[threadID]
	if current != "" && !strings.HasPrefix(current, defaultNamePrefix) {
		return
	}
	snippet := strings.TrimSpace(strings.ReplaceAll(userMessage, "\n", " "))
	if runes := []rune(snippet); len(runes) > nameSnippetLen {
		snippet = string(runes[:nameSnippetLen])
	}
	if snippet != "" {
		s.names[threadID] = snippet
	}
}

// Remember appends a message to the session's visible list.
func (s *Session) Remember(msg domain.Message) {
	s.history = append(s.history, msg)
}

// History returns a copy of the session's visible message list.
func (s *Session) History() []domain.Message {
	out := make([]domain.Message, len(s.history))
	copy(out, s.history)
	return out
}

// SetLastResult caches the last parsed result for re-render.
func (s *Session) SetLastResult(v any) {
	s.lastResult = v
}

// LastResult returns the cached result, if any.
func (s *Session) LastResult() (any, bool) {
	return s.lastResult, s.lastResult != nil
}

// adopt makes threadID the active thread, registering it with a default
// display name when first seen.
func (s *Session) adopt(threadID string) {
	s.threadID = threadID
	for _, known := range s.threads {
		if known == threadID {
			return
		}
	}
	s.threads = append(s.threads, threadID)
	s.names[threadID] = defaultNamePrefix +
		s.now().Format("Jan 02, 2006 15:04")
}

func newThreadID() string {
	return uuid.NewString()
}
