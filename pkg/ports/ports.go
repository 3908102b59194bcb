package ports

import (
	"context"

	"github.com/serenelab/wellspring/pkg/domain"
)

// ConversationStore persists ordered message logs keyed by thread id.
// It is the system of record for conversations: once Append returns nil the
// message must survive a process restart. Implementations must be safe for
// concurrent appends to different thread ids; a single active writer per
// thread is assumed.
type ConversationStore interface {
	// Append adds a message to the ordered log for the thread, creating the
	// thread if absent.
	Append(ctx context.Context, threadID string, msg domain.Message) error

	// Load returns the full history in insertion order. An unknown thread id
	// yields an empty slice, not an error.
	Load(ctx context.Context, threadID string) ([]domain.Message, error)

	// Threads enumerates all known thread ids. Order is unspecified.
	Threads(ctx context.Context) ([]string, error)

	// Delete removes a thread and its history. Deleting an unknown thread is
	// a no-op.
	Delete(ctx context.Context, threadID string) error
}

// Completer is the hosted LLM collaborator. It is slow (network-bound),
// stateless between calls (memory must be supplied via the message history),
// and unreliable in output format. Callers bound latency via the context
// deadline; an empty completion is an error.
type Completer interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}

// SearchResult is one hit from the web-search collaborator.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher is the web-search collaborator. Search never returns an error:
// failures yield an empty result set plus a diagnostic entry.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []SearchResult
}
