package middleware

import (
	"context"
	"regexp"

	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/ports"
)

const piiMask = "***"

type piiMiddleware struct {
	next     ports.ConversationStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks content matching the
// patterns before it reaches the underlying store. Masking happens on the
// write path only: what was never stored cannot leak.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ConversationStore) ports.ConversationStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Append(ctx context.Context, threadID string, msg domain.Message) error {
	for _, p := range m.patterns {
		msg.Content = p.ReplaceAllString(msg.Content, piiMask)
	}
	return m.next.Append(ctx, threadID, msg)
}

func (m *piiMiddleware) Load(ctx context.Context, threadID string) ([]domain.Message, error) {
	return m.next.Load(ctx, threadID)
}

func (m *piiMiddleware) Threads(ctx context.Context) ([]string, error) {
	return m.next.Threads(ctx)
}

func (m *piiMiddleware) Delete(ctx context.Context, threadID string) error {
	return m.next.Delete(ctx, threadID)
}
