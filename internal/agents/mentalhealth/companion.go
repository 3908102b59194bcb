// Package mentalhealth implements the mental wellness companion: an
// empathetic chat agent backed by the conversation store, GAD-7 anxiety
// scoring, and a daily emotional check-in with streak tracking.
package mentalhealth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/ports"
	"github.com/serenelab/wellspring/pkg/workflow"
)

// systemPrompt frames every completion call. It is prepended per call and
// never persisted to the conversation store.
const systemPrompt = "You are a caring, concise mental wellness companion. " +
	"Respond empathetically in 2-5 short sentences. " +
	"Offer practical, safe, non-clinical tips. " +
	"Do not reveal chain-of-thought or internal reasoning. " +
	"If you detect crisis (self-harm/violence), advise contacting local emergency services or hotlines."

// Observer receives completion events for instrumentation.
type Observer interface {
	ObserveCompletion(agent string, err error)
}

// Companion is the chat agent. Every turn loads the thread history from the
// store, sends it with the system prompt, and persists both sides of the
// exchange.
type Companion struct {
	llm      ports.Completer
	store    ports.ConversationStore
	log      *slog.Logger
	observer Observer
	hooks    workflow.Hooks
}

// Option configures the Companion.
type Option func(*Companion)

// WithLogger configures the companion logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Companion) { c.log = l }
}

// WithObserver registers metrics instrumentation.
func WithObserver(o Observer) Option {
	return func(c *Companion) { c.observer = o }
}

// WithHooks registers workflow node hooks.
func WithHooks(h workflow.Hooks) Option {
	return func(c *Companion) { c.hooks = h }
}

// New creates the companion over a completer and a conversation store.
func New(llm ports.Completer, store ports.ConversationStore, opts ...Option) *Companion {
	c := &Companion{
		llm:   llm,
		store: store,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State field names used by the chat graph.
const (
	fieldThreadID = "thread_id"
	fieldInput    = "input"
	fieldReply    = "reply"
)

// Graph returns the single-node chat workflow.
func (c *Companion) Graph() *workflow.Graph {
	return workflow.New("wellness_chat",
		workflow.WithLogger(c.log),
		workflow.WithHooks(c.hooks),
	).
		AddNode("chat", c.chatNode)
}

// chatNode loads history, completes with the system prompt prepended, and
// persists the exchange. A store that cannot be read degrades to an empty
// history rather than blocking the turn.
func (c *Companion) chatNode(ctx context.Context, s *workflow.State) error {
	threadID := s.String(fieldThreadID)
	input := s.String(fieldInput)

	history, err := c.store.Load(ctx, threadID)
	if err != nil {
		c.log.Warn("loading history", "thread_id", threadID, "err", err)
		history = nil
	}

	msgs := make([]domain.Message, 0, len(history)+2)
	msgs = append(msgs, domain.System(systemPrompt))
	msgs = append(msgs, history...)
	msgs = append(msgs, domain.User(input))

	reply, err := c.llm.Complete(ctx, msgs)
	if c.observer != nil {
		c.observer.ObserveCompletion("mentalhealth", err)
	}
	if err != nil {
		s.AddNotice("The companion is temporarily unavailable. Please try again.")
		return fmt.Errorf("chat completion: %w", err)
	}
	s.Set(fieldReply, reply)

	if err := c.store.Append(ctx, threadID, domain.User(input)); err != nil {
		return fmt.Errorf("persisting user turn: %w", err)
	}
	if err := c.store.Append(ctx, threadID, domain.Assistant(reply)); err != nil {
		return fmt.Errorf("persisting assistant turn: %w", err)
	}
	return nil
}

// Chat runs one conversational turn on the given thread and returns the
// companion's reply.
func (c *Companion) Chat(ctx context.Context, threadID, input string) (string, error) {
	if threadID == "" {
		return "", domain.ErrEmptyThreadID
	}
	if input == "" {
		return "", fmt.Errorf("message must not be empty")
	}

	state := workflow.NewState()
	state.Set(fieldThreadID, threadID)
	state.Set(fieldInput, input)

	final, err := c.Graph().Run(ctx, state)
	if err != nil {
		return "", err
	}
	return final.String(fieldReply), nil
}

// History returns the persisted messages of a thread. Unknown threads yield
// an empty history.
func (c *Companion) History(ctx context.Context, threadID string) ([]domain.Message, error) {
	return c.store.Load(ctx, threadID)
}
