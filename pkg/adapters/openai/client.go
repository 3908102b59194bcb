// Package openai adapts an OpenAI-compatible chat-completion endpoint to the
// ports.Completer interface. Credentials and endpoint are an explicit Config
// record passed into the constructor; nothing here reads the environment.
package openai

import (
	"context"
	"fmt"
	"time"

	backend "github.com/sashabaranov/go-openai"
	"github.com/serenelab/wellspring/pkg/domain"
)

// Config is the explicit configuration record for the completion client.
type Config struct {
	APIKey  string
	BaseURL string // optional override, e.g. a proxy or a test server
	Model   string

	// Timeout bounds each Complete call. Zero means the caller's context
	// deadline (if any) is the only bound.
	Timeout time.Duration

	Temperature float32
	MaxTokens   int
}

// Client implements ports.Completer over an OpenAI-compatible API.
type Client struct {
	api *backend.Client
	cfg Config
}

// New creates a completion client from the given config.
func New(cfg Config) *Client {
	apiCfg := backend.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api: backend.NewClientWithConfig(apiCfg),
		cfg: cfg,
	}
}

// Complete sends the ordered message history and returns the assistant text.
// The collaborator is stateless between calls: any conversational memory must
// be supplied by the caller via messages. Network errors, timeouts, and empty
// content all surface as errors for the caller's fallback path.
func (c *Client) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req := backend.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    toChatMessages(messages),
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", domain.ErrNoContent
	}
	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(messages []domain.Message) []backend.ChatCompletionMessage {
	out := make([]backend.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, backend.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return out
}
