package wellspring

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	fileStore "github.com/serenelab/wellspring/internal/adapters/file"
	"github.com/serenelab/wellspring/internal/agents/diet"
	"github.com/serenelab/wellspring/internal/agents/mentalhealth"
	"github.com/serenelab/wellspring/internal/agents/physician"
	"github.com/serenelab/wellspring/internal/booking"
	"github.com/serenelab/wellspring/internal/config"
	"github.com/serenelab/wellspring/pkg/adapters/ddg"
	"github.com/serenelab/wellspring/pkg/adapters/memory"
	"github.com/serenelab/wellspring/pkg/adapters/openai"
	redisStore "github.com/serenelab/wellspring/pkg/adapters/redis"
	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/observability"
	"github.com/serenelab/wellspring/pkg/persistence/middleware"
	"github.com/serenelab/wellspring/pkg/ports"
)

// Config aliases the configuration record so library consumers can build
// one without reaching into internal packages.
type Config = config.Config

// DefaultConfig returns the baseline configuration with environment
// variable overrides applied.
func DefaultConfig() Config {
	return config.Default().FromEnv()
}

// Assistant is the high-level entry point for the wellspring library. It
// wires the agents to their collaborators from a single configuration
// record and provides a simplified API for consumers.
type Assistant struct {
	cfg      config.Config
	logger   *slog.Logger
	store    ports.ConversationStore
	llm      ports.Completer
	search   ports.Searcher
	registry *prometheus.Registry
	metrics  *observability.Metrics

	diet      *diet.Agent
	physician *physician.Agent
	companion *mentalhealth.Companion
	checkins  *mentalhealth.CheckinTracker
	bookings  *booking.Ledger
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) { a.logger = logger }
}

// WithStore injects a custom ConversationStore, bypassing the configured
// backend.
func WithStore(store ports.ConversationStore) Option {
	return func(a *Assistant) { a.store = store }
}

// WithCompleter injects a custom model client.
func WithCompleter(llm ports.Completer) Option {
	return func(a *Assistant) { a.llm = llm }
}

// WithSearcher injects a custom web search client.
func WithSearcher(search ports.Searcher) Option {
	return func(a *Assistant) { a.search = search }
}

// New initializes an Assistant from the configuration record. Collaborators
// not overridden by options are built from the config: the OpenAI-compatible
// model client, the configured conversation store backend, and the
// DuckDuckGo search client.
func New(cfg config.Config, opts ...Option) (*Assistant, error) {
	a := &Assistant{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}

	if a.llm == nil {
		a.llm = openai.New(openai.Config{
			APIKey:      cfg.Model.APIKey,
			BaseURL:     cfg.Model.BaseURL,
			Model:       cfg.Model.Name,
			Timeout:     cfg.Model.Timeout(),
			Temperature: cfg.Model.Temperature,
			MaxTokens:   cfg.Model.MaxTokens,
		})
	}

	if a.store == nil {
		switch cfg.Store.Backend {
		case "redis":
			a.store = redisStore.New(cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB)
		case "memory":
			a.store = memory.NewStore()
		default:
			a.store = fileStore.New(cfg.Store.Path)
		}
	}

	mws, err := storeMiddlewares(cfg.Store)
	if err != nil {
		return nil, err
	}
	a.store = middleware.Chain(a.store, mws...)

	if a.search == nil {
		a.search = ddg.New(ddg.Config{}, ddg.WithLogger(a.logger))
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = observability.NewMetrics(a.registry)
	hooks := a.metrics.Hooks()

	a.diet = diet.New(a.llm,
		diet.WithLogger(a.logger),
		diet.WithObserver(a.metrics),
		diet.WithHooks(hooks),
	)
	a.physician = physician.New(a.llm, a.search,
		physician.WithLogger(a.logger),
		physician.WithObserver(a.metrics),
		physician.WithHooks(hooks),
	)
	a.companion = mentalhealth.New(a.llm, a.store,
		mentalhealth.WithLogger(a.logger),
		mentalhealth.WithObserver(a.metrics),
		mentalhealth.WithHooks(hooks),
	)
	a.checkins = mentalhealth.NewCheckinTracker()
	a.bookings = booking.New(cfg.BookingsPath)

	return a, nil
}

// storeMiddlewares builds the persistence middleware chain from the store
// config: PII masking first, so encrypted payloads hold the masked text.
func storeMiddlewares(cfg config.Store) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.PIIPatterns) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(cfg.PIIPatterns))
	}
	if cfg.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	return mws, nil
}

// Diet returns the meal planner agent.
func (a *Assistant) Diet() *diet.Agent { return a.diet }

// Physician returns the triage agent.
func (a *Assistant) Physician() *physician.Agent { return a.physician }

// Companion returns the mental wellness chat agent.
func (a *Assistant) Companion() *mentalhealth.Companion { return a.companion }

// Checkins returns the daily check-in tracker.
func (a *Assistant) Checkins() *mentalhealth.CheckinTracker { return a.checkins }

// Bookings returns the appointment ledger.
func (a *Assistant) Bookings() *booking.Ledger { return a.bookings }

// Store returns the conversation store.
func (a *Assistant) Store() ports.ConversationStore { return a.store }

// Registry returns the prometheus registry holding the agent metrics.
func (a *Assistant) Registry() *prometheus.Registry { return a.registry }

// Chat runs one companion turn on the given thread.
func (a *Assistant) Chat(ctx context.Context, threadID, message string) (string, error) {
	return a.companion.Chat(ctx, threadID, message)
}

// History returns the persisted messages of a thread.
func (a *Assistant) History(ctx context.Context, threadID string) ([]domain.Message, error) {
	return a.store.Load(ctx, threadID)
}

// Threads lists all known thread ids.
func (a *Assistant) Threads(ctx context.Context) ([]string, error) {
	return a.store.Threads(ctx)
}

// DeleteThread removes a thread and its history.
func (a *Assistant) DeleteThread(ctx context.Context, threadID string) error {
	return a.store.Delete(ctx, threadID)
}
