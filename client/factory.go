package client

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/randalmurphal/llmswitch/model"
	"github.com/randalmurphal/llmswitch/provider"
)

// Kind is the wire-protocol family of a client.
type Kind string

// Wire-protocol families.
const (
	KindOpenAICompatible Kind = "openai-compatible"
	KindAnthropic        Kind = "anthropic"
)

// backend sends one completion over a specific wire protocol.
type backend interface {
	complete(ctx context.Context, modelID string, req Request) (*Response, error)
}

// transportOptions are passed through to the SDK clients.
type transportOptions struct {
	httpClient *http.Client
	timeout    time.Duration
}

// ClientHandle is a constructed SDK client tagged with its provider.
type ClientHandle struct {
	// Provider is the provider the client talks to.
	Provider provider.ID

	// Kind is the wire-protocol family.
	Kind Kind

	// BaseURL is the API root the client was built with.
	BaseURL string

	// HasAPIKey is false when the client was built with an empty credential.
	HasAPIKey bool

	backend backend
}

// Factory builds provider clients from a Selector. The client for the
// selected provider is constructed once, on first use, and reused.
type Factory struct {
	selector         *provider.Selector
	logger           *slog.Logger
	transport        transportOptions
	anthropicBaseURL string
	tracker          *model.CostTracker

	once   sync.Once
	handle *ClientHandle
}

// Option configures a Factory.
type Option func(*Factory)

// WithSelector sets the selector used to resolve provider, endpoint,
// credential and model. Default: provider.FromEnv().
func WithSelector(s *provider.Selector) Option {
	return func(f *Factory) {
		if s != nil {
			f.selector = s
		}
	}
}

// WithLogger sets the logger for construction warnings.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client used by both SDKs.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Factory) {
		f.transport.httpClient = c
	}
}

// WithRequestTimeout sets a per-request timeout on the SDK clients.
func WithRequestTimeout(d time.Duration) Option {
	return func(f *Factory) {
		f.transport.timeout = d
	}
}

// WithAnthropicBaseURL points the native Anthropic client at a different
// API root, such as a test server or a proxy.
func WithAnthropicBaseURL(url string) Option {
	return func(f *Factory) {
		f.anthropicBaseURL = url
	}
}

// WithCostTracker records the usage of every completion in t.
func WithCostTracker(t *model.CostTracker) Option {
	return func(f *Factory) {
		f.tracker = t
	}
}

// NewFactory creates a factory with the given options.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		selector: provider.FromEnv(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Selector returns the factory's selector.
func (f *Factory) Selector() *provider.Selector {
	return f.selector
}

// Client returns the client for the selected provider, constructing it on
// the first call. Later calls return the same handle even if the
// environment has changed.
func (f *Factory) Client() *ClientHandle {
	f.once.Do(func() {
		cfg := f.selector.CurrentProvider()
		baseURL := ""
		if cfg.OpenAICompatible {
			baseURL = f.selector.BaseURL()
		}
		f.handle = f.build(cfg, baseURL, f.selector.CredentialFor(cfg))
	})
	return f.handle
}

// Model returns a handle for the named model bound to the cached client.
// An empty name resolves to the selector's default model.
func (f *Factory) Model(name string) *ModelHandle {
	if name == "" {
		name = f.selector.DefaultModelID()
	}
	return f.newModelHandle(f.Client(), name)
}

// FromProvider builds an uncached client for the given provider and returns
// a handle for modelName, or the provider's default model when empty. The
// registry base URL is used; environment overrides are ignored.
//
// Returns an error wrapping provider.ErrUnknownProvider if the provider is
// not registered.
func (f *Factory) FromProvider(id string, modelName string) (*ModelHandle, error) {
	pid, ok := provider.ParseID(id)
	if !ok {
		return nil, provider.NewError(id, "client", provider.UnknownProviderError(id))
	}
	cfg := provider.MustLookup(pid)

	baseURL := ""
	if cfg.OpenAICompatible {
		baseURL = cfg.BaseURL
	}
	handle := f.build(cfg, baseURL, f.selector.CredentialFor(cfg))

	if modelName == "" {
		modelName = cfg.DefaultModel
	}
	return f.newModelHandle(handle, modelName), nil
}

// build constructs a client. For Anthropic an empty baseURL means the
// SDK's own API root, unless WithAnthropicBaseURL was given.
func (f *Factory) build(cfg provider.Config, baseURL, apiKey string) *ClientHandle {
	h := &ClientHandle{
		Provider:  cfg.ID,
		HasAPIKey: apiKey != "",
	}

	if apiKey == "" {
		f.logger.Warn("no API key configured; requests will be rejected upstream",
			"provider", cfg.ID,
			"key_env", cfg.APIKeyEnv,
		)
	}

	if cfg.OpenAICompatible {
		if baseURL == "" {
			f.logger.Warn("no base URL configured; API calls may fail",
				"provider", cfg.ID,
				"override_envs", []string{provider.EnvAPIBase, provider.EnvBaseURL},
			)
		}
		h.Kind = KindOpenAICompatible
		h.BaseURL = baseURL
		h.backend = newOpenAIBackend(baseURL, apiKey, f.transport)
	} else {
		h.Kind = KindAnthropic
		h.BaseURL = cfg.BaseURL
		if f.anthropicBaseURL != "" {
			h.BaseURL = f.anthropicBaseURL
		}
		h.backend = newAnthropicBackend(f.anthropicBaseURL, apiKey, f.transport)
	}

	f.logger.Debug("llm client constructed",
		"provider", h.Provider,
		"kind", h.Kind,
		"base_url", h.BaseURL,
	)
	return h
}

func (f *Factory) newModelHandle(c *ClientHandle, modelID string) *ModelHandle {
	return &ModelHandle{
		client:  c,
		modelID: modelID,
		logger:  f.logger,
		tracker: f.tracker,
	}
}
