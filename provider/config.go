package provider

import (
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by Selector.
const (
	// EnvProvider selects the provider (case-insensitive registry key).
	EnvProvider = "AI_PROVIDER"

	// EnvAPIBase overrides the resolved base URL. Checked before EnvBaseURL.
	EnvAPIBase = "OPENAI_API_BASE"

	// EnvBaseURL overrides the resolved base URL.
	EnvBaseURL = "OPENAI_BASE_URL"

	// EnvAPIKey is the generic credential for OpenAI-compatible providers.
	EnvAPIKey = "OPENAI_API_KEY"

	// EnvModel overrides the resolved default model.
	EnvModel = "OPENAI_MODEL"

	// EnvAnthropicAPIKey is the generic credential for the native Anthropic
	// protocol, checked after the provider-specific ANTHROPIC_API_KEY.
	EnvAnthropicAPIKey = "CLAUDE_API_KEY"
)

// LookupFunc retrieves the value of an environment-style variable.
// It has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// MapLookup returns a LookupFunc backed by a map.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// Selector resolves the active provider, endpoint, credential and model from
// environment variables. Empty values are treated as unset.
//
// A Selector holds no state beyond its lookup function, so every call reflects
// the current environment.
type Selector struct {
	lookup LookupFunc
	logger *slog.Logger
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithLookup sets the function used to read variables.
// Default: os.LookupEnv.
func WithLookup(fn LookupFunc) SelectorOption {
	return func(s *Selector) {
		if fn != nil {
			s.lookup = fn
		}
	}
}

// WithEnv reads variables from the given map instead of the process environment.
func WithEnv(env map[string]string) SelectorOption {
	return WithLookup(MapLookup(env))
}

// WithLogger sets the logger for selection diagnostics.
// Default: slog.Default() at the time of each call.
func WithLogger(logger *slog.Logger) SelectorOption {
	return func(s *Selector) {
		s.logger = logger
	}
}

// NewSelector creates a selector with the given options.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromEnv creates a selector bound to the process environment.
func FromEnv() *Selector {
	return NewSelector()
}

// Getenv returns the value of the variable, or "" if it is unset.
func (s *Selector) Getenv(key string) string {
	v, ok := s.lookup(key)
	if !ok {
		return ""
	}
	return v
}

// Lookup returns the selector's lookup function.
func (s *Selector) Lookup() LookupFunc {
	return s.lookup
}

func (s *Selector) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// CurrentProviderID returns the provider named by AI_PROVIDER.
// Returns Fallback when the variable is unset or names an unknown provider.
func (s *Selector) CurrentProviderID() ID {
	raw := s.Getenv(EnvProvider)
	if raw == "" {
		return Fallback
	}
	// Unlike ParseID, surrounding whitespace is not forgiven here.
	id, ok := ParseID(raw)
	if !ok || raw != strings.TrimSpace(raw) {
		s.log().Debug("unknown provider requested, using fallback",
			"requested", raw,
			"fallback", Fallback,
		)
		return Fallback
	}
	return id
}

// CurrentProvider returns the configuration of the selected provider.
func (s *Selector) CurrentProvider() Config {
	return MustLookup(s.CurrentProviderID())
}

// BaseURL returns OPENAI_API_BASE, then OPENAI_BASE_URL, then the selected
// provider's registered base URL.
func (s *Selector) BaseURL() string {
	if v := s.baseURLOverride(); v != "" {
		return v
	}
	return s.CurrentProvider().BaseURL
}

// HasBaseURLOverride reports whether the base URL comes from the environment.
func (s *Selector) HasBaseURLOverride() bool {
	return s.baseURLOverride() != ""
}

func (s *Selector) baseURLOverride() string {
	if v := s.Getenv(EnvAPIBase); v != "" {
		return v
	}
	return s.Getenv(EnvBaseURL)
}

// APIKey returns the selected provider's credential: its specific variable
// first, then OPENAI_API_KEY. Returns "" when neither is set; an empty
// credential is not an error here and is rejected upstream.
func (s *Selector) APIKey() string {
	return s.APIKeyFor(s.CurrentProvider())
}

// APIKeyFor resolves the credential for the given provider using the same
// precedence as APIKey.
func (s *Selector) APIKeyFor(cfg Config) string {
	if v := s.Getenv(cfg.APIKeyEnv); v != "" {
		return v
	}
	return s.Getenv(EnvAPIKey)
}

// AnthropicAPIKey returns the credential for the native Anthropic client:
// ANTHROPIC_API_KEY, then CLAUDE_API_KEY, then "".
func (s *Selector) AnthropicAPIKey() string {
	if v := s.Getenv(MustLookup(Anthropic).APIKeyEnv); v != "" {
		return v
	}
	return s.Getenv(EnvAnthropicAPIKey)
}

// CredentialFor returns the credential a client for cfg is built with:
// AnthropicAPIKey for the native Anthropic provider, APIKeyFor otherwise.
func (s *Selector) CredentialFor(cfg Config) string {
	if !cfg.OpenAICompatible {
		return s.AnthropicAPIKey()
	}
	return s.APIKeyFor(cfg)
}

// DefaultModelID returns OPENAI_MODEL, or the selected provider's default model.
func (s *Selector) DefaultModelID() string {
	if v := s.Getenv(EnvModel); v != "" {
		return v
	}
	return s.CurrentProvider().DefaultModel
}

// SupportsFeature reports whether the selected provider supports a feature.
// Vision and web search come from provider flags; reasoning is true if any
// of the provider's models supports it. Unknown features return false.
func (s *Selector) SupportsFeature(f Feature) bool {
	cfg := s.CurrentProvider()
	switch f {
	case FeatureVision:
		return cfg.SupportsVision
	case FeatureWebSearch:
		return cfg.SupportsWebSearch
	case FeatureReasoning:
		return cfg.HasReasoningModel()
	default:
		return false
	}
}

// Selection is a snapshot of everything a Selector resolves.
type Selection struct {
	Provider          ID        `json:"provider" yaml:"provider"`
	ProviderName      string    `json:"provider_name" yaml:"provider_name"`
	BaseURL           string    `json:"base_url" yaml:"base_url"`
	BaseURLOverridden bool      `json:"base_url_overridden" yaml:"base_url_overridden"`
	Model             string    `json:"model" yaml:"model"`
	MaxInputTokens    int       `json:"max_input_tokens" yaml:"max_input_tokens"`
	APIKeyEnv         string    `json:"api_key_env" yaml:"api_key_env"`
	HasAPIKey         bool      `json:"has_api_key" yaml:"has_api_key"`
	Features          []Feature `json:"features" yaml:"features"`
}

// Resolve returns a snapshot of the current selection. The credential itself
// is never included.
func (s *Selector) Resolve() Selection {
	cfg := s.CurrentProvider()
	model := s.DefaultModelID()

	sel := Selection{
		Provider:          cfg.ID,
		ProviderName:      cfg.Name,
		BaseURL:           s.BaseURL(),
		BaseURLOverridden: s.HasBaseURLOverride(),
		Model:             model,
		MaxInputTokens:    MaxInputTokens(model),
		APIKeyEnv:         cfg.APIKeyEnv,
		HasAPIKey:         s.CredentialFor(cfg) != "",
		Features:          []Feature{},
	}
	for _, f := range Features() {
		if s.SupportsFeature(f) {
			sel.Features = append(sel.Features, f)
		}
	}
	return sel
}
