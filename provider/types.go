package provider

import (
	"strings"

	"github.com/randalmurphal/llmswitch/tokens"
)

// ID identifies a supported LLM API vendor.
type ID string

// Supported providers, in registry order.
const (
	OpenAI     ID = "openai"
	Anthropic  ID = "anthropic"
	DeepSeek   ID = "deepseek"
	Perplexity ID = "perplexity"
	MiniMax    ID = "minimax"
	GLM        ID = "glm"
)

// Fallback is the provider used when none is requested or the requested
// one is not in the registry.
const Fallback = DeepSeek

// String returns the provider identifier.
func (id ID) String() string {
	return string(id)
}

// ParseID resolves a provider name case-insensitively.
// Returns false if the name is not a registered provider.
func ParseID(s string) (ID, bool) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := index[id]; !ok {
		return "", false
	}
	return id, true
}

// Config describes one provider: how to reach it and which models it offers.
// Values returned by this package are copies; the registry itself is read-only.
type Config struct {
	// ID is the registry key.
	ID ID `json:"id" yaml:"id" jsonschema:"enum=openai,enum=anthropic,enum=deepseek,enum=perplexity,enum=minimax,enum=glm"`

	// Name is the human-readable provider name.
	Name string `json:"name" yaml:"name"`

	// BaseURL is the provider's API root.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKeyEnv names the environment variable holding the provider-specific credential.
	APIKeyEnv string `json:"api_key_env" yaml:"api_key_env"`

	// DefaultModel is the ID of the model used when none is requested.
	// Always the ID of an entry in Models.
	DefaultModel string `json:"default_model" yaml:"default_model"`

	// Models lists the provider's models in display order. Never empty.
	Models []Model `json:"models" yaml:"models" jsonschema:"minItems=1"`

	// OpenAICompatible is true when the provider speaks the OpenAI REST shape.
	OpenAICompatible bool `json:"openai_compatible" yaml:"openai_compatible"`

	// SupportsVision is true when the provider accepts image inputs.
	SupportsVision bool `json:"supports_vision" yaml:"supports_vision"`

	// SupportsWebSearch is true when the provider can search the web natively.
	SupportsWebSearch bool `json:"supports_web_search" yaml:"supports_web_search"`
}

// Model returns the descriptor for the given model ID within this provider.
func (c Config) Model(id string) (Model, bool) {
	for _, m := range c.Models {
		if m.ID == id {
			return m.clone(), true
		}
	}
	return Model{}, false
}

// DefaultModelInfo returns the descriptor of the provider's default model.
func (c Config) DefaultModelInfo() Model {
	m, _ := c.Model(c.DefaultModel)
	return m
}

// HasReasoningModel reports whether any of the provider's models is flagged
// for reasoning.
func (c Config) HasReasoningModel() bool {
	for _, m := range c.Models {
		if m.SupportsReasoning {
			return true
		}
	}
	return false
}

// clone returns a deep copy so callers cannot mutate registry data.
func (c Config) clone() Config {
	models := make([]Model, len(c.Models))
	for i, m := range c.Models {
		models[i] = m.clone()
	}
	c.Models = models
	return c
}

// Model describes one model offered by a provider. Prices are USD per
// million tokens.
type Model struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// ContextWindow is the combined input+output token limit.
	ContextWindow int `json:"context_window" yaml:"context_window" jsonschema:"minimum=1"`

	// MaxOutputTokens is the response token limit. Never exceeds ContextWindow.
	MaxOutputTokens int `json:"max_output_tokens" yaml:"max_output_tokens" jsonschema:"minimum=1"`

	InputPricePerMillion  float64 `json:"input_price_per_million" yaml:"input_price_per_million" jsonschema:"minimum=0"`
	OutputPricePerMillion float64 `json:"output_price_per_million" yaml:"output_price_per_million" jsonschema:"minimum=0"`

	// CacheHitPricePerMillion is the discounted input price on a prompt cache
	// hit. Nil when the provider does not publish one.
	CacheHitPricePerMillion *float64 `json:"cache_hit_price_per_million,omitempty" yaml:"cache_hit_price_per_million,omitempty" jsonschema:"minimum=0"`

	SupportsVision    bool `json:"supports_vision,omitempty" yaml:"supports_vision,omitempty"`
	SupportsReasoning bool `json:"supports_reasoning,omitempty" yaml:"supports_reasoning,omitempty"`
}

// CachePrice returns the cache-hit price and whether one is published.
func (m Model) CachePrice() (float64, bool) {
	if m.CacheHitPricePerMillion == nil {
		return 0, false
	}
	return *m.CacheHitPricePerMillion, true
}

// Budget returns the model's token budget: its context window with the
// max output tokens reserved for the response.
func (m Model) Budget() *tokens.Budget {
	return tokens.NewBudget(m.ContextWindow, m.MaxOutputTokens)
}

// MaxInputTokens returns ContextWindow - MaxOutputTokens.
func (m Model) MaxInputTokens() int {
	return m.Budget().Input()
}

func (m Model) clone() Model {
	if m.CacheHitPricePerMillion != nil {
		p := *m.CacheHitPricePerMillion
		m.CacheHitPricePerMillion = &p
	}
	return m
}

// Feature is a provider capability that callers can query.
type Feature string

// Queryable features.
const (
	FeatureVision    Feature = "vision"
	FeatureWebSearch Feature = "webSearch"
	FeatureReasoning Feature = "reasoning"
)

// ParseFeature resolves a feature name case-insensitively.
// Accepts "web-search" and "web_search" as spellings of FeatureWebSearch.
func ParseFeature(s string) (Feature, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vision":
		return FeatureVision, true
	case "websearch", "web-search", "web_search":
		return FeatureWebSearch, true
	case "reasoning":
		return FeatureReasoning, true
	default:
		return "", false
	}
}

// Features lists every queryable feature.
func Features() []Feature {
	return []Feature{FeatureVision, FeatureWebSearch, FeatureReasoning}
}

// PriceRow is one (provider, model) entry of the price comparison table.
type PriceRow struct {
	Provider    string   `json:"provider" yaml:"provider"`
	ProviderID  ID       `json:"provider_id" yaml:"provider_id"`
	Model       string   `json:"model" yaml:"model"`
	ModelID     string   `json:"model_id" yaml:"model_id"`
	InputPrice  float64  `json:"input_price" yaml:"input_price"`
	OutputPrice float64  `json:"output_price" yaml:"output_price"`
	CachePrice  *float64 `json:"cache_price,omitempty" yaml:"cache_price,omitempty"`
}
