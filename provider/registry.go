// Package provider holds the catalog of supported LLM API providers and the
// environment-driven selection of the active one.
//
// The registry is a static, read-only table of six providers (OpenAI,
// Anthropic, DeepSeek, Perplexity, MiniMax, GLM), each with its base URL,
// credential variable, default model and an ordered list of model
// descriptors carrying limits, prices and capability flags.
//
// # Registry
//
//	cfg, ok := provider.Lookup(provider.DeepSeek)
//	for _, p := range provider.List() {
//	    fmt.Println(p.Name, p.DefaultModel)
//	}
//
//	m, ok := provider.ModelInfo("gpt-4o")
//	limit := provider.MaxInputTokens("gpt-4o") // 128000 - 16384
//
// # Selection
//
// A Selector resolves the active provider, base URL, credential and model
// from environment variables:
//
//	sel := provider.FromEnv()
//	sel.CurrentProviderID()  // AI_PROVIDER, default deepseek
//	sel.BaseURL()            // OPENAI_API_BASE / OPENAI_BASE_URL / registry
//	sel.APIKey()             // <PROVIDER>_API_KEY / OPENAI_API_KEY / ""
//	sel.DefaultModelID()     // OPENAI_MODEL / provider default
//
// Selectors take an injectable lookup function so tests and config files can
// supply values without touching the process environment.
package provider

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultMaxInputTokens is the input budget used for models not in the registry.
const DefaultMaxInputTokens = 100000

// Lookup returns the configuration for the given provider.
// Returns false if the provider is not registered.
func Lookup(id ID) (Config, bool) {
	i, ok := index[id]
	if !ok {
		return Config{}, false
	}
	return registry[i].clone(), true
}

// MustLookup returns the configuration for the given provider, panicking if
// it is not registered. Use only with the package's ID constants.
func MustLookup(id ID) Config {
	cfg, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("provider.MustLookup(%q): %v", id, ErrUnknownProvider))
	}
	return cfg
}

// List returns every registered provider in registry order.
func List() []Config {
	out := make([]Config, len(registry))
	for i, c := range registry {
		out[i] = c.clone()
	}
	return out
}

// IDs returns the registered provider IDs in registry order.
func IDs() []ID {
	ids := make([]ID, len(registry))
	for i, c := range registry {
		ids[i] = c.ID
	}
	return ids
}

// IsRegistered checks if a provider is registered.
func IsRegistered(id ID) bool {
	_, ok := index[id]
	return ok
}

// ModelInfo finds a model descriptor by ID across all providers.
// Providers are scanned in registry order and the first match wins.
func ModelInfo(modelID string) (Model, bool) {
	_, m, ok := findModel(modelID)
	return m, ok
}

// ProviderForModel returns the provider that offers the given model.
func ProviderForModel(modelID string) (Config, bool) {
	cfg, _, ok := findModel(modelID)
	return cfg, ok
}

func findModel(modelID string) (Config, Model, bool) {
	for _, c := range registry {
		for _, m := range c.Models {
			if m.ID == modelID {
				return c.clone(), m.clone(), true
			}
		}
	}
	return Config{}, Model{}, false
}

// MaxInputTokens returns the input token budget for a model: its context
// window minus its max output tokens. Unknown models get DefaultMaxInputTokens.
func MaxInputTokens(modelID string) int {
	if m, ok := ModelInfo(modelID); ok {
		return m.MaxInputTokens()
	}
	return DefaultMaxInputTokens
}

// PriceComparison flattens every (provider, model) pair into a row and sorts
// the rows by input price, cheapest first. Rows with equal input prices keep
// registry order.
func PriceComparison() []PriceRow {
	var rows []PriceRow
	for _, c := range registry {
		for _, m := range c.Models {
			m = m.clone()
			rows = append(rows, PriceRow{
				Provider:    c.Name,
				ProviderID:  c.ID,
				Model:       m.Name,
				ModelID:     m.ID,
				InputPrice:  m.InputPricePerMillion,
				OutputPrice: m.OutputPricePerMillion,
				CachePrice:  m.CacheHitPricePerMillion,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].InputPrice < rows[j].InputPrice
	})
	return rows
}

// Validate checks the registry invariants: unique IDs, non-empty model lists,
// a default model present in each list, positive limits with max output not
// exceeding the context window, and non-negative prices.
func Validate() error {
	return validate(registry)
}

func validate(configs []Config) error {
	var errs []error
	seen := make(map[ID]bool, len(configs))

	for _, c := range configs {
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate provider %q", ErrInvalidRegistry, c.ID))
		}
		seen[c.ID] = true

		if len(c.Models) == 0 {
			errs = append(errs, fmt.Errorf("%w: provider %q has no models", ErrInvalidRegistry, c.ID))
			continue
		}
		if _, ok := c.Model(c.DefaultModel); !ok {
			errs = append(errs, fmt.Errorf("%w: provider %q default model %q not in model list",
				ErrInvalidRegistry, c.ID, c.DefaultModel))
		}

		for _, m := range c.Models {
			if m.ContextWindow <= 0 {
				errs = append(errs, fmt.Errorf("%w: model %q context window must be > 0, got %d",
					ErrInvalidRegistry, m.ID, m.ContextWindow))
			}
			if m.MaxOutputTokens <= 0 {
				errs = append(errs, fmt.Errorf("%w: model %q max output tokens must be > 0, got %d",
					ErrInvalidRegistry, m.ID, m.MaxOutputTokens))
			}
			if m.MaxOutputTokens > m.ContextWindow {
				errs = append(errs, fmt.Errorf("%w: model %q max output tokens %d exceeds context window %d",
					ErrInvalidRegistry, m.ID, m.MaxOutputTokens, m.ContextWindow))
			}
			if m.InputPricePerMillion < 0 || m.OutputPricePerMillion < 0 {
				errs = append(errs, fmt.Errorf("%w: model %q has a negative price", ErrInvalidRegistry, m.ID))
			}
			if p, ok := m.CachePrice(); ok && p < 0 {
				errs = append(errs, fmt.Errorf("%w: model %q has a negative cache price", ErrInvalidRegistry, m.ID))
			}
		}
	}

	return errors.Join(errs...)
}
