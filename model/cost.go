package model

import (
	"sync"

	"github.com/randalmurphal/llmswitch/provider"
)

// Usage tracks token usage for a model.
type Usage struct {
	// InputTokens counts all prompt tokens, cached or not.
	InputTokens int `json:"input_tokens" yaml:"input_tokens"`

	// CacheHitTokens is the part of InputTokens served from a prompt cache.
	CacheHitTokens int `json:"cache_hit_tokens,omitempty" yaml:"cache_hit_tokens,omitempty"`

	OutputTokens int `json:"output_tokens" yaml:"output_tokens"`
	Requests     int `json:"requests" yaml:"requests"`
}

// Add adds the given usage to this usage.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.CacheHitTokens += other.CacheHitTokens
	u.OutputTokens += other.OutputTokens
	u.Requests += other.Requests
}

// TotalTokens returns the total tokens used.
func (u *Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

// EstimateCost prices usage for a model using registry prices, in USD.
// Cache-hit tokens are billed at the model's cache price when it has one,
// otherwise at the input price. Unknown models cost 0.
func EstimateCost(modelID string, usage Usage) float64 {
	m, ok := provider.ModelInfo(modelID)
	if !ok {
		return 0
	}

	cached := min(max(usage.CacheHitTokens, 0), usage.InputTokens)
	cachePrice, ok := m.CachePrice()
	if !ok {
		cachePrice = m.InputPricePerMillion
	}

	inputCost := float64(usage.InputTokens-cached) / 1_000_000 * m.InputPricePerMillion
	cacheCost := float64(cached) / 1_000_000 * cachePrice
	outputCost := float64(usage.OutputTokens) / 1_000_000 * m.OutputPricePerMillion
	return inputCost + cacheCost + outputCost
}

// CostTracker tracks token usage and estimated costs across models.
// Models are keyed by registry model ID.
type CostTracker struct {
	mu     sync.RWMutex
	totals map[string]Usage
}

// NewCostTracker creates a new cost tracker.
func NewCostTracker() *CostTracker {
	return &CostTracker{
		totals: make(map[string]Usage),
	}
}

// Record adds a usage record for the given model.
func (t *CostTracker) Record(modelID string, input, output int) {
	t.RecordUsage(modelID, Usage{InputTokens: input, OutputTokens: output, Requests: 1})
}

// RecordCached adds a usage record where cacheHit of the input tokens were
// served from the provider's prompt cache.
func (t *CostTracker) RecordCached(modelID string, cacheHit, input, output int) {
	t.RecordUsage(modelID, Usage{
		InputTokens:    input,
		CacheHitTokens: cacheHit,
		OutputTokens:   output,
		Requests:       1,
	})
}

// RecordUsage adds a usage record for the given model.
func (t *CostTracker) RecordUsage(modelID string, usage Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.totals[modelID]
	u.Add(usage)
	t.totals[modelID] = u
}

// Usage returns the usage for a specific model.
func (t *CostTracker) Usage(modelID string) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[modelID]
}

// Summary returns a copy of all usage totals.
func (t *CostTracker) Summary() map[string]Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]Usage, len(t.totals))
	for k, v := range t.totals {
		result[k] = v
	}
	return result
}

// TotalUsage returns aggregated usage across all models.
func (t *CostTracker) TotalUsage() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// EstimatedCost calculates the estimated cost based on registry pricing.
func (t *CostTracker) EstimatedCost() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total float64
	for modelID, usage := range t.totals {
		total += EstimateCost(modelID, usage)
	}
	return total
}

// EstimatedCostByModel returns the estimated cost for each known model.
// Models missing from the registry are omitted.
func (t *CostTracker) EstimatedCostByModel() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]float64, len(t.totals))
	for modelID, usage := range t.totals {
		if _, ok := provider.ModelInfo(modelID); !ok {
			continue
		}
		result[modelID] = EstimateCost(modelID, usage)
	}
	return result
}

// Reset clears all tracked usage.
func (t *CostTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totals = make(map[string]Usage)
}
