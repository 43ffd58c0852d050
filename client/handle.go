package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/llmswitch/model"
	"github.com/randalmurphal/llmswitch/provider"
	"github.com/randalmurphal/llmswitch/truncate"
)

// ModelHandle binds a model ID to a constructed client.
type ModelHandle struct {
	client  *ClientHandle
	modelID string
	logger  *slog.Logger
	tracker *model.CostTracker
}

// Client returns the client the handle is bound to.
func (h *ModelHandle) Client() *ClientHandle {
	return h.client
}

// Provider returns the provider of the bound client.
func (h *ModelHandle) Provider() provider.ID {
	return h.client.Provider
}

// ModelID returns the model the handle sends requests to.
func (h *ModelHandle) ModelID() string {
	return h.modelID
}

// Info returns the registry descriptor of the model, if it is registered.
func (h *ModelHandle) Info() (provider.Model, bool) {
	return provider.ModelInfo(h.modelID)
}

// MaxInputTokens returns the model's input budget, or
// provider.DefaultMaxInputTokens for unregistered models.
func (h *ModelHandle) MaxInputTokens() int {
	return provider.MaxInputTokens(h.modelID)
}

// FitContext truncates text to this model's input budget.
func (h *ModelHandle) FitContext(text string) string {
	result, _ := truncate.New().
		WithModel(h.modelID).
		WithLogger(h.logger).
		Truncate(text, 0)
	return result
}

// Complete sends a single chat completion. SDK errors are returned wrapped
// in a *provider.Error with Op "complete"; nothing is retried.
func (h *ModelHandle) Complete(ctx context.Context, req Request) (*Response, error) {
	if len(req.Messages) == 0 {
		return nil, provider.NewError(h.client.Provider.String(), "complete", ErrEmptyRequest)
	}

	start := time.Now()
	resp, err := h.client.backend.complete(ctx, h.modelID, req)
	if err != nil {
		return nil, provider.NewError(h.client.Provider.String(), "complete", err)
	}
	resp.Duration = time.Since(start)
	if resp.Model == "" {
		resp.Model = h.modelID
	}

	usage := model.Usage{
		InputTokens:    resp.Usage.InputTokens,
		CacheHitTokens: resp.Usage.CacheReadInputTokens,
		OutputTokens:   resp.Usage.OutputTokens,
		Requests:       1,
	}
	resp.CostUSD = model.EstimateCost(h.modelID, usage)
	if h.tracker != nil {
		h.tracker.RecordUsage(h.modelID, usage)
	}

	h.logger.Debug("completion finished",
		"provider", h.client.Provider,
		"model", h.modelID,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"duration", resp.Duration,
	)
	return resp, nil
}
