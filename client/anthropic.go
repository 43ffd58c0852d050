package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	antoption "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/randalmurphal/llmswitch/provider"
)

// DefaultAnthropicMaxTokens is the response limit sent to Anthropic when the
// request sets none and the model is not in the registry.
const DefaultAnthropicMaxTokens = 4096

// anthropicBackend speaks the native Anthropic messages protocol.
type anthropicBackend struct {
	client anthropic.Client
}

// newAnthropicBackend builds the native client. The SDK supplies its own
// API root unless baseURL is set.
func newAnthropicBackend(baseURL, apiKey string, opts transportOptions) *anthropicBackend {
	reqOpts := []antoption.RequestOption{
		antoption.WithAPIKey(apiKey),
		antoption.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, antoption.WithBaseURL(baseURL))
	}
	if opts.httpClient != nil {
		reqOpts = append(reqOpts, antoption.WithHTTPClient(opts.httpClient))
	}
	if opts.timeout > 0 {
		reqOpts = append(reqOpts, antoption.WithRequestTimeout(opts.timeout))
	}

	return &anthropicBackend{client: anthropic.NewClient(reqOpts...)}
}

// Anthropic returns the underlying Anthropic SDK client. Returns false for
// OpenAI-compatible handles.
func (c *ClientHandle) Anthropic() (*anthropic.Client, bool) {
	b, ok := c.backend.(*anthropicBackend)
	if !ok {
		return nil, false
	}
	return &b.client, true
}

func (b *anthropicBackend) complete(ctx context.Context, modelID string, req Request) (*Response, error) {
	system, messages, err := anthropicMessages(req)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: int64(anthropicMaxTokens(modelID, req.MaxTokens)),
		Messages:  messages,
		System:    system,
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	cacheRead := int(msg.Usage.CacheReadInputTokens)
	cacheCreate := int(msg.Usage.CacheCreationInputTokens)
	input := int(msg.Usage.InputTokens) + cacheRead + cacheCreate
	output := int(msg.Usage.OutputTokens)

	return &Response{
		Content:      content.String(),
		Model:        string(msg.Model),
		FinishReason: string(msg.StopReason),
		Usage: TokenUsage{
			InputTokens:              input,
			OutputTokens:             output,
			TotalTokens:              input + output,
			CacheCreationInputTokens: cacheCreate,
			CacheReadInputTokens:     cacheRead,
		},
	}, nil
}

// anthropicMessages splits system turns out of the conversation; the
// protocol carries them as a separate field.
func anthropicMessages(req Request) ([]anthropic.TextBlockParam, []anthropic.MessageParam, error) {
	var system []anthropic.TextBlockParam
	if req.SystemPrompt != "" {
		system = append(system, anthropic.TextBlockParam{Text: req.SystemPrompt})
	}

	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		case RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedRole, m.Role)
		}
	}
	return system, messages, nil
}

func anthropicMaxTokens(modelID string, requested int) int {
	if requested > 0 {
		return requested
	}
	if m, ok := provider.ModelInfo(modelID); ok {
		return m.MaxOutputTokens
	}
	return DefaultAnthropicMaxTokens
}
