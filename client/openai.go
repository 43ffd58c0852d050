package client

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
)

// openAIBackend speaks the OpenAI chat-completions wire format. Every
// provider except Anthropic uses it.
type openAIBackend struct {
	client openai.Client
}

func newOpenAIBackend(baseURL, apiKey string, opts transportOptions) *openAIBackend {
	reqOpts := []oaioption.RequestOption{
		oaioption.WithAPIKey(apiKey),
		oaioption.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, oaioption.WithBaseURL(baseURL))
	}
	if opts.httpClient != nil {
		reqOpts = append(reqOpts, oaioption.WithHTTPClient(opts.httpClient))
	}
	if opts.timeout > 0 {
		reqOpts = append(reqOpts, oaioption.WithRequestTimeout(opts.timeout))
	}

	return &openAIBackend{client: openai.NewClient(reqOpts...)}
}

// OpenAI returns the underlying OpenAI SDK client, for calls this package
// does not wrap. Returns false for Anthropic handles.
func (c *ClientHandle) OpenAI() (*openai.Client, bool) {
	b, ok := c.backend.(*openAIBackend)
	if !ok {
		return nil, false
	}
	return &b.client, true
}

func (b *openAIBackend) complete(ctx context.Context, modelID string, req Request) (*Response, error) {
	messages, err := openAIMessages(req)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelID),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	completion, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Model: completion.Model,
		Usage: TokenUsage{
			InputTokens:          int(completion.Usage.PromptTokens),
			OutputTokens:         int(completion.Usage.CompletionTokens),
			TotalTokens:          int(completion.Usage.TotalTokens),
			CacheReadInputTokens: int(completion.Usage.PromptTokensDetails.CachedTokens),
		},
	}
	if len(completion.Choices) > 0 {
		resp.Content = completion.Choices[0].Message.Content
		resp.FinishReason = completion.Choices[0].FinishReason
	}
	return resp, nil
}

func openAIMessages(req Request) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		out = append(out, openai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedRole, m.Role)
		}
	}
	return out, nil
}
