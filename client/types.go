package client

import (
	"errors"
	"time"
)

// Sentinel errors for completion requests.
var (
	// ErrEmptyRequest indicates a request with no messages.
	ErrEmptyRequest = errors.New("request has no messages")

	// ErrUnsupportedRole indicates a message role the wire protocol cannot carry.
	ErrUnsupportedRole = errors.New("unsupported message role")
)

// Role identifies the message sender.
type Role string

// Message roles understood by both wire families.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewTextMessage creates a simple text message.
func NewTextMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// Request configures a single, non-streaming chat completion.
type Request struct {
	// SystemPrompt sets the system message that guides the model's behavior.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Messages is the conversation history to send to the model.
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length. Zero leaves the provider default,
	// except for Anthropic, which requires a value and gets the model's
	// max output tokens.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls response randomness. Nil leaves the provider default.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Response is the output of a completion call.
type Response struct {
	// Content is the text response from the model.
	Content string `json:"content"`

	// Usage tracks token consumption for this request.
	Usage TokenUsage `json:"usage"`

	// Model is the model reported by the provider (may differ from requested).
	Model string `json:"model"`

	// FinishReason indicates why the model stopped generating.
	// Values are provider-specific: "stop", "length", "end_turn", "max_tokens".
	FinishReason string `json:"finish_reason"`

	// Duration is the time taken for the completion.
	Duration time.Duration `json:"duration"`

	// CostUSD is the estimated cost from registry prices.
	// Zero for models missing from the registry.
	CostUSD float64 `json:"cost_usd,omitempty"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	// InputTokens counts all prompt tokens, including cache reads.
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`

	// Cache-related tokens (provider-specific, may be zero)
	CacheCreationInputTokens int `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens,omitempty"`
}

// Add combines token usage from another TokenUsage.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
	u.CacheCreationInputTokens += other.CacheCreationInputTokens
	u.CacheReadInputTokens += other.CacheReadInputTokens
}
