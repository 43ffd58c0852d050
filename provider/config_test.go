package provider

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_CurrentProviderID(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want ID
	}{
		{name: "unset falls back to deepseek", env: map[string]string{}, want: DeepSeek},
		{name: "empty falls back to deepseek", env: map[string]string{EnvProvider: ""}, want: DeepSeek},
		{name: "lowercase", env: map[string]string{EnvProvider: "anthropic"}, want: Anthropic},
		{name: "mixed case", env: map[string]string{EnvProvider: "Perplexity"}, want: Perplexity},
		{name: "upper case", env: map[string]string{EnvProvider: "GLM"}, want: GLM},
		{name: "unknown falls back", env: map[string]string{EnvProvider: "mistral"}, want: DeepSeek},
		{name: "padded name falls back", env: map[string]string{EnvProvider: " openai "}, want: DeepSeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(WithEnv(tt.env))
			assert.Equal(t, tt.want, s.CurrentProviderID())
			assert.Equal(t, tt.want, s.CurrentProvider().ID)
		})
	}
}

func TestSelector_UnknownProviderLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := NewSelector(WithEnv(map[string]string{EnvProvider: "mistral"}), WithLogger(logger))
	assert.Equal(t, DeepSeek, s.CurrentProviderID())
	assert.Contains(t, buf.String(), "requested=mistral")
}

func TestSelector_DefaultsWithNoEnvironment(t *testing.T) {
	s := NewSelector(WithEnv(nil))

	assert.Equal(t, DeepSeek, s.CurrentProviderID())
	assert.Equal(t, "deepseek-chat", s.DefaultModelID())
	assert.Equal(t, "https://api.deepseek.com/v1", s.BaseURL())
	assert.False(t, s.HasBaseURLOverride())
	assert.Equal(t, "", s.APIKey())
}

func TestSelector_ProcessEnvironment(t *testing.T) {
	t.Setenv(EnvProvider, "minimax")
	t.Setenv(EnvModel, "")
	t.Setenv("MINIMAX_API_KEY", "mm-key")

	s := FromEnv()
	assert.Equal(t, MiniMax, s.CurrentProviderID())
	assert.Equal(t, "abab7-chat-preview", s.DefaultModelID())
	assert.Equal(t, "mm-key", s.APIKey())
}

func TestSelector_BaseURL(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		want         string
		wantOverride bool
	}{
		{
			name: "registry default for selected provider",
			env:  map[string]string{EnvProvider: "glm"},
			want: "https://open.bigmodel.cn/api/paas/v4",
		},
		{
			name:         "OPENAI_BASE_URL override",
			env:          map[string]string{EnvBaseURL: "http://base-url"},
			want:         "http://base-url",
			wantOverride: true,
		},
		{
			name:         "OPENAI_API_BASE wins over OPENAI_BASE_URL",
			env:          map[string]string{EnvAPIBase: "http://api-base", EnvBaseURL: "http://base-url"},
			want:         "http://api-base",
			wantOverride: true,
		},
		{
			name: "empty overrides are ignored",
			env:  map[string]string{EnvAPIBase: "", EnvBaseURL: "", EnvProvider: "openai"},
			want: "https://api.openai.com/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(WithEnv(tt.env))
			assert.Equal(t, tt.want, s.BaseURL())
			assert.Equal(t, tt.wantOverride, s.HasBaseURLOverride())
		})
	}
}

func TestSelector_APIKey(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "provider-specific key",
			env:  map[string]string{EnvProvider: "deepseek", "DEEPSEEK_API_KEY": "x"},
			want: "x",
		},
		{
			name: "provider-specific beats generic",
			env:  map[string]string{EnvProvider: "deepseek", "DEEPSEEK_API_KEY": "x", EnvAPIKey: "y"},
			want: "x",
		},
		{
			name: "generic fallback",
			env:  map[string]string{EnvProvider: "deepseek", EnvAPIKey: "y"},
			want: "y",
		},
		{
			name: "empty specific falls through to generic",
			env:  map[string]string{EnvProvider: "glm", "GLM_API_KEY": "", EnvAPIKey: "y"},
			want: "y",
		},
		{
			name: "nothing set is empty, not an error",
			env:  map[string]string{EnvProvider: "perplexity"},
			want: "",
		},
		{
			name: "other provider's key is ignored",
			env:  map[string]string{EnvProvider: "deepseek", "GLM_API_KEY": "glm"},
			want: "",
		},
		{
			name: "openai specific and generic are the same variable",
			env:  map[string]string{EnvProvider: "openai", EnvAPIKey: "sk"},
			want: "sk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(WithEnv(tt.env))
			assert.Equal(t, tt.want, s.APIKey())
		})
	}
}

func TestSelector_APIKeyFor(t *testing.T) {
	s := NewSelector(WithEnv(map[string]string{
		"ANTHROPIC_API_KEY": "ant",
		EnvAPIKey:           "generic",
	}))

	assert.Equal(t, "ant", s.APIKeyFor(MustLookup(Anthropic)))
	assert.Equal(t, "generic", s.APIKeyFor(MustLookup(GLM)))
}

func TestSelector_AnthropicAPIKey(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "specific key", env: map[string]string{"ANTHROPIC_API_KEY": "ant", EnvAnthropicAPIKey: "claude"}, want: "ant"},
		{name: "generic anthropic key", env: map[string]string{EnvAnthropicAPIKey: "claude"}, want: "claude"},
		{name: "openai key is not used", env: map[string]string{EnvAPIKey: "sk"}, want: ""},
		{name: "nothing set", env: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(WithEnv(tt.env))
			assert.Equal(t, tt.want, s.AnthropicAPIKey())
		})
	}
}

func TestSelector_DefaultModelID(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "fallback provider default", env: nil, want: "deepseek-chat"},
		{name: "anthropic default", env: map[string]string{EnvProvider: "anthropic"}, want: "claude-sonnet-4-5-20251101"},
		{name: "override", env: map[string]string{EnvProvider: "openai", EnvModel: "o3"}, want: "o3"},
		{name: "override need not be registered", env: map[string]string{EnvModel: "my-finetune"}, want: "my-finetune"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(WithEnv(tt.env))
			assert.Equal(t, tt.want, s.DefaultModelID())
		})
	}
}

func TestSelector_SupportsFeature(t *testing.T) {
	tests := []struct {
		provider  string
		vision    bool
		webSearch bool
		reasoning bool
	}{
		{"openai", true, false, true},
		{"anthropic", true, false, false},
		{"deepseek", false, false, true},
		{"perplexity", false, true, true},
		{"minimax", true, true, false},
		{"glm", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			s := NewSelector(WithEnv(map[string]string{EnvProvider: tt.provider}))
			assert.Equal(t, tt.vision, s.SupportsFeature(FeatureVision), "vision")
			assert.Equal(t, tt.webSearch, s.SupportsFeature(FeatureWebSearch), "webSearch")
			assert.Equal(t, tt.reasoning, s.SupportsFeature(FeatureReasoning), "reasoning")
			assert.False(t, s.SupportsFeature(Feature("telepathy")))
		})
	}
}

func TestParseFeature(t *testing.T) {
	tests := []struct {
		input  string
		want   Feature
		wantOK bool
	}{
		{"vision", FeatureVision, true},
		{"webSearch", FeatureWebSearch, true},
		{"web-search", FeatureWebSearch, true},
		{"web_search", FeatureWebSearch, true},
		{"REASONING", FeatureReasoning, true},
		{"audio", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFeature(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelector_Resolve(t *testing.T) {
	s := NewSelector(WithEnv(map[string]string{
		EnvProvider:          "perplexity",
		"PERPLEXITY_API_KEY": "pplx",
		EnvBaseURL:           "http://proxy",
	}))

	sel := s.Resolve()
	assert.Equal(t, Perplexity, sel.Provider)
	assert.Equal(t, "Perplexity", sel.ProviderName)
	assert.Equal(t, "http://proxy", sel.BaseURL)
	assert.True(t, sel.BaseURLOverridden)
	assert.Equal(t, "sonar-pro", sel.Model)
	assert.Equal(t, 200000-8192, sel.MaxInputTokens)
	assert.Equal(t, "PERPLEXITY_API_KEY", sel.APIKeyEnv)
	assert.True(t, sel.HasAPIKey)
	assert.Equal(t, []Feature{FeatureWebSearch, FeatureReasoning}, sel.Features)
}

func TestSelector_ResolveAnthropicCredential(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantKey bool
	}{
		{name: "openai key is not an anthropic credential", env: map[string]string{EnvAPIKey: "sk-openai"}, wantKey: false},
		{name: "generic anthropic key", env: map[string]string{EnvAnthropicAPIKey: "c"}, wantKey: true},
		{name: "specific key", env: map[string]string{"ANTHROPIC_API_KEY": "ant"}, wantKey: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.env[EnvProvider] = "anthropic"
			s := NewSelector(WithEnv(tt.env))

			sel := s.Resolve()
			assert.Equal(t, Anthropic, sel.Provider)
			assert.Equal(t, tt.wantKey, sel.HasAPIKey)
			assert.Equal(t, s.AnthropicAPIKey() != "", sel.HasAPIKey)
		})
	}
}

func TestSelector_CredentialFor(t *testing.T) {
	s := NewSelector(WithEnv(map[string]string{
		EnvAPIKey:          "generic",
		EnvAnthropicAPIKey: "claude",
	}))

	assert.Equal(t, "claude", s.CredentialFor(MustLookup(Anthropic)))
	assert.Equal(t, "generic", s.CredentialFor(MustLookup(DeepSeek)))
}

func TestSelector_ResolveUnknownModelUsesFallbackBudget(t *testing.T) {
	s := NewSelector(WithEnv(map[string]string{EnvModel: "custom"}))

	sel := s.Resolve()
	require.Equal(t, "custom", sel.Model)
	assert.Equal(t, DefaultMaxInputTokens, sel.MaxInputTokens)
	assert.False(t, sel.HasAPIKey)
	assert.Equal(t, []Feature{FeatureReasoning}, sel.Features)
}

func TestWithLookup_NilKeepsDefault(t *testing.T) {
	s := NewSelector(WithLookup(nil))
	require.NotNil(t, s.Lookup())
}
