package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/llmswitch/client"
	"github.com/randalmurphal/llmswitch/provider"
	"github.com/randalmurphal/llmswitch/truncate"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, env map[string]string, stdin string, args ...string) result {
	t.Helper()
	return runCLIContext(context.Background(), t, env, stdin, args...)
}

func runCLIContext(ctx context.Context, t *testing.T, env map[string]string, stdin string, args ...string) result {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	cmd := newRootCmd(provider.MapLookup(env))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func decode[T any](t *testing.T, data string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(data), &v), data)
	return v
}

func TestProviders_JSON(t *testing.T) {
	r := runCLI(t, nil, "", "providers", "-o", "json")
	require.NoError(t, r.err)

	configs := decode[[]provider.Config](t, r.stdout)
	require.Len(t, configs, 6)
	assert.Equal(t, provider.OpenAI, configs[0].ID)
	assert.Equal(t, provider.GLM, configs[5].ID)
}

func TestProviders_Table(t *testing.T) {
	r := runCLI(t, map[string]string{"GLM_API_KEY": "k"}, "", "providers")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "deepseek *")
	assert.Contains(t, r.stdout, "DEEPSEEK_API_KEY missing")
	assert.Contains(t, r.stdout, "GLM_API_KEY set")
	assert.Contains(t, r.stdout, "native")
}

func TestProviders_AnthropicCredentialFallback(t *testing.T) {
	r := runCLI(t, map[string]string{provider.EnvAnthropicAPIKey: "claude"}, "", "providers")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "ANTHROPIC_API_KEY set")
}

func TestModels_ForProvider(t *testing.T) {
	r := runCLI(t, nil, "", "models", "GLM", "-o", "json")
	require.NoError(t, r.err)

	rows := decode[[]modelRow](t, r.stdout)
	cfg := provider.MustLookup(provider.GLM)
	require.Len(t, rows, len(cfg.Models))

	defaults := 0
	for _, row := range rows {
		assert.Equal(t, provider.GLM, row.Provider)
		assert.Equal(t, provider.MaxInputTokens(row.ID), row.MaxInputTokens)
		if row.Default {
			defaults++
			assert.Equal(t, cfg.DefaultModel, row.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestModels_All(t *testing.T) {
	r := runCLI(t, nil, "", "models", "-o", "json")
	require.NoError(t, r.err)

	total := 0
	for _, c := range provider.List() {
		total += len(c.Models)
	}
	assert.Len(t, decode[[]modelRow](t, r.stdout), total)
}

func TestModels_UnknownProvider(t *testing.T) {
	r := runCLI(t, nil, "", "models", "mistral")
	assert.True(t, provider.IsUnknownProvider(r.err))
	assert.Contains(t, r.stderr, "mistral")
}

func TestModel_Show(t *testing.T) {
	r := runCLI(t, nil, "", "model", "deepseek-chat", "-o", "json")
	require.NoError(t, r.err)

	row := decode[modelRow](t, r.stdout)
	assert.Equal(t, provider.DeepSeek, row.Provider)
	assert.Equal(t, "deepseek-chat", row.ID)
	assert.True(t, row.Default)
	assert.Equal(t, provider.MaxInputTokens("deepseek-chat"), row.MaxInputTokens)
}

func TestModel_YAML(t *testing.T) {
	r := runCLI(t, nil, "", "model", "sonar", "-o", "yaml")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "provider: perplexity")
	assert.Contains(t, r.stdout, "id: sonar")
	assert.Contains(t, r.stdout, "max_input_tokens:")
}

func TestModel_Unknown(t *testing.T) {
	r := runCLI(t, nil, "", "model", "gpt-9")
	assert.True(t, errors.Is(r.err, provider.ErrUnknownModel))
}

func TestPrices_SortedByInput(t *testing.T) {
	r := runCLI(t, nil, "", "prices", "-o", "json")
	require.NoError(t, r.err)

	rows := decode[[]provider.PriceRow](t, r.stdout)
	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].InputPrice, rows[i].InputPrice)
	}
}

func TestCurrent_FromEnvironment(t *testing.T) {
	r := runCLI(t, map[string]string{
		provider.EnvProvider: "Perplexity",
		provider.EnvBaseURL:  "https://gateway.example/v1",
	}, "", "current", "-o", "json")
	require.NoError(t, r.err)

	sel := decode[provider.Selection](t, r.stdout)
	assert.Equal(t, provider.Perplexity, sel.Provider)
	assert.Equal(t, "https://gateway.example/v1", sel.BaseURL)
	assert.True(t, sel.BaseURLOverridden)
	assert.Equal(t, "sonar-pro", sel.Model)
	assert.False(t, sel.HasAPIKey)
	assert.Contains(t, sel.Features, provider.FeatureWebSearch)
}

func TestCurrent_DefaultsToDeepSeek(t *testing.T) {
	r := runCLI(t, map[string]string{provider.EnvProvider: "unknown"}, "", "current")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "(deepseek)")
	assert.Contains(t, r.stdout, "https://api.deepseek.com/v1")
	assert.Contains(t, r.stdout, "DEEPSEEK_API_KEY missing")
}

func TestCurrent_AnthropicIgnoresOpenAIKey(t *testing.T) {
	r := runCLI(t, map[string]string{
		provider.EnvProvider: "anthropic",
		provider.EnvAPIKey:   "sk-openai",
	}, "", "current", "-o", "json")
	require.NoError(t, r.err)

	sel := decode[provider.Selection](t, r.stdout)
	assert.Equal(t, provider.Anthropic, sel.Provider)
	assert.False(t, sel.HasAPIKey)
}

func TestCurrent_SettingsFileBeneathEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: glm
model: glm-4-air
api_keys:
  GLM_API_KEY: from-file
`), 0o600))

	r := runCLI(t, map[string]string{provider.EnvModel: "glm-4-plus"}, "", "current", "--config", path, "-o", "json")
	require.NoError(t, r.err)

	sel := decode[provider.Selection](t, r.stdout)
	assert.Equal(t, provider.GLM, sel.Provider)
	assert.Equal(t, "glm-4-plus", sel.Model)
	assert.True(t, sel.HasAPIKey)
}

func TestCurrent_BadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm.toml")
	require.NoError(t, os.WriteFile(path, []byte(`provider = "mistral"`), 0o600))

	r := runCLI(t, nil, "", "current", "--config", path)
	assert.True(t, provider.IsUnknownProvider(r.err))
}

func TestFeatures(t *testing.T) {
	env := map[string]string{provider.EnvProvider: "openai"}
	r := runCLI(t, env, "", "features", "-o", "json")
	require.NoError(t, r.err)

	sel := provider.NewSelector(provider.WithEnv(env))
	rows := decode[[]featureRow](t, r.stdout)
	require.Len(t, rows, len(provider.Features()))
	for _, row := range rows {
		assert.Equal(t, sel.SupportsFeature(row.Feature), row.Supported, row.Feature)
	}
}

func TestFeatures_Single(t *testing.T) {
	r := runCLI(t, map[string]string{provider.EnvProvider: "perplexity"}, "", "features", "web-search", "-o", "json")
	require.NoError(t, r.err)

	rows := decode[[]featureRow](t, r.stdout)
	require.Len(t, rows, 1)
	assert.Equal(t, provider.FeatureWebSearch, rows[0].Feature)
	assert.True(t, rows[0].Supported)
}

func TestFeatures_Unknown(t *testing.T) {
	r := runCLI(t, nil, "", "features", "telepathy")
	assert.ErrorContains(t, r.err, "telepathy")
}

func TestTruncate_Stdin(t *testing.T) {
	text := strings.Repeat("a", 151) + strings.Repeat("b", 80) + "\n\n" + strings.Repeat("c", 68)

	r := runCLI(t, nil, text, "truncate", "--max-tokens", "50")
	require.NoError(t, r.err)

	assert.Equal(t, truncate.Marker+strings.Repeat("c", 68), r.stdout)
	assert.Contains(t, r.stderr, "context truncated")
}

func TestTruncate_FileWithinLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.txt")
	require.NoError(t, os.WriteFile(path, []byte("short text"), 0o600))

	r := runCLI(t, nil, "", "truncate", path, "--model", "glm-4v-plus")
	require.NoError(t, r.err)
	assert.Equal(t, "short text", r.stdout)
}

func TestTruncate_MissingFile(t *testing.T) {
	r := runCLI(t, nil, "", "truncate", filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, r.err, os.ErrNotExist)
}

const chatCompletion = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1,
	"model": "deepseek-chat",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "pong"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 2, "total_tokens": 12}
}`

type chatServer struct {
	*httptest.Server

	mu     sync.Mutex
	bodies []map[string]any
}

func newChatServer(t *testing.T) *chatServer {
	t.Helper()
	s := &chatServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		s.mu.Lock()
		s.bodies = append(s.bodies, body)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatCompletion)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *chatServer) received() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.bodies...)
}

func TestAsk_SelectedProvider(t *testing.T) {
	srv := newChatServer(t)

	r := runCLI(t, map[string]string{
		provider.EnvBaseURL: srv.URL + "/v1",
		"DEEPSEEK_API_KEY":  "k",
	}, "", "ask", "ping", "--system", "be brief", "--max-tokens", "64")
	require.NoError(t, r.err)

	assert.Equal(t, "pong\n", r.stdout)
	bodies := srv.received()
	require.Len(t, bodies, 1)
	body := bodies[0]
	assert.Equal(t, "deepseek-chat", body["model"])
	assert.EqualValues(t, 64, body["max_tokens"])

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "ping", messages[1].(map[string]any)["content"])
}

func TestAsk_JSONOutput(t *testing.T) {
	srv := newChatServer(t)

	r := runCLI(t, map[string]string{
		provider.EnvBaseURL: srv.URL + "/v1",
		"DEEPSEEK_API_KEY":  "k",
	}, "", "ask", "ping", "-o", "json")
	require.NoError(t, r.err)

	resp := decode[client.Response](t, r.stdout)
	assert.Equal(t, "pong", resp.Content)
	assert.Equal(t, 12, resp.Usage.TotalTokens)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestAsk_UnknownProvider(t *testing.T) {
	r := runCLI(t, nil, "", "ask", "ping", "--provider", "mistral")
	assert.True(t, provider.IsUnknownProvider(r.err))
}

func TestAsk_EmptyPrompt(t *testing.T) {
	r := runCLI(t, nil, "   ", "ask", "-")
	assert.ErrorContains(t, r.err, "prompt is empty")
}

func TestSchema_Settings(t *testing.T) {
	r := runCLI(t, nil, "", "schema")
	require.NoError(t, r.err)

	schema := decode[map[string]any](t, r.stdout)
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "provider")
	assert.Contains(t, props, "base_url")
	assert.Contains(t, props, "api_keys")
}

func TestSchema_CatalogYAML(t *testing.T) {
	r := runCLI(t, nil, "", "schema", "catalog", "-o", "yaml")
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "title: Provider catalog")
	assert.Contains(t, r.stdout, "providers:")
	assert.NotContains(t, r.stdout, `"properties":`)
}

func TestSchema_UnknownTarget(t *testing.T) {
	r := runCLI(t, nil, "", "schema", "everything")
	assert.Error(t, r.err)
}

func TestInvalidOutputFormat(t *testing.T) {
	r := runCLI(t, nil, "", "providers", "-o", "xml")
	assert.ErrorContains(t, r.err, `unknown output format "xml"`)
}

func TestWatch_RequiresConfig(t *testing.T) {
	r := runCLI(t, nil, "", "watch")
	assert.ErrorContains(t, r.err, "--config")
}

func TestWatch_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: minimax\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := runCLIContext(ctx, t, nil, "", "watch", "--config", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "(minimax)")
}
