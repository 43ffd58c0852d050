// Package llmswitch selects an LLM API provider from the environment and
// builds a ready-to-use client for it.
//
// Six providers are registered: OpenAI, Anthropic, DeepSeek, Perplexity,
// MiniMax and GLM. Each subpackage can be used on its own:
//
//   - provider: the static provider/model registry and the env-driven Selector
//   - tokens: character-based token estimation and input budgets
//   - truncate: keep-the-end context truncation at paragraph boundaries
//   - client: SDK client factory (openai-go or anthropic-sdk-go) and completions
//   - model: cost estimation and per-model usage tracking
//
// # Environment
//
//	AI_PROVIDER       openai | anthropic | deepseek | perplexity | minimax | glm (default deepseek)
//	OPENAI_API_BASE   base URL override, checked first
//	OPENAI_BASE_URL   base URL override
//	OPENAI_MODEL      model override
//	OPENAI_API_KEY    credential fallback for every provider
//	<PROVIDER>_API_KEY provider-specific credential, e.g. DEEPSEEK_API_KEY
//
// # Quick Start
//
// Resolve the selection:
//
//	import "github.com/randalmurphal/llmswitch/provider"
//	sel := provider.FromEnv()
//	fmt.Println(sel.CurrentProviderID(), sel.BaseURL(), sel.DefaultModelID())
//
// Fit a prompt to the selected model:
//
//	import "github.com/randalmurphal/llmswitch/truncate"
//	prompt, _ := truncate.New().Truncate(history, 0)
//
// Send a completion:
//
//	import "github.com/randalmurphal/llmswitch/client"
//	resp, err := client.GetModel("").Complete(ctx, client.Request{
//	    Messages: []client.Message{client.NewTextMessage(client.RoleUser, prompt)},
//	})
//
// The llmswitch command (cmd/llmswitch) exposes the same operations on the
// command line.
package llmswitch
