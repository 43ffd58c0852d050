package provider

// registry is the provider catalog. Prices as of December 2025.
// Order is significant: it is the enumeration order for List, ModelInfo and
// the tie-break order of PriceComparison.
var registry = []Config{
	{
		ID:                OpenAI,
		Name:              "OpenAI",
		BaseURL:           "https://api.openai.com/v1",
		APIKeyEnv:         "OPENAI_API_KEY",
		DefaultModel:      "gpt-4o",
		OpenAICompatible:  true,
		SupportsVision:    true,
		SupportsWebSearch: false,
		Models: []Model{
			{ID: "gpt-5", Name: "GPT-5", ContextWindow: 128000, MaxOutputTokens: 16384, InputPricePerMillion: 0.625, OutputPricePerMillion: 5, SupportsVision: true},
			{ID: "gpt-4o", Name: "GPT-4o", ContextWindow: 128000, MaxOutputTokens: 16384, InputPricePerMillion: 1.25, OutputPricePerMillion: 5, SupportsVision: true},
			{ID: "gpt-4o-mini", Name: "GPT-4o Mini", ContextWindow: 128000, MaxOutputTokens: 16384, InputPricePerMillion: 0.15, OutputPricePerMillion: 0.6, SupportsVision: true},
			{ID: "o3", Name: "o3 (Reasoning)", ContextWindow: 200000, MaxOutputTokens: 100000, InputPricePerMillion: 1, OutputPricePerMillion: 4, SupportsReasoning: true},
			{ID: "o3-pro", Name: "o3-pro (Reasoning)", ContextWindow: 200000, MaxOutputTokens: 100000, InputPricePerMillion: 10, OutputPricePerMillion: 40, SupportsReasoning: true},
			{ID: "o1", Name: "o1 (Reasoning)", ContextWindow: 200000, MaxOutputTokens: 100000, InputPricePerMillion: 7.5, OutputPricePerMillion: 30, SupportsReasoning: true},
			{ID: "o1-pro", Name: "o1-pro (Reasoning)", ContextWindow: 200000, MaxOutputTokens: 100000, InputPricePerMillion: 75, OutputPricePerMillion: 300, SupportsReasoning: true},
		},
	},
	{
		ID:                Anthropic,
		Name:              "Anthropic (Claude)",
		BaseURL:           "https://api.anthropic.com/v1",
		APIKeyEnv:         "ANTHROPIC_API_KEY",
		DefaultModel:      "claude-sonnet-4-5-20251101",
		OpenAICompatible:  false,
		SupportsVision:    true,
		SupportsWebSearch: false,
		Models: []Model{
			{ID: "claude-opus-4-5-20251101", Name: "Claude Opus 4.5", ContextWindow: 200000, MaxOutputTokens: 32000, InputPricePerMillion: 5, OutputPricePerMillion: 25, SupportsVision: true},
			{ID: "claude-sonnet-4-5-20251101", Name: "Claude Sonnet 4.5", ContextWindow: 200000, MaxOutputTokens: 16000, InputPricePerMillion: 3, OutputPricePerMillion: 15, SupportsVision: true},
			{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet 4", ContextWindow: 200000, MaxOutputTokens: 16000, InputPricePerMillion: 3, OutputPricePerMillion: 15, SupportsVision: true},
			{ID: "claude-3-5-haiku-20241022", Name: "Claude 3.5 Haiku", ContextWindow: 200000, MaxOutputTokens: 8192, InputPricePerMillion: 0.8, OutputPricePerMillion: 4, SupportsVision: true},
		},
	},
	{
		ID:                DeepSeek,
		Name:              "DeepSeek",
		BaseURL:           "https://api.deepseek.com/v1",
		APIKeyEnv:         "DEEPSEEK_API_KEY",
		DefaultModel:      "deepseek-chat",
		OpenAICompatible:  true,
		SupportsVision:    false,
		SupportsWebSearch: false,
		Models: []Model{
			{ID: "deepseek-chat", Name: "DeepSeek V3.2 (Chat)", ContextWindow: 128000, MaxOutputTokens: 8192, InputPricePerMillion: 0.28, OutputPricePerMillion: 0.42, CacheHitPricePerMillion: price(0.028)},
			{ID: "deepseek-reasoner", Name: "DeepSeek V3.2 (Reasoner)", ContextWindow: 128000, MaxOutputTokens: 64000, InputPricePerMillion: 0.28, OutputPricePerMillion: 0.42, CacheHitPricePerMillion: price(0.028), SupportsReasoning: true},
		},
	},
	{
		ID:                Perplexity,
		Name:              "Perplexity",
		BaseURL:           "https://api.perplexity.ai",
		APIKeyEnv:         "PERPLEXITY_API_KEY",
		DefaultModel:      "sonar-pro",
		OpenAICompatible:  true,
		SupportsVision:    false,
		SupportsWebSearch: true,
		Models: []Model{
			{ID: "sonar", Name: "Sonar", ContextWindow: 127000, MaxOutputTokens: 8192, InputPricePerMillion: 1, OutputPricePerMillion: 1},
			{ID: "sonar-pro", Name: "Sonar Pro", ContextWindow: 200000, MaxOutputTokens: 8192, InputPricePerMillion: 3, OutputPricePerMillion: 15},
			// Search, citation and reasoning surcharges are billed separately and not modeled here.
			{ID: "sonar-deep-research", Name: "Deep Research", ContextWindow: 127000, MaxOutputTokens: 8192, InputPricePerMillion: 2, OutputPricePerMillion: 8, SupportsReasoning: true},
		},
	},
	{
		ID:                MiniMax,
		Name:              "MiniMax",
		BaseURL:           "https://api.minimax.chat/v1",
		APIKeyEnv:         "MINIMAX_API_KEY",
		DefaultModel:      "abab7-chat-preview",
		OpenAICompatible:  true,
		SupportsVision:    true,
		SupportsWebSearch: true,
		Models: []Model{
			{ID: "abab7-chat-preview", Name: "MiniMax M2", ContextWindow: 1000000, MaxOutputTokens: 32000, InputPricePerMillion: 0.15, OutputPricePerMillion: 0.60},
			{ID: "abab7", Name: "MiniMax abab7", ContextWindow: 1000000, MaxOutputTokens: 32000, InputPricePerMillion: 0.15, OutputPricePerMillion: 0.60, SupportsVision: true},
		},
	},
	{
		ID:                GLM,
		Name:              "GLM (Zhipu AI)",
		BaseURL:           "https://open.bigmodel.cn/api/paas/v4",
		APIKeyEnv:         "GLM_API_KEY",
		DefaultModel:      "glm-4-plus",
		OpenAICompatible:  true,
		SupportsVision:    true,
		SupportsWebSearch: true,
		Models: []Model{
			{ID: "glm-4-plus", Name: "GLM-4.7 (Plus)", ContextWindow: 128000, MaxOutputTokens: 4096, InputPricePerMillion: 0.6, OutputPricePerMillion: 2.2, CacheHitPricePerMillion: price(0.11)},
			{ID: "glm-4-5x", Name: "GLM-4.5-X", ContextWindow: 128000, MaxOutputTokens: 4096, InputPricePerMillion: 2.2, OutputPricePerMillion: 8.9, SupportsVision: true},
			{ID: "glm-4-air", Name: "GLM-4.5-Air", ContextWindow: 128000, MaxOutputTokens: 4096, InputPricePerMillion: 0.2, OutputPricePerMillion: 1.1},
			{ID: "glm-4v-plus", Name: "GLM-4V Plus (Vision)", ContextWindow: 8000, MaxOutputTokens: 4096, InputPricePerMillion: 0.6, OutputPricePerMillion: 2.2, SupportsVision: true},
		},
	},
}

// index maps provider IDs to their position in registry.
var index = buildIndex(registry)

func buildIndex(configs []Config) map[ID]int {
	idx := make(map[ID]int, len(configs))
	for i, c := range configs {
		if _, dup := idx[c.ID]; !dup {
			idx[c.ID] = i
		}
	}
	return idx
}

func price(v float64) *float64 {
	return &v
}
