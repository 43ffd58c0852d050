// Package tokens provides token estimation and input budgets for LLM prompts.
//
// Token estimation is a character-count heuristic: ceil(characters / 3).
// Three characters per token is lower than the usual English average, so
// estimates run high and callers truncate a little more than strictly
// necessary instead of overflowing a provider's context window. There is no
// model-specific tokenizer here. Characters are counted as runes, so text
// outside the Basic Multilingual Plane (emoji, for example) counts one
// character per code point where UTF-16 based counters count two.
//
// # Counter
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, world!")     // 5 tokens (13 chars)
//	fits := counter.FitsInLimit("text", 1000)   // true if <= 1000 tokens
//
// For one-off counting, use the convenience function:
//
//	count := tokens.EstimateTokens("Hello, world!")
//
// # Budget
//
// Budget reserves a model's output allowance from its context window:
//
//	budget := tokens.NewBudget(128000, 8192)
//	budget.Input()                 // 119808
//	budget.Fits(prompt)            // estimated prompt tokens <= 119808
//	budget.RemainingInput(used)    // input tokens still available
package tokens
