// Package truncate trims LLM context to fit a model's input budget.
//
// Truncation keeps the most recent content: the oldest text is dropped,
// the cut is moved forward to the next paragraph boundary when one is
// close, and a marker is prepended so the model knows context is missing.
//
// # Basic Usage
//
//	result := truncate.Context(history, 0)      // current model's budget
//	result := truncate.Context(history, 4000)   // explicit token limit
//	result := truncate.ForModel(history, "glm-4v-plus")
//
// # Configured Truncator
//
//	tr := truncate.New().
//	    WithSelector(sel).
//	    WithLogger(logger)
//	result, truncated := tr.Truncate(history, 0)
//
// Every truncation is logged at warn level.
//
// # UTF-8 Support
//
// Lengths are counted in runes, so multi-byte characters are never split.
package truncate
