package truncate

// Context truncates text to fit within maxTokens using the default
// truncator. A maxTokens of zero or less means the input budget of the
// model selected by the process environment.
func Context(text string, maxTokens int) string {
	result, _ := New().Truncate(text, maxTokens)
	return result
}

// ForModel truncates text to the input budget of the given model.
// Unknown models use provider.DefaultMaxInputTokens.
func ForModel(text, modelID string) string {
	result, _ := New().WithModel(modelID).Truncate(text, 0)
	return result
}
