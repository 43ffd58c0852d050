package tokens

import (
	"unicode/utf8"
)

// DefaultCharsPerToken is the default character-to-token ratio.
// Lower than the ~4 chars/token typical of English, so estimates run high.
const DefaultCharsPerToken = 3.0

// Counter estimates token counts for text.
type Counter interface {
	// Count estimates the number of tokens in the given text.
	Count(text string) int

	// FitsInLimit returns true if the text fits within the token limit.
	FitsInLimit(text string, limit int) bool
}

// EstimatingCounter uses a character-to-token ratio for estimation.
type EstimatingCounter struct {
	// CharsPerToken is the average characters per token.
	// Default is 3.
	CharsPerToken float64
}

// NewEstimatingCounter creates a token counter with default settings.
func NewEstimatingCounter() *EstimatingCounter {
	return &EstimatingCounter{
		CharsPerToken: DefaultCharsPerToken,
	}
}

// NewEstimatingCounterWithRatio creates a token counter with a custom ratio.
// If charsPerToken is <= 0, the default ratio (3.0) is used.
func NewEstimatingCounterWithRatio(charsPerToken float64) *EstimatingCounter {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingCounter{
		CharsPerToken: charsPerToken,
	}
}

// Count estimates the number of tokens in the given text as
// ceil(characters / CharsPerToken). Characters are runes, not bytes.
func (c *EstimatingCounter) Count(text string) int {
	runeCount := utf8.RuneCountInString(text)
	if runeCount == 0 {
		return 0
	}

	// Integer ceiling for whole ratios keeps the result exact for large inputs.
	if c.CharsPerToken == float64(int(c.CharsPerToken)) {
		per := int(c.CharsPerToken)
		return (runeCount + per - 1) / per
	}

	tokens := float64(runeCount) / c.CharsPerToken
	n := int(tokens)
	if float64(n) < tokens {
		n++
	}
	return n
}

// FitsInLimit returns true if the text fits within the token limit.
func (c *EstimatingCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// CharsForTokens returns the number of characters that the given token count
// represents under this counter's ratio.
func (c *EstimatingCounter) CharsForTokens(tokens int) int {
	if tokens <= 0 {
		return 0
	}
	return int(float64(tokens) * c.CharsPerToken)
}

// EstimateTokens is a convenience function using the default estimator.
func EstimateTokens(text string) int {
	return NewEstimatingCounter().Count(text)
}
