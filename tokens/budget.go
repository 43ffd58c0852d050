package tokens

// Budget splits a model's context window into the part available for input
// and the part reserved for the model's response.
type Budget struct {
	// ContextWindow is the model's combined input+output token limit.
	ContextWindow int

	// ReservedOutput is the budget reserved for response generation,
	// normally the model's max output tokens.
	ReservedOutput int

	counter Counter
}

// NewBudget creates a budget for a model with the given context window and
// output reservation.
func NewBudget(contextWindow, reservedOutput int) *Budget {
	return &Budget{
		ContextWindow:  contextWindow,
		ReservedOutput: reservedOutput,
		counter:        NewEstimatingCounter(),
	}
}

// WithCounter sets a custom token counter.
func (b *Budget) WithCounter(counter Counter) *Budget {
	b.counter = counter
	return b
}

// Input returns the number of tokens available for input.
func (b *Budget) Input() int {
	input := b.ContextWindow - b.ReservedOutput
	if input < 0 {
		return 0
	}
	return input
}

// Fits returns true if the text fits within the input budget.
func (b *Budget) Fits(text string) bool {
	return b.counter.FitsInLimit(text, b.Input())
}

// FitsTokens returns true if the token count fits within the input budget.
func (b *Budget) FitsTokens(tokens int) bool {
	return tokens <= b.Input()
}

// RemainingInput returns the remaining input budget after accounting for used tokens.
func (b *Budget) RemainingInput(usedTokens int) int {
	remaining := b.Input() - usedTokens
	if remaining < 0 {
		return 0
	}
	return remaining
}
