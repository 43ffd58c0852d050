package truncate

import (
	"log/slog"

	"github.com/randalmurphal/llmswitch/provider"
	"github.com/randalmurphal/llmswitch/tokens"
)

// Marker is prepended to text that was truncated.
const Marker = "[Context truncated due to length...]\n\n"

// BoundarySearchWindow is how many leading characters of the kept suffix
// are searched for a paragraph boundary.
const BoundarySearchWindow = 1000

// Truncator trims the oldest content of a text so it fits a token budget.
type Truncator struct {
	counter  tokens.Counter
	marker   string
	logger   *slog.Logger
	selector *provider.Selector
	model    string
}

// New creates a truncator using the default estimating counter, the
// standard marker and the process-environment selector.
func New() *Truncator {
	return &Truncator{
		counter: tokens.NewEstimatingCounter(),
		marker:  Marker,
	}
}

// WithCounter sets a custom token counter.
func (t *Truncator) WithCounter(counter tokens.Counter) *Truncator {
	t.counter = counter
	return t
}

// WithMarker sets the text prepended on truncation.
func (t *Truncator) WithMarker(marker string) *Truncator {
	t.marker = marker
	return t
}

// WithLogger sets the logger that receives truncation warnings.
func (t *Truncator) WithLogger(logger *slog.Logger) *Truncator {
	t.logger = logger
	return t
}

// WithSelector sets the selector used to find the current model when no
// explicit limit or model is given.
func (t *Truncator) WithSelector(s *provider.Selector) *Truncator {
	t.selector = s
	return t
}

// WithModel pins the model whose input budget is used as the default limit.
func (t *Truncator) WithModel(modelID string) *Truncator {
	t.model = modelID
	return t
}

// Marker returns the truncator's marker.
func (t *Truncator) Marker() string {
	return t.marker
}

// Model returns the model whose budget applies when no limit is given.
func (t *Truncator) Model() string {
	if t.model != "" {
		return t.model
	}
	sel := t.selector
	if sel == nil {
		sel = provider.FromEnv()
	}
	return sel.DefaultModelID()
}

// Limit resolves the token limit for a call. A positive maxTokens wins;
// otherwise the current model's input budget applies.
func (t *Truncator) Limit(maxTokens int) int {
	if maxTokens > 0 {
		return maxTokens
	}
	return provider.MaxInputTokens(t.Model())
}

// Truncate fits text within the token limit by keeping its most recent
// content. Returns the text and whether truncation occurred.
//
// The kept suffix is limit*3 characters long. If a blank line appears in
// its first BoundarySearchWindow characters, everything through the blank
// line is dropped so the result starts on a paragraph. The marker is
// prepended in both cases.
func (t *Truncator) Truncate(text string, maxTokens int) (string, bool) {
	limit := t.Limit(maxTokens)
	original := t.counter.Count(text)
	if original <= limit {
		return text, false
	}

	runes := []rune(text)
	kept := runes
	if maxChars := t.charsFor(limit); len(runes) > maxChars {
		kept = runes[len(runes)-maxChars:]
	}

	boundary := paragraphBoundary(kept)
	if boundary >= 0 {
		kept = kept[boundary+2:]
	}

	t.log().Warn("context truncated",
		"original_tokens", original,
		"limit", limit,
		"original_chars", len(runes),
		"kept_chars", len(kept),
		"paragraph_boundary", boundary >= 0,
	)

	return t.marker + string(kept), true
}

// charsFor converts a token limit to a character count using the counter's
// ratio when it exposes one.
func (t *Truncator) charsFor(limit int) int {
	if c, ok := t.counter.(interface{ CharsForTokens(int) int }); ok {
		return c.CharsForTokens(limit)
	}
	return int(float64(limit) * tokens.DefaultCharsPerToken)
}

func (t *Truncator) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return slog.Default()
}

// paragraphBoundary returns the index of the first "\n\n" that lies wholly
// within the first BoundarySearchWindow runes, or -1.
func paragraphBoundary(runes []rune) int {
	window := runes
	if len(window) > BoundarySearchWindow {
		window = window[:BoundarySearchWindow]
	}
	for i := 0; i+1 < len(window); i++ {
		if window[i] == '\n' && window[i+1] == '\n' {
			return i
		}
	}
	return -1
}
