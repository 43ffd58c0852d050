package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	// ErrUnknownProvider indicates the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnknownModel indicates the requested model is not in the registry.
	ErrUnknownModel = errors.New("unknown model")

	// ErrInvalidRegistry indicates the provider catalog violates an invariant.
	ErrInvalidRegistry = errors.New("invalid provider registry")
)

// Error wraps provider errors with context.
type Error struct {
	Provider string // Provider ID ("deepseek", "anthropic", etc.)
	Op       string // Operation that failed ("complete", "lookup")
	Err      error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error) *Error {
	return &Error{
		Provider: provider,
		Op:       op,
		Err:      err,
	}
}

// UnknownProviderError returns an error for an unregistered provider ID.
// The message includes the offending ID.
func UnknownProviderError(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownProvider, id)
}

// IsUnknownProvider checks if an error is due to an unregistered provider.
func IsUnknownProvider(err error) bool {
	return errors.Is(err, ErrUnknownProvider)
}
