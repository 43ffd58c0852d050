package tokens

import (
	"strings"
	"testing"
)

func TestNewBudget(t *testing.T) {
	b := NewBudget(128000, 8192)

	if b.ContextWindow != 128000 {
		t.Errorf("expected ContextWindow 128000, got %d", b.ContextWindow)
	}
	if b.ReservedOutput != 8192 {
		t.Errorf("expected ReservedOutput 8192, got %d", b.ReservedOutput)
	}
	if b.counter == nil {
		t.Error("expected counter to be initialized")
	}
}

func TestBudget_Input(t *testing.T) {
	tests := []struct {
		name     string
		window   int
		reserved int
		expected int
	}{
		{name: "deepseek chat", window: 128000, reserved: 8192, expected: 119808},
		{name: "o3", window: 200000, reserved: 100000, expected: 100000},
		{name: "no reservation", window: 8000, reserved: 0, expected: 8000},
		{name: "reservation exceeds window", window: 100, reserved: 200, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBudget(tt.window, tt.reserved)
			if got := b.Input(); got != tt.expected {
				t.Errorf("Input() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestBudget_Fits(t *testing.T) {
	b := NewBudget(110, 10) // Input = 100 tokens = 300 chars

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{name: "empty fits", text: "", expected: true},
		{name: "exact limit fits", text: strings.Repeat("x", 300), expected: true},
		{name: "one char over does not fit", text: strings.Repeat("x", 301), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Fits(tt.text); got != tt.expected {
				t.Errorf("Fits() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBudget_FitsTokens(t *testing.T) {
	b := NewBudget(110, 10)

	tests := []struct {
		name     string
		tokens   int
		expected bool
	}{
		{name: "zero fits", tokens: 0, expected: true},
		{name: "exact limit fits", tokens: 100, expected: true},
		{name: "over limit does not fit", tokens: 101, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.FitsTokens(tt.tokens); got != tt.expected {
				t.Errorf("FitsTokens(%d) = %v, expected %v", tt.tokens, got, tt.expected)
			}
		})
	}
}

func TestBudget_RemainingInput(t *testing.T) {
	b := NewBudget(50000, 10000) // Input = 40000

	tests := []struct {
		name       string
		usedTokens int
		expected   int
	}{
		{name: "none used", usedTokens: 0, expected: 40000},
		{name: "some used", usedTokens: 10000, expected: 30000},
		{name: "all used", usedTokens: 40000, expected: 0},
		{name: "over budget returns zero", usedTokens: 50000, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.RemainingInput(tt.usedTokens); got != tt.expected {
				t.Errorf("RemainingInput(%d) = %d, expected %d", tt.usedTokens, got, tt.expected)
			}
		})
	}
}

func TestBudget_WithCounter(t *testing.T) {
	b := NewBudget(20, 10).WithCounter(NewEstimatingCounterWithRatio(1))

	if !b.Fits(strings.Repeat("x", 10)) {
		t.Error("10 chars at 1 char/token should fit 10 tokens")
	}
	if b.Fits(strings.Repeat("x", 11)) {
		t.Error("11 chars at 1 char/token should not fit 10 tokens")
	}
}

func BenchmarkBudget_Fits(b *testing.B) {
	budget := NewBudget(128000, 8192)
	text := strings.Repeat("context data ", 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		budget.Fits(text)
	}
}
