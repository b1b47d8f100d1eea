package validator

import (
	"context"

	"github.com/jokarl/banlist/internal/types"
)

// Validator checks a single text value
type Validator interface {
	// ID returns the unique identifier for this validator (e.g., "BL001")
	ID() string

	// Name returns the registered name (e.g., "ban_list")
	Name() string

	// Description returns a description of what this validator detects
	Description() string

	// DefaultSeverity returns the default severity level for this validator
	DefaultSeverity() types.Severity

	// Validate checks value and returns a pass or fail result
	Validate(ctx context.Context, value string) (*Result, error)
}

// Hit is one occurrence of a banned word in a validated value. Start and End
// are rune offsets into Result.Value.
type Hit struct {
	Word     string `json:"word"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Matched  string `json:"matched"`
	Distance int    `json:"distance"`
}

// Result is the outcome of a single Validate call
type Result struct {
	// Passed is true when the value satisfies the validator
	Passed bool `json:"passed"`

	// ErrorMessage describes why validation failed
	ErrorMessage string `json:"error_message,omitempty"`

	// Value is the text the spans refer to, after any normalization
	Value string `json:"-"`

	// Spans marks the offending parts of Value
	Spans []types.ErrorSpan `json:"error_spans,omitempty"`

	// FixValue is the programmatic fix, nil when none is available
	FixValue *string `json:"fix_value,omitempty"`

	// Hits lists the individual matches behind Spans
	Hits []Hit `json:"hits,omitempty"`
}

// PassResult returns a passing result for value
func PassResult(value string) *Result {
	return &Result{Passed: true, Value: value}
}

// FailResult returns a failing result with the given message
func FailResult(value, message string) *Result {
	return &Result{Value: value, ErrorMessage: message}
}

// WithFix sets the fix value and returns the result for chaining
func (r *Result) WithFix(fix string) *Result {
	r.FixValue = &fix
	return r
}

// Config holds configuration for a single configured validator
type Config struct {
	Enabled  bool
	Severity types.Severity
	OnFail   OnFail
}

// DefaultConfig returns the default configuration for a validator
func DefaultConfig(v Validator) *Config {
	return &Config{
		Enabled:  true,
		Severity: v.DefaultSeverity(),
		OnFail:   OnFailNoop,
	}
}
