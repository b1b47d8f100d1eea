// Package validator turns the approximate matcher into configurable text
// validators and runs them over values and files.
//
// Validators are built by name from a Registry of factories, each taking
// cty-typed Args. A Guard applies validators to one value with an on-fail
// action per validator; an Engine applies them to many targets and reports
// findings.
package validator

import "github.com/jokarl/banlist/internal/types"

// ArgDoc documents one validator argument
type ArgDoc struct {
	Name        string
	Type        string
	Default     string
	Required    bool
	Description string
}

// Documentation contains documentation for a validator
type Documentation struct {
	ID              string
	Name            string
	DefaultSeverity types.Severity
	Description     string
	Args            []ArgDoc
	ExampleConfig   string
	ExampleInput    string
	ExampleFix      string
}

// GetDocumentation returns the documentation for a validator if registered
func GetDocumentation(name string) *Documentation {
	f, ok := DefaultRegistry.Get(name)
	if !ok {
		return nil
	}

	if f.Documentation != nil {
		return f.Documentation
	}

	// Fallback to basic info from the factory
	return &Documentation{
		ID:              f.ID,
		Name:            f.Name,
		DefaultSeverity: f.DefaultSeverity,
		Description:     f.Description,
	}
}
