// Package annotation handles parsing and matching of banlist ignore annotations.
//
// An annotation is written anywhere on a line, usually inside a comment of
// the host format:
//
//	# banlist:ignore ban_list # quoting the word on purpose
//	<!-- banlist:ignore-file reason="glossary" expires="2027-01-01" -->
//
// banlist:ignore suppresses findings on its own line and the next one;
// banlist:ignore-file suppresses findings in the whole file.
package annotation

import (
	"slices"
	"time"
)

// Scope defines where an annotation applies
type Scope int

const (
	// ScopeLine applies to the annotation's line and the line after it
	ScopeLine Scope = iota
	// ScopeFile applies to the entire file
	ScopeFile
)

// Annotation represents a parsed banlist ignore annotation
type Annotation struct {
	// Scope determines whether this applies to a line or the entire file
	Scope Scope

	// Validators is the list of validator names to ignore (empty = all validators)
	Validators []string

	// Reason is the documented reason for ignoring
	Reason string

	// Ticket is an optional ticket/issue reference
	Ticket string

	// Expires is an optional expiration date
	Expires *time.Time

	// Location is where the annotation was found
	Filename string
	Line     int
}

// IsExpired returns true if the annotation has an expiration date that has passed
func (a *Annotation) IsExpired() bool {
	return a.isExpiredAt(time.Now())
}

func (a *Annotation) isExpiredAt(now time.Time) bool {
	if a.Expires == nil {
		return false
	}
	return now.After(*a.Expires)
}

// MatchesValidator returns true if this annotation applies to the given validator
func (a *Annotation) MatchesValidator(name string) bool {
	// Empty list means all validators
	if len(a.Validators) == 0 {
		return true
	}

	return slices.Contains(a.Validators, name)
}

// AppliesToLine reports whether the annotation covers line
func (a *Annotation) AppliesToLine(line int) bool {
	if a.Scope == ScopeFile {
		return true
	}
	return line == a.Line || line == a.Line+1
}

// GovernanceViolation represents a violation of annotation governance rules
type GovernanceViolation struct {
	Annotation *Annotation
	Message    string
}
