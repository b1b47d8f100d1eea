package types

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a finding. Higher values are
// more severe.
type Severity int

const (
	// SeverityNotice is informational, no action needed
	SeverityNotice Severity = iota
	// SeverityWarning should be reviewed before publishing
	SeverityWarning
	// SeverityError must not be published as is
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityError:   "ERROR",
	SeverityWarning: "WARNING",
	SeverityNotice:  "NOTICE",
}

// severityAliases are accepted by ParseSeverity alongside the canonical names
var severityAliases = map[string]Severity{
	"WARN": SeverityWarning,
	"INFO": SeverityNotice,
}

// Severities returns every severity from most to least severe
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityNotice}
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText encodes the severity by name, which also makes it a JSON string
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts anything ParseSeverity does
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity name, ignoring case and surrounding space
func ParseSeverity(s string) (Severity, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for sev, n := range severityNames {
		if n == name {
			return sev, nil
		}
	}
	if sev, ok := severityAliases[name]; ok {
		return sev, nil
	}
	return SeverityNotice, fmt.Errorf("unknown severity %q (must be one of ERROR, WARNING, NOTICE)", s)
}

// AtLeast reports whether s is at least as severe as other
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}
