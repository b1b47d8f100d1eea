package validator

import (
	"fmt"
	"strings"

	"github.com/jokarl/banlist/internal/nearmatch"
)

// OnFail is the action a Guard takes when a validator fails
type OnFail string

const (
	// OnFailNoop keeps the value and records the failure
	OnFailNoop OnFail = "noop"
	// OnFailFix replaces the value with the validator's fix
	OnFailFix OnFail = "fix"
	// OnFailFilter drops the value, leaving an empty output
	OnFailFilter OnFail = "filter"
	// OnFailRefrain returns no output at all
	OnFailRefrain OnFail = "refrain"
	// OnFailException aborts with a ValidationError
	OnFailException OnFail = "exception"
)

// OnFailActions lists all supported actions
var OnFailActions = []OnFail{OnFailNoop, OnFailFix, OnFailFilter, OnFailRefrain, OnFailException}

// ParseOnFail parses an action name. The empty string means noop.
func ParseOnFail(s string) (OnFail, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OnFailNoop, nil
	}

	names := make([]string, 0, len(OnFailActions))
	for _, a := range OnFailActions {
		if string(a) == s {
			return a, nil
		}
		names = append(names, string(a))
	}

	if s == "reask" {
		return "", fmt.Errorf("on_fail %q is not supported (valid: %s)", s, strings.Join(names, ", "))
	}
	if suggestion, _, ok := nearmatch.FindBestMatch(s, names, 0.5); ok {
		return "", fmt.Errorf("unknown on_fail %q, did you mean %q?", s, suggestion)
	}
	return "", fmt.Errorf("unknown on_fail %q (valid: %s)", s, strings.Join(names, ", "))
}
