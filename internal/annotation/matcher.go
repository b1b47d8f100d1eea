package annotation

import (
	"slices"

	"github.com/jokarl/banlist/internal/types"
)

// Matcher matches annotations to findings
type Matcher struct {
	annotations map[string][]*Annotation // filename -> annotations
}

// NewMatcher creates a new Matcher with the given annotations
func NewMatcher(annotations []*Annotation) *Matcher {
	annByFile := make(map[string][]*Annotation)
	for _, ann := range annotations {
		annByFile[ann.Filename] = append(annByFile[ann.Filename], ann)
	}

	return &Matcher{annotations: annByFile}
}

// MatchResult contains the result of matching an annotation to a finding
type MatchResult struct {
	Matched    bool
	Annotation *Annotation
}

// Match finds an annotation that applies to the given finding
func (m *Matcher) Match(finding *types.Finding) MatchResult {
	if finding.Location == nil {
		return MatchResult{Matched: false}
	}

	anns := m.annotations[finding.Location.Filename]
	if len(anns) == 0 {
		return MatchResult{Matched: false}
	}

	// File-level annotations win over line annotations
	for _, ann := range anns {
		if ann.Scope == ScopeFile && ann.MatchesValidator(finding.ValidatorName) {
			return MatchResult{Matched: true, Annotation: ann}
		}
	}

	for _, ann := range anns {
		if ann.Scope != ScopeLine || !ann.MatchesValidator(finding.ValidatorName) {
			continue
		}
		if ann.AppliesToLine(finding.Location.Line) {
			return MatchResult{Matched: true, Annotation: ann}
		}
	}

	return MatchResult{Matched: false}
}

// GovernanceConfig contains settings for annotation governance
type GovernanceConfig struct {
	Enabled         bool
	RequireReason   bool
	AllowValidators []string
	DenyValidators  []string
}

// NewGovernanceConfig builds a GovernanceConfig, resolving validator IDs in
// the allow and deny lists to names
func NewGovernanceConfig(enabled, requireReason bool, allow, deny []string, resolver Resolver) GovernanceConfig {
	if resolver == nil {
		resolver = NewRegistryResolver(nil)
	}
	resolve := func(specs []string) []string {
		var names []string
		for _, s := range specs {
			if name, ok := resolver.Resolve(s); ok {
				names = append(names, name)
			} else {
				names = append(names, s)
			}
		}
		return names
	}
	return GovernanceConfig{
		Enabled:         enabled,
		RequireReason:   requireReason,
		AllowValidators: resolve(allow),
		DenyValidators:  resolve(deny),
	}
}

// CheckGovernance checks if an annotation violates governance rules
func CheckGovernance(ann *Annotation, cfg GovernanceConfig) *GovernanceViolation {
	if !cfg.Enabled {
		return nil
	}

	if ann.IsExpired() {
		return &GovernanceViolation{
			Annotation: ann,
			Message:    "annotation has expired",
		}
	}

	if cfg.RequireReason && ann.Reason == "" {
		return &GovernanceViolation{
			Annotation: ann,
			Message:    "annotation requires a reason",
		}
	}

	// If non-empty, only these validators can be ignored
	if len(cfg.AllowValidators) > 0 {
		if len(ann.Validators) == 0 {
			return &GovernanceViolation{
				Annotation: ann,
				Message:    "cannot ignore all validators when allow_validators is set",
			}
		}
		for _, name := range ann.Validators {
			if !slices.Contains(cfg.AllowValidators, name) {
				return &GovernanceViolation{
					Annotation: ann,
					Message:    "validator " + name + " is not in allow_validators",
				}
			}
		}
	}

	if len(cfg.DenyValidators) > 0 {
		if len(ann.Validators) == 0 {
			return &GovernanceViolation{
				Annotation: ann,
				Message:    "cannot ignore all validators when deny_validators is set",
			}
		}
		for _, name := range ann.Validators {
			if slices.Contains(cfg.DenyValidators, name) {
				return &GovernanceViolation{
					Annotation: ann,
					Message:    "validator " + name + " cannot be ignored (in deny_validators)",
				}
			}
		}
	}

	return nil
}

// Apply marks findings suppressed by a matching annotation as ignored.
// Annotations that violate governance do not suppress anything and are
// returned as violations, once each.
func Apply(findings []*types.Finding, annotations []*Annotation, cfg GovernanceConfig) []*GovernanceViolation {
	if !cfg.Enabled || len(annotations) == 0 {
		return nil
	}

	var violations []*GovernanceViolation
	valid := make([]*Annotation, 0, len(annotations))
	for _, ann := range annotations {
		if v := CheckGovernance(ann, cfg); v != nil {
			violations = append(violations, v)
			continue
		}
		valid = append(valid, ann)
	}

	m := NewMatcher(valid)
	for _, f := range findings {
		res := m.Match(f)
		if !res.Matched {
			continue
		}
		f.Ignored = true
		f.IgnoreReason = res.Annotation.Reason
	}
	return violations
}
