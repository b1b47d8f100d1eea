package annotation

import (
	"testing"
	"time"

	"github.com/jokarl/banlist/internal/types"
)

func finding(name, file string, line int) *types.Finding {
	return types.NewFinding("BL001", name, types.SeverityError, "Found match").
		WithLocation(&types.FileRange{Filename: file, Line: line, Column: 1})
}

func TestMatcherMatch(t *testing.T) {
	tests := []struct {
		name        string
		annotations []*Annotation
		finding     *types.Finding
		expectMatch bool
	}{
		{
			name:        "no annotations",
			finding:     finding("ban_list", "notes.txt", 5),
			expectMatch: false,
		},
		{
			name:        "no location",
			annotations: []*Annotation{{Scope: ScopeFile, Filename: "notes.txt", Line: 1}},
			finding:     types.NewFinding("BL001", "ban_list", types.SeverityError, "x"),
			expectMatch: false,
		},
		{
			name:        "file level ignore matches",
			annotations: []*Annotation{{Scope: ScopeFile, Filename: "notes.txt", Line: 1}},
			finding:     finding("ban_list", "notes.txt", 40),
			expectMatch: true,
		},
		{
			name:        "file level ignore in another file",
			annotations: []*Annotation{{Scope: ScopeFile, Filename: "other.txt", Line: 1}},
			finding:     finding("ban_list", "notes.txt", 4),
			expectMatch: false,
		},
		{
			name: "file level ignore for another validator",
			annotations: []*Annotation{
				{Scope: ScopeFile, Validators: []string{"profanity"}, Filename: "notes.txt", Line: 1},
			},
			finding:     finding("ban_list", "notes.txt", 4),
			expectMatch: false,
		},
		{
			name:        "line ignore on the previous line",
			annotations: []*Annotation{{Scope: ScopeLine, Filename: "notes.txt", Line: 4}},
			finding:     finding("ban_list", "notes.txt", 5),
			expectMatch: true,
		},
		{
			name:        "line ignore on the same line",
			annotations: []*Annotation{{Scope: ScopeLine, Filename: "notes.txt", Line: 5}},
			finding:     finding("ban_list", "notes.txt", 5),
			expectMatch: true,
		},
		{
			name:        "line ignore two lines above",
			annotations: []*Annotation{{Scope: ScopeLine, Filename: "notes.txt", Line: 3}},
			finding:     finding("ban_list", "notes.txt", 5),
			expectMatch: false,
		},
		{
			name:        "line ignore below the finding",
			annotations: []*Annotation{{Scope: ScopeLine, Filename: "notes.txt", Line: 6}},
			finding:     finding("ban_list", "notes.txt", 5),
			expectMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(tt.annotations)
			result := m.Match(tt.finding)
			if result.Matched != tt.expectMatch {
				t.Errorf("Match() = %v, want %v", result.Matched, tt.expectMatch)
			}
		})
	}
}

func TestCheckGovernance(t *testing.T) {
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		ann       *Annotation
		cfg       GovernanceConfig
		violation bool
	}{
		{
			name:      "disabled",
			ann:       &Annotation{Expires: &past},
			cfg:       GovernanceConfig{Enabled: false},
			violation: false,
		},
		{
			name:      "expired",
			ann:       &Annotation{Expires: &past},
			cfg:       GovernanceConfig{Enabled: true},
			violation: true,
		},
		{
			name:      "reason required and missing",
			ann:       &Annotation{},
			cfg:       GovernanceConfig{Enabled: true, RequireReason: true},
			violation: true,
		},
		{
			name:      "reason required and present",
			ann:       &Annotation{Reason: "glossary"},
			cfg:       GovernanceConfig{Enabled: true, RequireReason: true},
			violation: false,
		},
		{
			name:      "allowed validator",
			ann:       &Annotation{Validators: []string{"ban_list"}},
			cfg:       GovernanceConfig{Enabled: true, AllowValidators: []string{"ban_list"}},
			violation: false,
		},
		{
			name:      "validator outside the allow list",
			ann:       &Annotation{Validators: []string{"profanity"}},
			cfg:       GovernanceConfig{Enabled: true, AllowValidators: []string{"ban_list"}},
			violation: true,
		},
		{
			name:      "all validators with an allow list",
			ann:       &Annotation{},
			cfg:       GovernanceConfig{Enabled: true, AllowValidators: []string{"ban_list"}},
			violation: true,
		},
		{
			name:      "denied validator",
			ann:       &Annotation{Validators: []string{"ban_list"}},
			cfg:       GovernanceConfig{Enabled: true, DenyValidators: []string{"ban_list"}},
			violation: true,
		},
		{
			name:      "all validators with a deny list",
			ann:       &Annotation{},
			cfg:       GovernanceConfig{Enabled: true, DenyValidators: []string{"ban_list"}},
			violation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CheckGovernance(tt.ann, tt.cfg)
			if (v != nil) != tt.violation {
				t.Errorf("CheckGovernance() = %v, want violation %v", v, tt.violation)
			}
		})
	}
}

func TestNewGovernanceConfig(t *testing.T) {
	cfg := NewGovernanceConfig(true, false, []string{"BL001"}, []string{"unknown"}, testResolver)
	if len(cfg.AllowValidators) != 1 || cfg.AllowValidators[0] != "ban_list" {
		t.Errorf("AllowValidators = %v, want [ban_list]", cfg.AllowValidators)
	}
	if len(cfg.DenyValidators) != 1 || cfg.DenyValidators[0] != "unknown" {
		t.Errorf("DenyValidators = %v, want [unknown]", cfg.DenyValidators)
	}
}

func TestApply(t *testing.T) {
	src := `intro line
# banlist:ignore ban_list # product name
we sell banana phones
plain bananna
`
	anns := NewParser(testResolver).ParseFile("notes.txt", []byte(src))
	findings := []*types.Finding{
		finding("ban_list", "notes.txt", 3),
		finding("ban_list", "notes.txt", 4),
		finding("ban_list", "other.txt", 3),
	}

	violations := Apply(findings, anns, GovernanceConfig{Enabled: true})
	if len(violations) != 0 {
		t.Fatalf("Apply() violations = %d, want 0", len(violations))
	}
	if !findings[0].Ignored || findings[0].IgnoreReason != "product name" {
		t.Errorf("finding on line 3: ignored=%v reason=%q, want true %q", findings[0].Ignored, findings[0].IgnoreReason, "product name")
	}
	if findings[1].Ignored {
		t.Error("finding on line 4 should not be ignored")
	}
	if findings[2].Ignored {
		t.Error("finding in other.txt should not be ignored")
	}
}

func TestApplyGovernanceViolation(t *testing.T) {
	anns := NewParser(testResolver).ParseFile("notes.txt", []byte("# banlist:ignore-file\nbanana\n"))
	findings := []*types.Finding{finding("ban_list", "notes.txt", 2)}

	violations := Apply(findings, anns, GovernanceConfig{Enabled: true, RequireReason: true})
	if len(violations) != 1 {
		t.Fatalf("Apply() violations = %d, want 1", len(violations))
	}
	if findings[0].Ignored {
		t.Error("finding should not be ignored by an annotation that violates governance")
	}
}

func TestApplyDisabled(t *testing.T) {
	anns := NewParser(testResolver).ParseFile("notes.txt", []byte("# banlist:ignore-file\nbanana\n"))
	findings := []*types.Finding{finding("ban_list", "notes.txt", 2)}

	if v := Apply(findings, anns, GovernanceConfig{Enabled: false}); v != nil {
		t.Errorf("Apply() violations = %v, want nil", v)
	}
	if findings[0].Ignored {
		t.Error("annotations are disabled, finding should not be ignored")
	}
}
