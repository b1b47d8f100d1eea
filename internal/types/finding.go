package types

// ErrorSpan marks the part of a validated value that caused a failure.
// Start and End are rune offsets into the value, End exclusive.
type ErrorSpan struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Reason string `json:"reason"`
}

// Finding represents a single validator failure
type Finding struct {
	// ValidatorID is the unique identifier for the validator (e.g., "BL001")
	ValidatorID string `json:"validator_id"`

	// ValidatorName is the registered validator name (e.g., "ban_list")
	ValidatorName string `json:"validator_name"`

	// Severity is the severity level of this finding
	Severity Severity `json:"severity"`

	// Message is a short description of the finding
	Message string `json:"message"`

	// Detail provides additional context about the finding
	Detail string `json:"detail,omitempty"`

	// Word is the banned word that produced the match
	Word string `json:"word,omitempty"`

	// Matched is the text of the value that matched Word
	Matched string `json:"matched,omitempty"`

	// Distance is the edit distance between Word and Matched
	Distance int `json:"distance"`

	// Location is the source location of the match (nil for inline values)
	Location *FileRange `json:"location,omitempty"`

	// Span locates the match within the validated value
	Span *ErrorSpan `json:"span,omitempty"`

	// Ignored indicates if this finding was suppressed by an annotation
	Ignored bool `json:"ignored"`

	// IgnoreReason is the reason provided in the ignore annotation
	IgnoreReason string `json:"ignore_reason,omitempty"`

	// Metadata contains validator-specific data
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewFinding creates a new Finding with the given parameters
func NewFinding(validatorID, validatorName string, severity Severity, message string) *Finding {
	return &Finding{
		ValidatorID:   validatorID,
		ValidatorName: validatorName,
		Severity:      severity,
		Message:       message,
	}
}

// WithDetail sets the detail field and returns the finding for chaining
func (f *Finding) WithDetail(detail string) *Finding {
	f.Detail = detail
	return f
}

// WithMatch records the banned word, the matched text and their distance
func (f *Finding) WithMatch(word, matched string, distance int) *Finding {
	f.Word = word
	f.Matched = matched
	f.Distance = distance
	return f
}

// WithLocation sets the source location and returns the finding for chaining
func (f *Finding) WithLocation(loc *FileRange) *Finding {
	f.Location = loc
	return f
}

// WithSpan sets the error span and returns the finding for chaining
func (f *Finding) WithSpan(span ErrorSpan) *Finding {
	f.Span = &span
	return f
}

// WithMetadata sets metadata and returns the finding for chaining
func (f *Finding) WithMetadata(key, value string) *Finding {
	if f.Metadata == nil {
		f.Metadata = make(map[string]string)
	}
	f.Metadata[key] = value
	return f
}

// CheckResult represents the result of running a check
type CheckResult struct {
	// Targets lists the files or inputs that were validated
	Targets []string `json:"targets"`

	// Findings is the list of all findings
	Findings []*Finding `json:"findings"`

	// Summary contains counts by severity
	Summary Summary `json:"summary"`

	// Result is PASS or FAIL based on the policy
	Result string `json:"result"`

	// FailOn is the severity threshold used for the result
	FailOn Severity `json:"fail_on"`
}

// Summary contains counts of findings by severity
type Summary struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Notice  int `json:"notice"`
	Ignored int `json:"ignored"`
	Total   int `json:"total"`
}

// NewCheckResult creates a new CheckResult
func NewCheckResult(targets []string, failOn Severity) *CheckResult {
	return &CheckResult{
		Targets:  targets,
		Findings: make([]*Finding, 0),
		FailOn:   failOn,
	}
}

// AddFinding adds a finding to the result
func (r *CheckResult) AddFinding(f *Finding) {
	r.Findings = append(r.Findings, f)
}

// Compute calculates the summary and result
func (r *CheckResult) Compute() {
	r.Summary = Summary{}
	failed := false
	for _, f := range r.Findings {
		if f.Ignored {
			r.Summary.Ignored++
			continue
		}
		switch f.Severity {
		case SeverityError:
			r.Summary.Error++
		case SeverityWarning:
			r.Summary.Warning++
		case SeverityNotice:
			r.Summary.Notice++
		}
		if f.Severity.AtLeast(r.FailOn) {
			failed = true
		}
	}
	r.Summary.Total = len(r.Findings)

	if failed {
		r.Result = "FAIL"
	} else {
		r.Result = "PASS"
	}
}

// Passed reports whether Compute decided PASS
func (r *CheckResult) Passed() bool {
	return r.Result == "PASS"
}
