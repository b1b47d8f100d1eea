package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jokarl/banlist/internal/types"
)

// TextRenderer renders output in human-readable text format
type TextRenderer struct {
	ColorEnabled bool
}

// Render writes the check result in text format
func (r *TextRenderer) Render(w io.Writer, result *types.CheckResult) error {
	if !r.ColorEnabled {
		color.NoColor = true
	}

	fmt.Fprintf(w, "banlist: checked %s\n\n", describeTargets(result.Targets))

	for _, f := range result.Findings {
		r.renderFinding(w, f)
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	r.renderSummary(w, result)
	r.renderResult(w, result)

	return nil
}

func describeTargets(targets []string) string {
	switch len(targets) {
	case 0:
		return "no files"
	case 1:
		return targets[0]
	default:
		return fmt.Sprintf("%d files", len(targets))
	}
}

func (r *TextRenderer) renderFinding(w io.Writer, f *types.Finding) {
	severityStr := r.colorSeverity(f.Severity)
	fmt.Fprintf(w, "%s  %s  %s\n", severityStr, f.ValidatorID, f.ValidatorName)

	if f.Location != nil {
		fmt.Fprintf(w, "  %s:%d:%d\n", f.Location.Filename, f.Location.Line, f.Location.Column)
	}

	fmt.Fprintf(w, "  %s\n", f.Message)
	if f.Word != "" {
		fmt.Fprintf(w, "  word=%q matched=%q distance=%d\n", f.Word, f.Matched, f.Distance)
	}

	if f.Ignored {
		if f.IgnoreReason != "" {
			fmt.Fprintf(w, "  [IGNORED] reason=%q\n", f.IgnoreReason)
		} else {
			fmt.Fprintln(w, "  [IGNORED]")
		}
	}

	fmt.Fprintln(w)
}

func (r *TextRenderer) renderSummary(w io.Writer, result *types.CheckResult) {
	parts := []string{}

	if result.Summary.Error > 0 {
		parts = append(parts, fmt.Sprintf("%d error", result.Summary.Error))
	}
	if result.Summary.Warning > 0 {
		parts = append(parts, fmt.Sprintf("%d warning", result.Summary.Warning))
	}
	if result.Summary.Notice > 0 {
		parts = append(parts, fmt.Sprintf("%d notice", result.Summary.Notice))
	}
	if result.Summary.Ignored > 0 {
		parts = append(parts, fmt.Sprintf("%d ignored", result.Summary.Ignored))
	}

	if len(parts) == 0 {
		parts = append(parts, "no issues found")
	}

	fmt.Fprintf(w, "Summary: %s\n", strings.Join(parts, ", "))
}

func (r *TextRenderer) renderResult(w io.Writer, result *types.CheckResult) {
	if result.Passed() {
		fmt.Fprintf(w, "Result: %s\n", r.paint(color.FgGreen, "PASS"))
		return
	}
	fmt.Fprintf(w, "Result: %s (banned words detected)\n", r.paint(color.FgRed, "FAIL"))
}

func (r *TextRenderer) paint(attr color.Attribute, s string) string {
	if !r.ColorEnabled {
		return s
	}
	return color.New(attr).Sprint(s)
}

func (r *TextRenderer) colorSeverity(s types.Severity) string {
	str := s.String()
	if !r.ColorEnabled {
		return str
	}

	switch s {
	case types.SeverityError:
		return color.New(color.FgRed, color.Bold).Sprint(str)
	case types.SeverityWarning:
		return color.New(color.FgYellow).Sprint(str)
	case types.SeverityNotice:
		return color.New(color.FgCyan).Sprint(str)
	default:
		return str
	}
}
