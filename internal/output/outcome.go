package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jokarl/banlist/internal/nearmatch"
	"github.com/jokarl/banlist/internal/validator"
)

// OutcomeRenderer writes the result of a guard run for the validate command
type OutcomeRenderer struct {
	JSON         bool
	ColorEnabled bool
}

// Render writes outcome to w
func (r *OutcomeRenderer) Render(w io.Writer, outcome *validator.Outcome) error {
	if r.JSON {
		return writeJSON(w, outcome)
	}

	paint := func(attr color.Attribute, s string) string {
		if !r.ColorEnabled {
			return s
		}
		return color.New(attr).Sprint(s)
	}

	for _, s := range outcome.Summaries {
		status := paint(color.FgGreen, s.Status)
		if s.Status != "pass" {
			status = paint(color.FgRed, s.Status)
		}
		fmt.Fprintf(w, "%s: %s", s.ValidatorName, status)
		if s.OnFail != "" && s.Status != "pass" {
			fmt.Fprintf(w, " (on_fail=%s)", s.OnFail)
		}
		fmt.Fprintln(w)
		if s.ErrorMessage != "" {
			fmt.Fprintf(w, "  %s\n", s.ErrorMessage)
		}
		for _, span := range s.Spans {
			fmt.Fprintf(w, "  [%d:%d] %s\n", span.Start, span.End, span.Reason)
		}
		if s.FixValue != nil {
			fmt.Fprintf(w, "  fix: %q\n", *s.FixValue)
		}
	}

	switch {
	case outcome.ValidatedOutput == nil:
		fmt.Fprintln(w, "validated output: <refrained>")
	default:
		fmt.Fprintf(w, "validated output: %q\n", *outcome.ValidatedOutput)
	}

	if outcome.ValidationPassed {
		fmt.Fprintf(w, "Result: %s\n", paint(color.FgGreen, "PASS"))
	} else {
		fmt.Fprintf(w, "Result: %s\n", paint(color.FgRed, "FAIL"))
	}
	return nil
}

// MatchReport is the JSON form of a match command result
type MatchReport struct {
	Pattern string             `json:"pattern"`
	MaxDist int                `json:"max_l_dist"`
	Matches nearmatch.MatchSet `json:"matches"`
}

// RenderMatches writes the matches of pattern, one per line, or as JSON
func RenderMatches(w io.Writer, report MatchReport, asJSON bool) error {
	if report.Matches == nil {
		report.Matches = nearmatch.MatchSet{}
	}
	if asJSON {
		return writeJSON(w, report)
	}

	if len(report.Matches) == 0 {
		_, err := fmt.Fprintf(w, "no matches for %q within distance %d\n", report.Pattern, report.MaxDist)
		return err
	}
	for _, m := range report.Matches {
		if _, err := fmt.Fprintln(w, m.String()); err != nil {
			return err
		}
	}
	return nil
}
