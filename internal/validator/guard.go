package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/banlist/internal/types"
)

// Step pairs a validator with its on-fail action
type Step struct {
	Validator Validator
	OnFail    OnFail
}

// Summary records what one validator did during Guard.Parse
type Summary struct {
	ValidatorName string            `json:"validator_name"`
	Status        string            `json:"validator_status"`
	OnFail        OnFail            `json:"on_fail,omitempty"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	Spans         []types.ErrorSpan `json:"error_spans,omitempty"`
	Hits          []Hit             `json:"hits,omitempty"`
	FixValue      *string           `json:"fix_value,omitempty"`
}

// Outcome is the result of running a Guard over one value
type Outcome struct {
	ValidationPassed bool      `json:"validation_passed"`
	RawOutput        string    `json:"raw_output"`
	ValidatedOutput  *string   `json:"validated_output"`
	Summaries        []Summary `json:"validation_summaries"`
}

// ValidationError is returned by Guard.Parse when a validator configured
// with OnFailException fails.
type ValidationError struct {
	Validator string
	Message   string
	Spans     []types.ErrorSpan
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Spans))
	for _, s := range e.Spans {
		reasons = append(reasons, s.Reason)
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("validation failed for %s: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s: %s", e.Validator, e.Message, strings.Join(reasons, "; "))
}

// Guard runs a sequence of validators over a value
type Guard struct {
	steps  []Step
	logger hclog.Logger
}

// NewGuard creates a Guard running steps in order
func NewGuard(steps ...Step) *Guard {
	return &Guard{
		steps:  steps,
		logger: hclog.NewNullLogger(),
	}
}

// WithLogger sets the logger and returns the guard for chaining
func (g *Guard) WithLogger(logger hclog.Logger) *Guard {
	g.logger = logger
	return g
}

// Steps returns the configured steps
func (g *Guard) Steps() []Step {
	return g.steps
}

// Parse validates value. Each validator sees the output of the previous one,
// so a fix applied early is what later validators check. Filter and refrain
// end the run.
func (g *Guard) Parse(ctx context.Context, value string) (*Outcome, error) {
	out := &Outcome{
		ValidationPassed: true,
		RawOutput:        value,
	}
	current := value

	for _, step := range g.steps {
		v := step.Validator
		res, err := v.Validate(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("running %s: %w", v.Name(), err)
		}

		summary := Summary{
			ValidatorName: v.Name(),
			Status:        "pass",
		}
		if res.Passed {
			g.logger.Debug("validator passed", "validator", v.Name())
			out.Summaries = append(out.Summaries, summary)
			continue
		}

		summary.Status = "fail"
		summary.OnFail = step.OnFail
		summary.ErrorMessage = res.ErrorMessage
		summary.Spans = res.Spans
		summary.Hits = res.Hits
		summary.FixValue = res.FixValue
		out.Summaries = append(out.Summaries, summary)
		g.logger.Debug("validator failed", "validator", v.Name(), "on_fail", step.OnFail, "spans", len(res.Spans))

		switch step.OnFail {
		case OnFailFix:
			if res.FixValue != nil {
				current = *res.FixValue
				continue
			}
			g.logger.Warn("validator has no fix, keeping value", "validator", v.Name())
			out.ValidationPassed = false
		case OnFailFilter:
			out.ValidationPassed = false
			filtered := ""
			out.ValidatedOutput = &filtered
			return out, nil
		case OnFailRefrain:
			out.ValidationPassed = false
			out.ValidatedOutput = nil
			return out, nil
		case OnFailException:
			return nil, &ValidationError{
				Validator: v.Name(),
				Message:   res.ErrorMessage,
				Spans:     res.Spans,
			}
		default:
			out.ValidationPassed = false
		}
	}

	out.ValidatedOutput = &current
	return out, nil
}
