package validator

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jokarl/banlist/internal/types"
)

// Target is a named text to validate, usually the contents of a file
type Target struct {
	Name string
	Text string
}

// Engine evaluates configured validators against targets
type Engine struct {
	validators []Validator
	config     map[string]*Config
	logger     hclog.Logger
}

// NewEngine creates an Engine with no validators
func NewEngine(logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Engine{
		config: make(map[string]*Config),
		logger: logger,
	}
}

// Add registers a validator with its configuration. A nil config means
// DefaultConfig.
func (e *Engine) Add(v Validator, cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig(v)
	}
	e.validators = append(e.validators, v)
	e.config[v.Name()] = cfg
}

// Validators returns the validators in the order they were added
func (e *Engine) Validators() []Validator {
	return e.validators
}

// GetConfig returns the configuration for a validator
func (e *Engine) GetConfig(name string) *Config {
	if cfg, ok := e.config[name]; ok {
		return cfg
	}
	return nil
}

// DisableValidator disables a validator by name
func (e *Engine) DisableValidator(name string) {
	if cfg := e.GetConfig(name); cfg != nil {
		cfg.Enabled = false
	}
}

// Guard returns a Guard over the enabled validators and their on-fail actions
func (e *Engine) Guard() *Guard {
	var steps []Step
	for _, v := range e.validators {
		cfg := e.config[v.Name()]
		if !cfg.Enabled {
			continue
		}
		steps = append(steps, Step{Validator: v, OnFail: cfg.OnFail})
	}
	return NewGuard(steps...).WithLogger(e.logger.Named("guard"))
}

// Evaluate runs all enabled validators against one target and returns one
// finding per hit, located within the target.
func (e *Engine) Evaluate(ctx context.Context, t Target) ([]*types.Finding, error) {
	var findings []*types.Finding

	for _, v := range e.validators {
		cfg := e.config[v.Name()]
		if !cfg.Enabled {
			continue
		}

		res, err := v.Validate(ctx, t.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", t.Name, v.Name(), err)
		}
		if res.Passed {
			continue
		}

		for i, span := range res.Spans {
			f := types.NewFinding(v.ID(), v.Name(), cfg.Severity, span.Reason).
				WithDetail(res.ErrorMessage).
				WithSpan(span).
				WithLocation(types.RangeForSpan(t.Name, res.Value, span.Start, span.End))
			if i < len(res.Hits) {
				h := res.Hits[i]
				f.WithMatch(h.Word, h.Matched, h.Distance)
			}
			findings = append(findings, f)
		}
	}

	return findings, nil
}

// Check evaluates all targets concurrently and returns a complete
// CheckResult. Findings keep the order of targets.
func (e *Engine) Check(ctx context.Context, targets []Target, failOn types.Severity) (*types.CheckResult, error) {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}
	result := types.NewCheckResult(names, failOn)

	perTarget := make([][]*types.Finding, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			findings, err := e.Evaluate(ctx, t)
			if err != nil {
				return err
			}
			perTarget[i] = findings
			e.logger.Trace("target evaluated", "target", t.Name, "findings", len(findings))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, findings := range perTarget {
		for _, f := range findings {
			result.AddFinding(f)
		}
	}

	result.Compute()
	return result, nil
}
