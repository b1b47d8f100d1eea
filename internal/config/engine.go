package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/banlist/internal/validator"
)

// ErrNoValidators is returned when the configuration has no validator blocks
var ErrNoValidators = errors.New("no validators configured")

// BuildEngine constructs every configured validator from reg and returns an
// engine running them in configuration order.
func (c *Config) BuildEngine(reg *validator.Registry, logger hclog.Logger) (*validator.Engine, error) {
	if len(c.Validators) == 0 {
		return nil, ErrNoValidators
	}

	engine := validator.NewEngine(logger)
	for _, vc := range c.Validators {
		v, err := reg.New(vc.Name, vc.Args())
		if err != nil {
			return nil, err
		}

		// Severities were checked by Validate when the file was loaded
		cfg := validator.DefaultConfig(v)
		cfg.Enabled = c.IsValidatorEnabled(vc.Name)
		cfg.Severity = c.GetValidatorSeverity(vc.Name, cfg.Severity)
		if vc.OnFail != nil {
			action, err := validator.ParseOnFail(*vc.OnFail)
			if err != nil {
				return nil, fmt.Errorf("validator %s: %w", vc.Name, err)
			}
			cfg.OnFail = action
		}

		engine.Add(v, cfg)
	}
	return engine, nil
}
