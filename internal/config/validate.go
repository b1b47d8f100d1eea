package config

import (
	"fmt"
	"strings"

	"github.com/jokarl/banlist/internal/types"
	"github.com/jokarl/banlist/internal/validator"
)

// OutputFormats lists the supported output formats
var OutputFormats = []string{"text", "json", "compact", "checkstyle", "sarif", "junit"}

// Validate validates the configuration
func Validate(cfg *Config) error {
	// Version check
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (only version 1 is supported)", cfg.Version)
	}

	// Validate output format
	if cfg.Output != nil && cfg.Output.Format != "" {
		if !contains(OutputFormats, cfg.Output.Format) {
			return fmt.Errorf("invalid output format: %s (must be one of %s)", cfg.Output.Format, strings.Join(OutputFormats, ", "))
		}
	}

	// Validate output color
	if cfg.Output != nil && cfg.Output.Color != "" {
		switch cfg.Output.Color {
		case "auto", "always", "never":
			// valid
		default:
			return fmt.Errorf("invalid color mode: %s (must be 'auto', 'always', or 'never')", cfg.Output.Color)
		}
	}

	// Validate policy fail_on
	if cfg.Policy != nil && cfg.Policy.FailOn != "" {
		if _, err := types.ParseSeverity(cfg.Policy.FailOn); err != nil {
			return fmt.Errorf("invalid fail_on severity: %s (must be 'ERROR', 'WARNING', or 'NOTICE')", cfg.Policy.FailOn)
		}
	}

	// Validate validator configurations
	seen := make(map[string]bool)
	for _, vc := range cfg.Validators {
		f, err := validator.DefaultRegistry.Lookup(vc.Name)
		if err != nil {
			return err
		}
		if seen[f.Name] {
			return fmt.Errorf("validator %q is configured more than once", f.Name)
		}
		seen[f.Name] = true

		if vc.Severity != nil {
			if _, err := types.ParseSeverity(*vc.Severity); err != nil {
				return fmt.Errorf("invalid severity for validator %s: %s", vc.Name, *vc.Severity)
			}
		}
		if vc.OnFail != nil {
			if _, err := validator.ParseOnFail(*vc.OnFail); err != nil {
				return fmt.Errorf("validator %s: %w", vc.Name, err)
			}
		}
	}

	// Validate annotation allow_validators / deny_validators
	if cfg.Annotations != nil {
		for _, name := range cfg.Annotations.AllowValidators {
			if !ValidateValidatorName(name) {
				return fmt.Errorf("unknown validator in allow_validators: %s", name)
			}
		}

		for _, name := range cfg.Annotations.DenyValidators {
			if !ValidateValidatorName(name) {
				return fmt.Errorf("unknown validator in deny_validators: %s", name)
			}
		}
	}

	return nil
}

// ValidateValidatorName checks if a validator name or ID is registered
func ValidateValidatorName(name string) bool {
	_, ok := validator.DefaultRegistry.Get(name)
	return ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
