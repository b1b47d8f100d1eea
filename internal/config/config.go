// Package config handles loading and validating banlist configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/jokarl/banlist/internal/types"
	"github.com/jokarl/banlist/internal/validator"
)

// FileName is the configuration file searched for by Load
const FileName = ".banlist.hcl"

// Config represents the banlist configuration
type Config struct {
	Version     int                `hcl:"version,attr"`
	Paths       *PathsConfig       `hcl:"paths,block"`
	Output      *OutputConfig      `hcl:"output,block"`
	Policy      *PolicyConfig      `hcl:"policy,block"`
	Annotations *AnnotationsConfig `hcl:"annotations,block"`
	Server      *ServerConfig      `hcl:"server,block"`
	Validators  []*ValidatorConfig `hcl:"validator,block"`

	// Internal: path to the loaded config file (empty if using defaults)
	configPath string
}

// PathsConfig defines path filtering settings
type PathsConfig struct {
	Include []string `hcl:"include,attr"`
	Exclude []string `hcl:"exclude,attr"`
}

// OutputConfig defines output settings
type OutputConfig struct {
	Format string `hcl:"format,attr"`
	Color  string `hcl:"color,attr"`
}

// PolicyConfig defines CI policy settings
type PolicyConfig struct {
	FailOn string `hcl:"fail_on,attr"`
}

// AnnotationsConfig defines annotation/ignore settings
type AnnotationsConfig struct {
	Enabled         *bool    `hcl:"enabled,attr"`
	RequireReason   bool     `hcl:"require_reason,optional"`
	AllowValidators []string `hcl:"allow_validators,optional"`
	DenyValidators  []string `hcl:"deny_validators,optional"`
}

// ServerConfig defines settings for the HTTP service
type ServerConfig struct {
	Addr         string `hcl:"addr,optional"`
	MaxBodyBytes int64  `hcl:"max_body_bytes,optional"`
}

// ValidatorConfig configures one validator. Attributes other than the ones
// listed here are the validator's own arguments.
type ValidatorConfig struct {
	Name      string   `hcl:"name,label"`
	Enabled   *bool    `hcl:"enabled,optional"`
	Severity  *string  `hcl:"severity,optional"`
	OnFail    *string  `hcl:"on_fail,optional"`
	WordsFile *string  `hcl:"banned_words_file,optional"`
	Remain    hcl.Body `hcl:",remain"`

	args validator.Args
}

// Args returns the evaluated validator arguments
func (vc *ValidatorConfig) Args() validator.Args {
	if vc.args == nil {
		return validator.Args{}
	}
	return vc.args
}

// ConfigPath returns the path to the loaded config file, or empty if using defaults
func (c *Config) ConfigPath() string {
	return c.configPath
}

// GetValidatorConfig returns the configuration for a validator, or nil if not configured
func (c *Config) GetValidatorConfig(name string) *ValidatorConfig {
	for _, vc := range c.Validators {
		if vc.Name == name {
			return vc
		}
	}
	return nil
}

// IsValidatorEnabled returns whether a validator is enabled based on config
func (c *Config) IsValidatorEnabled(name string) bool {
	vc := c.GetValidatorConfig(name)
	if vc == nil || vc.Enabled == nil {
		return true // enabled by default
	}
	return *vc.Enabled
}

// GetValidatorSeverity returns the configured severity for a validator, or the default if not configured
func (c *Config) GetValidatorSeverity(name string, defaultSeverity types.Severity) types.Severity {
	vc := c.GetValidatorConfig(name)
	if vc == nil || vc.Severity == nil {
		return defaultSeverity
	}
	sev, err := types.ParseSeverity(*vc.Severity)
	if err != nil {
		return defaultSeverity
	}
	return sev
}

// FailOn returns the policy threshold
func (c *Config) FailOn() types.Severity {
	if c.Policy == nil {
		return types.SeverityError
	}
	sev, err := types.ParseSeverity(c.Policy.FailOn)
	if err != nil {
		return types.SeverityError
	}
	return sev
}

// IsAnnotationsEnabled returns whether annotations are enabled
func (c *Config) IsAnnotationsEnabled() bool {
	if c.Annotations == nil || c.Annotations.Enabled == nil {
		return true // enabled by default
	}
	return *c.Annotations.Enabled
}

// Load loads configuration from the specified path or searches for it
// Search order: configPath (if provided), .banlist.hcl in cwd, .banlist.hcl in rootDir
func Load(configPath, rootDir string) (*Config, error) {
	var path string

	if configPath != "" {
		// Explicit path provided
		path = configPath
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		// Search for config file
		path = findConfigFile(rootDir)
	}

	if path == "" {
		// No config found, use defaults
		return Default(), nil
	}

	return loadFromFile(path)
}

// findConfigFile searches for .banlist.hcl in standard locations
func findConfigFile(rootDir string) string {
	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdPath := filepath.Join(cwd, FileName)
		if _, err := os.Stat(cwdPath); err == nil {
			return cwdPath
		}
	}

	// Check scan root
	if rootDir != "" {
		rootPath := filepath.Join(rootDir, FileName)
		if _, err := os.Stat(rootPath); err == nil {
			return rootPath
		}
	}

	return ""
}

// loadFromFile loads and parses a configuration file
func loadFromFile(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(src, path)
}

// Parse parses configuration source. filename is used in diagnostics and to
// resolve relative word list paths and the .env file next to it.
func Parse(src []byte, filename string) (*Config, error) {
	dir := filepath.Dir(filename)

	// Variables from .env never override the process environment.
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", formatDiagnostics(diags))
	}

	ctx := evalContext()

	var config Config
	decodeDiags := gohcl.DecodeBody(file.Body, ctx, &config)
	if decodeDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", formatDiagnostics(decodeDiags))
	}

	for _, vc := range config.Validators {
		if err := vc.evaluate(ctx, dir); err != nil {
			return nil, err
		}
	}

	config.configPath = filename

	// Apply defaults for missing optional blocks
	applyDefaults(&config)

	// Validate
	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// formatDiagnostics formats HCL diagnostics into a readable error string
func formatDiagnostics(diags hcl.Diagnostics) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for i, diag := range diags {
		if i > 0 {
			b.WriteString("; ")
		}
		if diag.Subject != nil {
			fmt.Fprintf(&b, "%s:%d: ", diag.Subject.Filename, diag.Subject.Start.Line)
		}
		b.WriteString(diag.Summary)
		if diag.Detail != "" {
			b.WriteString(": ")
			b.WriteString(diag.Detail)
		}
	}
	return b.String()
}

// applyDefaults fills in default values for missing optional config blocks
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Paths == nil {
		cfg.Paths = defaults.Paths
	} else {
		if len(cfg.Paths.Include) == 0 {
			cfg.Paths.Include = defaults.Paths.Include
		}
		if len(cfg.Paths.Exclude) == 0 {
			cfg.Paths.Exclude = defaults.Paths.Exclude
		}
	}

	if cfg.Output == nil {
		cfg.Output = defaults.Output
	} else {
		if cfg.Output.Format == "" {
			cfg.Output.Format = defaults.Output.Format
		}
		if cfg.Output.Color == "" {
			cfg.Output.Color = defaults.Output.Color
		}
	}

	if cfg.Policy == nil {
		cfg.Policy = defaults.Policy
	} else if cfg.Policy.FailOn == "" {
		cfg.Policy.FailOn = defaults.Policy.FailOn
	}

	if cfg.Annotations == nil {
		cfg.Annotations = defaults.Annotations
	}

	if cfg.Server == nil {
		cfg.Server = defaults.Server
	} else {
		if cfg.Server.Addr == "" {
			cfg.Server.Addr = defaults.Server.Addr
		}
		if cfg.Server.MaxBodyBytes == 0 {
			cfg.Server.MaxBodyBytes = defaults.Server.MaxBodyBytes
		}
	}
}
