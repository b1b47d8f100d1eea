package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jokarl/banlist/internal/config"
	"github.com/jokarl/banlist/internal/output"
)

var (
	versionStr string
	commitStr  string
	dateStr    string
)

// Global flags
var (
	configFlag   string
	logLevelFlag string
)

// logEnv names the environment variable read when --log-level is not set
const logEnv = "BANLIST_LOG"

// logger is configured before any subcommand runs
var logger hclog.Logger = hclog.NewNullLogger()

// errFailed signals that validation found problems; the message is already
// part of the command output
var errFailed = errors.New("validation failed")

// usageError marks errors caused by invalid invocation
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// withUsage wraps a positional args validator so its errors are usage errors
func withUsage(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
	output.ToolVersion = version
}

var rootCmd = &cobra.Command{
	Use:   "banlist",
	Short: "Fuzzy banned word detector",
	Long: `banlist finds banned words in text, including misspelled, spaced out and
differently cased variants, using approximate substring matching bounded by a
Levenshtein distance.

It can scan files, validate a single value with an on-fail policy, or run as
an HTTP service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevelFlag
		if level == "" {
			level = os.Getenv(logEnv)
		}
		if level == "" {
			level = "warn"
		}
		lvl := hclog.LevelFromString(level)
		if lvl == hclog.NoLevel {
			return usageErrorf("invalid log level %q (must be one of trace, debug, info, warn, error, off)", level)
		}
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "banlist",
			Level:  lvl,
			Output: cmd.ErrOrStderr(),
			Color:  hclog.AutoColor,
		})
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code: 0 on
// success, 1 when validation failed and 2 for every other error.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailed):
		return 1
	default:
		return 2
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (default: "+config.FileName+" in the current or scanned directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: trace, debug, info, warn, error, off (env "+logEnv+")")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})
}

// loadConfig loads the configuration for a run rooted at dir
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(configFlag, dir)
	if err != nil {
		return nil, err
	}
	if path := cfg.ConfigPath(); path != "" {
		logger.Debug("loaded config", "path", path)
	} else {
		logger.Debug("no config file found, using defaults")
	}
	return cfg, nil
}

// shouldUseColor resolves a color mode against the destination writer
func shouldUseColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		color.NoColor = false
		return true
	case "never":
		return false
	default: // auto
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInput returns the joined args, or stdin when there are none
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// openOutput returns the writer for --output, or the command's stdout
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
