package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"validation failed", errFailed, 1},
		{"wrapped validation failure", fmt.Errorf("check: %w", errFailed), 1},
		{"usage error", usageErrorf("bad flag"), 2},
		{"other error", errors.New("boom"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestUsageErrorUnwraps(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := usageErrorf("wrapped: %w", sentinel)

	if !errors.Is(err, sentinel) {
		t.Error("expected usage error to unwrap to the sentinel")
	}
	var uerr *usageError
	if !errors.As(err, &uerr) {
		t.Error("expected a *usageError")
	}
	if err.Error() != "wrapped: sentinel" {
		t.Errorf("Error() = %q, want %q", err.Error(), "wrapped: sentinel")
	}
}

func TestWithUsage(t *testing.T) {
	cmd, _, _ := newTestCmd("")
	validate := withUsage(func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return errors.New("no args allowed")
		}
		return nil
	})

	if err := validate(cmd, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	var uerr *usageError
	if err := validate(cmd, []string{"x"}); !errors.As(err, &uerr) {
		t.Errorf("error = %v, want usage error", err)
	}
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"single arg", []string{"we ate a banana"}, "", "we ate a banana"},
		{"args are joined", []string{"we", "ate"}, "", "we ate"},
		{"stdin trailing newline trimmed", nil, "from stdin\n", "from stdin"},
		{"stdin inner newlines kept", nil, "line one\nline two\n", "line one\nline two"},
		{"args win over stdin", []string{"arg"}, "stdin", "arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := newTestCmd(tt.stdin)
			got, err := readInput(cmd, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("readInput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShouldUseColor(t *testing.T) {
	var buf bytes.Buffer

	if shouldUseColor(&buf, "never") {
		t.Error("never: expected no color")
	}
	if shouldUseColor(&buf, "auto") {
		t.Error("auto: expected no color for a non-terminal writer")
	}
	if !shouldUseColor(&buf, "always") {
		t.Error("always: expected color")
	}
}

func TestLogLevel(t *testing.T) {
	saved, savedLogger := logLevelFlag, logger
	t.Cleanup(func() {
		logLevelFlag = saved
		logger = savedLogger
	})

	t.Run("invalid level is a usage error", func(t *testing.T) {
		logLevelFlag = "loud"
		cmd, _, _ := newTestCmd("")
		err := rootCmd.PersistentPreRunE(cmd, nil)
		if ExitCode(err) != 2 {
			t.Errorf("error = %v, want usage error", err)
		}
	})

	t.Run("debug level", func(t *testing.T) {
		logLevelFlag = "debug"
		cmd, _, stderr := newTestCmd("")
		if err := rootCmd.PersistentPreRunE(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !logger.IsDebug() {
			t.Error("expected debug logging to be enabled")
		}
		logger.Debug("hello")
		if !bytes.Contains(stderr.Bytes(), []byte("banlist: hello")) {
			t.Errorf("stderr = %q, want named debug line", stderr.String())
		}
	})

	t.Run("environment fallback", func(t *testing.T) {
		logLevelFlag = ""
		t.Setenv(logEnv, "error")
		cmd, _, _ := newTestCmd("")
		if err := rootCmd.PersistentPreRunE(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger.GetLevel() != hclog.Error {
			t.Errorf("level = %v, want %v", logger.GetLevel(), hclog.Error)
		}
	})
}
