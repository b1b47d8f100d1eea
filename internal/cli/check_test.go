package cli

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jokarl/banlist/internal/git"
)

type checkFlags struct {
	format string
	output string
	failOn string
	quiet  bool
}

func setCheckFlags(t *testing.T, f checkFlags) {
	t.Helper()
	formatFlag, outputFlag, failOnFlag, quietFlag = f.format, f.output, f.failOn, f.quiet
	colorFlag, sinceFlag = "never", ""
	t.Cleanup(func() {
		formatFlag, outputFlag, failOnFlag, colorFlag, sinceFlag = "", "", "", "", ""
		quietFlag = false
	})
}

// checkReport is the part of the JSON output the tests inspect
type checkReport struct {
	Targets  []string `json:"targets"`
	Findings []struct {
		ValidatorID string `json:"validator_id"`
		Word        string `json:"word"`
		Matched     string `json:"matched"`
		Ignored     bool   `json:"ignored"`
	} `json:"findings"`
	Result string `json:"result"`
}

func TestRunCheckScenarios(t *testing.T) {
	tests := []struct {
		scenario     string
		failOn       string
		wantErr      error
		wantResult   string
		wantFindings int
	}{
		{scenario: "clean", wantResult: "PASS"},
		{scenario: "typo", wantErr: errFailed, wantResult: "FAIL", wantFindings: 1},
		{scenario: "line_ignored", wantResult: "PASS", wantFindings: 1},
		{scenario: "file_ignored", wantResult: "PASS", wantFindings: 2},
		{scenario: "excluded", wantResult: "PASS"},
		{scenario: "warning_only", wantResult: "PASS", wantFindings: 1},
		{scenario: "warning_only", failOn: "WARNING", wantErr: errFailed, wantResult: "FAIL", wantFindings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.scenario+"/"+tt.failOn, func(t *testing.T) {
			setCheckFlags(t, checkFlags{format: "json", failOn: tt.failOn})
			cmd, stdout, _ := newTestCmd("")

			err := runCheck(cmd, []string{scenarioDir(tt.scenario)})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runCheck() error = %v, want %v", err, tt.wantErr)
			}

			var report checkReport
			if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
				t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
			}
			if report.Result != tt.wantResult {
				t.Errorf("result = %s, want %s", report.Result, tt.wantResult)
			}
			if len(report.Findings) != tt.wantFindings {
				t.Errorf("got %d findings, want %d", len(report.Findings), tt.wantFindings)
			}
		})
	}
}

func TestRunCheckTextOutput(t *testing.T) {
	setCheckFlags(t, checkFlags{format: "text"})
	cmd, stdout, _ := newTestCmd("")

	err := runCheck(cmd, []string{scenarioDir("typo")})
	if !errors.Is(err, errFailed) {
		t.Fatalf("error = %v, want errFailed", err)
	}

	got := stdout.String()
	for _, want := range []string{"story.md", "banana", "Result: FAIL"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunCheckQuiet(t *testing.T) {
	setCheckFlags(t, checkFlags{quiet: true})
	cmd, stdout, _ := newTestCmd("")

	if err := runCheck(cmd, []string{scenarioDir("clean")}); err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output for a passing quiet run, got %q", stdout.String())
	}
}

func TestRunCheckOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "report.sarif")
	setCheckFlags(t, checkFlags{format: "sarif", output: outPath})
	cmd, stdout, _ := newTestCmd("")

	if err := runCheck(cmd, []string{scenarioDir("typo")}); !errors.Is(err, errFailed) {
		t.Fatalf("error = %v, want errFailed", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), `"ruleId": "BL001"`) {
		t.Errorf("SARIF output missing rule id:\n%s", data)
	}
}

func TestRunCheckErrors(t *testing.T) {
	t.Run("invalid format", func(t *testing.T) {
		setCheckFlags(t, checkFlags{format: "xml"})
		cmd, _, _ := newTestCmd("")
		err := runCheck(cmd, []string{scenarioDir("clean")})
		if ExitCode(err) != 2 {
			t.Errorf("error = %v, want usage error", err)
		}
	})

	t.Run("invalid fail-on", func(t *testing.T) {
		setCheckFlags(t, checkFlags{failOn: "FATAL"})
		cmd, _, _ := newTestCmd("")
		err := runCheck(cmd, []string{scenarioDir("clean")})
		if ExitCode(err) != 2 {
			t.Errorf("error = %v, want usage error", err)
		}
	})

	t.Run("no validators", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		setCheckFlags(t, checkFlags{})
		cmd, _, _ := newTestCmd("")
		err := runCheck(cmd, []string{dir})
		if err == nil || !strings.Contains(err.Error(), "banlist init") {
			t.Errorf("error = %v, want hint to run banlist init", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		setCheckFlags(t, checkFlags{})
		cmd, _, _ := newTestCmd("")
		err := runCheck(cmd, []string{filepath.Join(scenarioDir("clean"), "missing")})
		if err == nil {
			t.Error("expected error for a missing path")
		}
	})
}

const sinceConfig = `version = 1

validator "ban_list" {
  banned_words = ["banana"]
}
`

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-c", "user.name=banlist", "-c", "user.email=banlist@example.com"}, args...)...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCheckSince(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	writeTestFile(t, dir, ".banlist.hcl", sinceConfig)
	writeTestFile(t, dir, "old.txt", "banana bread\n")
	gitCmd(t, dir, "init", "-q")
	gitCmd(t, dir, "add", ".")
	gitCmd(t, dir, "commit", "-q", "-m", "initial")
	writeTestFile(t, dir, "new.txt", "we ate a bananna\n")

	setCheckFlags(t, checkFlags{format: "json"})
	sinceFlag = "HEAD"
	cmd, stdout, _ := newTestCmd("")

	if err := runCheck(cmd, []string{dir}); !errors.Is(err, errFailed) {
		t.Fatalf("runCheck() error = %v, want errFailed", err)
	}

	var report checkReport
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	// old.txt is unchanged since HEAD and is not scanned
	if diff := cmp.Diff([]string{"new.txt"}, report.Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
	if len(report.Findings) != 1 || report.Findings[0].Matched != "banan" {
		t.Errorf("findings = %+v, want one match of 'banan'", report.Findings)
	}
}

func TestRunCheckSinceOutsideRepository(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	writeTestFile(t, dir, ".banlist.hcl", sinceConfig)
	writeTestFile(t, dir, "notes.txt", "banana\n")

	setCheckFlags(t, checkFlags{format: "json"})
	sinceFlag = "HEAD"
	cmd, stdout, _ := newTestCmd("")

	err := runCheck(cmd, []string{dir})
	var notRepo *git.ErrNotARepository
	if !errors.As(err, &notRepo) {
		t.Fatalf("runCheck() error = %v, want *git.ErrNotARepository", err)
	}
	if ExitCode(err) != 2 {
		t.Errorf("ExitCode = %d, want 2", ExitCode(err))
	}
	if !strings.Contains(err.Error(), "--since requires a git repository") {
		t.Errorf("error = %v, want --since hint", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output, got %q", stdout.String())
	}
}
