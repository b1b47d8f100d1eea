package cli

import (
	"strings"
	"testing"

	"github.com/jokarl/banlist/internal/output"
)

func TestVersionCommand(t *testing.T) {
	savedVersion, savedCommit, savedDate := versionStr, commitStr, dateStr
	savedTool := output.ToolVersion
	t.Cleanup(func() {
		SetVersionInfo(savedVersion, savedCommit, savedDate)
		output.ToolVersion = savedTool
	})

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    []string
		notWant []string
	}{
		{
			name:    "full build info",
			version: "1.2.3",
			commit:  "abc1234",
			date:    "2026-01-02",
			want:    []string{"banlist version 1.2.3", "commit: abc1234", "built:  2026-01-02"},
		},
		{
			name:    "dev build",
			version: "dev",
			commit:  "none",
			date:    "unknown",
			want:    []string{"banlist version dev"},
			notWant: []string{"commit:", "built:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo(tt.version, tt.commit, tt.date)
			if output.ToolVersion != tt.version {
				t.Errorf("output.ToolVersion = %q, want %q", output.ToolVersion, tt.version)
			}

			cmd, stdout, _ := newTestCmd("")
			versionCmd.Run(cmd, nil)

			got := stdout.String()
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q:\n%s", s, got)
				}
			}
		})
	}
}
