package cli

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jokarl/banlist/internal/nearmatch"
)

func setMatchFlags(t *testing.T, maxDist int, asJSON bool) {
	t.Helper()
	matchMaxDist, matchJSON = maxDist, asJSON
	t.Cleanup(func() { matchMaxDist, matchJSON = 1, false })
}

func TestRunMatch(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		maxDist int
		want    string
	}{
		{
			name:    "one deletion",
			args:    []string{"PATTERN", "aaaPATERNaaa"},
			maxDist: 1,
			want:    "[3:9] \"PATERN\" (distance 1)\n",
		},
		{
			name:    "exact search",
			args:    []string{"ab", "ab-ab"},
			maxDist: 0,
			want:    "[0:2] \"ab\" (distance 0)\n[3:5] \"ab\" (distance 0)\n",
		},
		{
			name:    "text from stdin",
			args:    []string{"banana"},
			stdin:   "a banana split\n",
			maxDist: 0,
			want:    "[2:8] \"banana\" (distance 0)\n",
		},
		{
			name:    "huge distance",
			args:    []string{"ab", "ab"},
			maxDist: math.MaxInt,
			want:    "[0:2] \"ab\" (distance 0)\n",
		},
		{
			name:    "no matches",
			args:    []string{"kiwi", "apples"},
			maxDist: 1,
			want:    "no matches for \"kiwi\" within distance 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMatchFlags(t, tt.maxDist, false)
			cmd, stdout, _ := newTestCmd(tt.stdin)

			if err := runMatch(cmd, tt.args); err != nil {
				t.Fatalf("runMatch returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, stdout.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunMatchJSON(t *testing.T) {
	setMatchFlags(t, 1, true)
	cmd, stdout, _ := newTestCmd("")

	if err := runMatch(cmd, []string{"PATTERN", "aaaPATERNaaa"}); err != nil {
		t.Fatalf("runMatch returned error: %v", err)
	}

	var report struct {
		Pattern string             `json:"pattern"`
		MaxDist int                `json:"max_l_dist"`
		Matches nearmatch.MatchSet `json:"matches"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	want := nearmatch.MatchSet{{Start: 3, End: 9, Matched: "PATERN", Distance: 1}}
	if diff := cmp.Diff(want, report.Matches); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
	if report.Pattern != "PATTERN" || report.MaxDist != 1 {
		t.Errorf("report = %+v, want pattern PATTERN and max_l_dist 1", report)
	}
}

func TestRunMatchInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		maxDist int
	}{
		{"negative distance", []string{"abc", "abc"}, -1},
		{"empty pattern", []string{"", "abc"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMatchFlags(t, tt.maxDist, false)
			cmd, _, _ := newTestCmd("")

			err := runMatch(cmd, tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if ExitCode(err) != 2 {
				t.Errorf("ExitCode = %d, want 2", ExitCode(err))
			}
			if !errors.Is(err, nearmatch.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
