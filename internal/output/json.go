package output

import (
	"encoding/json"
	"io"

	"github.com/jokarl/banlist/internal/types"
)

// JSONRenderer renders output in JSON format
type JSONRenderer struct{}

// jsonOutput is the structure for JSON output
type jsonOutput struct {
	Version  string           `json:"version"`
	Targets  []string         `json:"targets"`
	Findings []*types.Finding `json:"findings"`
	Summary  types.Summary    `json:"summary"`
	Result   string           `json:"result"`
	FailOn   string           `json:"fail_on"`
}

// Render writes the check result in JSON format
func (r *JSONRenderer) Render(w io.Writer, result *types.CheckResult) error {
	targets := result.Targets
	if targets == nil {
		targets = []string{}
	}
	findings := result.Findings
	if findings == nil {
		findings = []*types.Finding{}
	}

	return writeJSON(w, jsonOutput{
		Version:  "1.0",
		Targets:  targets,
		Findings: findings,
		Summary:  result.Summary,
		Result:   result.Result,
		FailOn:   result.FailOn.String(),
	})
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
