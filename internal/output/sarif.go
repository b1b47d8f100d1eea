package output

import (
	"io"
	"sort"

	"github.com/jokarl/banlist/internal/types"
)

// SARIFRenderer renders output in SARIF 2.1.0 JSON
type SARIFRenderer struct{}

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri"`
	Version        string      `json:"version"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// Render writes the check result in SARIF format
func (r *SARIFRenderer) Render(w io.Writer, result *types.CheckResult) error {
	ruleMap := make(map[string]*types.Finding)
	for _, f := range result.Findings {
		if _, exists := ruleMap[f.ValidatorID]; !exists {
			ruleMap[f.ValidatorID] = f
		}
	}

	ids := make([]string, 0, len(ruleMap))
	for id := range ruleMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rules := make([]sarifRule, 0, len(ids))
	for _, id := range ids {
		f := ruleMap[id]
		desc := f.Detail
		if desc == "" {
			desc = f.ValidatorName
		}
		rules = append(rules, sarifRule{
			ID:               id,
			Name:             f.ValidatorName,
			ShortDescription: sarifMessage{Text: desc},
			DefaultConfig:    sarifDefaultConfig{Level: mapToSARIFLevel(f.Severity)},
		})
	}

	results := make([]sarifResult, 0, len(result.Findings))
	for _, f := range result.Findings {
		if f.Ignored {
			continue
		}

		res := sarifResult{
			RuleID:  f.ValidatorID,
			Level:   mapToSARIFLevel(f.Severity),
			Message: sarifMessage{Text: f.Message},
		}
		if f.Word != "" {
			res.Properties = map[string]any{
				"word":     f.Word,
				"matched":  f.Matched,
				"distance": f.Distance,
			}
		}
		if f.Location != nil {
			res.Locations = []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: f.Location.Filename},
					Region: &sarifRegion{
						StartLine:   f.Location.Line,
						StartColumn: f.Location.Column,
						EndLine:     f.Location.EndLine,
						EndColumn:   f.Location.EndColumn,
					},
				},
			}}
		}

		results = append(results, res)
	}

	return writeJSON(w, sarifLog{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           toolName,
				InformationURI: toolURI,
				Version:        ToolVersion,
				Rules:          rules,
			}},
			Results: results,
		}},
	})
}

// mapToSARIFLevel maps a banlist severity to a SARIF level
func mapToSARIFLevel(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	case types.SeverityNotice:
		return "note"
	default:
		return "none"
	}
}
