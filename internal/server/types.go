package server

import (
	"encoding/json"

	"github.com/jokarl/banlist/internal/nearmatch"
	"github.com/jokarl/banlist/internal/types"
	"github.com/jokarl/banlist/internal/validator"
)

// ValidatorSpec selects a validator for one request
type ValidatorSpec struct {
	Name   string          `json:"name"`
	OnFail string          `json:"on_fail,omitempty"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// ValidateRequest is the body of POST /v1/validate. Without validators the
// configured ones are used.
type ValidateRequest struct {
	Text       *string         `json:"text"`
	Validators []ValidatorSpec `json:"validators,omitempty"`
}

// ValidateResponse is returned by POST /v1/validate
type ValidateResponse struct {
	RequestID string `json:"request_id"`
	*validator.Outcome
}

// MatchRequest is the body of POST /v1/match
type MatchRequest struct {
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
	MaxDist *int   `json:"max_l_dist,omitempty"`
}

// MatchResponse is returned by POST /v1/match
type MatchResponse struct {
	RequestID string             `json:"request_id"`
	Pattern   string             `json:"pattern"`
	MaxDist   int                `json:"max_l_dist"`
	Matches   nearmatch.MatchSet `json:"matches"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	RequestID string      `json:"request_id"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong
type ErrorDetail struct {
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Validator string            `json:"validator,omitempty"`
	Spans     []types.ErrorSpan `json:"error_spans,omitempty"`
}
