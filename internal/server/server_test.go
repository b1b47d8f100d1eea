package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jokarl/banlist/internal/validator"
)

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()

	v, err := validator.NewBanList(validator.BanListOptions{
		BannedWords:  []string{"banana", "athena"},
		MaxDist:      1,
		IgnoreSpaces: true,
		Normalize:    true,
	})
	require.NoError(t, err)

	engine := validator.NewEngine(nil)
	cfg := validator.DefaultConfig(v)
	cfg.OnFail = validator.OnFailFix
	engine.Add(v, cfg)

	reg := prometheus.NewRegistry()
	return NewServer(Options{
		Engine:     engine,
		Registerer: reg,
		Gatherer:   reg,
	}), reg
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "response should carry a generated request ID")
}

func TestRequestIDPropagated(t *testing.T) {
	s, _ := newTestServer(t)
	id := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestValidateConfiguredValidators(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/validate", `{"text": "we ate a bananna"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RequestID        string  `json:"request_id"`
		ValidationPassed bool    `json:"validation_passed"`
		RawOutput        string  `json:"raw_output"`
		ValidatedOutput  *string `json:"validated_output"`
		Summaries        []struct {
			ValidatorName string `json:"validator_name"`
			Status        string `json:"validator_status"`
			Spans         []struct {
				Start  int    `json:"start"`
				End    int    `json:"end"`
				Reason string `json:"reason"`
			} `json:"error_spans"`
		} `json:"validation_summaries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.RequestID)
	assert.True(t, resp.ValidationPassed)
	assert.Equal(t, "we ate a bananna", resp.RawOutput)
	require.NotNil(t, resp.ValidatedOutput)
	assert.Equal(t, "we ate a na", *resp.ValidatedOutput)
	require.Len(t, resp.Summaries, 1)
	assert.Equal(t, "ban_list", resp.Summaries[0].ValidatorName)
	assert.Equal(t, "fail", resp.Summaries[0].Status)
	require.Len(t, resp.Summaries[0].Spans, 1)
	assert.Equal(t, 9, resp.Summaries[0].Spans[0].Start)
	assert.Equal(t, 14, resp.Summaries[0].Spans[0].End)

	metrics := scrape(t, s)
	assert.Contains(t, metrics, `banlist_validations_total{outcome="fail",validator="ban_list"} 1`)
	assert.Contains(t, metrics, `banlist_matches_sum{validator="ban_list"} 1`)
}

func scrape(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestValidateRequestedValidators(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{
		"text": "Hello, coconut trees",
		"validators": [{
			"name": "guardrails/ban_list",
			"on_fail": "filter",
			"args": {"banned_words": ["coconut trees"], "max_l_dist": 0}
		}]
	}`
	rec := do(t, s, http.MethodPost, "/v1/validate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["validation_passed"])
	assert.Equal(t, "", resp["validated_output"])
}

func TestValidatePassing(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/validate", `{"text": "nothing to see"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["validation_passed"])
	assert.Equal(t, "nothing to see", resp["validated_output"])
	assert.Contains(t, scrape(t, s), `banlist_validations_total{outcome="pass",validator="ban_list"} 1`)
}

func TestValidateException(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"text": "athens", "validators": [{"name": "ban_list", "on_fail": "exception", "args": {"banned_words": "athena"}}]}`
	rec := do(t, s, http.MethodPost, "/v1/validate", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Equal(t, "ban_list", resp.Error.Validator)
	require.Len(t, resp.Error.Spans, 1)
	assert.Equal(t, "Found match with banned word 'athena' in 'athen'", resp.Error.Spans[0].Reason)
}

func TestValidateBadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		status   int
		errType  string
		contains string
	}{
		{"invalid json", `{"text":`, http.StatusBadRequest, "invalid_json", ""},
		{"unknown field", `{"text": "a", "extra": 1}`, http.StatusBadRequest, "invalid_json", "extra"},
		{"missing text", `{}`, http.StatusBadRequest, "invalid_request", "text"},
		{"unknown validator", `{"text": "a", "validators": [{"name": "ban_lst"}]}`, http.StatusBadRequest, "invalid_validator", `did you mean "ban_list"?`},
		{"missing words", `{"text": "a", "validators": [{"name": "ban_list"}]}`, http.StatusBadRequest, "invalid_validator", "banned_words"},
		{"reask", `{"text": "a", "validators": [{"name": "ban_list", "on_fail": "reask", "args": {"banned_words": ["x"]}}]}`, http.StatusBadRequest, "invalid_validator", "not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/validate", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.errType, resp.Error.Type)
			assert.Contains(t, resp.Error.Message, tt.contains)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestValidateBodyTooLarge(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewServer(Options{MaxBodyBytes: 16, Registerer: reg, Gatherer: reg})

	rec := do(t, s, http.MethodPost, "/v1/validate", `{"text": "`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestValidateNoValidators(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewServer(Options{Registerer: reg, Gatherer: reg})

	rec := do(t, s, http.MethodPost, "/v1/validate", `{"text": "banana"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatch(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/match", `{"pattern": "PATTERN", "text": "aaaPATERNaaa", "max_l_dist": 1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.MaxDist)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, 3, resp.Matches[0].Start)
	assert.Equal(t, 9, resp.Matches[0].End)
	assert.Equal(t, "PATERN", resp.Matches[0].Matched)
	assert.Equal(t, 1, resp.Matches[0].Distance)
}

func TestMatchNoMatches(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/match", `{"pattern": "kiwi", "text": "banana", "max_l_dist": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matches":[]`)
}

func TestMatchInvalidInput(t *testing.T) {
	s, _ := newTestServer(t)

	for _, body := range []string{
		`{"pattern": "", "text": "banana"}`,
		`{"pattern": "a", "text": "banana", "max_l_dist": -1}`,
	} {
		rec := do(t, s, http.MethodPost, "/v1/match", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "invalid input")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/validate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	do(t, s, http.MethodPost, "/v1/validate", `{"text": "banana"}`)
	body := scrape(t, s)
	assert.Contains(t, body, `banlist_validations_total{outcome="fail",validator="ban_list"} 1`)
	assert.Contains(t, body, `banlist_request_duration_seconds_count{route="/v1/validate",status="200"} 1`)
}

func TestStartShutdown(t *testing.T) {
	s, _ := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Post("http://"+addr+"/v1/match", "application/json",
			bytes.NewBufferString(`{"pattern": "banana", "text": "banana"}`))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
