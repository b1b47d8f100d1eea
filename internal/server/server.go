// Package server exposes validation and matching over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jokarl/banlist/internal/nearmatch"
	"github.com/jokarl/banlist/internal/validator"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBodyBytes limits request bodies when Options.MaxBodyBytes is 0
const DefaultMaxBodyBytes = 1 << 20

// Options configures a Server
type Options struct {
	// Engine supplies the validators used when a request names none
	Engine *validator.Engine

	// Registry resolves validators named in requests; nil means
	// validator.DefaultRegistry
	Registry *validator.Registry

	// Registerer and Gatherer back the metrics; nil means a fresh
	// prometheus.Registry
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger       hclog.Logger
	MaxBodyBytes int64
}

// Server is the banlist HTTP service
type Server struct {
	engine   *validator.Engine
	registry *validator.Registry
	metrics  *Metrics
	gatherer prometheus.Gatherer
	logger   hclog.Logger
	maxBody  int64
	mux      *http.ServeMux
}

type ctxKey struct{}

// NewServer creates a Server and registers its routes
func NewServer(opts Options) *Server {
	if opts.Registry == nil {
		opts.Registry = validator.DefaultRegistry
	}
	if opts.Engine == nil {
		opts.Engine = validator.NewEngine(nil)
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Registerer == nil || opts.Gatherer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer, opts.Gatherer = reg, reg
	}

	s := &Server{
		engine:   opts.Engine,
		registry: opts.Registry,
		metrics:  NewMetrics(opts.Registerer),
		gatherer: opts.Gatherer,
		logger:   opts.Logger,
		maxBody:  opts.MaxBodyBytes,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.Handle("POST /v1/validate", s.instrument("/v1/validate", s.handleValidate))
	s.mux.Handle("POST /v1/match", s.instrument("/v1/match", s.handleMatch))
	s.mux.Handle("GET /health", s.instrument("/health", s.handleHealth))
	s.mux.Handle("GET /metrics", metricsHandler(s.gatherer))
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument assigns a request ID, records latency and logs the request
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.RequestsInFlight.Inc()
		defer s.metrics.RequestsInFlight.Dec()

		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

		elapsed := time.Since(start)
		s.metrics.RequestDuration.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(elapsed.Seconds())
		s.logger.Debug("request", "request_id", id, "method", r.Method, "route", route, "status", rec.status, "duration", elapsed)
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	id := requestID(r.Context())

	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Text == nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", `"text" is required`)
		return
	}

	guard, err := s.guardFor(req.Validators)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_validator", err.Error())
		return
	}
	if len(guard.Steps()) == 0 {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "no validators configured or requested")
		return
	}

	outcome, err := guard.Parse(r.Context(), *req.Text)
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		s.metrics.ValidationsTotal.WithLabelValues(verr.Validator, "fail").Inc()
		s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			RequestID: id,
			Error: ErrorDetail{
				Type:      "validation_error",
				Message:   verr.Error(),
				Validator: verr.Validator,
				Spans:     verr.Spans,
			},
		})
		return
	case err != nil:
		s.logger.Error("validation failed", "request_id", id, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	for _, sum := range outcome.Summaries {
		s.metrics.ValidationsTotal.WithLabelValues(sum.ValidatorName, sum.Status).Inc()
		s.metrics.MatchCount.WithLabelValues(sum.ValidatorName).Observe(float64(len(sum.Hits)))
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{RequestID: id, Outcome: outcome})
}

// guardFor builds a guard for the requested validators, or returns the
// engine's guard when none are requested
func (s *Server) guardFor(specs []ValidatorSpec) (*validator.Guard, error) {
	if len(specs) == 0 {
		return s.engine.Guard(), nil
	}

	steps := make([]validator.Step, 0, len(specs))
	for i, spec := range specs {
		args, err := validator.ArgsFromJSON(spec.Args)
		if err != nil {
			return nil, fmt.Errorf("validators[%d]: %w", i, err)
		}
		v, err := s.registry.New(spec.Name, args)
		if err != nil {
			return nil, fmt.Errorf("validators[%d]: %w", i, err)
		}
		onFail, err := validator.ParseOnFail(spec.OnFail)
		if err != nil {
			return nil, fmt.Errorf("validators[%d]: %w", i, err)
		}
		steps = append(steps, validator.Step{Validator: v, OnFail: onFail})
	}
	return validator.NewGuard(steps...).WithLogger(s.logger.Named("guard")), nil
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	maxDist := 1
	if req.MaxDist != nil {
		maxDist = *req.MaxDist
	}

	matches, err := nearmatch.FindNearMatches(req.Pattern, req.Text, maxDist)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if matches == nil {
		matches = nearmatch.MatchSet{}
	}
	s.metrics.MatchCount.WithLabelValues("match").Observe(float64(len(matches)))

	s.writeJSON(w, http.StatusOK, MatchResponse{
		RequestID: requestID(r.Context()),
		Pattern:   req.Pattern,
		MaxDist:   maxDist,
		Matches:   matches,
	})
}

// decode reads a JSON body into v, writing an error response on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "request_too_large",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.writeError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("writing response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	s.writeJSON(w, status, ErrorResponse{
		RequestID: requestID(r.Context()),
		Error:     ErrorDetail{Type: errType, Message: message},
	})
}
