// Package serve exposes generation over HTTP, for form-driven callers.
package serve

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/orchestrator"
)

// MaxRequestBytes bounds the size of a generation request body.
const MaxRequestBytes = 1 << 20

// Runner runs one generation area for a raw request.
type Runner interface {
	Run(ctx context.Context, area orchestrator.Area, raw []byte) ([]orchestrator.Report, error)
}

// Server provides the HTTP API for generation
type Server interface {
	Start(ctx context.Context, addr string) error
	Handler() http.Handler
}

// server is the internal implementation of Server
type server struct {
	live   Runner
	dryRun Runner
	logger zerolog.Logger
	router chi.Router
	now    func() time.Time
}

// AreaInfo describes one area.
type AreaInfo struct {
	Name  string          `json:"name"`
	Kinds []artifact.Kind `json:"kinds"`
}

// AreasResponse lists the areas a caller can generate.
type AreasResponse struct {
	Areas []AreaInfo `json:"areas"`
}

// ArtifactResult is one generated file. Content is only set on dry runs.
type ArtifactResult struct {
	Kind    artifact.Kind `json:"kind"`
	Path    string        `json:"path"`
	Content string        `json:"content,omitempty"`
}

// AreaResult is the outcome of one area.
type AreaResult struct {
	Area      string           `json:"area"`
	Artifacts []ArtifactResult `json:"artifacts"`
	Written   []string         `json:"written"`
	Error     string           `json:"error,omitempty"`
}

// GenerateResponse represents a generation response
type GenerateResponse struct {
	DryRun bool         `json:"dry_run"`
	Areas  []AreaResult `json:"areas"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string       `json:"error"`
	Class string       `json:"class,omitempty"`
	Areas []AreaResult `json:"areas,omitempty"`
}

// NewServer creates a server. live emits files; dryRun only generates.
func NewServer(live, dryRun Runner, logger zerolog.Logger) Server {
	s := &server{
		live:   live,
		dryRun: dryRun,
		logger: logger.With().Str("component", "serve").Logger(),
		now:    time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/areas", s.handleAreas)
		r.Post("/generate/{area}", s.handleGenerate)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.sendError(w, http.StatusMethodNotAllowed, &ErrorResponse{Error: "method not allowed"})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.sendError(w, http.StatusNotFound, &ErrorResponse{Error: "not found"})
	})
	s.router = r
	return s
}

// Handler returns the router.
func (s *server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is canceled, then shuts down gracefully.
func (s *server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	s.logger.Info().Str("addr", addr).Msg("serving generation API")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth handles health check requests
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().Format(time.RFC3339),
	})
}

func (s *server) handleAreas(w http.ResponseWriter, r *http.Request) {
	resp := AreasResponse{}
	for _, a := range orchestrator.Areas {
		resp.Areas = append(resp.Areas, AreaInfo{Name: string(a), Kinds: a.Kinds()})
	}
	resp.Areas = append(resp.Areas, AreaInfo{Name: string(orchestrator.AreaAll), Kinds: orchestrator.AreaAll.Kinds()})
	s.sendJSON(w, http.StatusOK, resp)
}

// handleGenerate runs an area for the JSON request in the body
func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	area, err := orchestrator.ParseArea(chi.URLParam(r, "area"))
	if err != nil {
		s.sendError(w, http.StatusBadRequest, &ErrorResponse{Error: err.Error(), Class: orchestrator.ClassInput.String()})
		return
	}

	dryRun := false
	if v := r.URL.Query().Get("dry_run"); v != "" {
		if dryRun, err = strconv.ParseBool(v); err != nil {
			s.sendError(w, http.StatusBadRequest, &ErrorResponse{Error: "dry_run must be a boolean", Class: orchestrator.ClassInput.String()})
			return
		}
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBytes))
	if err != nil {
		s.sendError(w, http.StatusRequestEntityTooLarge, &ErrorResponse{Error: "request body too large", Class: orchestrator.ClassInput.String()})
		return
	}

	runner := s.live
	if dryRun {
		runner = s.dryRun
	}
	reports, err := runner.Run(r.Context(), area, raw)
	results := toResults(reports, dryRun)
	if err != nil {
		class := orchestrator.Classify(err)
		s.logger.Warn().Err(err).Str("area", string(area)).Str("class", class.String()).Msg("generation failed")
		s.sendError(w, statusFor(class), &ErrorResponse{Error: err.Error(), Class: class.String(), Areas: results})
		return
	}

	s.sendJSON(w, http.StatusOK, &GenerateResponse{DryRun: dryRun, Areas: results})
}

func toResults(reports []orchestrator.Report, withContent bool) []AreaResult {
	results := make([]AreaResult, 0, len(reports))
	for _, rep := range reports {
		res := AreaResult{Area: string(rep.Area), Written: rep.Written, Artifacts: []ArtifactResult{}}
		if res.Written == nil {
			res.Written = []string{}
		}
		if rep.Err != nil {
			res.Error = rep.Err.Error()
		}
		for _, a := range rep.Artifacts {
			ar := ArtifactResult{Kind: a.Kind, Path: a.RelativePath}
			if withContent {
				ar.Content = string(a.Content)
			}
			res.Artifacts = append(res.Artifacts, ar)
		}
		results = append(results, res)
	}
	return results
}

func statusFor(c orchestrator.Class) int {
	switch c {
	case orchestrator.ClassInput:
		return http.StatusBadRequest
	case orchestrator.ClassMapping:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// sendError sends an error response
func (s *server) sendError(w http.ResponseWriter, status int, resp *ErrorResponse) {
	s.sendJSON(w, status, resp)
}
