// Package server exposes the placement pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz     liveness probe with build version
//	POST /v1/place    design (JSON or TOML body) → placement report JSON
//	POST /v1/render   design → DOT or SVG (?format=dot|svg&detailed=true)
//	GET  /v1/stats    pipeline and cache counters, when enabled via WithStats
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boardtree/pkg/buildinfo"
	"github.com/matzehuels/boardtree/pkg/design"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
	"github.com/matzehuels/boardtree/pkg/observability"
	"github.com/matzehuels/boardtree/pkg/pipeline"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	stats  *observability.Counters
}

// New creates a server around runner. A nil logger uses the runner's.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// WithStats serves c at /v1/stats. The caller registers c as hooks.
func (s *Server) WithStats(c *observability.Counters) *Server {
	s.stats = c
	return s
}

// Handler returns the routed handler with middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/place", s.handlePlace)
		r.Post("/render", s.handleRender)
		if s.stats != nil {
			r.Get("/stats", s.handleStats)
		}
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := s.stats.Snapshot()
	writeJSON(w, http.StatusOK, struct {
		observability.Stats
		HitRatio float64 `json:"cache_hit_ratio"`
	}{st, st.HitRatio()})
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	d, err := readDesign(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := pipeline.Options{
		Strict:  boolParam(r, "strict"),
		Refresh: boolParam(r, "refresh"),
		Logger:  s.logger,
	}
	res, err := s.runner.Place(r.Context(), d, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(res.CacheHit))
	writeJSON(w, http.StatusOK, res.Report)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	d, err := readDesign(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	opts := pipeline.Options{
		Format:   format,
		Detailed: boolParam(r, "detailed"),
		Refresh:  boolParam(r, "refresh"),
		Logger:   s.logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, bterrors.Wrap(bterrors.ErrCodeInvalidFormat, err, "invalid render options"))
		return
	}
	res, err := s.runner.Place(r.Context(), d, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// readDesign decodes the request body as TOML when the content type says
// so, JSON otherwise.
func readDesign(w http.ResponseWriter, r *http.Request) (design.Design, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()

	format := design.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = design.FormatTOML
	}
	d, err := design.Read(body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return design.Design{}, bterrors.Wrap(bterrors.ErrCodeInvalidInput, err, "request body too large")
		}
		return design.Design{}, design.Coded(err, "decode design")
	}
	return d, nil
}

func boolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	}
	return "text/vnd.graphviz; charset=utf-8"
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    bterrors.Code `json:"code"`
	Message string        `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := design.Classify(err)
	writeJSON(w, statusFor(code), errorBody{Code: code, Message: bterrors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status. A node named by a layout
// that does not exist is a bad design, not a missing resource.
func statusFor(code bterrors.Code) int {
	switch code {
	case bterrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case bterrors.ErrCodeNodeNotFound:
		return http.StatusUnprocessableEntity
	}
	switch code.Class() {
	case bterrors.ClassInput:
		return http.StatusBadRequest
	case bterrors.ClassStructural:
		return http.StatusUnprocessableEntity
	case bterrors.ClassNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
