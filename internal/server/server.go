// Package server exposes the rendering pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	GET  /version          build information
//	POST /render           render a TOML or YAML document
//	POST /text             lay out a sentence and return its lines
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/multiplex/pkg/buildinfo"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr     = ":8080"
	DefaultMaxBody  = 1 << 20
	DefaultTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// Config holds server configuration.
type Config struct {
	Addr    string
	Runner  *pipeline.Runner
	Logger  *log.Logger
	MaxBody int64
	// Timeout bounds each request, including rendering.
	Timeout time.Duration
}

// Server serves the rendering pipeline.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a server. A nil Runner renders without caching.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBody == 0 {
		cfg.MaxBody = DefaultMaxBody
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, cfg.Logger)
	}

	s := &Server{cfg: cfg}
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Post("/render", s.handleRender)
	r.Post("/text", s.handleText)
	s.router = r
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.cfg.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// handleRender renders the request body in the single format named by the
// format query parameter.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := pipeline.Parse(body, inputFormat(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.cfg.Runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", strconv.Quote(res.DocHash))
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	var req pipeline.TextRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	_, lines, err := pipeline.LayoutText(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": lines})
}

// renderOptions reads pipeline options from query parameters.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{strings.ToLower(f)}
	}

	var err error
	parseFloat := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				err = errors.New(errors.ErrCodeInvalidParameter, "%s: not a number: %q", name, v)
			}
		}
	}
	parseFloat("width", &opts.Width)
	parseFloat("height", &opts.Height)
	parseFloat("scale", &opts.Scale)
	if v := q.Get("label_passes"); v != "" && err == nil {
		if opts.LabelPasses, err = strconv.Atoi(v); err != nil {
			err = errors.New(errors.ErrCodeInvalidParameter, "label_passes: not an integer: %q", v)
		}
	}
	if err != nil {
		return opts, err
	}
	opts.Debug = q.Get("debug") == "true"
	opts.NoCache = q.Get("no_cache") == "true"
	return opts, opts.ValidateForRender()
}

// inputFormat picks the document format from the input query parameter or
// the content type. Empty means detect.
func inputFormat(r *http.Request) string {
	if f := r.URL.Query().Get("input"); f != "" {
		return f
	}
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "toml"):
		return "toml"
	case strings.Contains(ct, "yaml"):
		return "yaml"
	}
	return ""
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeInvalidParameter, errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDocument:
		status = http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.cfg.Logger.Error("request failed",
			"request_id", RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg, Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
