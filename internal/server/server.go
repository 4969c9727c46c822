// Package server is the HTTP front end for tagsim: a form page, a run
// endpoint that drives the scripted console flow, and artifact downloads.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/config"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/metrics"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/ratelimit"
)

//go:embed templates/*
var templates embed.FS

var indexTmpl = template.Must(template.ParseFS(templates, "templates/index.html.tmpl"))

// Options configure the HTTP server.
type Options struct {
	Addr             string
	AllowedOrigins   []string
	RunRatePerMinute int
}

// OptionsFromConfig reads server options from loaded configuration.
func OptionsFromConfig(cfg config.ServerConfig) Options {
	return Options{
		Addr:             cfg.Addr,
		AllowedOrigins:   cfg.AllowedOrigins,
		RunRatePerMinute: cfg.RunRatePerMinute,
	}
}

// Server serves the demo form and runs simulations on request.
type Server struct {
	runner  *demo.Runner
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Registry
	limiter *ratelimit.Limiter

	// runMu serializes runs: every run replaces the same artifact file.
	runMu sync.Mutex

	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex
	addr       string
}

// New creates a server. A nil logger discards records and a nil registry
// uses the default registry.
func New(runner *demo.Runner, opts Options, logger *slog.Logger, reg *metrics.Registry) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	rate := opts.RunRatePerMinute
	if rate <= 0 {
		rate = 30
	}
	return &Server{
		runner:  runner,
		opts:    opts,
		logger:  logger,
		metrics: reg,
		limiter: ratelimit.PerMinute(rate),
	}
}

// Addr returns the address the server is listening on.
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger, s.metrics))

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Post("/run_demo", s.handleRun)
	r.Get("/download/{filename}", s.handleDownload)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// ListenAndServe listens on the configured address and blocks until the
// context is cancelled. Returns nil on clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.addr = ln.Addr().String()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	err = s.httpServer.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, indexData()); err != nil {
		s.logger.Error("index template", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
