// Package mcp provides an MCP (Model Context Protocol) server for tagsim.
package mcp

import (
	"context"
	"log/slog"
	"os"
	"sync"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/ratelimit"
)

// Server wraps the MCP SDK server and exposes tagsim runs as tools.
type Server struct {
	server       *sdk.Server
	runner       *demo.Runner
	logger       *slog.Logger
	toolLimiters ratelimit.ToolLimiters
	auditLogger  *AuditLogger

	mu      sync.RWMutex
	lastRun *demo.Report
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "tagsim")
	Version string // Server version
	Runner  *demo.Runner
	Logger  *slog.Logger

	// AuditDir receives audit.jsonl. Empty disables the audit log.
	AuditDir string
}

// NewServer creates a new MCP server with tagsim tools.
func NewServer(cfg *Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = demo.NewRunner(demo.DefaultOptions(), logger, nil)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			logger.Debug("mcp client initialized")
		},
	})

	s := &Server{
		server:       mcpServer,
		runner:       runner,
		logger:       logger,
		toolLimiters: ratelimit.NewToolLimiters(),
	}
	if cfg.AuditDir != "" {
		s.auditLogger = NewAuditLogger(cfg.AuditDir)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})
	s.Close()
	return err
}

// Close releases the audit log.
func (s *Server) Close() error {
	return s.auditLogger.Close()
}

func (s *Server) setLastRun(r *demo.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = r
}

func (s *Server) getLastRun() *demo.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}
