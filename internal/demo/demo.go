// Package demo runs the full tagging demonstration: simulate, build the graph,
// draw it, and report the analysis lines. It is shared by the CLI, the HTTP
// server, and the MCP server.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/config"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/layout"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/metrics"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simulation"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/store"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/visualization"
	"github.com/google/uuid"
)

// StageRender is the stage name recorded for artifact rendering.
const StageRender = "render"

// Options are the run settings that come from configuration rather than from
// the caller's request.
type Options struct {
	OutputDir     string
	ImageName     string
	Format        visualization.Format
	Render        visualization.Options
	Pools         simulation.PoolConfig
	Seed          uint64
	MaxEvents     int64
	MaxGroupPairs int
}

// OptionsFromConfig translates loaded configuration into run options.
func OptionsFromConfig(cfg *config.TagsimConfig) (Options, error) {
	format, err := visualization.ParseFormat(cfg.Output.Format)
	if err != nil {
		return Options{}, err
	}
	return Options{
		OutputDir: cfg.Output.Dir,
		ImageName: cfg.Output.ImageName,
		Format:    format,
		Render: visualization.Options{
			Width:  cfg.Render.Width,
			Height: cfg.Render.Height,
			Layout: layout.Config{
				K:          cfg.Render.LayoutK,
				Iterations: cfg.Render.LayoutIterations,
				Seed:       cfg.Render.LayoutSeed,
			},
		},
		Pools: simulation.PoolConfig{
			ResourceFraction: cfg.Simulation.ResourceFraction,
			TagFraction:      cfg.Simulation.TagFraction,
			MinSize:          cfg.Simulation.MinPoolSize,
		},
		Seed:          cfg.Simulation.Seed,
		MaxEvents:     cfg.Limits.MaxEvents,
		MaxGroupPairs: cfg.Limits.MaxGroupPairs,
	}, nil
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	opts, _ := OptionsFromConfig(config.Default())
	return opts
}

// Request is a single run as asked for by a caller.
type Request struct {
	Name   string
	Params params.Params

	// Seed overrides Options.Seed when non-zero.
	Seed uint64

	// Format overrides Options.Format when set.
	Format visualization.Format

	// ExportDB, when set, is the SQLite file the graph is exported to.
	ExportDB string

	// ExportJSONL, when set, is the directory nodes.jsonl and edges.jsonl are written to.
	ExportJSONL string
}

// Report is the outcome of a successful run. A rendering failure does not
// fail the run; it is reported in RenderError.
type Report struct {
	RunID           string            `json:"run_id"`
	Name            string            `json:"name,omitempty"`
	Params          params.Params     `json:"params"`
	Seed            uint64            `json:"seed"`
	Status          simulation.Status `json:"status"`
	Nodes           int               `json:"nodes"`
	Edges           int               `json:"edges"`
	CommunityEvents int               `json:"community_events"`
	OtherEvents     int               `json:"other_events"`
	Summary         graph.Summary     `json:"summary"`
	ArtifactPath    string            `json:"artifact_path,omitempty"`
	RenderError     string            `json:"render_error,omitempty"`
	ExportDBPath    string            `json:"export_db,omitempty"`
	NodesPath       string            `json:"nodes_jsonl,omitempty"`
	EdgesPath       string            `json:"edges_jsonl,omitempty"`
	Duration        time.Duration     `json:"duration_ns"`

	Graph *graph.Graph `json:"-"`
}

// ArtifactName is the base name of the written artifact, or "".
func (r *Report) ArtifactName() string {
	if r.ArtifactPath == "" {
		return ""
	}
	return filepath.Base(r.ArtifactPath)
}

// Runner executes demo runs. It is safe for concurrent use.
type Runner struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Registry
}

// NewRunner creates a runner. A nil logger discards records and a nil
// registry disables metrics.
func NewRunner(opts Options, logger *slog.Logger, reg *metrics.Registry) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{opts: opts, logger: logger, metrics: reg}
}

// Options returns the runner's options.
func (r *Runner) Options() Options {
	return r.opts
}

// Run executes req and writes progress lines to console, which may be nil.
// Parameter and pool errors are returned as simerr errors. When the graph
// has edges the artifact is rendered and the analysis lines are printed;
// otherwise the no-connections line is printed and any artifact left by an
// earlier run is removed, so the artifact exists only for connected graphs.
func (r *Runner) Run(ctx context.Context, req Request, console *logging.Console) (*Report, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := r.logger.With("run_id", runID)

	seed := req.Seed
	if seed == 0 {
		seed = r.opts.Seed
	}
	format := req.Format
	if format == "" {
		format = r.opts.Format
	}

	sim := simulation.NewRunner(log, console)
	res, err := sim.Run(ctx, simulation.Scenario{
		Name:          req.Name,
		Params:        req.Params,
		Seed:          seed,
		Pools:         r.opts.Pools,
		MaxGroupPairs: r.opts.MaxGroupPairs,
		MaxEvents:     r.opts.MaxEvents,
	})
	if err != nil {
		log.Info("run failed", "error", err)
		r.recordFailure(err)
		return nil, err
	}

	g := res.Graph
	report := &Report{
		RunID:           runID,
		Name:            req.Name,
		Params:          req.Params,
		Seed:            res.Seed,
		Status:          res.Status,
		Nodes:           g.NodeCount(),
		Edges:           g.EdgeCount(),
		CommunityEvents: res.CommunityEvents,
		OtherEvents:     res.OtherEvents,
		Summary:         g.Summary(),
		Graph:           g,
	}

	if res.Status == simulation.StatusConnected {
		console.Println("Preparing graph visualization...")
		renderStart := time.Now()
		path, err := visualization.WriteArtifact(g, r.opts.OutputDir, r.opts.ImageName, format, r.opts.Render)
		if err != nil {
			log.Warn("rendering failed", "error", err)
			report.RenderError = simerr.PublicMessage(err)
			if r.metrics != nil {
				r.metrics.RecordRenderFailure()
			}
		} else {
			report.ArtifactPath = path
		}
		res.StageDurations[StageRender] = time.Since(renderStart)

		console.Println("\n--- Social Graph Analysis ---")
		console.Printf("Total Users (Nodes): %d", g.NodeCount())
		console.Printf("Total Connections (Edges): %d", g.EdgeCount())
		if report.RenderError != "" {
			console.Printf("Warning: %s", report.RenderError)
		}
	} else {
		if err := visualization.RemoveArtifact(r.opts.OutputDir, r.opts.ImageName, format); err != nil {
			log.Warn("removing previous artifact failed", "error", err)
		}
		console.Println("\nNo connections were formed based on the provided parameters. The graph is empty.")
	}

	if err := r.export(ctx, req, report); err != nil {
		log.Error("export failed", "error", err)
		r.recordFailure(err)
		return nil, err
	}

	report.Duration = time.Since(start)
	r.recordSuccess(res)
	log.Info("run finished",
		"status", string(report.Status),
		"nodes", report.Nodes,
		"edges", report.Edges,
		"seed", report.Seed,
		"duration", report.Duration)
	return report, nil
}

func (r *Runner) export(ctx context.Context, req Request, report *Report) error {
	if req.ExportDB != "" {
		exp, err := store.OpenSQLite(ctx, req.ExportDB)
		if err != nil {
			return fmt.Errorf("export db: %w", err)
		}
		info := store.RunInfo{
			RunID:     report.RunID,
			Seed:      report.Seed,
			Status:    string(report.Status),
			Params:    report.Params,
			CreatedAt: time.Now(),
		}
		err = exp.Export(ctx, info, report.Graph)
		if cerr := exp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("export db: %w", err)
		}
		report.ExportDBPath = req.ExportDB
	}

	if req.ExportJSONL != "" {
		nodes, edges, err := store.WriteJSONL(req.ExportJSONL, report.Graph)
		if err != nil {
			return fmt.Errorf("export jsonl: %w", err)
		}
		report.NodesPath, report.EdgesPath = nodes, edges
	}
	return nil
}

func (r *Runner) recordSuccess(res *simulation.Result) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordRun(string(res.Status))
	r.metrics.RecordEvents(res.CommunityEvents, res.OtherEvents)
	r.metrics.SetLastGraph(res.Graph.NodeCount(), res.Graph.EdgeCount())
	for stage, d := range res.StageDurations {
		r.metrics.RecordStage(stage, d)
	}
}

func (r *Runner) recordFailure(err error) {
	if r.metrics == nil {
		return
	}
	status := string(simerr.KindOf(err))
	switch {
	case status != "":
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = "cancelled"
	default:
		status = "error"
	}
	r.metrics.RecordRun(status)
}
