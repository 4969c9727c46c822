package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/ratelimit"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/visualization"
)

// Resource URIs.
const (
	presetsURI = "tagsim://presets"
	lastRunURI = "tagsim://runs/last"
)

// registerTools registers all tagsim MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolRun,
		Description: "Simulate tagging activity for a dense community and other users, build the shared-tag co-occurrence graph, and render it",
	}, s.handleTagsimRun)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolPresets,
		Description: "List the named parameter presets for tagsim_run",
	}, s.handleTagsimPresets)
}

// registerResources registers MCP resources for reading presets and the last run.
func (s *Server) registerResources() {
	s.server.AddResource(&sdk.Resource{
		URI:         presetsURI,
		Name:        "tagsim-presets",
		Description: "Named parameter presets and their event totals.",
		MIMEType:    "text/markdown",
	}, s.handlePresetsResource)

	s.server.AddResource(&sdk.Resource{
		URI:         lastRunURI,
		Name:        "tagsim-last-run",
		Description: "Report of the most recent tagsim_run call in this session.",
		MIMEType:    "application/json",
	}, s.handleLastRunResource)
}

// handleTagsimRun runs one simulation and returns its report.
func (s *Server) handleTagsimRun(ctx context.Context, req *sdk.CallToolRequest, args TagsimRunInput) (_ *sdk.CallToolResult, _ TagsimRunOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolRun, start, retErr, sanitizeToolParams(runArgsMap(args)))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolRun); err != nil {
		return nil, TagsimRunOutput{}, err
	}

	preset := args.Preset
	if preset == "" {
		preset = params.PresetInteractive
	}
	p, err := params.Preset(preset)
	if err != nil {
		return nil, TagsimRunOutput{}, publicError(err)
	}
	applyOverrides(&p, args)

	var format visualization.Format
	if args.Format != "" {
		format, err = visualization.ParseFormat(args.Format)
		if err != nil {
			return nil, TagsimRunOutput{}, publicError(err)
		}
	}

	console := logging.NewConsole(nil)
	report, err := s.runner.Run(ctx, demo.Request{
		Name:   strings.ToLower(preset),
		Params: p,
		Seed:   args.Seed,
		Format: format,
	}, console)
	if err != nil {
		s.logger.Info("tagsim_run failed", "error", err)
		return nil, TagsimRunOutput{}, publicError(err)
	}
	s.setLastRun(report)

	return nil, TagsimRunOutput{
		RunID:           report.RunID,
		Preset:          report.Name,
		Params:          report.Params,
		Seed:            report.Seed,
		Status:          report.Status,
		Nodes:           report.Nodes,
		Edges:           report.Edges,
		CommunityEvents: report.CommunityEvents,
		OtherEvents:     report.OtherEvents,
		ArtifactPath:    report.ArtifactPath,
		RenderError:     report.RenderError,
		Output:          console.Tail(constants.OutputTailChars),
	}, nil
}

// handleTagsimPresets lists the presets in name order.
func (s *Server) handleTagsimPresets(ctx context.Context, req *sdk.CallToolRequest, args TagsimPresetsInput) (_ *sdk.CallToolResult, _ TagsimPresetsOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ratelimit.ToolPresets, start, retErr, nil)
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolPresets); err != nil {
		return nil, TagsimPresetsOutput{}, err
	}

	presets := presetInfos()
	return nil, TagsimPresetsOutput{Presets: presets, Count: len(presets)}, nil
}

func (s *Server) handlePresetsResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	var sb strings.Builder
	sb.WriteString("# tagsim presets\n\n")
	sb.WriteString("| preset | community users | other users | resources | tags | community activity | other activity | events |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, info := range presetInfos() {
		p := info.Params
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d | %d | %d | %d |\n",
			info.Name, p.NumCommunityUsers, p.NumOtherUsers, p.NumResources, p.NumTags,
			p.CommunityActivity, p.OtherActivity, info.TotalEvents)
	}

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{URI: presetsURI, MIMEType: "text/markdown", Text: sb.String()},
		},
	}, nil
}

func (s *Server) handleLastRunResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	text := "{}"
	if r := s.getLastRun(); r != nil {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode last run: %w", err)
		}
		text = string(data)
	}
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{URI: lastRunURI, MIMEType: "application/json", Text: text},
		},
	}, nil
}

func presetInfos() []PresetInfo {
	names := params.PresetNames()
	out := make([]PresetInfo, 0, len(names))
	for _, name := range names {
		p, _ := params.Preset(name)
		out = append(out, PresetInfo{Name: name, Params: p, TotalEvents: p.TotalEvents()})
	}
	return out
}

func applyOverrides(p *params.Params, args TagsimRunInput) {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.NumCommunityUsers, args.NumCommunityUsers)
	set(&p.NumOtherUsers, args.NumOtherUsers)
	set(&p.NumResources, args.NumResources)
	set(&p.NumTags, args.NumTags)
	set(&p.CommunityActivity, args.CommunityActivity)
	set(&p.OtherActivity, args.OtherActivity)
}

func runArgsMap(args TagsimRunInput) map[string]interface{} {
	m := map[string]interface{}{}
	if args.Preset != "" {
		m["preset"] = args.Preset
	}
	if args.Format != "" {
		m["format"] = args.Format
	}
	if args.Seed != 0 {
		m["seed"] = args.Seed
	}
	for name, v := range map[string]*int{
		"num_community_users": args.NumCommunityUsers,
		"num_other_users":     args.NumOtherUsers,
		"num_resources":       args.NumResources,
		"num_tags":            args.NumTags,
		"community_activity":  args.CommunityActivity,
		"other_activity":      args.OtherActivity,
	} {
		if v != nil {
			m[name] = *v
		}
	}
	return m
}

// publicError strips internal causes from simulation errors before they
// reach the client.
func publicError(err error) error {
	if simerr.KindOf(err) != "" {
		return errors.New(simerr.PublicMessage(err))
	}
	return err
}
