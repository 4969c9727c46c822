package mcp

import (
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simulation"
)

// TagsimRunInput defines the input for the tagsim_run tool. Unset counts
// keep the preset's value.
type TagsimRunInput struct {
	Preset            string `json:"preset,omitempty" jsonschema:"Parameter preset to start from: 'interactive' (default) or 'scripted'"`
	NumCommunityUsers *int   `json:"num_community_users,omitempty" jsonschema:"Number of users in the dense community"`
	NumOtherUsers     *int   `json:"num_other_users,omitempty" jsonschema:"Number of other users"`
	NumResources      *int   `json:"num_resources,omitempty" jsonschema:"Total number of resources"`
	NumTags           *int   `json:"num_tags,omitempty" jsonschema:"Total number of tags"`
	CommunityActivity *int   `json:"community_activity,omitempty" jsonschema:"Tagging events per community user"`
	OtherActivity     *int   `json:"other_activity,omitempty" jsonschema:"Tagging events per other user"`
	Seed              uint64 `json:"seed,omitempty" jsonschema:"Random seed; 0 picks one"`
	Format            string `json:"format,omitempty" jsonschema:"Artifact format: png, dot, json, or html (default from config)"`
}

// TagsimRunOutput defines the output for the tagsim_run tool.
type TagsimRunOutput struct {
	RunID           string            `json:"run_id" jsonschema:"Unique ID of this run"`
	Preset          string            `json:"preset" jsonschema:"Preset the parameters started from"`
	Params          params.Params     `json:"params" jsonschema:"Effective parameters"`
	Seed            uint64            `json:"seed" jsonschema:"Seed used, for reproducing the run"`
	Status          simulation.Status `json:"status" jsonschema:"'connected' or 'no_connections'"`
	Nodes           int               `json:"nodes" jsonschema:"Total users in the graph"`
	Edges           int               `json:"edges" jsonschema:"Total connections in the graph"`
	CommunityEvents int               `json:"community_events" jsonschema:"Tagging events generated for the community"`
	OtherEvents     int               `json:"other_events" jsonschema:"Tagging events generated for other users"`
	ArtifactPath    string            `json:"artifact_path,omitempty" jsonschema:"Path of the rendered graph, if any"`
	RenderError     string            `json:"render_error,omitempty" jsonschema:"Why rendering failed, if it did"`
	Output          string            `json:"output" jsonschema:"Tail of the console output"`
}

// TagsimPresetsInput defines the input for the tagsim_presets tool.
type TagsimPresetsInput struct{}

// PresetInfo describes one named parameter set.
type PresetInfo struct {
	Name        string        `json:"name"`
	Params      params.Params `json:"params"`
	TotalEvents int64         `json:"total_events"`
}

// TagsimPresetsOutput defines the output for the tagsim_presets tool.
type TagsimPresetsOutput struct {
	Presets []PresetInfo `json:"presets" jsonschema:"Available parameter presets"`
	Count   int          `json:"count" jsonschema:"Number of presets"`
}
