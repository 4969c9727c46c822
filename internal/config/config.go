// Package config provides unified configuration loading for tagsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"gopkg.in/yaml.v3"
)

// TagsimConfig contains all tagsim configuration settings.
type TagsimConfig struct {
	// Simulation controls the community pools and the random seed.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Limits bounds the work a single run may do.
	Limits LimitsConfig `json:"limits" yaml:"limits"`

	// Output controls where and how the graph artifact is written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Render contains drawing and layout settings.
	Render RenderConfig `json:"render" yaml:"render"`

	// Server configures the HTTP front end.
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures the activity simulator.
type SimulationConfig struct {
	// ResourceFraction is the share of the resource list in the community pool.
	ResourceFraction float64 `json:"resource_fraction" yaml:"resource_fraction"`

	// TagFraction is the share of the tag list in the community pool.
	TagFraction float64 `json:"tag_fraction" yaml:"tag_fraction"`

	// MinPoolSize is the smallest community pool taken from a non-empty list.
	// 0 keeps the strict rounded-down prefix.
	MinPoolSize int `json:"min_pool_size" yaml:"min_pool_size"`

	// Seed fixes the random source. 0 picks a new seed for every run.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// LimitsConfig bounds run cost.
type LimitsConfig struct {
	// MaxEvents caps the total tagging events of one run.
	MaxEvents int64 `json:"max_events" yaml:"max_events"`

	// MaxGroupPairs caps the pair increments for one co-occurrence key.
	MaxGroupPairs int `json:"max_group_pairs" yaml:"max_group_pairs"`
}

// OutputConfig configures the artifact location and format.
type OutputConfig struct {
	// Dir is the directory the artifact is written to.
	Dir string `json:"dir" yaml:"dir"`

	// ImageName is the artifact file name inside Dir.
	ImageName string `json:"image_name" yaml:"image_name"`

	// Format is one of png, dot, json, html.
	Format string `json:"format" yaml:"format"`
}

// RenderConfig configures the PNG renderer and the spring layout.
type RenderConfig struct {
	Width            int     `json:"width" yaml:"width"`
	Height           int     `json:"height" yaml:"height"`
	LayoutIterations int     `json:"layout_iterations" yaml:"layout_iterations"`
	LayoutK          float64 `json:"layout_k" yaml:"layout_k"`
	LayoutSeed       uint64  `json:"layout_seed" yaml:"layout_seed"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`

	// RunRatePerMinute limits POST /run_demo per client.
	RunRatePerMinute int `json:"run_rate_per_minute" yaml:"run_rate_per_minute"`
}

// LoggingConfig configures tagsim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// Valid output formats.
var validFormats = map[string]bool{"png": true, "dot": true, "json": true, "html": true}

// Default returns a TagsimConfig with sensible defaults.
func Default() *TagsimConfig {
	return &TagsimConfig{
		Simulation: SimulationConfig{
			ResourceFraction: constants.CommunityResourceFraction,
			TagFraction:      constants.CommunityTagFraction,
			MinPoolSize:      constants.DefaultMinPoolSize,
		},
		Limits: LimitsConfig{
			MaxEvents:     constants.DefaultMaxEvents,
			MaxGroupPairs: constants.DefaultMaxGroupPairs,
		},
		Output: OutputConfig{
			Dir:       constants.DefaultOutputDir,
			ImageName: constants.DefaultImageName,
			Format:    "png",
		},
		Render: RenderConfig{
			Width:            constants.DefaultCanvasWidth,
			Height:           constants.DefaultCanvasHeight,
			LayoutIterations: constants.DefaultLayoutIterations,
			LayoutK:          constants.DefaultLayoutK,
			LayoutSeed:       constants.DefaultLayoutSeed,
		},
		Server: ServerConfig{
			Addr:             constants.DefaultServerAddr,
			RunRatePerMinute: constants.DefaultRunRatePerMinute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.tagsim/config.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".tagsim", "config.yaml")
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.tagsim/config.yaml -> environment variables
func Load() (*TagsimConfig, error) {
	config := Default()

	if configPath := DefaultPath(); configPath != "" {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadPath loads path with environment overrides applied. An empty path
// behaves like Load.
func LoadPath(path string) (*TagsimConfig, error) {
	if path == "" {
		return Load()
	}
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*TagsimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Output.Dir = expandEnvVars(config.Output.Dir)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *TagsimConfig) Validate() error {
	if c.Simulation.ResourceFraction <= 0 || c.Simulation.ResourceFraction > 1 {
		return fmt.Errorf("resource_fraction must be in (0, 1], got %g", c.Simulation.ResourceFraction)
	}
	if c.Simulation.TagFraction <= 0 || c.Simulation.TagFraction > 1 {
		return fmt.Errorf("tag_fraction must be in (0, 1], got %g", c.Simulation.TagFraction)
	}
	if c.Simulation.MinPoolSize < 0 {
		return fmt.Errorf("min_pool_size must be non-negative, got %d", c.Simulation.MinPoolSize)
	}

	if c.Limits.MaxEvents <= 0 {
		return fmt.Errorf("max_events must be positive, got %d", c.Limits.MaxEvents)
	}
	if c.Limits.MaxGroupPairs < 0 {
		return fmt.Errorf("max_group_pairs must be non-negative, got %d", c.Limits.MaxGroupPairs)
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	if c.Output.ImageName == "" || strings.ContainsAny(c.Output.ImageName, `/\`) {
		return fmt.Errorf("invalid image_name %q: must be a bare file name", c.Output.ImageName)
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid format: %s (valid: png, dot, json, html)", c.Output.Format)
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.LayoutIterations < 0 {
		return fmt.Errorf("layout_iterations must be non-negative, got %d", c.Render.LayoutIterations)
	}
	if c.Render.LayoutK <= 0 {
		return fmt.Errorf("layout_k must be positive, got %g", c.Render.LayoutK)
	}

	if c.Server.RunRatePerMinute <= 0 {
		return fmt.Errorf("run_rate_per_minute must be positive, got %d", c.Server.RunRatePerMinute)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unparseable numeric values are ignored.
func applyEnvOverrides(config *TagsimConfig) {
	if v := os.Getenv("TAGSIM_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}
	if v := os.Getenv("TAGSIM_MIN_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.MinPoolSize = n
		}
	}

	if v := os.Getenv("TAGSIM_MAX_EVENTS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Limits.MaxEvents = n
		}
	}
	if v := os.Getenv("TAGSIM_MAX_GROUP_PAIRS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Limits.MaxGroupPairs = n
		}
	}

	if v := os.Getenv("TAGSIM_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}
	if v := os.Getenv("TAGSIM_OUTPUT_FORMAT"); v != "" {
		config.Output.Format = strings.ToLower(v)
	}

	if v := os.Getenv("TAGSIM_ADDR"); v != "" {
		config.Server.Addr = v
	}
	if v := os.Getenv("TAGSIM_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.Server.AllowedOrigins = origins
	}

	if v := os.Getenv("TAGSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
