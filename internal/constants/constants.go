// Package constants provides named constants used throughout the tagsim codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Community pool fractions. The dense community samples only from a prefix of
// the resource and tag lists; the prefix length is int(len * fraction).
const (
	// CommunityResourceFraction is the share of resources in the community pool.
	CommunityResourceFraction = 0.3

	// CommunityTagFraction is the share of tags in the community pool.
	CommunityTagFraction = 0.5

	// DefaultMinPoolSize keeps a non-empty list from producing an empty pool.
	// Set to 0 to get the strict rounded-down prefix.
	DefaultMinPoolSize = 1
)

// Identifier prefixes used by the population generator.
const (
	CommunityUserPrefix = "CommUser_"
	OtherUserPrefix     = "OtherUser_"
	ResourcePrefix      = "resource_"
	TagPrefix           = "#tag_"
)

// Output artifact defaults.
const (
	// DefaultOutputDir is where the rendered artifact is written.
	DefaultOutputDir = "uploads"

	// DefaultImageName is the fixed, well-known artifact file name.
	DefaultImageName = "social_graph.png"

	// OutputTailChars is how much captured console text web and MCP callers return.
	OutputTailChars = 1000
)

// Bounds on a single run. Simulation cost is linear in events; graph building
// is quadratic in the largest co-occurrence group.
const (
	// DefaultMaxEvents caps community_users*community_activity + other_users*other_activity.
	DefaultMaxEvents = 2_000_000

	// DefaultMaxGroupPairs caps the pair increments spent on a single key.
	DefaultMaxGroupPairs = 5_000_000
)

// Layout and drawing defaults, mirroring a 16x14 inch figure at 100 dpi.
const (
	DefaultCanvasWidth  = 1600
	DefaultCanvasHeight = 1400

	// DefaultLayoutK is the optimal node distance for the spring layout.
	DefaultLayoutK = 0.15

	// DefaultLayoutIterations is the number of spring layout steps.
	DefaultLayoutIterations = 50

	// DefaultLayoutSeed fixes initial positions so the same graph always draws the same way.
	DefaultLayoutSeed = 42

	// EdgeWidthPerWeight scales edge weight to line width in points.
	EdgeWidthPerWeight = 0.2

	// NodeSizePoints2 is the marker area in points squared.
	NodeSizePoints2 = 80
)

// Server defaults.
const (
	DefaultServerAddr = "0.0.0.0:5000"

	// DefaultRunRatePerMinute limits POST /run_demo per client.
	DefaultRunRatePerMinute = 30
)
