package simulation

import (
	"time"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/population"
)

// Scenario defines one pipeline run.
type Scenario struct {
	Name   string
	Params params.Params

	// Seed drives all sampling. Zero picks a fresh random seed; the seed
	// actually used is reported in Result.Seed.
	Seed uint64

	// Pools overrides the community pool fractions. The zero value means DefaultPools.
	Pools PoolConfig

	// MaxGroupPairs bounds graph building per co-occurrence key (0 = unbounded).
	MaxGroupPairs int

	// MaxEvents caps the tagging events a run may generate. Zero means
	// constants.DefaultMaxEvents; a negative value disables the cap.
	MaxEvents int64
}

// eventLimit resolves MaxEvents to the cap in force, or 0 for none.
func (sc Scenario) eventLimit() int64 {
	switch {
	case sc.MaxEvents == 0:
		return constants.DefaultMaxEvents
	case sc.MaxEvents < 0:
		return 0
	}
	return sc.MaxEvents
}

// Status is the terminal state of a successful run.
type Status string

const (
	// StatusConnected means the graph has at least one edge.
	StatusConnected Status = "connected"

	// StatusNoConnections means the graph has zero edges. This is not an error.
	StatusNoConnections Status = "no_connections"
)

// Stage names used for timings and logs.
const (
	StageGenerate          = "generate"
	StageSimulateCommunity = "simulate_community"
	StageSimulateOther     = "simulate_other"
	StageBuild             = "build"
)

// Result captures the outcome of a run.
type Result struct {
	Scenario        Scenario
	Seed            uint64
	Population      *population.Population
	Graph           *graph.Graph
	CommunityEvents int
	OtherEvents     int
	Status          Status
	StageDurations  map[string]time.Duration
}

// TotalEvents is the number of tagging events the run generated.
func (r *Result) TotalEvents() int {
	return r.CommunityEvents + r.OtherEvents
}

// CommunityMembers is the membership set handed to renderers.
func (r *Result) CommunityMembers() map[string]struct{} {
	return r.Graph.CommunityMembers()
}
