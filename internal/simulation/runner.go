package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/population"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

// Runner executes scenarios. It holds no state between runs, so one Runner
// may serve concurrent callers as long as each passes its own Console.
type Runner struct {
	logger  *slog.Logger
	console *logging.Console
}

// NewRunner creates a runner. A nil logger discards records; a nil console
// suppresses progress lines.
func NewRunner(logger *slog.Logger, console *logging.Console) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{logger: logger, console: console}
}

// Run validates the scenario and its event cap, generates the population, simulates both
// populations, and builds the graph. Parameter and pool errors abort the run.
// Cancellation is checked between stages.
func (r *Runner) Run(ctx context.Context, sc Scenario) (*Result, error) {
	if err := sc.Params.Validate(); err != nil {
		return nil, err
	}
	if limit := sc.eventLimit(); limit > 0 {
		if total := sc.Params.TotalEvents(); total > limit {
			return nil, simerr.InvalidParameter("run", "activity",
				"run would generate %d tagging events; the limit is %d", total, limit)
		}
	}
	if sc.Pools == (PoolConfig{}) {
		sc.Pools = DefaultPools()
	}

	seed := sc.Seed
	if seed == 0 {
		seed = RandomSeed()
	}
	rng := NewRNG(seed)

	res := &Result{
		Scenario:       sc,
		Seed:           seed,
		StageDurations: make(map[string]time.Duration, 4),
	}
	log := r.logger.With("scenario", sc.Name, "seed", seed)
	log.Debug("run started", "params", sc.Params.String())

	// Phase 1: generate.
	start := time.Now()
	pop, err := population.Generate(population.Sizes{
		CommunityUsers: sc.Params.NumCommunityUsers,
		OtherUsers:     sc.Params.NumOtherUsers,
		Resources:      sc.Params.NumResources,
		Tags:           sc.Params.NumTags,
	})
	if err != nil {
		return nil, err
	}
	res.Population = pop
	res.StageDurations[StageGenerate] = time.Since(start)

	// Phase 2: community activity.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.console.Println("\nSimulating tagging for the dense community...")
	start = time.Now()
	resPool, tagPool := sc.Pools.CommunityPools(pop.Resources, pop.Tags)
	log.Log(ctx, logging.LevelTrace, "community pools", "resources", len(resPool), "tags", len(tagPool))
	community, err := SimulateCommunity(rng, pop, sc.Params.CommunityActivity, sc.Pools)
	if err != nil {
		log.Debug("community simulation failed", "error", err)
		return nil, err
	}
	res.CommunityEvents = len(community)
	res.StageDurations[StageSimulateCommunity] = time.Since(start)

	// Phase 3: other activity.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.console.Println("Simulating tagging for other users...")
	start = time.Now()
	others, err := SimulateOthers(rng, pop, sc.Params.OtherActivity)
	if err != nil {
		log.Debug("other simulation failed", "error", err)
		return nil, err
	}
	res.OtherEvents = len(others)
	res.StageDurations[StageSimulateOther] = time.Since(start)

	// Phase 4: build.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.console.Println("Building connections based on shared tags...")
	start = time.Now()
	events := append(community, others...)
	g, err := graph.Builder{MaxGroupPairs: sc.MaxGroupPairs}.Build(pop.AllUsers(), events)
	if err != nil {
		var tooLarge *graph.ErrGroupTooLarge
		if errors.As(err, &tooLarge) {
			return nil, &simerr.Error{
				Kind:    simerr.KindInvalidParameter,
				Op:      StageBuild,
				Message: fmt.Sprintf("a co-occurrence group has %d users; reduce activity or population sizes", tooLarge.Users),
				Err:     err,
			}
		}
		return nil, fmt.Errorf("build graph: %w", err)
	}
	res.Graph = g
	res.StageDurations[StageBuild] = time.Since(start)

	res.Status = StatusConnected
	if g.EdgeCount() == 0 {
		res.Status = StatusNoConnections
	}

	log.Debug("run finished",
		"events", res.TotalEvents(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"status", string(res.Status))

	return res, nil
}
