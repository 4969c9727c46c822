// Package simulation generates synthetic tagging activity and runs the
// generate → simulate → build pipeline that turns it into a social graph.
//
// Randomness is always injected: Simulate takes a *rand.Rand, and a Scenario
// carries the seed the Runner derives it from. Two runs of the same Scenario
// with the same non-zero seed produce identical graphs.
//
// Usage:
//
//	r := simulation.NewRunner(logger, console)
//	res, err := r.Run(ctx, simulation.Scenario{
//	    Name:   "default",
//	    Params: params.Interactive,
//	    Seed:   7,
//	    Pools:  simulation.DefaultPools(),
//	})
//	if err != nil { ... }
//	if res.Status == simulation.StatusNoConnections { ... }
package simulation
