package simulation

import (
	"testing"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
)

// AssertNoSelfLoops asserts that no edge connects a user to itself and that
// each unordered pair appears once.
func AssertNoSelfLoops(t *testing.T, g *graph.Graph) {
	t.Helper()
	seen := make(map[graph.Pair]bool)
	for _, e := range g.Edges() {
		if e.Source == e.Target {
			t.Errorf("AssertNoSelfLoops: self-loop on %s", e.Source)
		}
		p := graph.NewPair(e.Source, e.Target)
		if seen[p] {
			t.Errorf("AssertNoSelfLoops: duplicate edge %s-%s", p.A, p.B)
		}
		seen[p] = true
	}
}

// AssertEdgeWeight asserts that the u-v edge has exactly want weight (0 = no edge).
func AssertEdgeWeight(t *testing.T, g *graph.Graph, u, v string, want int) {
	t.Helper()
	if got := g.Weight(u, v); got != want {
		t.Errorf("AssertEdgeWeight: %s-%s weight = %d, want %d", u, v, got, want)
	}
}

// AssertValidStructure asserts positive weights, known endpoints, and no self-loops.
func AssertValidStructure(t *testing.T, g *graph.Graph) {
	t.Helper()
	AssertNoSelfLoops(t, g)
	for _, e := range g.Edges() {
		if e.Weight < 1 {
			t.Errorf("AssertValidStructure: edge %s-%s weight %d < 1", e.Source, e.Target, e.Weight)
		}
		if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
			t.Errorf("AssertValidStructure: edge %s-%s references unknown node", e.Source, e.Target)
		}
	}
}

// AssertIsolatedNodes asserts that the graph has wantNodes nodes and no edges.
func AssertIsolatedNodes(t *testing.T, g *graph.Graph, wantNodes int) {
	t.Helper()
	if g.NodeCount() != wantNodes {
		t.Errorf("AssertIsolatedNodes: %d nodes, want %d", g.NodeCount(), wantNodes)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("AssertIsolatedNodes: %d edges, want 0", g.EdgeCount())
	}
}
