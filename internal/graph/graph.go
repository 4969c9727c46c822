// Package graph holds the weighted, undirected social graph derived from
// shared tagging activity, and the builder that constructs it.
//
// A Graph is an explicit node set plus an edge-weight map keyed by a
// canonical unordered user pair. There are no self-loops and at most one
// edge per pair.
package graph

import (
	"fmt"
	"sort"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/models"
)

// Pair is an unordered user pair stored with A < B.
type Pair struct {
	A string
	B string
}

// NewPair returns the canonical pair for u and v.
func NewPair(u, v string) Pair {
	if v < u {
		u, v = v, u
	}
	return Pair{A: u, B: v}
}

// Edge is a weighted connection between two distinct users.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Graph is a weighted undirected graph of users.
type Graph struct {
	order   []string
	nodes   map[string]models.User
	weights map[Pair]int
}

// New creates a graph with one node per user. Duplicate IDs are ignored.
func New(users []models.User) *Graph {
	g := &Graph{
		order:   make([]string, 0, len(users)),
		nodes:   make(map[string]models.User, len(users)),
		weights: make(map[Pair]int),
	}
	for _, u := range users {
		g.AddNode(u)
	}
	return g
}

// AddNode inserts u if its ID is not already present.
func (g *Graph) AddNode(u models.User) {
	if _, ok := g.nodes[u.ID]; ok {
		return
	}
	g.nodes[u.ID] = u
	g.order = append(g.order, u.ID)
}

// HasNode reports whether id is a node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Increment adds 1 to the weight of the u-v edge, creating it at weight 1.
// Endpoints missing from the node set are added as non-community users.
func (g *Graph) Increment(u, v string) error {
	if u == v {
		return fmt.Errorf("self-loop on %q", u)
	}
	if !g.HasNode(u) {
		g.AddNode(models.User{ID: u})
	}
	if !g.HasNode(v) {
		g.AddNode(models.User{ID: v})
	}
	g.weights[NewPair(u, v)]++
	return nil
}

// Weight returns the u-v edge weight, or 0 if there is no edge.
func (g *Graph) Weight(u, v string) int {
	if u == v {
		return 0
	}
	return g.weights[NewPair(u, v)]
}

// HasEdge reports whether u and v are connected.
func (g *Graph) HasEdge(u, v string) bool {
	return g.Weight(u, v) > 0
}

// Nodes returns users in insertion order.
func (g *Graph) Nodes() []models.User {
	out := make([]models.User, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns all edges sorted by (Source, Target).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.weights))
	for p, w := range g.weights {
		out = append(out, Edge{Source: p.A, Target: p.B, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// Weights returns a copy of the edge-weight map.
func (g *Graph) Weights() map[Pair]int {
	out := make(map[Pair]int, len(g.weights))
	for p, w := range g.weights {
		out[p] = w
	}
	return out
}

// NodeCount returns the number of users.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of connected pairs.
func (g *Graph) EdgeCount() int { return len(g.weights) }

// IsCommunity reports whether id is a dense-community member.
func (g *Graph) IsCommunity(id string) bool {
	return g.nodes[id].Community
}

// CommunityMembers returns the set of dense-community node IDs.
func (g *Graph) CommunityMembers() map[string]struct{} {
	out := make(map[string]struct{})
	for id, u := range g.nodes {
		if u.Community {
			out[id] = struct{}{}
		}
	}
	return out
}

// Summary is the human-readable size of a graph.
type Summary struct {
	Nodes          int `json:"nodes"`
	Edges          int `json:"edges"`
	CommunityNodes int `json:"community_nodes"`
	MaxWeight      int `json:"max_weight"`
	TotalWeight    int `json:"total_weight"`
}

// Summary reports node, edge, and weight totals.
func (g *Graph) Summary() Summary {
	s := Summary{Nodes: g.NodeCount(), Edges: g.EdgeCount(), CommunityNodes: len(g.CommunityMembers())}
	for _, w := range g.weights {
		s.TotalWeight += w
		if w > s.MaxWeight {
			s.MaxWeight = w
		}
	}
	return s
}
