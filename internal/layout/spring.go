// Package layout computes 2D node positions for drawing a co-occurrence graph.
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
)

// Point is a node position.
type Point struct {
	X, Y float64
}

// Config controls the spring layout.
type Config struct {
	// K is the optimal distance between nodes. Zero or negative means 1/sqrt(n).
	K float64

	// Iterations is the number of simulated-annealing steps.
	Iterations int

	// Seed fixes the initial random positions.
	Seed uint64
}

// DefaultConfig returns k=0.15, 50 iterations, seed 42.
func DefaultConfig() Config {
	return Config{
		K:          constants.DefaultLayoutK,
		Iterations: constants.DefaultLayoutIterations,
		Seed:       constants.DefaultLayoutSeed,
	}
}

const (
	initialTemperature = 0.1
	minDistance        = 0.01
)

// Spring positions the nodes of g with the Fruchterman-Reingold force model:
// all pairs repel with k²/d, connected pairs attract with weight·d²/k. Each
// step moves a node by at most the current temperature, which cools linearly
// to zero. Positions are centered and scaled so the largest coordinate is 1.
// The result depends only on g and cfg.
func Spring(g *graph.Graph, cfg Config) map[string]Point {
	nodes := g.Nodes()
	n := len(nodes)
	out := make(map[string]Point, n)
	switch n {
	case 0:
		return out
	case 1:
		out[nodes[0].ID] = Point{}
		return out
	}

	index := make(map[string]int, n)
	for i, u := range nodes {
		index[u.ID] = i
	}

	// Dense weight matrix; Edges() is sorted so the fill order is stable.
	adj := make([]float64, n*n)
	for _, e := range g.Edges() {
		i, j := index[e.Source], index[e.Target]
		w := float64(e.Weight)
		adj[i*n+j] = w
		adj[j*n+i] = w
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range n {
		xs[i] = rng.Float64()
		ys[i] = rng.Float64()
	}

	k := cfg.K
	if k <= 0 {
		k = math.Sqrt(1 / float64(n))
	}

	t := initialTemperature
	dt := t / float64(cfg.Iterations+1)
	dx := make([]float64, n)
	dy := make([]float64, n)

	for range cfg.Iterations {
		for i := range n {
			var fx, fy float64
			for j := range n {
				if i == j {
					continue
				}
				ddx := xs[i] - xs[j]
				ddy := ys[i] - ys[j]
				d := math.Max(math.Hypot(ddx, ddy), minDistance)
				f := k*k/(d*d) - adj[i*n+j]*d/k
				fx += ddx * f
				fy += ddy * f
			}
			dx[i], dy[i] = fx, fy
		}
		for i := range n {
			length := math.Max(math.Hypot(dx[i], dy[i]), minDistance)
			xs[i] += dx[i] * t / length
			ys[i] += dy[i] * t / length
		}
		t -= dt
	}

	rescale(xs, ys)
	for i, u := range nodes {
		out[u.ID] = Point{X: xs[i], Y: ys[i]}
	}
	return out
}

// rescale centers the coordinates on the origin and scales them into [-1, 1].
func rescale(xs, ys []float64) {
	n := float64(len(xs))
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var lim float64
	for i := range xs {
		xs[i] -= mx
		ys[i] -= my
		lim = math.Max(lim, math.Max(math.Abs(xs[i]), math.Abs(ys[i])))
	}
	if lim == 0 {
		return
	}
	for i := range xs {
		xs[i] /= lim
		ys[i] /= lim
	}
}

// Bounds returns the min and max corners of pos. It returns zero points for an empty map.
func Bounds(pos map[string]Point) (lo, hi Point) {
	first := true
	for _, p := range pos {
		if first {
			lo, hi = p, p
			first = false
			continue
		}
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
