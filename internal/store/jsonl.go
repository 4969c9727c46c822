package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
)

// JSONL file names written by WriteJSONL.
const (
	NodesFile = "nodes.jsonl"
	EdgesFile = "edges.jsonl"
)

// nodeRecord is one line of nodes.jsonl.
type nodeRecord struct {
	ID        string `json:"id"`
	Community bool   `json:"community"`
}

// WriteJSONL writes g as nodes.jsonl and edges.jsonl in dir, one JSON object
// per line, replacing earlier files. It returns both paths.
func WriteJSONL(dir string, g *graph.Graph) (string, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create export directory: %w", err)
	}

	nodesPath := filepath.Join(dir, NodesFile)
	nodes := make([]any, 0, g.NodeCount())
	for _, u := range g.Nodes() {
		nodes = append(nodes, nodeRecord{ID: u.ID, Community: u.Community})
	}
	if err := writeLines(nodesPath, nodes); err != nil {
		return "", "", fmt.Errorf("failed to export nodes: %w", err)
	}

	edgesPath := filepath.Join(dir, EdgesFile)
	edges := make([]any, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		edges = append(edges, e)
	}
	if err := writeLines(edgesPath, edges); err != nil {
		return "", "", fmt.Errorf("failed to export edges: %w", err)
	}

	return nodesPath, edgesPath, nil
}

func writeLines(path string, records []any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return f.Close()
}
