package visualization

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/models"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New([]models.User{
		{ID: "CommUser_0", Community: true},
		{ID: "CommUser_1", Community: true},
		{ID: "OtherUser_0"},
		{ID: "OtherUser_1"},
	})
	for _, p := range [][2]string{
		{"CommUser_0", "CommUser_1"},
		{"CommUser_0", "CommUser_1"},
		{"CommUser_1", "OtherUser_0"},
	} {
		if err := g.Increment(p[0], p[1]); err != nil {
			t.Fatalf("Increment: %v", err)
		}
	}
	return g
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = 400, 350
	return opts
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"DOT", FormatDOT, false},
		{" json ", FormatJSON, false},
		{"html", FormatHTML, false},
		{"svg", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, simerr.ErrInvalidParameter) {
					t.Errorf("ParseFormat(%q) error = %v, want InvalidParameter", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestRenderDOT(t *testing.T) {
	dot := RenderDOT(testGraph(t))

	if !strings.HasPrefix(dot, "graph tagsim {") {
		t.Error("expected undirected graph header")
	}
	if strings.Contains(dot, "->") {
		t.Error("undirected graph must not contain directed edges")
	}
	if !strings.Contains(dot, `"CommUser_0" [fillcolor=red`) {
		t.Error("expected community node in red")
	}
	if !strings.Contains(dot, `"OtherUser_1" [fillcolor=black`) {
		t.Error("expected isolated other node in black")
	}
	if !strings.Contains(dot, `"CommUser_0" -- "CommUser_1" [weight=2`) {
		t.Errorf("expected weighted community edge, got:\n%s", dot)
	}
	if !strings.Contains(dot, "(4 Users)") {
		t.Error("expected user count in label")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("expected closing brace")
	}
}

func TestRenderJSON(t *testing.T) {
	out := RenderJSON(testGraph(t))

	if out.NodeCount != 4 || len(out.Nodes) != 4 {
		t.Errorf("node_count = %d (%d nodes), want 4", out.NodeCount, len(out.Nodes))
	}
	if out.EdgeCount != 2 || len(out.Edges) != 2 {
		t.Errorf("edge_count = %d (%d edges), want 2", out.EdgeCount, len(out.Edges))
	}
	if !out.Nodes[0].Community || out.Nodes[2].Community {
		t.Error("community flags not carried through")
	}

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"edge_count":2`) {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestRenderJSON_NoEdgesIsEmptyArray(t *testing.T) {
	data, err := json.Marshal(RenderJSON(graph.New([]models.User{{ID: "OtherUser_0"}})))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"edges":[]`) {
		t.Errorf("expected empty edges array, got %s", data)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(testGraph(t), smallOptions())
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	s := string(html)
	if !strings.Contains(s, "data:image/png;base64,") {
		t.Error("expected inline PNG data URI")
	}
	if !strings.Contains(s, Title(4)) {
		t.Error("expected title")
	}
	if !strings.Contains(s, "CommUser_0") {
		t.Error("expected graph JSON with node IDs")
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"social_graph.png", FormatPNG, "social_graph.png"},
		{"social_graph.png", FormatDOT, "social_graph.dot"},
		{"social_graph", FormatJSON, "social_graph.json"},
		{"graph.v1.png", FormatHTML, "graph.v1.html"},
	}
	for _, tt := range tests {
		if got := ArtifactName(tt.name, tt.format); got != tt.want {
			t.Errorf("ArtifactName(%q, %s) = %q, want %q", tt.name, tt.format, got, tt.want)
		}
	}
}

func TestWriteArtifact_ReplacesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	g := testGraph(t)

	path, err := WriteArtifact(g, dir, "social_graph.png", FormatDOT, smallOptions())
	if err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	if path != filepath.Join(dir, "social_graph.dot") {
		t.Errorf("path = %q", path)
	}

	// A second run overwrites the same path.
	if err := g.Increment("OtherUser_0", "OtherUser_1"); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteArtifact(g, dir, "social_graph.png", FormatDOT, smallOptions()); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"OtherUser_0" -- "OtherUser_1"`) {
		t.Error("expected artifact to be replaced by the second render")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file in output dir, got %d", len(entries))
	}
}

func TestWriteArtifact_RenderingFailure(t *testing.T) {
	opts := smallOptions()
	opts.Width = 0
	_, err := WriteArtifact(testGraph(t), t.TempDir(), "social_graph.png", FormatPNG, opts)
	if !errors.Is(err, simerr.ErrRenderingFailure) {
		t.Errorf("error = %v, want RenderingFailure", err)
	}
}

func TestWriteArtifact_UnwritableDir(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "uploads")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := WriteArtifact(testGraph(t), blocker, "social_graph.png", FormatDOT, smallOptions())
	if !errors.Is(err, simerr.ErrRenderingFailure) {
		t.Errorf("error = %v, want RenderingFailure", err)
	}
}

func TestWriteArtifact_FailureRemovesStaleArtifact(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteArtifact(testGraph(t), dir, "social_graph.png", FormatPNG, smallOptions())
	if err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}

	opts := smallOptions()
	opts.Width = 0
	if _, err := WriteArtifact(testGraph(t), dir, "social_graph.png", FormatPNG, opts); err == nil {
		t.Fatal("expected rendering failure")
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("stale artifact still present: stat err = %v", err)
	}
}

func TestRemoveArtifact(t *testing.T) {
	dir := t.TempDir()
	if err := RemoveArtifact(dir, "social_graph.png", FormatDOT); err != nil {
		t.Errorf("missing artifact: %v", err)
	}

	path := filepath.Join(dir, "social_graph.dot")
	if err := os.WriteFile(path, []byte("graph {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveArtifact(dir, "social_graph.png", FormatDOT); err != nil {
		t.Fatalf("RemoveArtifact: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("artifact still present: stat err = %v", err)
	}
}
