// Package visualization renders co-occurrence graphs in various output formats.
package visualization

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/graph"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatPNG  Format = "png"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat returns the Format named by s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatDOT, FormatJSON, FormatHTML:
		return f, nil
	}
	return "", simerr.InvalidParameter("render", "format", "unknown format %q (valid: png, dot, json, html)", s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "text/vnd.graphviz"
}

// RenderDOT produces an undirected Graphviz representation of g.
func RenderDOT(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("graph tagsim {\n")
	b.WriteString(fmt.Sprintf("  label=%q;\n", Title(g.NodeCount())))
	b.WriteString("  labelloc=t;\n")
	b.WriteString("  node [shape=circle, style=filled, label=\"\", width=0.12, fixedsize=true];\n")
	b.WriteString("  edge [color=gray];\n\n")

	for _, u := range g.Nodes() {
		color := "black"
		if u.Community {
			color = "red"
		}
		b.WriteString(fmt.Sprintf("  %q [fillcolor=%s, tooltip=%q];\n", u.ID, color, u.ID))
	}
	b.WriteString("\n")

	for _, e := range g.Edges() {
		b.WriteString(fmt.Sprintf("  %q -- %q [weight=%d, penwidth=%.1f];\n",
			e.Source, e.Target, e.Weight, float64(e.Weight)*0.2))
	}

	b.WriteString("}\n")
	return b.String()
}

// JSONNode is a node in the JSON rendering.
type JSONNode struct {
	ID        string `json:"id"`
	Community bool   `json:"community"`
}

// JSONGraph is the JSON rendering of a graph.
type JSONGraph struct {
	Nodes     []JSONNode   `json:"nodes"`
	Edges     []graph.Edge `json:"edges"`
	NodeCount int          `json:"node_count"`
	EdgeCount int          `json:"edge_count"`
}

// RenderJSON produces a JSON graph representation with nodes and edges arrays.
func RenderJSON(g *graph.Graph) JSONGraph {
	nodes := make([]JSONNode, 0, g.NodeCount())
	for _, u := range g.Nodes() {
		nodes = append(nodes, JSONNode{ID: u.ID, Community: u.Community})
	}
	edges := g.Edges()
	if edges == nil {
		edges = []graph.Edge{}
	}
	return JSONGraph{
		Nodes:     nodes,
		Edges:     edges,
		NodeCount: len(nodes),
		EdgeCount: len(edges),
	}
}

// htmlTemplateData holds data passed to the HTML template.
// GraphJSON is pre-sanitized JSON (via json.HTMLEscape) safe for inline <script>.
type htmlTemplateData struct {
	Title     string
	Caption   string
	ImageSrc  template.URL
	Summary   graph.Summary
	GraphJSON template.JS
}

// RenderHTML produces a self-contained HTML page with the PNG drawing inlined
// and a summary table.
func RenderHTML(g *graph.Graph, opts Options) ([]byte, error) {
	pngBytes, err := RenderPNG(g, opts)
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}

	graphJSON, err := json.Marshal(RenderJSON(g))
	if err != nil {
		return nil, fmt.Errorf("marshal graph data: %w", err)
	}

	tmplBytes, err := templates.ReadFile("templates/graph.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}
	tmpl, err := template.New("graph").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	// User IDs are generated, but escape anyway so </script> can never break out.
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, graphJSON)

	var buf bytes.Buffer
	data := htmlTemplateData{
		Title:   Title(g.NodeCount()),
		Caption: Caption,
		// ImageSrc: our own PNG bytes, base64-encoded.
		ImageSrc:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)), // #nosec G203
		Summary:   g.Summary(),
		GraphJSON: template.JS(escaped.String()), // #nosec G203
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render produces g in the requested format.
func Render(g *graph.Graph, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return RenderPNG(g, opts)
	case FormatDOT:
		return []byte(RenderDOT(g)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(RenderJSON(g), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal graph: %w", err)
		}
		return append(data, '\n'), nil
	case FormatHTML:
		return RenderHTML(g, opts)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ArtifactName returns name with its extension replaced by the format's.
func ArtifactName(name string, format Format) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + format.Ext()
}

// WriteArtifact renders g and writes it to dir under name, with the extension
// matching format. The previous artifact at that path is replaced. Failures
// are reported as RenderingFailure, and any earlier artifact at the path is
// removed so that it cannot be mistaken for this run's output.
func WriteArtifact(g *graph.Graph, dir, name string, format Format, opts Options) (string, error) {
	path := filepath.Join(dir, ArtifactName(name, format))
	fail := func(err error) (string, error) {
		_ = RemoveArtifact(dir, name, format)
		return "", simerr.RenderingFailure("render", err)
	}

	data, err := Render(g, format, opts)
	if err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fail(fmt.Errorf("create output dir: %w", err))
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fail(fmt.Errorf("write artifact: %w", err))
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fail(fmt.Errorf("replace artifact: %w", err))
	}
	return path, nil
}

// RemoveArtifact deletes the artifact WriteArtifact would write for name and
// format. A missing file is not an error.
func RemoveArtifact(dir, name string, format Format) error {
	err := os.Remove(filepath.Join(dir, ArtifactName(name, format)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
