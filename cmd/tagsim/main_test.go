package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simulation"
)

// isolateHome sets HOME to a temp directory to avoid touching real ~/.tagsim/
// and clears environment overrides.
func isolateHome(t *testing.T, tmpDir string) {
	t.Helper()
	tmpHome := filepath.Join(tmpDir, "home")
	if err := os.MkdirAll(tmpHome, 0700); err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	t.Setenv("HOME", tmpHome)
	for _, key := range []string{"TAGSIM_SEED", "TAGSIM_OUTPUT_DIR", "TAGSIM_OUTPUT_FORMAT", "TAGSIM_LOG_LEVEL", "TAGSIM_MAX_EVENTS"} {
		t.Setenv(key, "")
	}
}

// writeTestConfig writes a config that renders DOT into tmpDir/out.
func writeTestConfig(t *testing.T, tmpDir string) (configPath, outDir string) {
	t.Helper()
	outDir = filepath.Join(tmpDir, "out")
	configPath = filepath.Join(tmpDir, "tagsim.yaml")
	body := fmt.Sprintf("output:\n  dir: %s\n  format: dot\nsimulation:\n  seed: 99\n", outDir)
	if err := os.WriteFile(configPath, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return configPath, outDir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCmd_ScriptedPreset(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)
	cfgPath, outDir := writeTestConfig(t, tmpDir)

	out, err := execute(t, "", "run", "--config", cfgPath, "--preset", "scripted")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, want := range []string{
		"Simulating tagging for the dense community...",
		"Total Users (Nodes): 30",
		"Graph written to " + filepath.Join(outDir, "social_graph.dot"),
		"Seed: 99",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "social_graph.dot")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestRunCmd_JSONWithOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)
	cfgPath, _ := writeTestConfig(t, tmpDir)
	outDir := filepath.Join(tmpDir, "custom")

	out, err := execute(t, "", "run", "--config", cfgPath, "--json",
		"--preset", "scripted",
		"--community-users", "2", "--other-users", "0",
		"--resources", "1", "--tags", "1",
		"--community-activity", "1", "--other-activity", "0",
		"--format", "json", "--output", outDir, "--seed", "5")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var report demo.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	want := params.Params{NumCommunityUsers: 2, NumResources: 1, NumTags: 1, CommunityActivity: 1}
	if report.Params != want {
		t.Errorf("params = %+v, want %+v", report.Params, want)
	}
	if report.Seed != 5 || report.Nodes != 2 || report.Edges != 1 {
		t.Errorf("seed=%d nodes=%d edges=%d", report.Seed, report.Nodes, report.Edges)
	}
	if report.ArtifactPath != filepath.Join(outDir, "social_graph.json") {
		t.Errorf("artifact = %q", report.ArtifactPath)
	}
}

func TestRunCmd_NoConnections(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)
	cfgPath, _ := writeTestConfig(t, tmpDir)

	out, err := execute(t, "", "run", "--config", cfgPath, "--preset", "scripted",
		"--community-activity", "0", "--other-activity", "0")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "No connections were formed") {
		t.Errorf("expected no-connections line:\n%s", out)
	}
	if strings.Contains(out, "Graph written to") {
		t.Error("no artifact should be written")
	}
}

func TestRunCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown preset", []string{"--preset", "huge"}, "unknown preset"},
		{"negative", []string{"--tags=-1"}, "INVALID_PARAMETER"},
		{"empty pool", []string{"--preset", "scripted", "--resources", "0"}, "EMPTY_POOL"},
		{"bad format", []string{"--format", "svg"}, "svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			isolateHome(t, tmpDir)
			cfgPath, _ := writeTestConfig(t, tmpDir)

			args := append([]string{"run", "--config", cfgPath}, tt.args...)
			_, err := execute(t, "", args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRunCmd_Exports(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)
	cfgPath, _ := writeTestConfig(t, tmpDir)
	dbPath := filepath.Join(tmpDir, "graph.db")
	jsonlDir := filepath.Join(tmpDir, "jsonl")

	out, err := execute(t, "", "run", "--config", cfgPath, "--preset", "scripted",
		"--export-db", dbPath, "--export-jsonl", jsonlDir)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "Exported SQLite: "+dbPath) {
		t.Errorf("missing export line:\n%s", out)
	}
	for _, p := range []string{dbPath, filepath.Join(jsonlDir, "nodes.jsonl"), filepath.Join(jsonlDir, "edges.jsonl")} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing export %s: %v", p, err)
		}
	}
}

func TestInteractiveCmd(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)
	cfgPath, _ := writeTestConfig(t, tmpDir)

	t.Run("custom settings", func(t *testing.T) {
		out, err := execute(t, demo.ScriptedInput(params.Scripted), "interactive", "--config", cfgPath)
		if err != nil {
			t.Fatalf("interactive failed: %v", err)
		}
		if !strings.Contains(out, "Running with custom settings...") || !strings.Contains(out, "Total Users (Nodes): 30") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("invalid number", func(t *testing.T) {
		out, err := execute(t, "no\nten\n", "interactive", "--config", cfgPath)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(out, "Invalid input. Please enter whole numbers only.") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("invalid choice", func(t *testing.T) {
		out, err := execute(t, "perhaps\n", "interactive", "--config", cfgPath)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(out, "Invalid choice. Please enter 'yes' or 'no'.") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})
}

func TestPresetsCmd(t *testing.T) {
	out, err := execute(t, "", "presets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "interactive") || !strings.Contains(out, "scripted") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "", "presets", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]params.Params
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[params.PresetScripted] != params.Scripted {
		t.Errorf("scripted = %+v", got[params.PresetScripted])
	}
}

func TestConfigShowCmd(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)
	cfgPath, outDir := writeTestConfig(t, tmpDir)

	out, err := execute(t, "", "config", "show", "--config", cfgPath, "--json", "--log-level", "debug")
	if err != nil {
		t.Fatal(err)
	}
	var cfg struct {
		Output  struct{ Dir, Format string }
		Logging struct{ Level string }
	}
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Output.Dir != outDir || cfg.Output.Format != "dot" || cfg.Logging.Level != "debug" {
		t.Errorf("config = %+v", cfg)
	}

	out, err = execute(t, "", "config", "show", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "format: dot") {
		t.Errorf("yaml output:\n%s", out)
	}
}

func TestConfigShowCmd_InvalidLevel(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	_, err := execute(t, "", "config", "show", "--log-level", "loud")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("error = %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got["version"] != version {
		t.Errorf("version = %q, want %q", got["version"], version)
	}
}

func TestStatusConstantsInOutput(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)
	cfgPath, _ := writeTestConfig(t, tmpDir)

	out, err := execute(t, "", "run", "--config", cfgPath, "--json", "--preset", "scripted", "--community-activity", "0", "--other-activity", "0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"status": "`+string(simulation.StatusNoConnections)+`"`) {
		t.Errorf("expected no_connections status:\n%s", out)
	}
}
