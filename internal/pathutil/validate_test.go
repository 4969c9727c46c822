package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestContain(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "uploads"), 0700); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		roots   []string
		wantErr string
	}{
		{"file in root", filepath.Join(root, "social_graph.png"), []string{root}, ""},
		{"file in subdir", filepath.Join(root, "uploads", "social_graph.png"), []string{root}, ""},
		{"root itself", root, []string{root}, ""},
		{"missing parents", filepath.Join(root, "a", "b", "edges.jsonl"), []string{root}, ""},
		{"doubled separator", root + string(os.PathSeparator) + string(os.PathSeparator) + "social_graph.png", []string{root}, ""},
		{"second root matches", filepath.Join(other, "graph.db"), []string{root, other}, ""},
		{"dot-dot escape", filepath.Join(root, "uploads", "..", "..", "etc", "passwd"), []string{root}, "outside allowed directories"},
		{"other dir", filepath.Join(other, "graph.db"), []string{root}, "outside allowed directories"},
		{"null byte", filepath.Join(root, "social\x00graph.png"), []string{root}, "null byte"},
		{"empty", "", []string{root}, "empty"},
		{"no roots", filepath.Join(root, "social_graph.png"), nil, "no allowed directories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Contain(tt.path, tt.roots...)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Contain(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Contain(%q) = %v, want error containing %q", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestContain_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	root := t.TempDir()
	outside := t.TempDir()
	inside := filepath.Join(root, "real")
	if err := os.MkdirAll(inside, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "escape")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(inside, filepath.Join(root, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if err := Contain(filepath.Join(root, "escape", "social_graph.png"), root); err == nil {
		t.Error("expected rejection through a symlink leaving the root")
	}
	if err := Contain(filepath.Join(root, "link", "social_graph.png"), root); err != nil {
		t.Errorf("symlink inside the root rejected: %v", err)
	}
}

func TestRedactPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"simple", "/home/user/.tagsim/config.yaml", ".../.tagsim/config.yaml"},
		{"deep", "/a/b/c/d/e.txt", ".../d/e.txt"},
		{"root file", "/file.txt", "file.txt"},
		{"relative", "dir/file.txt", ".../dir/file.txt"},
		{"just filename", "file.txt", "file.txt"},
		{"trailing slash cleaned", "/home/user/.tagsim/", ".../user/.tagsim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RedactPath(tt.input)
			if got != tt.want {
				t.Errorf("RedactPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveInDir(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		want    string
		wantErr bool
	}{
		{"plain file", "social_graph.png", filepath.Join(dir, "social_graph.png"), false},
		{"missing file is still resolved", "nodes.jsonl", filepath.Join(dir, "nodes.jsonl"), false},
		{"empty", "", "", true},
		{"dot", ".", "", true},
		{"dot-dot", "..", "", true},
		{"traversal", "../etc/passwd", "", true},
		{"nested", "sub/social_graph.png", "", true},
		{"backslash", `..\\secret`, "", true},
		{"null byte", "a\x00b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInDir(dir, tt.file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveInDir(%q) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveInDir(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestResolveInDir_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test not supported on Windows")
	}

	dir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(outside, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Dir(outside), filepath.Join(dir, "escape")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	// The symlinked directory name itself is a bare name; reading through it
	// needs a separator, which is rejected.
	if _, err := ResolveInDir(dir, "escape/secret.txt"); err == nil {
		t.Error("expected rejection of path through symlinked directory")
	}
}
