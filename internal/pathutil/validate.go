// Package pathutil keeps served and written artifact paths inside their
// configured directories.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RedactPath shortens a path to .../<parent>/<basename> for user-facing output.
// "/home/user/.tagsim/config.yaml" becomes ".../.tagsim/config.yaml".
func RedactPath(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(cleaned))
	if parent == "." || parent == string(filepath.Separator) {
		return filepath.Base(cleaned)
	}
	return ".../" + parent + "/" + filepath.Base(cleaned)
}

// Contain reports an error unless path lies inside one of roots after
// cleaning and symlink resolution. The target need not exist yet.
func Contain(path string, roots ...string) error {
	switch {
	case path == "":
		return fmt.Errorf("path rejected: empty")
	case len(roots) == 0:
		return fmt.Errorf("path rejected: no allowed directories configured")
	case strings.ContainsRune(path, 0):
		return fmt.Errorf("path rejected: contains a null byte")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("path rejected: %w", err)
	}
	dir, err := realDir(filepath.Dir(abs))
	if err != nil {
		return fmt.Errorf("path rejected: %w", err)
	}
	target := filepath.Join(dir, filepath.Base(abs))

	for _, root := range roots {
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		real, err := realDir(rootAbs)
		if err != nil {
			continue
		}
		if within(target, real) {
			return nil
		}
	}
	return fmt.Errorf("path rejected: %q is outside allowed directories", RedactPath(abs))
}

// realDir resolves symlinks on the longest existing prefix of dir and
// re-attaches the missing tail.
func realDir(dir string) (string, error) {
	var tail []string
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("cannot resolve %s", RedactPath(dir))
		}
		tail = append(tail, filepath.Base(dir))
		dir = parent
	}
}

func within(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(os.PathSeparator))
}

// ResolveInDir joins a caller-supplied file name onto dir and checks the
// result stays inside dir. The name must be a bare file name: separators,
// "." and ".." are rejected before any filesystem lookup.
func ResolveInDir(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("path rejected: invalid file name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("path rejected: file name %q contains a separator", name)
	}
	path := filepath.Join(dir, name)
	if err := Contain(path, dir); err != nil {
		return "", err
	}
	return path, nil
}
