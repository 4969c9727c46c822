package visualization

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// OpenBrowser opens target with the platform's default handler. Target may be
// an http(s) URL or a local artifact path; paths are turned into file URLs.
func OpenBrowser(target string) error {
	name, args, err := openCommand(runtime.GOOS, viewerURL(target))
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// viewerURL returns target unchanged if it is already a URL, and a file://
// URL for the absolute form of a path otherwise.
func viewerURL(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "file://") {
		return target
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func openCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "linux":
		return "xdg-open", []string{target}, nil
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
