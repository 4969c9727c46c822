// Package logging provides leveled logging and console progress output for tagsim.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A Console for the human-readable stage lines a run prints, which callers
//     may capture and truncate
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// LevelTrace is a custom slog level below Debug for per-stage detail such as
// pool sizes and group counts.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Console writes progress lines for a single run and keeps a copy of
// everything written so the caller can return the tail. It is safe for
// concurrent use. A nil Console is safe to use; all methods are no-ops on
// nil receiver.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	captured strings.Builder
}

// NewConsole creates a console that echoes to w. A nil w only captures.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Println writes a line. Safe to call on nil receiver.
func (c *Console) Println(a ...any) {
	c.write(fmt.Sprintln(a...))
}

// Printf writes formatted text followed by a newline. Safe to call on nil receiver.
func (c *Console) Printf(format string, a ...any) {
	c.write(fmt.Sprintf(format, a...) + "\n")
}

// Write implements io.Writer. Safe to call on nil receiver.
func (c *Console) Write(p []byte) (int, error) {
	c.write(string(p))
	return len(p), nil
}

func (c *Console) write(s string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.captured.WriteString(s)
	if c.w != nil {
		_, _ = io.WriteString(c.w, s)
	}
}

// String returns everything written so far. Returns "" on nil receiver.
func (c *Console) String() string {
	if c == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captured.String()
}

// Tail returns the last n bytes written, or all of it if shorter. The cut is
// moved forward to a UTF-8 boundary. Returns "" on nil receiver.
func (c *Console) Tail(n int) string {
	return Tail(c.String(), n)
}

// Tail returns the last n bytes of s, cut at a rune boundary.
func Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && s[start]&0xC0 == 0x80 {
		start++
	}
	return s[start:]
}
