package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/constants"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/demo"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/pathutil"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simulation"
)

// RunResponse is the body of a successful POST /run_demo.
type RunResponse struct {
	Output      string            `json:"output"`
	RunID       string            `json:"run_id"`
	Status      simulation.Status `json:"status"`
	Nodes       int               `json:"nodes"`
	Edges       int               `json:"edges"`
	Image       string            `json:"image,omitempty"`
	RenderError string            `json:"render_error,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Output string `json:"output,omitempty"`
}

type formField struct {
	Name    string
	Label   string
	Default int
}

func indexData() []formField {
	labels := map[string]string{
		"num_community_users": "Community users",
		"num_other_users":     "Other users",
		"num_resources":       "Resources",
		"num_tags":            "Tags",
		"community_activity":  "Community activity (tags per user)",
		"other_activity":      "Other activity (tags per user)",
	}
	fields := make([]formField, 0, len(params.Fields))
	for _, name := range params.Fields {
		v, _ := params.Scripted.Get(name)
		fields = append(fields, formField{Name: name, Label: labels[name], Default: v})
	}
	return fields
}

// handleRun parses the form, runs the scripted console flow, and returns the
// tail of its output.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if ok, wait := s.limiter.Take(clientIP(r)); !ok {
		if wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		}
		writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded, please try again shortly"})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed form body"})
		return
	}
	values := make(map[string]string, len(params.Fields))
	for _, field := range params.Fields {
		values[field] = r.PostForm.Get(field)
	}
	p, err := params.FromStrings(values, params.Scripted)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: simerr.PublicMessage(err)})
		return
	}

	console := logging.NewConsole(nil)
	s.runMu.Lock()
	report, err := s.runner.Interactive(r.Context(), strings.NewReader(demo.ScriptedInput(p)), console, demo.Request{})
	s.runMu.Unlock()
	output := console.Tail(constants.OutputTailChars)

	if err != nil {
		switch {
		case errors.Is(err, simerr.ErrInvalidParameter), errors.Is(err, simerr.ErrEmptyPool):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: simerr.PublicMessage(err), Output: output})
		default:
			s.logger.Error("run failed", "error", err, "request_id", chiRequestID(r))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Output: output})
		}
		return
	}

	resp := RunResponse{
		Output:      output,
		RunID:       report.RunID,
		Status:      report.Status,
		Nodes:       report.Nodes,
		Edges:       report.Edges,
		RenderError: report.RenderError,
	}
	if name := report.ArtifactName(); name != "" {
		resp.Image = "/download/" + name
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDownload serves a file from the output directory as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	path, err := pathutil.ResolveInDir(s.runner.Options().OutputDir, name)
	if err != nil {
		s.logger.Debug("download rejected", "filename", name, "error", err)
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// clientIP keys the rate limiter. RealIP has already rewritten RemoteAddr
// from forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
