package demo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

func TestScriptedInput(t *testing.T) {
	got := ScriptedInput(params.Scripted)
	want := "no\n10\n20\n10\n5\n10\n5\n"
	if got != want {
		t.Errorf("ScriptedInput() = %q, want %q", got, want)
	}
}

func TestInteractive(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantOutput  []string
		wantReport  bool
		wantParams  params.Params
		forbidLines []string
	}{
		{
			name:       "defaults",
			input:      "yes\n",
			wantOutput: []string{"Running with default settings...", "Total Users (Nodes): 150"},
			wantReport: true,
			wantParams: params.Interactive,
		},
		{
			name:       "short yes",
			input:      " Y \n",
			wantOutput: []string{"Running with default settings..."},
			wantReport: true,
			wantParams: params.Interactive,
		},
		{
			name:       "custom",
			input:      ScriptedInput(params.Scripted),
			wantOutput: []string{"Please provide custom settings:", "Running with custom settings...", "Total Users (Nodes): 30"},
			wantReport: true,
			wantParams: params.Scripted,
		},
		{
			name:        "non-numeric",
			input:       "no\n10\nabc\n",
			wantErr:     ErrInvalidNumber,
			wantOutput:  []string{"Invalid input. Please enter whole numbers only."},
			forbidLines: []string{"Running with custom settings..."},
		},
		{
			name:       "bad choice",
			input:      "maybe\n",
			wantErr:    ErrInvalidChoice,
			wantOutput: []string{"Invalid choice. Please enter 'yes' or 'no'."},
		},
		{
			name:       "empty pool",
			input:      "no\n3\n0\n0\n4\n2\n0\n",
			wantErr:    simerr.ErrEmptyPool,
			wantOutput: []string{"An error occurred: [EMPTY_POOL]"},
		},
		{
			name:       "eof before answer",
			input:      "",
			wantErr:    ErrInvalidChoice,
			wantOutput: []string{"An error occurred: EOF when reading a line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(testOptions(t), nil, nil)
			console := logging.NewConsole(nil)

			report, err := r.Interactive(context.Background(), strings.NewReader(tt.input), console, Request{Seed: 1})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Interactive: %v", err)
			}

			out := console.String()
			if !strings.HasPrefix(out, "--- Interactive Social Network Generator ---") {
				t.Errorf("missing banner:\n%s", out)
			}
			if !strings.Contains(out, "Do you want to use default settings? (yes/no): ") {
				t.Error("missing prompt")
			}
			for _, want := range tt.wantOutput {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, forbid := range tt.forbidLines {
				if strings.Contains(out, forbid) {
					t.Errorf("output should not contain %q", forbid)
				}
			}

			if tt.wantReport {
				if report == nil {
					t.Fatal("expected a report")
				}
				if report.Params != tt.wantParams {
					t.Errorf("params = %+v, want %+v", report.Params, tt.wantParams)
				}
			}
		})
	}
}
