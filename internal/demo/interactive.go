package demo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/logging"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/params"
	"github.com/Sayantika84/Social-Tagging-Proj/internal/simerr"
)

// Interactive prompts, in the order the custom settings are read.
var prompts = []struct {
	field  string
	prompt string
}{
	{"num_community_users", "Enter the number of users in the dense community (e.g., 50): "},
	{"num_other_users", "Enter the number of other users (e.g., 100): "},
	{"num_resources", "Enter the total number of resources (e.g., 50): "},
	{"num_tags", "Enter the total number of tags (e.g., 20): "},
	{"community_activity", "Enter activity level for community users (tags per user, e.g., 20): "},
	{"other_activity", "Enter activity level for other users (tags per user, e.g., 10): "},
}

// Errors from the interactive flow that are not simulation errors.
var (
	ErrInvalidChoice = errors.New("invalid choice")
	ErrInvalidNumber = errors.New("invalid number")
)

// ScriptedInput builds the answer stream that runs p through the custom
// settings path of Interactive.
func ScriptedInput(p params.Params) string {
	var b strings.Builder
	b.WriteString("no\n")
	for _, f := range prompts {
		v, _ := p.Get(f.field)
		b.WriteString(strconv.Itoa(v))
		b.WriteByte('\n')
	}
	return b.String()
}

// Interactive runs the question-and-answer console flow: it asks whether to
// use the default settings and, if not, reads the six parameters one per
// line. Prompts and results are written to console. Every failure is also
// printed to console before it is returned, so callers only need the error
// for their exit status.
func (r *Runner) Interactive(ctx context.Context, in io.Reader, console *logging.Console, base Request) (*Report, error) {
	scanner := bufio.NewScanner(in)
	readLine := func(prompt string) (string, bool) {
		fmt.Fprint(console, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}

	console.Println("--- Interactive Social Network Generator ---")
	console.Println("This script generates a social graph based on simulated user tagging activity.")
	console.Println("You can define the size of a core 'community' and a population of 'other' users.")

	choice, ok := readLine("\nDo you want to use default settings? (yes/no): ")
	if !ok {
		console.Println("\nAn error occurred: EOF when reading a line")
		return nil, fmt.Errorf("%w: no answer", ErrInvalidChoice)
	}

	req := base
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "y", "yes":
		console.Println("\nRunning with default settings...")
		req.Name = params.PresetInteractive
		req.Params = params.Interactive
	case "n", "no":
		console.Println("\nPlease provide custom settings:")
		var p params.Params
		for _, f := range prompts {
			line, ok := readLine(f.prompt)
			if !ok {
				console.Println("\nAn error occurred: EOF when reading a line")
				return nil, fmt.Errorf("%w: missing %s", ErrInvalidNumber, f.field)
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				console.Println("\nInvalid input. Please enter whole numbers only.")
				return nil, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, f.field, line)
			}
			p.Set(f.field, n)
		}
		console.Println("\nRunning with custom settings...")
		req.Name = "custom"
		req.Params = p
	default:
		console.Println("\nInvalid choice. Please enter 'yes' or 'no'.")
		return nil, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}

	report, err := r.Run(ctx, req, console)
	if err != nil {
		console.Printf("\nAn error occurred: %s", simerr.PublicMessage(err))
		return nil, err
	}
	return report, nil
}
