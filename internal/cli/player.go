// Package cli implements the interactive dialogue player behind the run
// command: a read-render-choose loop over a runtime.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/parleykit/parley"
	"github.com/parleykit/parley/pkg/adapters/file"
	"github.com/parleykit/parley/pkg/state"
)

// PlayerOptions configures one player run.
type PlayerOptions struct {
	ResourcePath string
	Title        string
	StateJSON    string // initial variables as a JSON object
	Strict       bool
	Validate     bool
	TTY          bool
	Logger       *slog.Logger
}

// RunPlayer loads the resource and walks it interactively, printing lines
// to out and reading response choices from in until the dialogue ends or
// ctx is cancelled.
func RunPlayer(ctx context.Context, opts PlayerOptions, in io.Reader, out io.Writer) error {
	var initial map[string]any
	if opts.StateJSON != "" {
		if err := json.Unmarshal([]byte(opts.StateJSON), &initial); err != nil {
			return fmt.Errorf("parsing --state JSON: %w", err)
		}
	}

	var loaderOpts []file.LoaderOption
	if opts.Validate {
		loaderOpts = append(loaderOpts, file.WithValidation())
	}

	rt, err := parley.New(
		parley.WithLoader(file.NewLoader(opts.ResourcePath, loaderOpts...)),
		parley.WithStates(state.NewMap(initial)),
		parley.WithStrict(opts.Strict),
		parley.WithLogger(opts.Logger),
	)
	if err != nil {
		return err
	}

	if opts.TTY {
		PrintBanner(out)
	}

	renderer := NewRenderer(opts.TTY)
	scanner := bufio.NewScanner(in)

	key := opts.Title
	if key == "" {
		key = "start"
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := rt.GetNextDialogueLine(ctx, key)
		if err != nil {
			return err
		}
		if line == nil {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "End of dialogue.")
			return nil
		}

		fmt.Fprintln(out, renderer.Dialogue(line.Character, line.Dialogue))

		// A collapsed single survivor already points past the choice; it is
		// a continuation, not a menu.
		collapsed := len(line.Responses) == 1 && line.NextID == line.Responses[0].NextID

		if len(line.Responses) > 0 && !collapsed {
			fmt.Fprintln(out)
			for i, option := range line.Responses {
				fmt.Fprintln(out, renderer.Option(i+1, option.Prompt))
			}

			choice, err := readChoice(scanner, out, len(line.Responses))
			if err != nil {
				return err
			}
			key = line.Responses[choice].NextID
			continue
		}

		key = line.NextID
	}
}

// readChoice prompts until the player enters a number within range.
func readChoice(scanner *bufio.Scanner, out io.Writer, max int) (int, error) {
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}

		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > max {
			fmt.Fprintf(out, "enter a number between 1 and %d\n", max)
			continue
		}
		return n - 1, nil
	}
}
