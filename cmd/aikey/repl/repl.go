// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl is an interactive console for running commands.
package repl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	"github.com/fionatony/aikey/internal/ipc"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const prompt = "aikey> "

// Dispatcher is the part of ipc.Dispatcher the console needs.
type Dispatcher interface {
	Call(ctx context.Context, cmd string, args, out any) error
	Names() []string
	Params(cmd string) ([]string, error)
}

// ReplCmd starts the console.
var ReplCmd = &cli.Command{
	Name:  "repl",
	Usage: "Run commands interactively",
	Description: `Each line is a command followed by its arguments, separated by spaces.
The last argument takes the rest of the line, for example:

  save_file /tmp/x.txt hello world
  read_file /tmp/x.txt
  set_env_var OPENAI_API_KEY sk-...

Type help to list the commands, quit or exit or press Ctrl+C to leave.`,
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.FromContext(ctx)
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completer(st.Dispatcher.Names()))

	fmt.Fprintln(cmd.Writer, "Type `help` for commands, `quit` or `exit` or Ctrl+C to quit.") //nolint:errcheck

	for ctx.Err() == nil {
		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("error reading line: %w", err)
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)

		if !Evaluate(ctx, st.Dispatcher, input, cmd.Writer) {
			return nil
		}
	}

	return nil
}

// Evaluate runs one console line and writes the result or error to w.
// It returns false when the line asks to leave.
func Evaluate(ctx context.Context, d Dispatcher, input string, w io.Writer) bool {
	switch strings.TrimSpace(input) {
	case "quit", "exit":
		return false
	case "help":
		for _, name := range d.Names() {
			params, _ := d.Params(name)
			fmt.Fprintf(w, "%s %s\n", name, strings.Join(params, " ")) //nolint:errcheck
		}

		return true
	}

	name, args, err := ParseLine(input, d.Params)
	if err != nil {
		fmt.Fprintf(w, "%s\n", err) //nolint:errcheck
		return true
	}

	var result any

	if err := d.Call(ctx, name, args, &result); err != nil {
		var ce *ipc.CallError
		if errors.As(err, &ce) {
			fmt.Fprintf(w, "%s: %s\n", ce.Kind, ce.Message) //nolint:errcheck
			return true
		}

		fmt.Fprintf(w, "%s\n", err) //nolint:errcheck

		return true
	}

	b, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(w, "%s\n", err) //nolint:errcheck
		return true
	}

	fmt.Fprintf(w, "%s\n", b) //nolint:errcheck

	return true
}

func completer(names []string) liner.Completer {
	return func(line string) []string {
		var c []string

		for _, n := range names {
			if strings.HasPrefix(n, strings.ToLower(line)) {
				c = append(c, n)
			}
		}

		return c
	}
}
