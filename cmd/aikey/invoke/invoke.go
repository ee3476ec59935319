// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package invoke runs a single command and prints its result.
package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	"github.com/fionatony/aikey/internal/ipc"
	"github.com/goccy/go-yaml"
	"github.com/urfave/cli/v3"
)

const (
	commandArg      = "command"
	argFlag         = "arg"
	contentFileFlag = "content-file"
	outputFlag      = "output"
	outputJSON      = "json"
	outputYAML      = "yaml"
	contentArgName  = "content"
)

var (
	// ErrArgFormat is returned for an --arg value that is not key=value.
	ErrArgFormat = errors.New("argument must be key=value")
	// ErrReadContent is returned when --content-file cannot be read.
	ErrReadContent = errors.New("failed to read content file")
	// ErrWriteResult is returned when the result cannot be written.
	ErrWriteResult = errors.New("failed to write result")
)

// InvokeCmd runs one command through the dispatcher.
var InvokeCmd = &cli.Command{
	Name:  "invoke",
	Usage: "Run one command and print the result",
	Description: `Invoke runs a command exactly as a front end would and prints the result.

Examples:
  aikey invoke file_exists --arg file_path=/tmp/x.txt
  aikey invoke save_file --arg file_path=/tmp/x.txt --content-file ./x.txt
  aikey invoke set_env_var --arg name=OPENAI_API_KEY --arg value=sk-...

On failure the error kind and message are printed and the exit code is 1.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      commandArg,
			UsageText: "COMMAND",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    argFlag,
			Aliases: []string{"a"},
			Usage:   "Set a command argument as key=value. Specify multiple times for multiple arguments.",
		},
		&cli.StringFlag{
			Name:      contentFileFlag,
			Usage:     "Read the content argument from a file",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     outputFlag,
			Aliases:  []string{"o"},
			Usage:    "Set the output format: json or yaml",
			Value:    outputJSON,
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.FromContext(ctx)
	if err != nil {
		return err
	}

	name := cmd.StringArg(commandArg)
	if name == "" {
		return cli.Exit("Please provide a command to invoke, see `aikey commands`", 1)
	}

	args, err := ParseArgs(cmd.StringSlice(argFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if path := cmd.String(contentFileFlag); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cli.Exit(errors.Join(ErrReadContent, err).Error(), 1)
		}

		args[contentArgName] = string(b)
	}

	var result any

	if err := st.Dispatcher.Call(ctx, name, args, &result); err != nil {
		var ce *ipc.CallError
		if errors.As(err, &ce) {
			return cli.Exit(fmt.Sprintf("%s: %s", ce.Kind, ce.Message), 1)
		}

		return cli.Exit(err.Error(), 1)
	}

	if err := WriteResult(cmd.Writer, cmd.String(outputFlag), result); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// ParseArgs converts key=value pairs to a map. The value may contain '='.
func ParseArgs(pairs []string) (map[string]string, error) {
	args := make(map[string]string, len(pairs))

	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", ErrArgFormat, p)
		}

		args[k] = v
	}

	return args, nil
}

// WriteResult writes result to w as JSON or YAML.
func WriteResult(w io.Writer, format string, result any) error {
	var (
		b   []byte
		err error
	)

	switch strings.ToLower(format) {
	case outputYAML:
		b, err = yaml.Marshal(result)
	case outputJSON, "":
		b, err = json.MarshalIndent(result, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrWriteResult, format)
	}

	if err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	if _, err := w.Write(b); err != nil {
		return errors.Join(ErrWriteResult, err)
	}

	return nil
}
