// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package edit opens the terminal editor on one file.
package edit

import (
	"context"
	"errors"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	"github.com/fionatony/aikey/internal/tui"
	"github.com/urfave/cli/v3"
)

const pathArg = "path"

// EditCmd edits a file through the same commands a front end uses.
var EditCmd = &cli.Command{
	Name:  "edit",
	Usage: "Edit a file in the terminal",
	Description: `Edit loads the file with file_exists and read_file and saves it with save_file.
A missing file opens as an empty buffer and is created on the first save.

Keys: ctrl+s saves, esc or ctrl+c quits.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      pathArg,
			UsageText: "FILE",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.FromContext(ctx)
	if err != nil {
		return err
	}

	path := cmd.StringArg(pathArg)
	if path == "" {
		return cli.Exit("Please provide a file to edit", 1)
	}

	if err := tui.Run(ctx, st.Dispatcher, path); err != nil {
		if errors.Is(err, tui.ErrUnsaved) {
			return cli.Exit(err.Error(), 1)
		}

		return err
	}

	return nil
}
