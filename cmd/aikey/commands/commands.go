// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commands lists the registered commands.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	"github.com/urfave/cli/v3"
)

// CommandsCmd prints each command name with its parameters.
var CommandsCmd = &cli.Command{
	Name:   "commands",
	Usage:  "List the available commands and their parameters",
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.FromContext(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Writer, "Available commands:\n\n") //nolint:errcheck

	for _, name := range st.Dispatcher.Names() {
		params, err := st.Dispatcher.Params(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.Writer, "- %s %s\n", name, strings.Join(params, " ")) //nolint:errcheck
	}

	return nil
}
