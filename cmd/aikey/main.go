// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the aikey command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fionatony/aikey"
	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	"github.com/fionatony/aikey/cmd/aikey/commands"
	"github.com/fionatony/aikey/cmd/aikey/config"
	"github.com/fionatony/aikey/cmd/aikey/edit"
	"github.com/fionatony/aikey/cmd/aikey/invoke"
	"github.com/fionatony/aikey/cmd/aikey/repl"
	"github.com/fionatony/aikey/cmd/aikey/serve"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		commands.CommandsCmd,
		config.ConfigCmd,
		edit.EditCmd,
		invoke.InvokeCmd,
		repl.ReplCmd,
		serve.ServeCmd,
	},
	Flags:     cmdstate.Flags(),
	Before:    cmdstate.Before,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "aikey",
	Description: `aikey is the native host for the AI key manager front end.
It reads and writes local files and persists user environment variables,
either for a front end connected over stdio or a localhost WebSocket,
or directly from the command line.`,
	Usage:     "aikey serve",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", aikey.Version, aikey.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	cancel()

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
}
