// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package serve runs the IPC host adapter.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	"github.com/fionatony/aikey/internal/config"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/ipc"
	"github.com/fionatony/aikey/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	transportFlag = "transport"
	addrFlag      = "addr"
	tokenFlag     = "token"
)

// ErrServe is returned when the transport fails.
var ErrServe = errors.New("serve failed")

var (
	// Stdin and Stdout are the streams used by the stdio transport.
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
)

// ServeCmd runs the IPC host adapter until its input ends or a termination signal arrives.
var ServeCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve commands to a front end over stdio or a localhost WebSocket",
	Description: `Serve reads request frames and writes response frames.

With the stdio transport each line on stdin is one JSON request and each line
on stdout is one JSON response. With the websocket transport frames are
exchanged on ws://ADDR/ipc, optionally guarded by a token.

The first interrupt stops taking new requests and lets in-flight requests
finish. A second interrupt cancels them.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     transportFlag,
			Aliases:  []string{"t"},
			Usage:    fmt.Sprintf("Set the transport: %s or %s", config.TransportStdio, config.TransportWebSocket),
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     addrFlag,
			Usage:    "Set the WebSocket listen address",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     tokenFlag,
			Usage:    "Require this token from WebSocket clients",
			Sources:  cli.EnvVars("AIKEY_TOKEN"),
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

	cfg := *st.Config

	if cmd.IsSet(transportFlag) {
		cfg.Transport = cmd.String(transportFlag)
	}

	if cmd.IsSet(addrFlag) {
		cfg.ListenAddr = cmd.String(addrFlag)
	}

	if cmd.IsSet(tokenFlag) {
		cfg.AuthToken = cmd.String(tokenFlag)
	}

	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	srv := NewServer(st.Dispatcher, &cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, srv.Stop, cancel)

	ctxlog.Info(ctx, "serving", "transport", cfg.Transport, "addr", cfg.ListenAddr)

	if err := srv.Serve(ctx); err != nil {
		return errors.Join(ErrServe, err)
	}

	return nil
}

// NewServer returns the transport selected by cfg.
func NewServer(d *ipc.Dispatcher, cfg *config.Config) ipc.Server {
	if cfg.Transport == config.TransportWebSocket {
		return ipc.NewWebSocketServer(d, cfg.ListenAddr, cfg.AuthToken)
	}

	return ipc.NewStdioServer(d, Stdin, Stdout)
}
