// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate builds the state shared by every subcommand: the effective
// configuration, the logger, the command surface and the dispatcher.
// The root command's Before hook stores it in the context.
package cmdstate

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	_ "github.com/fionatony/aikey/internal/allcommands" // registers every command
	"github.com/fionatony/aikey/internal/commandregistry"
	"github.com/fionatony/aikey/internal/config"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/ipc"
	"github.com/fionatony/aikey/internal/procrun"
	"github.com/fionatony/aikey/internal/surface"
	"github.com/urfave/cli/v3"
)

const (
	// ConfigFlag names the configuration file or go-getter URL.
	ConfigFlag = "config"
	// LogLevelFlag overrides log_level.
	LogLevelFlag = "log-level"
	// LogFormatFlag overrides log_format.
	LogFormatFlag = "log-format"
)

var (
	// ErrNoState is returned when a subcommand runs without the root Before hook.
	ErrNoState = errors.New("command state not found in context")
	// ErrLoadState is returned when the state cannot be built.
	ErrLoadState = errors.New("failed to load command state")
)

// State is shared by all subcommands.
type State struct {
	Config     *config.Config
	Surface    *surface.Surface
	Dispatcher *ipc.Dispatcher
}

type contextKey struct{}

// LogWriter is where logs are written. Stdout is reserved for results and frames.
var LogWriter io.Writer = os.Stderr

// Flags returns the global flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      ConfigFlag,
			Aliases:   []string{"c"},
			Usage:     "Load configuration from a .hcl, .yaml or .yml file. Supports Hashicorp's go-getter syntax.",
			TakesFile: true,
			Sources:   cli.EnvVars("AIKEY_CONFIG"),
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     LogLevelFlag,
			Usage:    "Set the log level: debug, info, warn or error",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     LogFormatFlag,
			Usage:    "Set the log format: pretty or json",
			OnlyOnce: true,
		},
	}
}

// Before is the root command's Before hook. It loads the state and returns a
// context carrying it and the configured logger.
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	st, err := Load(ctx, cmd)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	logger, err := ctxlog.NewLogger(st.Config.LogFormat, LogWriter)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	ctx = ctxlog.New(ctx, logger)
	ctxlog.Debug(ctx, "command state loaded", "config", st.Config.Redacted())

	return WithState(ctx, st), nil
}

// Load builds the state from the configuration source and the global flags.
func Load(ctx context.Context, cmd *cli.Command) (*State, error) {
	cfg, err := config.Load(ctx, cmd.String(ConfigFlag))
	if err != nil {
		return nil, errors.Join(ErrLoadState, err)
	}

	if cmd.IsSet(LogLevelFlag) {
		cfg.LogLevel = cmd.String(LogLevelFlag)
	}

	if cmd.IsSet(LogFormatFlag) {
		cfg.LogFormat = cmd.String(LogFormatFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(ErrLoadState, err)
	}

	if err := ctxlog.SetLevel(cfg.LogLevel); err != nil {
		return nil, errors.Join(ErrLoadState, err)
	}

	return New(cfg), nil
}

// New builds the surface and dispatcher for cfg.
func New(cfg *config.Config) *State {
	runner := &procrun.OSRunner{MaxOutputBytes: cfg.MaxOutputBytes}

	opts := []surface.Option{
		surface.WithEnvSetter(surface.ForPlatform(runtime.GOOS, runner)),
	}

	if cfg.AtomicSave {
		opts = append(opts, surface.WithAtomicSave())
	}

	s := surface.New(opts...)

	return &State{
		Config:     cfg,
		Surface:    s,
		Dispatcher: ipc.NewDispatcher(commandregistry.DefaultRegistry, s),
	}
}

// WithState returns a context carrying st.
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, contextKey{}, st)
}

// FromContext returns the state stored by Before.
func FromContext(ctx context.Context) (*State, error) {
	st, ok := ctx.Value(contextKey{}).(*State)
	if !ok || st == nil {
		return nil, ErrNoState
	}

	return st, nil
}
