// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config shows the effective configuration.
package config

import (
	"context"
	"fmt"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	internalconfig "github.com/fionatony/aikey/internal/config"
	"github.com/urfave/cli/v3"
)

const formatFlag = "format"

// ConfigCmd prints the configuration after defaults, the config file and flags
// have been applied. The auth token is redacted.
var ConfigCmd = &cli.Command{
	Name:  "config",
	Usage: "Show the effective configuration",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     formatFlag,
			Aliases:  []string{"f"},
			Usage:    fmt.Sprintf("Set the output format: %s or %s", internalconfig.FormatHCL, internalconfig.FormatYAML),
			Value:    internalconfig.FormatHCL,
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

	b, err := internalconfig.Render(st.Config.Redacted(), cmd.String(formatFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	_, err = cmd.Writer.Write(b)

	return err
}
