// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	internalconfig "github.com/fionatony/aikey/internal/config"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestConfigCmdRedactsToken(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/aikey.yaml", []byte("transport: websocket\nauth_token: s3cret\n"), 0o644))

	stubs := gostub.Stub(&cmdstate.LogWriter, io.Writer(io.Discard)).
		Stub(&internalconfig.FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	out := &bytes.Buffer{}
	root := &cli.Command{
		Name:     "aikey",
		Flags:    cmdstate.Flags(),
		Before:   cmdstate.Before,
		Commands: []*cli.Command{ConfigCmd},
		Writer:   out,
	}

	require.NoError(t, root.Run(context.Background(), []string{"aikey", "--config", "/aikey.yaml", "config", "--format", "yaml"}))

	assert.Contains(t, out.String(), "transport: websocket")
	assert.NotContains(t, out.String(), "s3cret")
}
