// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/fionatony/aikey/cmd/aikey/cmdstate"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestCommandsCmd(t *testing.T) {
	stubs := gostub.Stub(&cmdstate.LogWriter, io.Writer(io.Discard))
	defer stubs.Reset()

	out := &bytes.Buffer{}
	root := &cli.Command{
		Name:     "aikey",
		Flags:    cmdstate.Flags(),
		Before:   cmdstate.Before,
		Commands: []*cli.Command{CommandsCmd},
		Writer:   out,
	}

	require.NoError(t, root.Run(context.Background(), []string{"aikey", "commands"}))

	assert.Equal(t, `Available commands:

- file_exists file_path
- read_file file_path
- save_file file_path content
- set_env_var name value
`, out.String())
}
