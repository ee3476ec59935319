// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package setenvvar

import (
	"context"

	"github.com/fionatony/aikey/internal/commands"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/surface"
)

var _ commands.Commander = (*Commander)(nil)

// Commander implements commands.Commander for set_env_var.
type Commander struct{}

// Invoke sets the variable persistently and returns the tool output.
// The value is never logged.
func (c *Commander) Invoke(ctx context.Context, s *surface.Surface, args []byte) (any, error) {
	def := new(Definition)
	if err := def.decode(args); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "set_env_var", "name", def.Name)

	return s.SetEnvVar(ctx, def.Name, def.Value)
}

// Params implements commands.Commander.
func (c *Commander) Params() []string {
	return []string{ParamName, ParamValue}
}
