// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package readfile

import (
	"context"

	"github.com/fionatony/aikey/internal/commands"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/surface"
)

var _ commands.Commander = (*Commander)(nil)

// Commander implements commands.Commander for read_file.
type Commander struct{}

// Invoke reads the file and returns its text.
func (c *Commander) Invoke(ctx context.Context, s *surface.Surface, args []byte) (any, error) {
	def := new(Definition)
	if err := def.decode(args); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "read_file", "path", def.FilePath)

	return s.ReadFile(def.FilePath)
}

// Params implements commands.Commander.
func (c *Commander) Params() []string {
	return []string{ParamFilePath}
}
