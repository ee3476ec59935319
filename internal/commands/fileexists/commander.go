// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package fileexists

import (
	"context"

	"github.com/fionatony/aikey/internal/commands"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/surface"
)

var _ commands.Commander = (*Commander)(nil)

// Commander implements commands.Commander for file_exists.
type Commander struct{}

// Invoke reports whether the path exists. Only argument decoding can fail.
func (c *Commander) Invoke(ctx context.Context, s *surface.Surface, args []byte) (any, error) {
	def := new(Definition)
	if err := def.decode(args); err != nil {
		return nil, err
	}

	exists := s.FileExists(def.FilePath)
	ctxlog.Debug(ctx, "file_exists", "path", def.FilePath, "exists", exists)

	return exists, nil
}

// Params implements commands.Commander.
func (c *Commander) Params() []string {
	return []string{ParamFilePath}
}
