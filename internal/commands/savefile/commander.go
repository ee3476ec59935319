// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package savefile

import (
	"context"

	"github.com/fionatony/aikey/internal/commands"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/surface"
)

var _ commands.Commander = (*Commander)(nil)

// Commander implements commands.Commander for save_file.
type Commander struct{}

// Invoke writes the content and returns true.
func (c *Commander) Invoke(ctx context.Context, s *surface.Surface, args []byte) (any, error) {
	def := new(Definition)
	if err := def.decode(args); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "save_file", "path", def.FilePath, "bytes", len(def.Content))

	return s.SaveFile(def.FilePath, def.Content)
}

// Params implements commands.Commander.
func (c *Commander) Params() []string {
	return []string{ParamFilePath, ParamContent}
}
