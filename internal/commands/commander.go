// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"context"

	"github.com/fionatony/aikey/internal/surface"
)

// Commander runs one host command against a surface.
type Commander interface {
	// Invoke decodes args, a JSON object of named parameters, and runs the command.
	// The result is marshaled to JSON by the caller.
	Invoke(ctx context.Context, s *surface.Surface, args []byte) (any, error)
	// Params lists the parameter names in positional order.
	Params() []string
}
