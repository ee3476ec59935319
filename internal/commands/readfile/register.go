// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package readfile

import "github.com/fionatony/aikey/internal/commandregistry"

func init() {
	commandregistry.Register(CommandName, &Commander{})
}
