// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package setenvvar

import "github.com/fionatony/aikey/internal/commandregistry"

func init() {
	commandregistry.Register(CommandName, &Commander{})
}
