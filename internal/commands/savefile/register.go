// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package savefile

import "github.com/fionatony/aikey/internal/commandregistry"

func init() {
	commandregistry.Register(CommandName, &Commander{})
}
