// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package allcommands imports all command packages to ensure their registration.
package allcommands

import (
	// Import all command packages to trigger their init() functions.
	_ "github.com/fionatony/aikey/internal/commands/fileexists"
	_ "github.com/fionatony/aikey/internal/commands/readfile"
	_ "github.com/fionatony/aikey/internal/commands/savefile"
	_ "github.com/fionatony/aikey/internal/commands/setenvvar"
)
