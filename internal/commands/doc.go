// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commands defines the interface implemented by every host command
// and the helpers used to decode their named arguments.
//
// Each command lives in its own sub-package with a Definition (the named
// arguments), a Commander and an init() registration with the command registry.
package commands
