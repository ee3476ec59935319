// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes.
//
// NO_COLOR disables colour everywhere. FORCE_COLOR enables it for writers that
// are not terminals. Otherwise colour is used only when writing to a terminal.
package color
