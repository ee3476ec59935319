// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui is a small terminal text editor that loads and saves one file
// through the host commands, the same way a desktop front end does.
//
// Keys: ctrl+s saves, esc or ctrl+c quits. Everything else edits the text.
package tui
