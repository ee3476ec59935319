// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a structured slog logger in a context.Context.
//
// Output goes to stderr so that stdout stays free for the stdio IPC transport.
// The default handler is a pretty console handler; a JSON handler is available
// for machine consumption.
package ctxlog
