// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package surface implements the command surface exposed to the front end:
// read a text file, save a text file, check that a file exists and, on Windows,
// persistently set an environment variable.
//
// Each operation is stateless and maps to exactly one filesystem call or one
// subprocess invocation. Errors carry the platform's message unmodified.
package surface
