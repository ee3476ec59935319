// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ipc adapts the command registry to a host front end.
//
// Requests and responses are JSON frames:
//
//	{"type":"request","id":1,"cmd":"read_file","args":{"file_path":"/tmp/x.txt"}}
//	{"type":"response","id":1,"cmd":"read_file","result":"hello"}
//	{"type":"response","id":2,"cmd":"read_file","error":{"kind":"IoError","message":"..."}}
//
// Two transports carry them: newline-delimited frames over stdio and
// text messages over a localhost WebSocket. Every request runs on its own goroutine.
package ipc
