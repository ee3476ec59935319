// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"strings"

	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/procrun"
)

const (
	// TransportStdio serves newline-delimited frames on stdin and stdout.
	TransportStdio = "stdio"
	// TransportWebSocket serves frames on a localhost WebSocket.
	TransportWebSocket = "websocket"
	// DefaultListenAddr is the WebSocket listen address.
	DefaultListenAddr = "127.0.0.1:7420"
)

// Config is the effective configuration.
type Config struct {
	LogLevel       string `hcl:"log_level" yaml:"log_level"`
	LogFormat      string `hcl:"log_format" yaml:"log_format"`
	Transport      string `hcl:"transport" yaml:"transport"`
	ListenAddr     string `hcl:"listen_addr" yaml:"listen_addr"`
	AuthToken      string `hcl:"auth_token" yaml:"auth_token"`
	AtomicSave     bool   `hcl:"atomic_save" yaml:"atomic_save"`
	MaxOutputBytes int64  `hcl:"max_output_bytes" yaml:"max_output_bytes"`
}

// Default returns the configuration used when no file is given.
// The log level is the one ctxlog read from the environment at startup.
func Default() *Config {
	return &Config{
		LogLevel:       strings.ToLower(ctxlog.LevelVar.Level().String()),
		LogFormat:      ctxlog.FormatPretty,
		Transport:      TransportStdio,
		ListenAddr:     DefaultListenAddr,
		MaxOutputBytes: procrun.DefaultMaxOutputBytes,
	}
}

// fileConfig is what a file may set. A nil field keeps the default.
type fileConfig struct {
	LogLevel       *string `hcl:"log_level,optional" yaml:"log_level"`
	LogFormat      *string `hcl:"log_format,optional" yaml:"log_format"`
	Transport      *string `hcl:"transport,optional" yaml:"transport"`
	ListenAddr     *string `hcl:"listen_addr,optional" yaml:"listen_addr"`
	AuthToken      *string `hcl:"auth_token,optional" yaml:"auth_token"`
	AtomicSave     *bool   `hcl:"atomic_save,optional" yaml:"atomic_save"`
	MaxOutputBytes *int64  `hcl:"max_output_bytes,optional" yaml:"max_output_bytes"`
}

func (c *Config) merge(f *fileConfig) {
	setIfNotNil(&c.LogLevel, f.LogLevel)
	setIfNotNil(&c.LogFormat, f.LogFormat)
	setIfNotNil(&c.Transport, f.Transport)
	setIfNotNil(&c.ListenAddr, f.ListenAddr)
	setIfNotNil(&c.AuthToken, f.AuthToken)
	setIfNotNil(&c.AtomicSave, f.AtomicSave)
	setIfNotNil(&c.MaxOutputBytes, f.MaxOutputBytes)
}

func setIfNotNil[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Redacted returns a copy with the auth token hidden, for display.
func (c *Config) Redacted() *Config {
	r := *c
	if r.AuthToken != "" {
		r.AuthToken = "********"
	}

	return &r
}
