// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/hashicorp/go-multierror"
)

// ErrInvalidConfig is returned when one or more settings are invalid.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if _, err := ctxlog.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
	}

	switch strings.ToLower(c.LogFormat) {
	case ctxlog.FormatPretty, ctxlog.FormatJSON:
	default:
		result = multierror.Append(result, fmt.Errorf("log_format: %w: %q", ctxlog.ErrUnknownFormat, c.LogFormat))
	}

	switch c.Transport {
	case TransportStdio:
	case TransportWebSocket:
		if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
			result = multierror.Append(result, fmt.Errorf("listen_addr: %w", err))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("transport: must be %q or %q, got %q",
			TransportStdio, TransportWebSocket, c.Transport))
	}

	if c.MaxOutputBytes <= 0 {
		result = multierror.Append(result, fmt.Errorf("max_output_bytes: must be positive, got %d", c.MaxOutputBytes))
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}
