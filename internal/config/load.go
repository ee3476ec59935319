// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// FormatHCL renders or parses HCL.
	FormatHCL = "hcl"
	// FormatYAML renders or parses YAML.
	FormatYAML = "yaml"
)

var (
	// ErrReadConfig is returned when the configuration source cannot be read.
	ErrReadConfig = errors.New("failed to read config")
	// ErrParseConfig is returned when the configuration file cannot be decoded.
	ErrParseConfig = errors.New("failed to parse config")
	// ErrUnknownFormat is returned for a file extension or render format that is not HCL or YAML.
	ErrUnknownFormat = errors.New("unknown config format, expected .hcl, .yaml or .yml")
	// ErrRender is returned when the configuration cannot be rendered.
	ErrRender = errors.New("failed to render config")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load returns the defaults overridden by source, which may be empty.
// The result is validated.
func Load(ctx context.Context, source string) (*Config, error) {
	cfg := Default()

	if source != "" {
		data, name, err := read(ctx, source)
		if err != nil {
			return nil, err
		}

		fc, err := parse(data, name)
		if err != nil {
			return nil, err
		}

		cfg.merge(fc)
		ctxlog.Debug(ctx, "config loaded", "source", source)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsRemote reports whether source needs go-getter rather than a local read.
func IsRemote(source string) bool {
	return strings.Contains(source, "://") || strings.Contains(source, "::")
}

func read(ctx context.Context, source string) ([]byte, string, error) {
	if IsRemote(source) {
		return fetch(ctx, source)
	}

	data, err := afero.ReadFile(FsFactory(), source)
	if err != nil {
		return nil, "", errors.Join(ErrReadConfig, err)
	}

	return data, source, nil
}

func parse(data []byte, name string) (*fileConfig, error) {
	switch formatOf(name) {
	case FormatHCL:
		return parseHCL(data, name)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

func formatOf(name string) string {
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}

	ext := filepath.Ext(path.Base(filepath.ToSlash(name)))

	switch strings.ToLower(ext) {
	case ".hcl":
		return FormatHCL
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// Render writes c in format, FormatHCL or FormatYAML.
func Render(c *Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatHCL:
		return renderHCL(c), nil
	case FormatYAML, "":
		return renderYAML(c)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
