// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"

	"github.com/goccy/go-yaml"
)

func parseYAML(data []byte) (*fileConfig, error) {
	fc := new(fileConfig)
	if err := yaml.UnmarshalWithOptions(data, fc, yaml.Strict()); err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}

	return fc, nil
}

func renderYAML(c *Config) ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Join(ErrRender, err)
	}

	return b, nil
}
