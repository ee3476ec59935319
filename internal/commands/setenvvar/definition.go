// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package setenvvar implements the set_env_var command.
package setenvvar

import "github.com/fionatony/aikey/internal/commands"

const (
	// CommandName is the name the host invokes.
	CommandName = "set_env_var"
	// ParamName is the variable name.
	ParamName = "name"
	// ParamValue is the variable value.
	ParamValue = "value"
)

// Definition is the argument object of set_env_var.
type Definition struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func (d *Definition) decode(payload []byte) error {
	args, err := commands.ParseArgs(payload)
	if err != nil {
		return err
	}

	if d.Name, err = args.String(ParamName); err != nil {
		return err
	}

	d.Value, err = args.String(ParamValue)

	return err
}
