// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fileexists implements the file_exists command.
package fileexists

import "github.com/fionatony/aikey/internal/commands"

const (
	// CommandName is the name the host invokes.
	CommandName = "file_exists"
	// ParamFilePath is the path to check.
	ParamFilePath = "file_path"
)

// Definition is the argument object of file_exists.
type Definition struct {
	FilePath string `json:"file_path" yaml:"file_path"`
}

func (d *Definition) decode(payload []byte) error {
	args, err := commands.ParseArgs(payload)
	if err != nil {
		return err
	}

	d.FilePath, err = args.String(ParamFilePath)

	return err
}
