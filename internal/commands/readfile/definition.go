// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package readfile implements the read_file command.
package readfile

import "github.com/fionatony/aikey/internal/commands"

const (
	// CommandName is the name the host invokes.
	CommandName = "read_file"
	// ParamFilePath is the path of the file to read.
	ParamFilePath = "file_path"
)

// Definition is the argument object of read_file.
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
