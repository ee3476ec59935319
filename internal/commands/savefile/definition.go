// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package savefile implements the save_file command.
package savefile

import "github.com/fionatony/aikey/internal/commands"

const (
	// CommandName is the name the host invokes.
	CommandName = "save_file"
	// ParamFilePath is the path of the file to write.
	ParamFilePath = "file_path"
	// ParamContent is the text to write.
	ParamContent = "content"
)

// Definition is the argument object of save_file.
type Definition struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	Content  string `json:"content" yaml:"content"`
}

func (d *Definition) decode(payload []byte) error {
	args, err := commands.ParseArgs(payload)
	if err != nil {
		return err
	}

	if d.FilePath, err = args.String(ParamFilePath); err != nil {
		return err
	}

	d.Content, err = args.String(ParamContent)

	return err
}
