// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrEditor is returned when the terminal program fails.
	ErrEditor = errors.New("editor failed")
	// ErrUnsaved is returned when the editor quits with changes that were not saved.
	ErrUnsaved = errors.New("quit with unsaved changes")
)

// Run opens the editor on path and blocks until the user quits or ctx is done.
func Run(ctx context.Context, caller Caller, path string, options ...tea.ProgramOption) error {
	model := NewModel(ctx, caller, path)

	options = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, options...)

	final, err := tea.NewProgram(model, options...).Run()
	if err != nil {
		return errors.Join(ErrEditor, err)
	}

	if m, ok := final.(*Model); ok && m.status == StatusModified {
		return ErrUnsaved
	}

	return nil
}
