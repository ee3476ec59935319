// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
)

// Caller runs a host command, as ipc.Dispatcher does.
type Caller interface {
	Call(ctx context.Context, cmd string, args, out any) error
}

// Status is the state of the file being edited.
type Status int

const (
	StatusLoading Status = iota
	StatusClean
	StatusModified
	StatusSaving
	StatusSaved
	StatusFailed
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusClean:
		return "clean"
	case StatusModified:
		return "modified"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const statusLineHeight = 1

// Model is the editor state.
type Model struct {
	ctx      context.Context
	caller   Caller
	path     string
	editor   textarea.Model
	status   Status
	message  string
	newFile  bool
	quitting bool
	width    int
	height   int
	styles   *Styles
}

// Styles contains all the styling for the editor.
type Styles struct {
	Path     lipgloss.Style
	Clean    lipgloss.Style
	Modified lipgloss.Style
	Failed   lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles creates the default styling for the editor.
func NewStyles() *Styles {
	return &Styles{
		Path: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Clean: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Modified: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// NewModel creates an editor for path. Nothing is read until Init runs.
func NewModel(ctx context.Context, caller Caller, path string) *Model {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Placeholder = "empty file"
	ta.Focus()

	return &Model{
		ctx:    ctx,
		caller: caller,
		path:   path,
		editor: ta,
		status: StatusLoading,
		styles: NewStyles(),
	}
}

// Status returns the current status.
func (m *Model) Status() Status {
	return m.status
}

// Message returns the last error or information message.
func (m *Model) Message() string {
	return m.message
}

// Content returns the text in the editor.
func (m *Model) Content() string {
	return m.editor.Value()
}
