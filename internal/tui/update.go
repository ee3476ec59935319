// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fionatony/aikey/internal/commands/fileexists"
	"github.com/fionatony/aikey/internal/commands/readfile"
	"github.com/fionatony/aikey/internal/commands/savefile"
)

// LoadedMsg carries the outcome of loading the file.
type LoadedMsg struct {
	Content string
	Exists  bool
	Err     error
}

// SavedMsg carries the outcome of saving the file.
type SavedMsg struct {
	Err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.load())
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		var exists bool
		if err := m.caller.Call(m.ctx, fileexists.CommandName, fileexists.Definition{FilePath: m.path}, &exists); err != nil {
			return LoadedMsg{Err: err}
		}

		if !exists {
			return LoadedMsg{}
		}

		var content string
		err := m.caller.Call(m.ctx, readfile.CommandName, readfile.Definition{FilePath: m.path}, &content)

		return LoadedMsg{Content: content, Exists: true, Err: err}
	}
}

func (m *Model) save() tea.Cmd {
	def := savefile.Definition{FilePath: m.path, Content: m.editor.Value()}

	return func() tea.Msg {
		var ok bool
		return SavedMsg{Err: m.caller.Call(m.ctx, savefile.CommandName, def, &ok)}
	}
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width)
		m.editor.SetHeight(max(1, msg.Height-statusLineHeight))

		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.status = StatusFailed
			m.message = msg.Err.Error()

			return m, nil
		}

		m.editor.SetValue(msg.Content)
		m.status = StatusClean
		m.newFile = !msg.Exists

		if m.newFile {
			m.message = "new file"
		}

		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.status = StatusFailed
			m.message = msg.Err.Error()

			return m, nil
		}

		m.status = StatusSaved
		m.newFile = false
		m.message = ""

		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		if m.status == StatusLoading || m.status == StatusSaving {
			return m, nil
		}

		m.status = StatusSaving
		m.message = ""

		return m, m.save()
	}

	if m.status == StatusLoading {
		return m, nil
	}

	before := m.editor.Value()

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if m.editor.Value() != before {
		m.status = StatusModified
	}

	return m, cmd
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.editor.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())

	return b.String()
}

func (m *Model) statusLine() string {
	var state string

	switch m.status {
	case StatusFailed:
		state = m.styles.Failed.Render(fmt.Sprintf("%s: %s", m.status, m.message))
	case StatusModified, StatusSaving:
		state = m.styles.Modified.Render(m.status.String())
	default:
		state = m.styles.Clean.Render(m.status.String())
		if m.message != "" {
			state += " " + m.styles.Help.Render("("+m.message+")")
		}
	}

	return strings.Join([]string{
		m.styles.Path.Render(m.path),
		state,
		m.styles.Help.Render("ctrl+s save • esc quit"),
	}, "  ")
}
