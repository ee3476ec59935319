// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCaller serves the file commands from a map.
type fakeCaller struct {
	files   map[string]string
	saveErr error
	calls   []string
}

func (f *fakeCaller) Call(_ context.Context, cmd string, args, out any) error {
	f.calls = append(f.calls, cmd)

	b, err := json.Marshal(args)
	if err != nil {
		return err
	}

	var a map[string]string
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}

	var result any

	switch cmd {
	case "file_exists":
		_, ok := f.files[a["file_path"]]
		result = ok
	case "read_file":
		content, ok := f.files[a["file_path"]]
		if !ok {
			return errors.New("No such file or directory (os error 2)")
		}

		result = content
	case "save_file":
		if f.saveErr != nil {
			return f.saveErr
		}

		f.files[a["file_path"]] = a["content"]
		result = true
	default:
		return errors.New("unknown command: " + cmd)
	}

	rb, _ := json.Marshal(result)

	return json.Unmarshal(rb, out)
}

func loaded(t *testing.T, m *Model) *Model {
	t.Helper()

	msg := m.load()()
	next, _ := m.Update(msg)

	return next.(*Model)
}

func typeText(m *Model, s string) *Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(*Model)
}

func TestModelLoadExisting(t *testing.T) {
	caller := &fakeCaller{files: map[string]string{"/tmp/x.txt": "hello"}}
	m := loaded(t, NewModel(context.Background(), caller, "/tmp/x.txt"))

	assert.Equal(t, StatusClean, m.Status())
	assert.Equal(t, "hello", m.Content())
	assert.Equal(t, []string{"file_exists", "read_file"}, caller.calls)
	assert.Contains(t, m.View(), "/tmp/x.txt")
}

func TestModelLoadNewFile(t *testing.T) {
	caller := &fakeCaller{files: map[string]string{}}
	m := loaded(t, NewModel(context.Background(), caller, "/tmp/new.txt"))

	assert.Equal(t, StatusClean, m.Status())
	assert.Empty(t, m.Content())
	assert.Equal(t, "new file", m.Message())
	assert.Equal(t, []string{"file_exists"}, caller.calls, "a missing file is not read")
}

func TestModelEditAndSave(t *testing.T) {
	caller := &fakeCaller{files: map[string]string{}}
	m := loaded(t, NewModel(context.Background(), caller, "/tmp/x.txt"))

	m = typeText(m, "hello")
	assert.Equal(t, StatusModified, m.Status())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(*Model)
	require.NotNil(t, cmd)
	assert.Equal(t, StatusSaving, m.Status())

	next, _ = m.Update(cmd())
	m = next.(*Model)

	assert.Equal(t, StatusSaved, m.Status())
	assert.Equal(t, "hello", caller.files["/tmp/x.txt"])
}

func TestModelSaveError(t *testing.T) {
	caller := &fakeCaller{files: map[string]string{}, saveErr: errors.New("Access is denied. (os error 5)")}
	m := loaded(t, NewModel(context.Background(), caller, "/tmp/x.txt"))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	next, _ = next.Update(cmd())
	m = next.(*Model)

	assert.Equal(t, StatusFailed, m.Status())
	assert.Equal(t, "Access is denied. (os error 5)", m.Message())
	assert.Contains(t, m.View(), "Access is denied.")
}

func TestModelIgnoresInputWhileLoading(t *testing.T) {
	caller := &fakeCaller{files: map[string]string{}}
	m := NewModel(context.Background(), caller, "/tmp/x.txt")

	m = typeText(m, "early")
	assert.Empty(t, m.Content())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd, "nothing is saved before the file is loaded")
}

func TestModelQuit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		t.Run(key.String(), func(t *testing.T) {
			m := NewModel(context.Background(), &fakeCaller{}, "/tmp/x.txt")

			next, cmd := m.Update(tea.KeyMsg{Type: key})
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, next.View())
		})
	}
}

func TestModelWindowSize(t *testing.T) {
	m := NewModel(context.Background(), &fakeCaller{}, "/tmp/x.txt")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(*Model)

	assert.Equal(t, 80, m.width)
	assert.Equal(t, 23, m.editor.Height())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unknown", Status(99).String())
}
