// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ipc

import (
	"context"
	"encoding/json"
	"testing"

	_ "github.com/fionatony/aikey/internal/allcommands"
	"github.com/fionatony/aikey/internal/commandregistry"
	"github.com/fionatony/aikey/internal/surface"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	s := surface.New(surface.WithFs(fs), surface.WithEnvSetter(surface.Unsupported{}))

	return NewDispatcher(commandregistry.DefaultRegistry, s), fs
}

func TestDispatcherHandle(t *testing.T) {
	d, fs := newTestDispatcher(t)
	require.NoError(t, afero.WriteFile(fs, "/tmp/x.txt", []byte("hello"), 0o644))

	tests := []struct {
		name       string
		req        Frame
		wantResult string
		wantKind   string
		wantMsg    string
	}{
		{
			name:       "read file",
			req:        Frame{Type: FrameTypeRequest, ID: 1, Cmd: "read_file", Args: json.RawMessage(`{"file_path":"/tmp/x.txt"}`)},
			wantResult: `"hello"`,
		},
		{
			name:       "empty type is a request",
			req:        Frame{ID: 2, Cmd: "file_exists", Args: json.RawMessage(`{"filePath":"/tmp/x.txt"}`)},
			wantResult: `true`,
		},
		{
			name:       "file exists false",
			req:        Frame{ID: 3, Cmd: "file_exists", Args: json.RawMessage(`{"file_path":"/tmp/missing.txt"}`)},
			wantResult: `false`,
		},
		{
			name:     "io error",
			req:      Frame{ID: 4, Cmd: "read_file", Args: json.RawMessage(`{"file_path":"/tmp/missing.txt"}`)},
			wantKind: string(surface.KindIo),
		},
		{
			name:     "unsupported platform",
			req:      Frame{ID: 5, Cmd: "set_env_var", Args: json.RawMessage(`{"name":"A","value":"b"}`)},
			wantKind: string(surface.KindUnsupportedPlatform),
			wantMsg:  "This function is only supported on Windows",
		},
		{
			name:     "unknown command",
			req:      Frame{ID: 6, Cmd: "delete_file"},
			wantKind: KindInvalidRequest,
			wantMsg:  "unknown command: delete_file",
		},
		{
			name:     "missing command",
			req:      Frame{ID: 7},
			wantKind: KindInvalidRequest,
			wantMsg:  ErrMissingCommand.Error(),
		},
		{
			name:     "response frame",
			req:      Frame{Type: FrameTypeResponse, ID: 8, Cmd: "read_file"},
			wantKind: KindInvalidRequest,
		},
		{
			name:     "missing argument",
			req:      Frame{ID: 9, Cmd: "save_file", Args: json.RawMessage(`{"file_path":"/tmp/y.txt"}`)},
			wantKind: KindInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Handle(context.Background(), tt.req)

			assert.Equal(t, FrameTypeResponse, resp.Type)
			assert.Equal(t, tt.req.ID, resp.ID)

			if tt.wantKind == "" {
				require.Nil(t, resp.Error)
				assert.JSONEq(t, tt.wantResult, string(resp.Result))

				return
			}

			require.NotNil(t, resp.Error)
			assert.Nil(t, resp.Result)
			assert.Equal(t, tt.wantKind, resp.Error.Kind)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestDispatcherCall(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	var saved bool
	require.NoError(t, d.Call(ctx, "save_file", map[string]string{"file_path": "/tmp/x.txt", "content": "hello"}, &saved))
	assert.True(t, saved)

	var content string
	require.NoError(t, d.Call(ctx, "read_file", map[string]string{"file_path": "/tmp/x.txt"}, &content))
	assert.Equal(t, "hello", content)

	require.NoError(t, d.Call(ctx, "file_exists", map[string]string{"file_path": "/tmp/x.txt"}, nil))

	err := d.Call(ctx, "set_env_var", map[string]string{"name": "A", "value": "b"}, nil)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, string(surface.KindUnsupportedPlatform), callErr.Kind)

	var wrongType int
	assert.ErrorIs(t, d.Call(ctx, "read_file", map[string]string{"file_path": "/tmp/x.txt"}, &wrongType), ErrDecodeResult)
}

func TestDispatcherNamesAndParams(t *testing.T) {
	d, _ := newTestDispatcher(t)

	assert.Equal(t, []string{"file_exists", "read_file", "save_file", "set_env_var"}, d.Names())

	params, err := d.Params("save_file")
	require.NoError(t, err)
	assert.Equal(t, []string{"file_path", "content"}, params)

	_, err = d.Params("nope")
	assert.ErrorIs(t, err, commandregistry.ErrUnknownCommand)
}
