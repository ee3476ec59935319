// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ipc

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const testToken = "s3cret"

func startTestServer(t *testing.T, token string) (*WebSocketServer, chan error) {
	t.Helper()

	d, _ := newTestDispatcher(t)
	srv := NewWebSocketServer(d, "127.0.0.1:0", token)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errCh := make(chan error, 1)

	go func() { errCh <- srv.Serve(ctx) }()

	select {
	case <-srv.Ready():
	case <-time.After(3 * time.Second):
		t.Fatal("server did not start in time")
	}

	return srv, errCh
}

func dialWS(t *testing.T, addr, query string) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, "ws://"+addr+WebSocketPath+query, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close(websocket.StatusNormalClosure, "") })

	return ws
}

func roundTrip(t *testing.T, ws *websocket.Conn, req Frame) Frame {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	require.NoError(t, wsjson.Write(ctx, ws, req))

	var resp Frame
	require.NoError(t, wsjson.Read(ctx, ws, &resp))

	return resp
}

func TestWebSocketServerRoundTrip(t *testing.T) {
	srv, _ := startTestServer(t, testToken)
	ws := dialWS(t, srv.Addr(), "?token="+testToken)

	resp := roundTrip(t, ws, Frame{
		Type: FrameTypeRequest, ID: 1, Cmd: "save_file",
		Args: json.RawMessage(`{"file_path":"/tmp/x.txt","content":"hello"}`),
	})
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `true`, string(resp.Result))

	resp = roundTrip(t, ws, Frame{
		Type: FrameTypeRequest, ID: 2, Cmd: "read_file",
		Args: json.RawMessage(`{"filePath":"/tmp/x.txt"}`),
	})
	require.Nil(t, resp.Error)
	assert.Equal(t, uint64(2), resp.ID)
	assert.JSONEq(t, `"hello"`, string(resp.Result))

	resp = roundTrip(t, ws, Frame{Type: FrameTypeRequest, ID: 3, Cmd: "set_env_var",
		Args: json.RawMessage(`{"name":"A","value":"b"}`)})
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UnsupportedPlatform", resp.Error.Kind)
}

func TestWebSocketServerMalformedFrame(t *testing.T) {
	srv, _ := startTestServer(t, "")
	ws := dialWS(t, srv.Addr(), "")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte("{nope")))

	var resp Frame
	require.NoError(t, wsjson.Read(ctx, ws, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, KindInvalidRequest, resp.Error.Kind)

	resp = roundTrip(t, ws, Frame{ID: 4, Cmd: "file_exists", Args: json.RawMessage(`{"file_path":"/"}`)})
	assert.JSONEq(t, `true`, string(resp.Result), "connection survives a malformed frame")
}

func TestWebSocketServerRejectsBadToken(t *testing.T) {
	srv, _ := startTestServer(t, testToken)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, "ws://"+srv.Addr()+WebSocketPath+"?token=wrong", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocketServerBearerHeader(t *testing.T) {
	srv, _ := startTestServer(t, testToken)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, "ws://"+srv.Addr()+WebSocketPath, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + testToken}},
	})
	require.NoError(t, err)

	_ = ws.Close(websocket.StatusNormalClosure, "")
}

func TestWebSocketServerStop(t *testing.T) {
	srv, errCh := startTestServer(t, "")
	ws := dialWS(t, srv.Addr(), "")

	resp := roundTrip(t, ws, Frame{ID: 1, Cmd: "file_exists", Args: json.RawMessage(`{"file_path":"/"}`)})
	require.Nil(t, resp.Error)

	readErr := make(chan error, 1)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, _, err := ws.Read(ctx)
		readErr <- err
	}()

	srv.Stop()

	select {
	case err := <-readErr:
		assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
	case <-time.After(5 * time.Second):
		t.Fatal("client was not closed after Stop")
	}

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + 3*time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}

func TestWebSocketServerListenError(t *testing.T) {
	d, _ := newTestDispatcher(t)

	err := NewWebSocketServer(d, "256.0.0.1:0", "").Serve(context.Background())
	assert.ErrorIs(t, err, ErrListen)
}
