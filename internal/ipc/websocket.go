// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ipc

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/oklog/ulid/v2"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	// WebSocketPath is the endpoint front ends connect to.
	WebSocketPath     = "/ipc"
	tokenQueryParam   = "token"
	bearerPrefix      = "Bearer "
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

var (
	// ErrListen is returned when the listen address cannot be bound.
	ErrListen = errors.New("failed to listen")
	// ErrServe is returned when the HTTP server fails.
	ErrServe = errors.New("websocket server failed")
)

var localOrigins = []string{
	"localhost",
	"localhost:*",
	"127.0.0.1",
	"127.0.0.1:*",
	"[::1]",
	"[::1]:*",
}

// WebSocketServer serves request frames sent as WebSocket text messages.
type WebSocketServer struct {
	dispatcher *Dispatcher
	addr       string
	token      string
	conns      sync.Map // connection id -> *websocket.Conn
	ready      chan struct{}
	boundAddr  string
	stopCh     chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
	stopping   bool
	inflight   sync.WaitGroup
}

// NewWebSocketServer creates a server for addr. An empty token disables authentication.
func NewWebSocketServer(d *Dispatcher, addr, token string) *WebSocketServer {
	return &WebSocketServer{
		dispatcher: d,
		addr:       addr,
		token:      token,
		ready:      make(chan struct{}),
		stopCh:     make(chan struct{}),
	}
}

// Ready is closed once the server is listening.
func (s *WebSocketServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address. Only valid after Ready is closed.
func (s *WebSocketServer) Addr() string {
	return s.boundAddr
}

// Stop implements Server.
func (s *WebSocketServer) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Serve implements Server.
func (s *WebSocketServer) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Join(ErrListen, err)
	}

	s.boundAddr = listener.Addr().String()
	close(s.ready)

	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, s.handleUpgrade)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveDone := make(chan struct{})
	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)

		select {
		case <-ctx.Done():
		case <-s.stopCh:
		case <-serveDone:
		}

		s.shutdown(ctx, srv)
	}()

	ctxlog.Info(ctx, "websocket transport ready", "addr", s.boundAddr, "path", WebSocketPath)

	err = srv.Serve(listener)
	close(serveDone)
	<-shutdownDone

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrServe, err)
	}

	return nil
}

// shutdown stops accepting connections, waits for in-flight requests and then closes every connection.
func (s *WebSocketServer) shutdown(ctx context.Context, srv *http.Server) {
	s.mu.Lock()
	s.stopping = true
	s.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		ctxlog.Warn(ctx, "websocket transport shutdown", "error", err)
	}

	s.inflight.Wait()

	s.conns.Range(func(key, value any) bool {
		ws := value.(*websocket.Conn) //nolint:forcetypeassert
		_ = ws.Close(websocket.StatusGoingAway, "server shutting down")
		s.conns.Delete(key)

		return true
	})

	ctxlog.Debug(ctx, "websocket transport stopped")
}

func (s *WebSocketServer) authorized(r *http.Request) bool {
	if s.token == "" {
		return true
	}

	token := r.URL.Query().Get(tokenQueryParam)
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), bearerPrefix)
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}

func (s *WebSocketServer) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		ctxlog.Warn(r.Context(), "websocket transport rejected connection", "remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)

		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: localOrigins,
	})
	if err != nil {
		ctxlog.Warn(r.Context(), "websocket accept failed", "error", err)
		return
	}

	ws.SetReadLimit(MaxFrameBytes)

	connID := ulid.Make().String()
	logger := ctxlog.Logger(r.Context()).With("conn_id", connID)
	ctx := ctxlog.New(r.Context(), logger)

	s.conns.Store(connID, ws)
	logger.Info("websocket client connected", "remote", r.RemoteAddr)

	s.readLoop(ctx, ws)

	s.conns.Delete(connID)
	_ = ws.Close(websocket.StatusNormalClosure, "")
	logger.Info("websocket client disconnected")
}

func (s *WebSocketServer) readLoop(ctx context.Context, ws *websocket.Conn) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			ctxlog.Debug(ctx, "websocket read ended", "status", websocket.CloseStatus(err), "error", err)
			return
		}

		req, err := decodeFrame(data)
		if err != nil {
			s.write(ctx, ws, invalidRequest(0, err))
			continue
		}

		if !s.track() {
			return
		}

		go func() {
			defer s.inflight.Done()
			s.write(ctx, ws, s.dispatcher.Handle(ctx, req))
		}()
	}
}

// track registers an in-flight request, refusing once shutdown has begun.
func (s *WebSocketServer) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopping {
		return false
	}

	s.inflight.Add(1)

	return true
}

func (s *WebSocketServer) write(ctx context.Context, ws *websocket.Conn, f Frame) {
	if err := wsjson.Write(ctx, ws, f); err != nil {
		ctxlog.Debug(ctx, "websocket transport", "error", errors.Join(ErrWriteFrame, err), "id", f.ID)
	}
}
