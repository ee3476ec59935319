// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/fionatony/aikey/internal/ctxlog"
)

const scanBufferInitial = 64 * 1024

var (
	// ErrReadFrame is returned when the input stream fails.
	ErrReadFrame = errors.New("failed to read frame")
	// ErrWriteFrame is logged when a response cannot be written.
	ErrWriteFrame = errors.New("failed to write frame")
)

// Server is a transport that serves requests until stopped.
type Server interface {
	// Serve blocks until the input ends, Stop is called or ctx is done.
	// In-flight requests finish before it returns.
	Serve(ctx context.Context) error
	// Stop asks Serve to stop taking new requests.
	Stop()
}

var (
	_ Server = (*StdioServer)(nil)
	_ Server = (*WebSocketServer)(nil)
)

// StdioServer reads one request frame per line and writes one response frame per line.
type StdioServer struct {
	dispatcher *Dispatcher
	in         io.Reader
	mu         sync.Mutex
	enc        *json.Encoder
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewStdioServer creates a StdioServer reading from in and writing to out.
func NewStdioServer(d *Dispatcher, in io.Reader, out io.Writer) *StdioServer {
	return &StdioServer{
		dispatcher: d,
		in:         in,
		enc:        json.NewEncoder(out),
		stopCh:     make(chan struct{}),
	}
}

// Stop implements Server.
func (s *StdioServer) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Serve implements Server. Reaching the end of the input is not an error.
// A read blocked on the input is abandoned when Serve returns for another reason.
func (s *StdioServer) Serve(ctx context.Context) error {
	lines := make(chan []byte)
	done := make(chan struct{})

	defer close(done)

	var scanErr error

	go func() {
		defer close(lines)

		sc := bufio.NewScanner(s.in)
		sc.Buffer(make([]byte, 0, scanBufferInitial), MaxFrameBytes)

		for sc.Scan() {
			select {
			case lines <- bytes.Clone(sc.Bytes()):
			case <-done:
				return
			}
		}

		scanErr = sc.Err()
	}()

	ctxlog.Info(ctx, "stdio transport ready")

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			ctxlog.Debug(ctx, "stdio transport stopping", "reason", ctx.Err())
			return nil
		case <-s.stopCh:
			ctxlog.Debug(ctx, "stdio transport stopping", "reason", "stop requested")
			return nil
		case line, ok := <-lines:
			if !ok {
				if scanErr != nil {
					return errors.Join(ErrReadFrame, scanErr)
				}

				ctxlog.Debug(ctx, "stdio transport input closed")

				return nil
			}

			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}

			req, err := decodeFrame(line)
			if err != nil {
				s.write(ctx, invalidRequest(0, err))
				continue
			}

			wg.Add(1)

			go func() {
				defer wg.Done()
				s.write(ctx, s.dispatcher.Handle(ctx, req))
			}()
		}
	}
}

func (s *StdioServer) write(ctx context.Context, f Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(f); err != nil {
		ctxlog.Error(ctx, "stdio transport", "error", errors.Join(ErrWriteFrame, err), "id", f.ID)
	}
}
