// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fionatony/aikey/internal/commandregistry"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/surface"
)

var (
	// ErrEncodeResult is returned when a command result cannot be marshaled.
	ErrEncodeResult = errors.New("failed to encode command result")
	// ErrDecodeResult is returned by Call when the result does not fit the output value.
	ErrDecodeResult = errors.New("failed to decode command result")
)

// Dispatcher turns request frames into response frames.
type Dispatcher struct {
	registry commandregistry.Registry
	surface  *surface.Surface
	nextID   atomic.Uint64
}

// NewDispatcher creates a Dispatcher running commands from registry against s.
func NewDispatcher(registry commandregistry.Registry, s *surface.Surface) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		surface:  s,
	}
}

// Handle runs one request and returns its response. It never fails:
// every problem is reported in the response error.
func (d *Dispatcher) Handle(ctx context.Context, req Frame) Frame {
	if req.Type != "" && req.Type != FrameTypeRequest {
		return invalidRequest(req.ID, fmt.Errorf("%w: %q", ErrNotRequest, req.Type))
	}

	if req.Cmd == "" {
		return invalidRequest(req.ID, ErrMissingCommand)
	}

	logger := ctxlog.Logger(ctx).With("cmd", req.Cmd, "id", req.ID)
	start := time.Now()

	result, err := d.registry.Dispatch(ctxlog.New(ctx, logger), d.surface, req.Cmd, req.Args)

	resp := Frame{
		Type: FrameTypeResponse,
		ID:   req.ID,
		Cmd:  req.Cmd,
	}

	if err == nil {
		resp.Result, err = json.Marshal(result)
		if err != nil {
			err = errors.Join(ErrEncodeResult, err)
		}
	}

	if err != nil {
		resp.Result = nil
		resp.Error = errorBody(err)
	}

	logger.Debug("request handled", "duration", time.Since(start), "error", resp.Error)

	return resp
}

// CallError is the error returned by Call for an error response.
type CallError struct {
	Kind    string
	Message string
}

// Error implements the error interface. It returns the message unchanged.
func (e *CallError) Error() string {
	return e.Message
}

// Call runs cmd with args, which are marshaled to JSON, and decodes the result into out.
// out may be nil when the result is not needed.
func (d *Dispatcher) Call(ctx context.Context, cmd string, args, out any) error {
	payload, err := json.Marshal(args)
	if err != nil {
		return &CallError{Kind: KindInvalidRequest, Message: err.Error()}
	}

	resp := d.Handle(ctx, Frame{
		Type: FrameTypeRequest,
		ID:   d.nextID.Add(1),
		Cmd:  cmd,
		Args: payload,
	})

	if resp.Error != nil {
		return &CallError{Kind: resp.Error.Kind, Message: resp.Error.Message}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Result, out); err != nil {
		return errors.Join(ErrDecodeResult, err)
	}

	return nil
}

// Names lists the commands the dispatcher can run, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.registry))
	for name := range d.registry.Names() {
		names = append(names, name)
	}

	return names
}

// Params returns the positional parameter names of cmd.
func (d *Dispatcher) Params(cmd string) ([]string, error) {
	commander, err := d.registry.Lookup(cmd)
	if err != nil {
		return nil, err
	}

	return commander.Params(), nil
}

func errorBody(err error) *ErrorBody {
	if kind, ok := surface.KindOf(err); ok {
		return &ErrorBody{Kind: string(kind), Message: err.Error()}
	}

	return &ErrorBody{Kind: KindInvalidRequest, Message: err.Error()}
}
