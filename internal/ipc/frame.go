// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ipc

import (
	"encoding/json"
	"errors"
)

// FrameType distinguishes requests from responses.
type FrameType string

const (
	// FrameTypeRequest is sent by the front end. An empty type is read as a request.
	FrameTypeRequest FrameType = "request"
	// FrameTypeResponse is sent back for every request.
	FrameTypeResponse FrameType = "response"
)

// KindInvalidRequest is the error kind for requests that never reached a command:
// malformed frames, unknown commands and bad arguments.
const KindInvalidRequest = "InvalidRequest"

// MaxFrameBytes is the largest frame accepted by either transport.
const MaxFrameBytes = 64 * 1024 * 1024 // 64MB

var (
	// ErrMalformedFrame is returned when a frame is not valid JSON.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrNotRequest is returned when a frame sent to the host is not a request.
	ErrNotRequest = errors.New("frame is not a request")
	// ErrMissingCommand is returned when a request names no command.
	ErrMissingCommand = errors.New("request has no cmd")
)

// Frame is the unit exchanged with the front end.
type Frame struct {
	Type   FrameType       `json:"type"`
	ID     uint64          `json:"id"`
	Cmd    string          `json:"cmd,omitempty"`
	Args   json.RawMessage `json:"args,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody is the error half of a response.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func decodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, errors.Join(ErrMalformedFrame, err)
	}

	return f, nil
}

func invalidRequest(id uint64, err error) Frame {
	return Frame{
		Type:  FrameTypeResponse,
		ID:    id,
		Error: &ErrorBody{Kind: KindInvalidRequest, Message: err.Error()},
	}
}
