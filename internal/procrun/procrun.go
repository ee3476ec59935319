// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package procrun starts an operating system process, waits for it to exit and
// captures its standard output, standard error and exit code.
//
// There is no timeout, the context is the only way to stop a process early.
package procrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/fionatony/aikey/internal/ctxlog"
)

// DefaultMaxOutputBytes is the largest amount of stdout or stderr kept per process.
const DefaultMaxOutputBytes = 8 * 1024 * 1024 // 8MB

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = errors.New("output exceeds max size")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrWaitProcess is returned when waiting for the process fails.
	ErrWaitProcess = errors.New("failed waiting for process")
	// ErrContextDone is returned when the process was killed because the context ended.
	ErrContextDone = errors.New("context done, process killed")
)

// Result is the captured outcome of a finished process.
type Result struct {
	StdOut   []byte
	StdErr   []byte
	ExitCode int
}

// Runner runs a single process to completion.
type Runner interface {
	// Run starts the executable at path with args (not including the executable name).
	// A non-zero exit code is not an error; the error is reserved for processes that
	// could not be started, waited for or read from.
	Run(ctx context.Context, path string, args ...string) (*Result, error)
}

var _ Runner = (*OSRunner)(nil)

// OSRunner runs processes with os.StartProcess.
type OSRunner struct {
	Dir            string   // Working directory, empty means the current directory.
	Env            []string // Environment, nil means inherit os.Environ().
	MaxOutputBytes int64    // Cap for each of stdout and stderr, zero means DefaultMaxOutputBytes.
}

// NewOSRunner returns an OSRunner that inherits the current directory and environment.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

type capture struct {
	b   []byte
	err error
}

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, path string, args ...string) (*Result, error) {
	logger := ctxlog.Logger(ctx).With("runnerType", "OSRunner").With("path", path)
	logger.Debug("process info", "args", args, "cwd", r.Dir)

	maxBytes := r.MaxOutputBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxOutputBytes
	}

	env := r.Env
	if env == nil {
		env = os.Environ()
	}

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}
	defer stdin.Close() //nolint:errcheck

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}
	defer rOut.Close() //nolint:errcheck

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = wOut.Close()
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}
	defer rErr.Close() //nolint:errcheck

	ps, err := os.StartProcess(path, slices.Concat([]string{filepath.Base(path)}, args), &os.ProcAttr{
		Dir:   r.Dir,
		Env:   env,
		Files: []*os.File{stdin, wOut, wErr},
	})

	// The child holds its own copies of the write ends.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		logger.Debug("process start failed", "error", err)
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	outCh := make(chan capture, 1)
	errCh := make(chan capture, 1)

	go func() {
		b, err := readAllUpToMax(ctx, rOut, maxBytes)
		outCh <- capture{b: b, err: err}
	}()

	go func() {
		b, err := readAllUpToMax(ctx, rErr, maxBytes)
		errCh <- capture{b: b, err: err}
	}()

	done := make(chan struct{})
	killed := make(chan struct{})
	watchdogDone := make(chan struct{})

	go func() {
		defer close(watchdogDone)

		select {
		case <-ctx.Done():
			logger.Info("context done, killing process", "pid", ps.Pid)
			killPs(ctx, ps)
			close(killed)
		case <-done:
		}
	}()

	state, waitErr := ps.Wait()
	close(done)
	<-watchdogDone

	stdout := <-outCh
	stderr := <-errCh

	res := &Result{
		StdOut:   stdout.b,
		StdErr:   stderr.b,
		ExitCode: -1,
	}

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	logger.Debug("process finished", "exitCode", res.ExitCode,
		"stdoutBytes", len(res.StdOut), "stderrBytes", len(res.StdErr))

	var errs error

	if waitErr != nil {
		errs = errors.Join(errs, ErrWaitProcess, waitErr)
	}

	select {
	case <-killed:
		errs = errors.Join(errs, ErrContextDone, ctx.Err())
	default:
	}

	errs = errors.Join(errs, stdout.err, stderr.err)

	return res, errs
}

// readAllUpToMax keeps at most maxBufferSize bytes and drains the rest so the
// child never blocks writing to a full pipe.
func readAllUpToMax(ctx context.Context, r io.Reader, maxBufferSize int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBufferSize+1)
	if err != nil && err != io.EOF {
		return buf.Bytes(), errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBufferSize {
		ctxlog.Debug(ctx, "buffer overflow in readAllUpToMax", "bytesRead", n, "maxBytes", maxBufferSize)
		_, _ = io.Copy(io.Discard, r)

		return buf.Bytes()[:maxBufferSize], fmt.Errorf("%w of %d bytes", ErrBufferOverflow, maxBufferSize)
	}

	return buf.Bytes(), nil
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
