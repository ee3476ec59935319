// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package surface

import (
	"context"
	"runtime"

	"github.com/fionatony/aikey/internal/procrun"
	"github.com/spf13/afero"
)

// Surface binds the four operations to a filesystem and an EnvSetter.
// It holds no state between calls and is safe for concurrent use.
type Surface struct {
	fs         afero.Fs
	env        EnvSetter
	atomicSave bool
}

// Option implements a functional options pattern for Surface.
type Option func(s *Surface)

// WithFs sets the filesystem, the default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Surface) {
		s.fs = fs
	}
}

// WithEnvSetter sets the environment variable strategy,
// the default is ForPlatform(runtime.GOOS, procrun.NewOSRunner()).
func WithEnvSetter(env EnvSetter) Option {
	return func(s *Surface) {
		s.env = env
	}
}

// WithAtomicSave makes SaveFile write through a temporary file and rename.
func WithAtomicSave() Option {
	return func(s *Surface) {
		s.atomicSave = true
	}
}

// New creates a Surface.
func New(options ...Option) *Surface {
	s := &Surface{}

	for _, opt := range options {
		opt(s)
	}

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}

	if s.env == nil {
		s.env = ForPlatform(runtime.GOOS, procrun.NewOSRunner())
	}

	return s
}

// ReadFile reads the file at path as text.
func (s *Surface) ReadFile(path string) (string, error) {
	return ReadFile(s.fs, path)
}

// SaveFile writes content to path and returns true on success.
func (s *Surface) SaveFile(path, content string) (bool, error) {
	if s.atomicSave {
		return SaveFileAtomic(s.fs, path, content)
	}

	return SaveFile(s.fs, path, content)
}

// FileExists reports whether path exists, treating every error as false.
func (s *Surface) FileExists(path string) bool {
	return FileExists(s.fs, path)
}

// SetEnvVar persistently sets name to value for processes started later.
func (s *Surface) SetEnvVar(ctx context.Context, name, value string) (string, error) {
	return s.env.SetEnvVar(ctx, name, value)
}
