// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry maps host command names to their commanders.
// Command packages add themselves to DefaultRegistry from init().
package commandregistry

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/fionatony/aikey/internal/commands"
	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/surface"
)

var (
	// ErrUnknownCommand is returned when a command name is not registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned when a command name is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
)

// Registry holds the mapping between command names and their commanders.
type Registry map[string]commands.Commander

// DefaultRegistry is filled by the command packages.
var DefaultRegistry = New()

// New creates an empty registry.
func New() Registry {
	return make(Registry)
}

// Register adds commander to DefaultRegistry under name. It panics on a duplicate name.
func Register(name string, commander commands.Commander) {
	if err := DefaultRegistry.Register(name, commander); err != nil {
		panic(err)
	}
}

// Register adds commander under name.
func (r Registry) Register(name string, commander commands.Commander) error {
	if _, exists := r[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}

	r[name] = commander

	return nil
}

// Lookup returns the commander registered under name.
func (r Registry) Lookup(name string) (commands.Commander, error) {
	commander, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	return commander, nil
}

// Dispatch runs the command called name with args against s.
// Errors from the surface are returned unchanged.
func (r Registry) Dispatch(ctx context.Context, s *surface.Surface, name string, args []byte) (any, error) {
	commander, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "dispatching command", "cmd", name)

	return commander.Invoke(ctx, s, args)
}

// Names yields the registered command names in sorted order.
func (r Registry) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(r)))
}
