// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FormatPretty selects the human readable console handler.
	FormatPretty = "pretty"
	// FormatJSON selects the slog JSON handler.
	FormatJSON = "json"
	// logLevelEnvSuffix is appended to the upper-cased executable name to form the level variable.
	logLevelEnvSuffix = "_LOG_LEVEL"
)

var (
	// ErrUnknownLevel is returned when a log level string is not recognised.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat is returned when a log format string is not recognised.
	ErrUnknownFormat = errors.New("unknown log format")
)

type loggerKey struct{}

// LevelVar is shared by every logger created in this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is a pretty console logger used if no logger is provided.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithDestinationWriter(os.Stderr),
	WithAutoColour(),
))

// JSONLogger writes JSON lines to stderr.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New returns a context carrying logger. A nil logger means DefaultLogger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// NewLogger builds a logger for format writing to w, sharing LevelVar.
// An empty format means FormatPretty. For os.Stderr it returns DefaultLogger or JSONLogger.
func NewLogger(format string, w io.Writer) (*slog.Logger, error) {
	stderr := w == io.Writer(os.Stderr)

	switch strings.ToLower(format) {
	case "", FormatPretty:
		if stderr {
			return DefaultLogger, nil
		}

		return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar},
			WithDestinationWriter(w),
			WithAutoColour(),
		)), nil
	case FormatJSON:
		if stderr {
			return JSONLogger, nil
		}

		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelVar})), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseLevel converts DEBUG, INFO, WARN or ERROR (any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// SetLevel sets LevelVar from a level string. An empty string leaves the level unchanged.
func SetLevel(s string) error {
	if s == "" {
		return nil
	}

	level, err := ParseLevel(s)
	if err != nil {
		return err
	}

	LevelVar.Set(level)

	return nil
}

// LogLevelEnvVar returns the environment variable consulted for the initial level.
// For an executable named "aikey" it is "AIKEY_LOG_LEVEL".
func LogLevelEnvVar() string {
	exec, _ := os.Executable()
	exec = filepath.Base(exec)

	if ext := filepath.Ext(exec); strings.EqualFold(ext, ".exe") {
		exec = exec[:len(exec)-len(ext)]
	}

	return strings.ToUpper(exec) + logLevelEnvSuffix
}

func logLevelFromEnv() slog.Level {
	level, err := ParseLevel(os.Getenv(LogLevelEnvVar()))
	if err != nil {
		return slog.LevelWarn
	}

	return level
}
