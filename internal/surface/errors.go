// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Kind classifies a surface error.
type Kind string

const (
	// KindIo is any failure from the filesystem or subprocess layer.
	KindIo Kind = "IoError"
	// KindUnsupportedPlatform is returned by SetEnvVar outside Windows.
	KindUnsupportedPlatform Kind = "UnsupportedPlatform"
)

// unsupportedPlatformMessage is the fixed message for KindUnsupportedPlatform.
const unsupportedPlatformMessage = "This function is only supported on Windows"

var (
	// ErrIo matches any error of KindIo with errors.Is.
	ErrIo = &Error{Kind: KindIo}
	// ErrUnsupportedPlatform matches any error of KindUnsupportedPlatform with errors.Is.
	ErrUnsupportedPlatform = &Error{Kind: KindUnsupportedPlatform, Message: unsupportedPlatformMessage}
)

// Error is the only error type returned by the surface operations.
// Message is the raw text from the operating system or subprocess.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface. It returns the message unchanged.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a surface error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf returns the kind of the first surface error in err's chain.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}

	return "", false
}

func newIoError(err error) *Error {
	return &Error{Kind: KindIo, Message: err.Error()}
}

func newIoErrorText(text []byte) *Error {
	return &Error{Kind: KindIo, Message: lossyString(text)}
}

func newUnsupportedPlatformError() *Error {
	return &Error{Kind: KindUnsupportedPlatform, Message: unsupportedPlatformMessage}
}

// lossyString converts process output to text. Each invalid UTF-8 sequence
// becomes one U+FFFD, so two bad bytes give two replacement characters.
func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b))

	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r) // utf8.RuneError is U+FFFD
		b = b[size:]
	}

	return sb.String()
}
