// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrArgsUnmarshal is returned when the arguments are not a JSON object.
	ErrArgsUnmarshal = errors.New("failed to decode command arguments, expected a JSON object")
	// ErrMissingArg is returned when a required argument is absent.
	ErrMissingArg = errors.New("missing required argument")
	// ErrArgType is returned when an argument is present but is not a string.
	ErrArgType = errors.New("argument must be a string")
)

// Args holds the raw named arguments of one invocation.
type Args map[string]json.RawMessage

// ParseArgs decodes payload into Args. An empty payload or JSON null gives empty Args.
func ParseArgs(payload []byte) (Args, error) {
	args := make(Args)

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return args, nil
	}

	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, errors.Join(ErrArgsUnmarshal, err)
	}

	return args, nil
}

// String returns the string argument called name.
// The camelCase spelling of name is accepted too, as front ends often convert argument names.
func (a Args) String(name string) (string, error) {
	raw, ok := a[name]
	if !ok {
		raw, ok = a[CamelCase(name)]
	}

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingArg, name)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s", ErrArgType, name)
	}

	return s, nil
}

// CamelCase converts a snake_case parameter name to camelCase, e.g. file_path to filePath.
func CamelCase(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return name
	}

	sb := strings.Builder{}
	sb.Grow(len(name))
	sb.WriteString(parts[0])

	for _, p := range parts[1:] {
		if p == "" {
			continue
		}

		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}

	return sb.String()
}
