// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyLine is returned by ParseLine for a blank line.
var ErrEmptyLine = errors.New("empty line")

// ParseLine splits line into a command name and its arguments.
// Tokens are separated by whitespace and bound to params in order. The last
// param takes the rest of the line verbatim, so content may contain spaces.
// Missing trailing params are left out of the map.
func ParseLine(line string, params func(cmd string) ([]string, error)) (string, map[string]string, error) {
	cmd, rest := nextToken(line)
	if cmd == "" {
		return "", nil, ErrEmptyLine
	}

	names, err := params(cmd)
	if err != nil {
		return cmd, nil, err
	}

	args := make(map[string]string, len(names))

	for i, name := range names {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}

		if i == len(names)-1 {
			args[name] = rest
			break
		}

		var tok string
		tok, rest = nextToken(rest)
		args[name] = tok
	}

	return cmd, args, nil
}

func nextToken(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}

	return s[:i], s[i:]
}
