// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

const envObjectName = "env"

func parseHCL(data []byte, filename string) (*fileConfig, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Join(ErrParseConfig, multierror.Append(nil, diags.Errs()...))
	}

	fc := new(fileConfig)
	if diags := gohcl.DecodeBody(file.Body, evalContext(os.Environ()), fc); diags.HasErrors() {
		return nil, errors.Join(ErrParseConfig, multierror.Append(nil, diags.Errs()...))
	}

	return fc, nil
}

// evalContext exposes environ as the env object, plus a few string functions.
func evalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !utf8.ValidString(v) {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			envObjectName: cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"coalesce": stdlib.CoalesceFunc,
			"lookup":   stdlib.LookupFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}

func renderHCL(c *Config) []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())

	return f.Bytes()
}
