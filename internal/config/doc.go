// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the aikey configuration.
//
// A configuration file is HCL (*.hcl) or YAML (*.yaml, *.yml). Local files are
// read through FsFactory. Sources using go-getter syntax, such as
// https://example.com/aikey.hcl or git::https://example.com/repo//aikey.hcl?ref=v1,
// are downloaded first. HCL expressions can read the process environment
// through the env object, e.g. auth_token = env.AIKEY_TOKEN.
//
// Values from the file override the defaults, and command line flags override both.
package config
