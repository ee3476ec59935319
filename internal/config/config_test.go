// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fionatony/aikey/internal/procrun"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyFsWithFiles(t *testing.T, files map[string]string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, int64(procrun.DefaultMaxOutputBytes), cfg.MaxOutputBytes)
	assert.False(t, cfg.AtomicSave)
}

func TestLoadHCL(t *testing.T) {
	t.Setenv("AIKEY_TEST_TOKEN", "from-env")

	dummyFsWithFiles(t, map[string]string{
		"/etc/aikey.hcl": `
# WebSocket host for the desktop shell.
transport   = "websocket"
listen_addr = "127.0.0.1:9000"
auth_token  = env.AIKEY_TEST_TOKEN
log_level   = upper("debug")
atomic_save = true
`,
	})

	cfg, err := Load(context.Background(), "/etc/aikey.hcl")
	require.NoError(t, err)

	assert.Equal(t, TransportWebSocket, cfg.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "from-env", cfg.AuthToken)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.AtomicSave)
	assert.Equal(t, "pretty", cfg.LogFormat, "unset fields keep their default")
}

func TestLoadHCLLookupDefault(t *testing.T) {
	dummyFsWithFiles(t, map[string]string{
		"aikey.hcl": `auth_token = lookup(env, "AIKEY_TEST_UNSET_VARIABLE", "fallback")`,
	})

	cfg, err := Load(context.Background(), "aikey.hcl")
	require.NoError(t, err)
	assert.Equal(t, "fallback", cfg.AuthToken)
}

func TestLoadYAML(t *testing.T) {
	dummyFsWithFiles(t, map[string]string{
		"/etc/aikey.yaml": `
log_format: json
max_output_bytes: 1024
atomic_save: true
`,
	})

	cfg, err := Load(context.Background(), "/etc/aikey.yaml")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, int64(1024), cfg.MaxOutputBytes)
	assert.True(t, cfg.AtomicSave)
	assert.Equal(t, TransportStdio, cfg.Transport)
}

func TestLoadErrors(t *testing.T) {
	dummyFsWithFiles(t, map[string]string{
		"bad-syntax.hcl":   `transport = `,
		"unknown-attr.hcl": `colour = "red"`,
		"wrong-type.hcl":   `atomic_save = "maybe"`,
		"unknown-key.yml":  "colour: red\n",
		"config.toml":      `transport = "stdio"`,
		"invalid.yaml":     "transport: carrier-pigeon\nlog_level: loud\nmax_output_bytes: 0\n",
	})

	tests := []struct {
		name       string
		source     string
		wantErr    error
		wantSubstr []string
	}{
		{name: "missing file", source: "nope.hcl", wantErr: ErrReadConfig},
		{name: "hcl syntax", source: "bad-syntax.hcl", wantErr: ErrParseConfig},
		{name: "hcl unknown attribute", source: "unknown-attr.hcl", wantErr: ErrParseConfig, wantSubstr: []string{"colour"}},
		{name: "hcl wrong type", source: "wrong-type.hcl", wantErr: ErrParseConfig},
		{name: "yaml unknown key", source: "unknown-key.yml", wantErr: ErrParseConfig},
		{name: "unknown extension", source: "config.toml", wantErr: ErrUnknownFormat},
		{
			name:       "every invalid field is reported",
			source:     "invalid.yaml",
			wantErr:    ErrInvalidConfig,
			wantSubstr: []string{"transport", "log_level", "max_output_bytes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.source)
			require.ErrorIs(t, err, tt.wantErr)

			for _, s := range tt.wantSubstr {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "websocket with port", mutate: func(c *Config) { c.Transport = TransportWebSocket }},
		{
			name: "websocket without port",
			mutate: func(c *Config) {
				c.Transport = TransportWebSocket
				c.ListenAddr = "localhost"
			},
			wantErr: true,
		},
		{name: "stdio ignores listen addr", mutate: func(c *Config) { c.ListenAddr = "" }},
		{name: "json format", mutate: func(c *Config) { c.LogFormat = "JSON" }},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "empty level", mutate: func(c *Config) { c.LogLevel = "" }, wantErr: true},
		{name: "negative output cap", mutate: func(c *Config) { c.MaxOutputBytes = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRenderParsesBack(t *testing.T) {
	want := Default()
	want.Transport = TransportWebSocket
	want.AuthToken = "tok"
	want.AtomicSave = true

	for _, format := range []string{FormatHCL, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			b, err := Render(want, format)
			require.NoError(t, err)

			fc, err := parse(b, "rendered."+format)
			require.NoError(t, err)

			got := Default()
			got.merge(fc)
			assert.Equal(t, want, got)
		})
	}

	_, err := Render(want, "toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRedacted(t *testing.T) {
	c := Default()
	c.AuthToken = "tok"

	assert.Equal(t, "********", c.Redacted().AuthToken)
	assert.Equal(t, "tok", c.AuthToken)
	assert.Empty(t, Default().Redacted().AuthToken)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/aikey.hcl"))
	assert.True(t, IsRemote("git::https://example.com/repo//aikey.hcl"))
	assert.False(t, IsRemote("/etc/aikey.hcl"))
	assert.False(t, IsRemote(`C:\aikey\aikey.yaml`))
}

func TestLoadRemoteHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/aikey.yaml" {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write([]byte("log_format: json\n"))
	}))
	t.Cleanup(srv.Close)

	cfg, err := Load(context.Background(), srv.URL+"/aikey.yaml")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)

	_, err = Load(context.Background(), srv.URL+"/missing.yaml")
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestSplitFileNameFromGetterURL(t *testing.T) {
	tests := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo//aikey.hcl",
			wantURL:  "git::https://github.com/org/repo",
			wantFile: "aikey.hcl",
		},
		{
			url:      "git::https://github.com/org/repo//config/aikey.hcl?ref=v1.2.0",
			wantURL:  "git::https://github.com/org/repo//config?ref=v1.2.0",
			wantFile: "aikey.hcl",
		},
		{url: "https://example.com/aikey.hcl"},
		{url: "git::https://github.com/org/repo//"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tt.url)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantFile, gotFile)
		})
	}
}
