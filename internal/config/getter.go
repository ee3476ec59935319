// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
	getterTempPattern     = "aikey-getter-*"
)

// fetch downloads a go-getter source into a temporary directory and returns the file content
// and its name. The temporary directory is removed before returning.
func fetch(ctx context.Context, source string) ([]byte, string, error) {
	tmpDir, err := os.MkdirTemp("", getterTempPattern)
	if err != nil {
		return nil, "", errors.Join(ErrReadConfig, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrReadConfig, err)
	}

	req := &getter.Request{
		Src:     source,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	// A path after "//" names a file inside a downloaded directory, e.g. a git repository.
	// https://github.com/hashicorp/go-getter/issues/98
	fileName := ""
	if newURL, name := splitFileNameFromGetterURL(source); newURL != "" {
		req.Src = newURL
		req.GetMode = getter.ModeDir
		req.Dst = filepath.Join(tmpDir, "g")
		fileName = name
	} else {
		fileName = path.Base(strings.SplitN(source, goGetterRefSeparator, 2)[0]) //nolint:mnd
		req.Dst = filepath.Join(tmpDir, fileName)
	}

	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, "", fmt.Errorf("%w: invalid URL format: %s", ErrReadConfig, source)
	}

	ctxlog.Debug(ctx, "fetching config", "src", req.Src, "mode", req.GetMode, "file", fileName)

	client := &getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrReadConfig, err)
	}

	target := res.Dst
	if req.GetMode == getter.ModeDir {
		target = filepath.Join(res.Dst, fileName)
	}

	data, err := afero.ReadFile(afero.NewOsFs(), target)
	if err != nil {
		return nil, "", errors.Join(ErrReadConfig, err)
	}

	return data, fileName, nil
}

// splitFileNameFromGetterURL splits the URL into the directory and file name.
// It returns the new getter URL without the file name and the file name itself.
// It will append any ref query parameter to the new URL if it exists.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref, fileName string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		ref = after
		last = before
	}

	if path.Clean(last) == path.Dir(last) {
		return "", ""
	}

	fileName = path.Base(last)

	if dir := path.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
