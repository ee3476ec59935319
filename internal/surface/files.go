// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
)

const (
	// sixFourFour is the file mode for files created by SaveFile.
	sixFourFour = 0o644
	// atomicTempPattern is the name pattern of the temporary file used by SaveFileAtomic.
	atomicTempPattern = ".aikey-save-*"
	// maxSymlinkHops bounds symlink resolution in SaveFileAtomic.
	maxSymlinkHops = 40
)

var (
	// errInvalidUTF8 is the message for file content that is not text.
	errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
	// errTooManyLinks is returned when a symlink chain does not end.
	errTooManyLinks = errors.New("too many levels of symbolic links")
)

// ReadFile reads the whole file at path and returns it as text.
// Any failure, including content that is not valid UTF-8, is a KindIo error.
func ReadFile(fs afero.Fs, path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", newIoError(err)
	}

	if !utf8.Valid(b) {
		return "", newIoError(errInvalidUTF8)
	}

	return string(b), nil
}

// SaveFile writes content to path, creating the file or truncating it.
// The write is not atomic, a failure part way through can leave a partial file.
func SaveFile(fs afero.Fs, path, content string) (bool, error) {
	if err := afero.WriteFile(fs, path, []byte(content), sixFourFour); err != nil {
		return false, newIoError(err)
	}

	return true, nil
}

// SaveFileAtomic writes content to a temporary file next to path and renames it over path.
// Readers observe either the old or the new content, never a partial write.
// A symlink at path is followed and the file it points to is replaced.
// An existing file keeps its permission bits, a new one gets 0644.
func SaveFileAtomic(fs afero.Fs, path, content string) (bool, error) {
	target, err := resolveSymlinks(fs, path)
	if err != nil {
		return false, newIoError(err)
	}

	mode := os.FileMode(sixFourFour)
	if fi, err := fs.Stat(target); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(target), atomicTempPattern)
	if err != nil {
		return false, newIoError(err)
	}

	tmpName := tmp.Name()
	renamed := false

	defer func() {
		if !renamed {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return false, newIoError(err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return false, newIoError(err)
	}

	if err := tmp.Close(); err != nil {
		return false, newIoError(err)
	}

	if err := fs.Chmod(tmpName, mode); err != nil {
		return false, newIoError(err)
	}

	if err := fs.Rename(tmpName, target); err != nil {
		return false, newIoError(err)
	}

	renamed = true

	return true, nil
}

// resolveSymlinks follows path through any symlinks to the name a write should replace.
// The final target does not need to exist. Filesystems without symlinks return path unchanged.
func resolveSymlinks(fs afero.Fs, path string) (string, error) {
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return path, nil
	}

	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for range maxSymlinkHops {
		fi, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil || !lstatCalled || fi.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		dest, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", err
		}

		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}

		path = dest
	}

	return "", errTooManyLinks
}

// FileExists reports whether path exists. Symlinks are followed.
// It never fails: any error from the filesystem, including permission errors,
// is reported as false.
func FileExists(fs afero.Fs, path string) bool {
	ok, _ := afero.Exists(fs, path)
	return ok
}
