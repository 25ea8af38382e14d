// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// AtomicCreateFile creates a file atomically by writing a temporary
// sibling and linking it into place with RENAME_NOREPLACE; it fails if
// the target already exists.
func AtomicCreateFile(filename string, data []byte, perm os.FileMode) error {
	tmpname, err := writeTemp(filename, data, perm)
	if err != nil {
		return err
	}

	if err := unix.Renameat2(unix.AT_FDCWD, tmpname, unix.AT_FDCWD, filename, unix.RENAME_NOREPLACE); err != nil {
		_ = os.Remove(tmpname)
		if errors.Is(err, syscall.EEXIST) {
			return fmt.Errorf("%w: %s", ErrFileAlreadyExists, filename)
		}
		return fmt.Errorf("%w: %w", ErrAtomicRename, err)
	}

	return nil
}

// AtomicUpdateFile replaces a file atomically: readers observe either
// the previous content or the new content, never a partial write. This
// is the contract the state snapshot relies on.
func AtomicUpdateFile(filename string, data []byte, perm os.FileMode) error {
	tmpname, err := writeTemp(filename, data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpname, filename); err != nil {
		_ = os.Remove(tmpname)
		return fmt.Errorf("%w: %w", ErrAtomicRename, err)
	}

	return nil
}

// writeTemp writes data to a hidden temporary sibling of filename and
// returns the temporary path.
func writeTemp(filename string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(filename)
	tmpfile, err := os.CreateTemp(dir, fmt.Sprintf(".%s.tmp.*", filepath.Base(filename)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileCreation, err)
	}
	tmpname := tmpfile.Name()

	if _, err := tmpfile.Write(data); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpname)
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileWrite, err)
	}

	if err := tmpfile.Close(); err != nil {
		_ = os.Remove(tmpname)
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileClose, err)
	}

	if err := os.Chmod(tmpname, perm); err != nil {
		_ = os.Remove(tmpname)
		return "", fmt.Errorf("%w: %w", ErrTemporaryFileChmod, err)
	}

	return tmpname, nil
}
