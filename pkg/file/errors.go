// SPDX-License-Identifier: BSD-3-Clause

package file

import "errors"

var (
	// ErrTemporaryFileCreation indicates a failure to create a temporary file.
	ErrTemporaryFileCreation = errors.New("failed to create temporary file")
	// ErrTemporaryFileWrite indicates a failure to write data to a temporary file.
	ErrTemporaryFileWrite = errors.New("failed to write to temporary file")
	// ErrTemporaryFileClose indicates a failure to close a temporary file.
	ErrTemporaryFileClose = errors.New("failed to close temporary file")
	// ErrTemporaryFileChmod indicates a failure to set permissions on a temporary file.
	ErrTemporaryFileChmod = errors.New("failed to set permissions on temporary file")
	// ErrAtomicRename indicates a failure to atomically rename a temporary file into place.
	ErrAtomicRename = errors.New("failed to atomically rename temporary file")
	// ErrFileAlreadyExists indicates that a file already exists when attempting atomic creation.
	ErrFileAlreadyExists = errors.New("file already exists")
)
