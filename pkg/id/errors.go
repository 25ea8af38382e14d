// SPDX-License-Identifier: BSD-3-Clause

package id

import "errors"

var (
	// ErrFileStat indicates a failure to stat the persistent id file.
	ErrFileStat = errors.New("failed to stat id file")
	// ErrDirectoryCreation indicates a failure to create the id directory.
	ErrDirectoryCreation = errors.New("failed to create id directory")
	// ErrFileCreation indicates a failure to create the persistent id file.
	ErrFileCreation = errors.New("failed to create id file")
	// ErrFileRead indicates a failure to read the persistent id file.
	ErrFileRead = errors.New("failed to read id file")
	// ErrInvalidUUID indicates that the persisted id is not a valid UUID.
	ErrInvalidUUID = errors.New("invalid UUID in id file")
)
