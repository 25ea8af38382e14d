// SPDX-License-Identifier: BSD-3-Clause

package id

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mini-bmc/mini-bmc/pkg/file"
)

// NewID generates a new random UUID string for one-time use.
func NewID() string {
	return uuid.New().String()
}

// GetOrCreatePersistentID returns the UUID stored at path/name,
// creating and persisting a fresh one on first use so the daemon keeps
// a stable identity across restarts.
func GetOrCreatePersistentID(name, path string) (string, error) {
	fullPath := filepath.Join(path, name)

	if _, err := os.Stat(fullPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %w", ErrFileStat, err)
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return "", fmt.Errorf("%w: %w", ErrDirectoryCreation, err)
		}

		newID := uuid.New()
		if err := file.AtomicCreateFile(fullPath, []byte(newID.String()), 0o600); err == nil {
			return newID.String(), nil
		} else if !errors.Is(err, file.ErrFileAlreadyExists) && !os.IsExist(err) {
			return "", fmt.Errorf("%w: %w", ErrFileCreation, err)
		}
		// Lost the creation race; fall through and read the winner's id.
	}

	b, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	parsed, err := uuid.ParseBytes(bytes.TrimSpace(b))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidUUID, err)
	}

	return parsed.String(), nil
}
