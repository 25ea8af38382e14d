// SPDX-License-Identifier: BSD-3-Clause

package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	require.NoError(t, AtomicCreateFile(path, []byte("first"), 0o644))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))

	// Creation refuses to replace an existing file.
	err = AtomicCreateFile(path, []byte("second"), 0o644)
	assert.ErrorIs(t, err, ErrFileAlreadyExists)
}

func TestAtomicUpdateFileReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	require.NoError(t, AtomicUpdateFile(path, []byte("v1"), 0o644))
	require.NoError(t, AtomicUpdateFile(path, []byte("v2"), 0o644))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
