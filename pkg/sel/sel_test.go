// SPDX-License-Identifier: BSD-3-Clause

package sel

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsIncreasingIDs(t *testing.T) {
	l := NewLog()

	var prev uint32
	for i := 0; i < 10; i++ {
		id := l.Add(SeverityInfo, "Test", "entry")
		assert.Equal(t, prev+1, id)
		prev = id
	}
	assert.Equal(t, 10, l.Count())
}

func TestRingOverflowEvictsOldest(t *testing.T) {
	l := NewLog()

	for i := 0; i < 300; i++ {
		l.Add(SeverityInfo, "Test", "entry")
	}

	assert.Equal(t, Capacity, l.Count())

	// The first 44 entries are gone; 45..300 survive in order.
	_, ok := l.Get(44)
	assert.False(t, ok)
	first, ok := l.Get(45)
	require.True(t, ok)
	assert.Equal(t, uint32(45), first.ID)
	last, ok := l.Get(300)
	require.True(t, ok)
	assert.Equal(t, uint32(300), last.ID)

	entries := l.Entries()
	require.Len(t, entries, Capacity)
	for i, e := range entries {
		assert.Equal(t, uint32(45+i), e.ID)
	}

	// Ids keep counting after overflow.
	assert.Equal(t, uint32(301), l.Add(SeverityInfo, "Test", "entry"))
}

func TestGetMissing(t *testing.T) {
	l := NewLog()
	l.Add(SeverityInfo, "Test", "entry")

	_, ok := l.Get(99)
	assert.False(t, ok)
}

func TestTruncation(t *testing.T) {
	l := NewLog()

	l.Add(SeverityWarning, strings.Repeat("s", 100), strings.Repeat("m", 1000))

	e, ok := l.Get(1)
	require.True(t, ok)
	assert.Len(t, e.Source, 31)
	assert.Len(t, e.Message, 255)
}

func TestCriticalHookFires(t *testing.T) {
	l := NewLog()

	var fired int
	l.SetCriticalHook(func() { fired++ })

	l.Add(SeverityInfo, "Test", "info")
	l.Add(SeverityWarning, "Test", "warn")
	assert.Zero(t, fired)

	l.Add(SeverityCritical, "Test", "crit")
	assert.Equal(t, 1, fired)
}

func TestAppendHookSeesEveryEntry(t *testing.T) {
	l := NewLog()

	var seen []uint32
	l.SetAppendHook(func(e Entry) { seen = append(seen, e.ID) })

	l.Add(SeverityInfo, "Test", "a")
	l.Add(SeverityCritical, "Test", "b")

	assert.Equal(t, []uint32{1, 2}, seen)
}

func TestEntryJSONShape(t *testing.T) {
	l := NewLog()
	l.Add(SeverityCritical, "SecureBoot", "hash mismatch")

	b, err := json.Marshal(l.Document())
	require.NoError(t, err)

	var doc struct {
		Entries []map[string]any `json:"entries"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	require.Equal(t, 1, doc.Count)
	require.Len(t, doc.Entries, 1)

	e := doc.Entries[0]
	assert.Equal(t, float64(1), e["id"])
	assert.Equal(t, "Critical", e["severity"])
	assert.Equal(t, "SecureBoot", e["source"])
	assert.Equal(t, "hash mismatch", e["message"])
	assert.Contains(t, e, "timestamp")
}
