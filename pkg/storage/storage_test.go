package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend(t *testing.T) {
	m := NewMemory()

	// Absent key loads as nil, nil
	value, err := m.Load("tasks")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, m.Save("tasks", []byte(`[{"id":"1"}]`)))
	value, err = m.Load("tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), value)

	// Overwrite
	require.NoError(t, m.Save("tasks", []byte(`[]`)))
	value, err = m.Load("tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(filepath.Join(dir, "data"))
	require.NoError(t, err)

	value, err := f.Load("categories")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, f.Save("categories", []byte(`[{"id":"work"}]`)))

	// File lands at <root>/categories.json
	_, err = os.Stat(filepath.Join(dir, "data", "categories.json"))
	assert.NoError(t, err)

	value, err = f.Load("categories")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"work"}]`), value)
}

func TestFileBackendCreatesRoot(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	_, err := NewFile(nested)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSQLiteBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dayplan.db")
	s, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	defer s.Close()

	value, err := s.Load("tasks")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, s.Save("tasks", []byte(`[]`)))
	require.NoError(t, s.Save("tasks", []byte(`[{"id":"2"}]`)))

	value, err = s.Load("tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"2"}]`), value)

	// Reopen and verify durability
	require.NoError(t, s.Close())
	s, err = OpenSQLite(dbPath)
	require.NoError(t, err)
	value, err = s.Load("tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"2"}]`), value)
}
