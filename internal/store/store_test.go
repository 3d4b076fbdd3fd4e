package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("k", []byte(`{"a":1}`)))

	value, found, err := s.Load("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"a":1}`), value)
}

func TestLoadMissingKey(t *testing.T) {
	s := openTestStore(t)

	value, found, err := s.Load("never-saved")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("k", []byte("first")))
	require.NoError(t, s.Save("k", []byte("second")))

	value, found, err := s.Load("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("second"), value)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("k", []byte("v")))
	require.NoError(t, s.Delete("k"))

	_, found, err := s.Load("k")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, s.Delete("k"), "deleting a missing key is fine")
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save("k", []byte("v")))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("k", []byte("durable")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	value, found, err := s.Load("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("durable"), value)
}
