package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := []string{"a", "b", "c"}
	require.NoError(t, s.Put(KeyUsers, in))

	var out []string
	found, err := s.Get(KeyUsers, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestFileStoreMissingKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out []string
	found, err := s.Get(KeyTasks, &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestFileStoreDelete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put(KeyToken, "tok"))
	require.NoError(t, s.Delete(KeyToken))
	// Deleting again is not an error.
	require.NoError(t, s.Delete(KeyToken))

	var out string
	found, err := s.Get(KeyToken, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreRejectsForeignSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	raw, err := json.Marshal(envelope{SchemaVersion: SchemaVersion + 1, Data: []byte(`[]`)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyUsers+".json"), raw, 0o600))

	var out []string
	_, err = s.Get(KeyUsers, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestFileStoreOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put(KeyUsers, []string{"first"}))
	require.NoError(t, s.Put(KeyUsers, []string{"second"}))

	var out []string
	_, err = s.Get(KeyUsers, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, out)
}
