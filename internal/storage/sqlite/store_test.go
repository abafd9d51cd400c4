package sqlite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "nested", "habitcards.db"))
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProviderContract(t *testing.T) {
	storagetest.RunProviderContract(t, func(t *testing.T) storage.Provider {
		return newTestStore(t)
	})
}

func TestLoadBeforeInit(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := s.Load()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "habitcards init"))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitcards.db")

	first := NewStore(path)
	require.NoError(t, first.Init())
	require.NoError(t, first.Set("customCards", `[]`))
	require.NoError(t, first.Close())

	second := NewStore(path)
	require.NoError(t, second.Load())
	defer second.Close()

	v, err := second.Get("customCards")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestInitIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("colorMode", "true"))
	require.NoError(t, s.Init())

	v, err := s.Get("colorMode")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	current, latest, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, latest, current)
	assert.GreaterOrEqual(t, latest, 1)
}

func TestGetDB(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "habitcards.db"))
	assert.Nil(t, s.GetDB())
	require.NoError(t, s.Init())
	defer s.Close()
	assert.NotNil(t, s.GetDB())
}
