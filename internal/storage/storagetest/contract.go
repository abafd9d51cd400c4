// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitcards/internal/storage"
)

// RunProviderContract exercises a freshly initialized provider. newProvider
// must return a provider whose Init has already succeeded and which holds no keys.
func RunProviderContract(t *testing.T, newProvider func(t *testing.T) storage.Provider) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		p := newProvider(t)
		_, err := p.Get("customCards")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		p := newProvider(t)
		require.NoError(t, p.Set("colorMode", "true"))

		v, err := p.Get("colorMode")
		require.NoError(t, err)
		assert.Equal(t, "true", v)

		require.NoError(t, p.Set("colorMode", "false"))
		v, err = p.Get("colorMode")
		require.NoError(t, err)
		assert.Equal(t, "false", v)
	})

	t.Run("set many", func(t *testing.T) {
		p := newProvider(t)
		require.NoError(t, p.SetMany(map[string]string{
			"customCards":    `[{"id":"1"}]`,
			"lastResetDates": `{"daily":"2024-01-01"}`,
		}))

		cards, err := p.Get("customCards")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, cards)

		markers, err := p.Get("lastResetDates")
		require.NoError(t, err)
		assert.JSONEq(t, `{"daily":"2024-01-01"}`, markers)

		require.NoError(t, p.SetMany(nil))
	})

	t.Run("remove", func(t *testing.T) {
		p := newProvider(t)
		require.NoError(t, p.Set("profile", `{}`))
		require.NoError(t, p.Remove("profile"))

		_, err := p.Get("profile")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// missing keys are not an error
		assert.NoError(t, p.Remove("profile"))
	})

	t.Run("remove many", func(t *testing.T) {
		p := newProvider(t)
		require.NoError(t, p.SetMany(map[string]string{"a": "1", "b": "2", "c": "3"}))
		require.NoError(t, p.RemoveMany([]string{"a", "b", "missing"}))

		keys, err := p.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, keys)
	})

	t.Run("keys sorted", func(t *testing.T) {
		p := newProvider(t)
		keys, err := p.Keys()
		require.NoError(t, err)
		assert.Empty(t, keys)

		require.NoError(t, p.SetMany(map[string]string{"settings": "{}", "customCards": "[]", "profile": "{}"}))
		keys, err = p.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"customCards", "profile", "settings"}, keys)
	})

	t.Run("config path", func(t *testing.T) {
		p := newProvider(t)
		assert.NotEmpty(t, p.GetConfigPath())
	})
}
