package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func testStore(t *testing.T, s Store) {
	t.Helper()

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := s.Get("missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, s.Set("k", "v"))
		v, ok, err := s.Get("k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", v)

		require.NoError(t, s.Delete("k"))
		_, ok, err = s.Get("k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("json round trip", func(t *testing.T) {
		in := []entry{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
		require.NoError(t, SaveJSON(s, "list", in))

		var out []entry
		found, err := LoadJSON(s, "list", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("corrupt value treated as absent", func(t *testing.T) {
		require.NoError(t, s.Set("bad", "{not json"))

		var out []entry
		found, err := LoadJSON(s, "bad", &out)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, out)
	})
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestLevelDB(t *testing.T) {
	s, err := OpenLevelDB(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())

	_, _, err := m.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set("k", "v"), ErrClosed)
}
