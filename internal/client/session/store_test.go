package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileStoreAt(filepath.Join(t.TempDir(), "blogit", "token"))

	// Absent token reads as empty, not as an error.
	token, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, store.Save("tok-1"))
	token, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	require.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
