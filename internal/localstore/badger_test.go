package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"supersimple.dev/cloud/internal/localstore"
)

func TestBadgerStorage(t *testing.T) {
	storage, err := localstore.OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer storage.Close()

	_, ok, err := storage.Load("notes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Save("notes", []byte(`[{"id":"n1"}]`)))
	blob, ok, err := storage.Load("notes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"n1"}]`, string(blob))

	collection, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)
	assert.Equal(t, 1, collection.Len())
}
