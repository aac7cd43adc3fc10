package localstore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"supersimple.dev/cloud/internal/localstore"
)

type note struct {
	Id        string   `json:"id"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags,omitempty"`
	UpdatedAt int64    `json:"updatedAt"`
}

func (n note) RecordId() string {
	return n.Id
}

func (n note) LastModified() int64 {
	return n.UpdatedAt
}

func TestCollectionRoundTrip(t *testing.T) {
	storage := localstore.NewMemoryStorage()

	collection, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)
	assert.Equal(t, 0, collection.Len())

	require.NoError(t, collection.Put(note{Id: "b", Body: "second", UpdatedAt: 200}))
	require.NoError(t, collection.Put(note{Id: "a", Body: "first", UpdatedAt: 100}))

	reloaded, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Len())
	items := reloaded.Items()
	assert.Equal(t, "a", items[0].Id)
	assert.Equal(t, "b", items[1].Id)

	require.NoError(t, reloaded.Delete("a"))
	require.NoError(t, reloaded.Delete("missing"))
	_, ok := reloaded.Get("a")
	assert.False(t, ok)

	again, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())
}

func TestCollectionKeysAreIndependent(t *testing.T) {
	storage := localstore.NewMemoryStorage()

	notes, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)
	require.NoError(t, notes.Put(note{Id: "n1", UpdatedAt: 1}))

	drafts, err := localstore.Load[note](storage, "drafts")
	require.NoError(t, err)
	assert.Equal(t, 0, drafts.Len())
}

func TestMergeLastWriteWins(t *testing.T) {
	storage := localstore.NewMemoryStorage()
	collection, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)

	require.NoError(t, collection.Put(note{Id: "stale", Body: "local", UpdatedAt: 100}))
	require.NoError(t, collection.Put(note{Id: "fresh", Body: "local", UpdatedAt: 200}))
	require.NoError(t, collection.Put(note{Id: "only-local", Body: "local", UpdatedAt: 50}))
	require.NoError(t, collection.Put(note{Id: "tied", Body: "local", UpdatedAt: 300}))

	require.NoError(t, collection.Merge([]note{
		{Id: "stale", Body: "cloud", UpdatedAt: 200},
		{Id: "fresh", Body: "cloud", UpdatedAt: 100},
		{Id: "only-cloud", Body: "cloud", UpdatedAt: 75},
		{Id: "tied", Body: "cloud", UpdatedAt: 300},
	}))

	stale, _ := collection.Get("stale")
	assert.Equal(t, "cloud", stale.Body)
	fresh, _ := collection.Get("fresh")
	assert.Equal(t, "local", fresh.Body)
	onlyLocal, _ := collection.Get("only-local")
	assert.Equal(t, "local", onlyLocal.Body)
	onlyCloud, _ := collection.Get("only-cloud")
	assert.Equal(t, "cloud", onlyCloud.Body)
	tied, _ := collection.Get("tied")
	assert.Equal(t, "local", tied.Body)

	// The merged result is what a fresh load sees.
	reloaded, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.Len())
}

func TestEphemeralStateNotPersisted(t *testing.T) {
	storage := localstore.NewMemoryStorage()
	collection, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)

	require.NoError(t, collection.Put(note{Id: "n1", UpdatedAt: 1}))
	collection.Selected = "n1"
	collection.Query = "groceries"
	collection.TagFilter = []string{"todo"}
	require.NoError(t, collection.Put(note{Id: "n2", UpdatedAt: 2}))

	reloaded, err := localstore.Load[note](storage, "notes")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Selected)
	assert.Empty(t, reloaded.Query)
	assert.Empty(t, reloaded.TagFilter)

	// Deleting the selected record clears the selection.
	require.NoError(t, collection.Delete("n1"))
	assert.Empty(t, collection.Selected)
}

type failingStorage struct {
	loadErr error
	saveErr error
}

func (fs failingStorage) Load(key string) ([]byte, bool, error) {
	return nil, false, fs.loadErr
}

func (fs failingStorage) Save(key string, blob []byte) error {
	return fs.saveErr
}

func TestStorageErrorsSurface(t *testing.T) {
	boom := errors.New("disk full")

	_, err := localstore.Load[note](failingStorage{loadErr: boom}, "notes")
	assert.ErrorIs(t, err, boom)

	collection, err := localstore.Load[note](failingStorage{saveErr: boom}, "notes")
	require.NoError(t, err)
	assert.ErrorIs(t, collection.Put(note{Id: "n1", UpdatedAt: 1}), boom)
	assert.ErrorIs(t, collection.Merge([]note{{Id: "n2", UpdatedAt: 2}}), boom)
}
