package localstore

import (
	"encoding/json"
	"sort"
)

// Record is any entity the mirrored store can hold. LastModified drives the
// last-write-wins merge against records coming back from the cloud.
type Record interface {
	RecordId() string
	LastModified() int64
}

// Collection is the unauthenticated replica of one entity family: a full
// in-memory list persisted wholesale on every mutation. Selection and
// filter state live here too but are ephemeral; Load always resets them.
type Collection[T Record] struct {
	storage Storage
	key     string
	items   map[string]T

	// Ephemeral UI state, never persisted.
	Selected  string
	Query     string
	TagFilter []string
}

// Load reads the persisted collection, or starts empty when nothing was
// saved yet.
func Load[T Record](storage Storage, key string) (*Collection[T], error) {
	collection := &Collection[T]{
		storage: storage,
		key:     key,
		items:   make(map[string]T),
	}
	blob, ok, err := storage.Load(key)
	if err != nil {
		return nil, err
	}
	if ok {
		var items []T
		if err := json.Unmarshal(blob, &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			collection.items[item.RecordId()] = item
		}
	}
	return collection, nil
}

func (c *Collection[T]) persist() error {
	blob, err := json.Marshal(c.Items())
	if err != nil {
		return err
	}
	return c.storage.Save(c.key, blob)
}

// Items returns every record ordered by id for a stable serialization.
func (c *Collection[T]) Items() []T {
	items := make([]T, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].RecordId() < items[j].RecordId()
	})
	return items
}

func (c *Collection[T]) Get(id string) (T, bool) {
	item, ok := c.items[id]
	return item, ok
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Put creates or replaces a record and persists the whole collection.
func (c *Collection[T]) Put(item T) error {
	c.items[item.RecordId()] = item
	return c.persist()
}

func (c *Collection[T]) Delete(id string) error {
	if _, ok := c.items[id]; !ok {
		return nil
	}
	delete(c.items, id)
	if c.Selected == id {
		c.Selected = ""
	}
	return c.persist()
}

// Merge reconciles records coming back from the cloud: for each incoming
// record the newer of {local, incoming} wins by LastModified, local-only
// records stay, incoming-only records are added. Ties keep the local copy.
func (c *Collection[T]) Merge(incoming []T) error {
	for _, item := range incoming {
		local, ok := c.items[item.RecordId()]
		if !ok || item.LastModified() > local.LastModified() {
			c.items[item.RecordId()] = item
		}
	}
	return c.persist()
}
