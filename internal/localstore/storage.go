package localstore

import "sync"

// Storage persists one whole collection blob per app under a fixed key,
// mirroring how the browser apps keep a single JSON document in local
// storage. There is no partial write.
type Storage interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, blob []byte) error
}

type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		blobs: make(map[string][]byte),
	}
}

func (ms *MemoryStorage) Load(key string) ([]byte, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	blob, ok := ms.blobs[key]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(blob))
	copy(copied, blob)
	return copied, true, nil
}

func (ms *MemoryStorage) Save(key string, blob []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	copied := make([]byte, len(blob))
	copy(copied, blob)
	ms.blobs[key] = copied
	return nil
}
