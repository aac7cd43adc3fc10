package localstore

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStorage is the on-disk Storage used when the apps run without a
// signed-in user. One key per app, one blob per key.
type BadgerStorage struct {
	db *badger.DB
}

func OpenBadger(path string) (*BadgerStorage, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStorage{db: db}, nil
}

func (bs *BadgerStorage) Load(key string) ([]byte, bool, error) {
	var blob []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

func (bs *BadgerStorage) Save(key string, blob []byte) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
}

func (bs *BadgerStorage) Close() error {
	return bs.db.Close()
}
