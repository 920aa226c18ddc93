package kvstore

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDB is a Store backed by an on-disk goleveldb database.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) the database at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(key string) (string, bool, error) {
	v, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, mapClosed(err)
	}
	return string(v), true, nil
}

func (l *LevelDB) Set(key, value string) error {
	return mapClosed(l.db.Put([]byte(key), []byte(value), nil))
}

func (l *LevelDB) Delete(key string) error {
	return mapClosed(l.db.Delete([]byte(key), nil))
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

func mapClosed(err error) error {
	if errors.Is(err, leveldb.ErrClosed) {
		return ErrClosed
	}
	return err
}
