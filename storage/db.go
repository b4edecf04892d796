package storage

import (
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
)

// Database is the raw key-value backend shared by the state trie. Both the
// in-memory and the persistent implementations expose go-ethereum's key-value
// store contract so the trie layer can consume them directly.
type Database interface {
	ethdb.KeyValueStore
}

// NewMemDB returns an ephemeral database for tests and tooling.
func NewMemDB() Database {
	return memorydb.New()
}

// NewLevelDB creates or opens a persistent LevelDB database at the given path.
func NewLevelDB(path string) (Database, error) {
	db, err := leveldb.New(path, 128, 128, "hestia", false)
	if err != nil {
		return nil, err
	}
	return db, nil
}
