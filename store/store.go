package store

import (
	"database/sql"

	"github.com/kmorozov/bibliotek/store/db"
)

// Store owns all catalog reads and writes. Everything is synchronous; every
// multi-statement effect runs inside one transaction.
type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}
