// Package cache implements the sqlite-backed compile cache: generated output
// keyed by source path and content hash, so unchanged definition files are
// not recompiled.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id          TEXT PRIMARY KEY,
	path        TEXT NOT NULL,
	source_hash TEXT NOT NULL,
	output      BLOB NOT NULL,
	updated_at  TIMESTAMP NOT NULL,
	UNIQUE(path)
);
`

type Cache struct {
	db *sql.DB
}

// Open opens (and if necessary initializes) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// HashSource returns the content hash used as a cache key.
func HashSource(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached output for path if it was produced from a source
// with the given hash.
func (c *Cache) Get(path, hash string) ([]byte, bool, error) {
	var output []byte
	err := c.db.QueryRow(
		`SELECT output FROM entries WHERE path = ? AND source_hash = ?`,
		path, hash,
	).Scan(&output)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup for %s: %w", path, err)
	}
	return output, true, nil
}

// Put stores the output produced for path from a source with the given hash,
// replacing any previous entry for the same path.
func (c *Cache) Put(path, hash string, output []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO entries (id, path, source_hash, output, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   source_hash = excluded.source_hash,
		   output = excluded.output,
		   updated_at = excluded.updated_at`,
		uuid.NewString(), path, hash, output, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache store for %s: %w", path, err)
	}
	return nil
}
