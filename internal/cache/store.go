// Package cache persists downloaded dataset bodies in a bbolt file so restarts
// and upstream outages can fall back to the last good copy.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketDownloads = []byte("downloads")

// Entry is one cached download.
type Entry struct {
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Fresh reports whether the entry is younger than ttl at now. A non-positive ttl never expires.
func (e Entry) Fresh(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(e.FetchedAt) < ttl
}

// Store is a bbolt-backed key/value cache of download bodies.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// Open opens (or creates) a cache file at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("cache path required")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDownloads)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached entry for key. The bool is false when nothing is cached.
func (s *Store) Get(key string) (Entry, bool, error) {
	if s == nil {
		return Entry{}, false, nil
	}
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Copy out: bbolt slices are only valid inside the transaction.
		if v := tx.Bucket(bucketDownloads).Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil || raw == nil {
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	return e, true, nil
}

// Put stores body under key, stamped with the current time.
func (s *Store) Put(key string, body []byte) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(Entry{Body: body, FetchedAt: s.now().UTC()})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDownloads).Put([]byte(key), data)
	})
}

// Delete removes key from the cache.
func (s *Store) Delete(key string) error {
	if s == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDownloads).Delete([]byte(key))
	})
}
