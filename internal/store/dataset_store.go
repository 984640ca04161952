package store

import (
	"sync"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
)

// DatasetStore holds the dataset currently served. Datasets are immutable,
// so readers keep whatever they fetched even after a swap.
type DatasetStore struct {
	mu      sync.RWMutex
	current *dataset.Dataset
	version uint64
}

// NewDatasetStore constructs an empty DatasetStore.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Current returns the active dataset and whether one has been loaded.
func (s *DatasetStore) Current() (*dataset.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current, s.current != nil
}

// Set replaces the active dataset. A nil dataset is ignored.
func (s *DatasetStore) Set(ds *dataset.Dataset) {
	if ds == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ds
	s.version++
}

// Version counts how many datasets have been installed.
func (s *DatasetStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}
