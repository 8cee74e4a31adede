// Package session holds per-user dashboard state.
//
// A State belongs to exactly one browser session and holds at most one
// dataset under the fixed key DataKey. It starts empty, is populated by an
// upload and is never cleared; it lives until the Manager drops the session.
package session

import (
	"sync"

	"github.com/leapstack-labs/tabview/internal/dataset"
)

// DataKey is the key the loaded dataset is stored under.
const DataKey = "data"

// State is the state of one session.
type State struct {
	mu      sync.RWMutex
	values  map[string]*dataset.Dataset
	version uint64
}

// NewState returns an empty session state.
func NewState() *State {
	return &State{values: make(map[string]*dataset.Dataset)}
}

// HasDataset reports whether a dataset has been loaded in this session.
func (s *State) HasDataset() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[DataKey]
	return ok
}

// SetDataset stores d, replacing any previously loaded dataset.
// d must not be nil.
func (s *State) SetDataset(d *dataset.Dataset) {
	if d == nil {
		panic("session: SetDataset called with nil dataset")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[DataKey] = d
	s.version++
}

// Dataset returns the stored dataset. It panics when no dataset is loaded;
// callers must check HasDataset first.
func (s *State) Dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.values[DataKey]
	if !ok {
		panic("session: Dataset called before a dataset was loaded")
	}
	return d
}

// Version counts how many times a dataset has been stored. It lets
// listeners tell whether the dataset changed since they last looked.
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
