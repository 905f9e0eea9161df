package models

import "sync"

// Row is one record of the active dataset, keyed by column name.
type Row map[string]string

// Dataset is tabular data loaded from an uploaded CSV file or a SQLite
// table: an ordered list of column names and the rows in source order.
type Dataset struct {
	Source  string   `json:"source"` // "csv" or "sqlite:<table>"
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// DatasetStore holds the session's single active dataset. Loading a new
// source replaces the previous dataset wholesale.
type DatasetStore struct {
	mu sync.RWMutex
	ds *Dataset
}

// NewDatasetStore creates an empty dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Set replaces the active dataset.
func (s *DatasetStore) Set(ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
}

// Get returns the active dataset, or nil if none has been loaded.
func (s *DatasetStore) Get() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// Clear drops the active dataset.
func (s *DatasetStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = nil
}
