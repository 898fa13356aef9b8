// Package session holds transcription results scoped to one user's
// interactive session. Nothing here persists: results disappear with the
// session.
package session

import (
	"sync"

	"audio2text/internal/app/model"
)

// Store is one session's ordered mapping from record key to record.
type Store struct {
	mu      sync.RWMutex
	records map[string]model.TranscriptRecord
	order   []string
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{records: make(map[string]model.TranscriptRecord)}
}

// Put inserts or overwrites a record. Insertion order is preserved; an
// overwrite keeps the key's original position.
func (s *Store) Put(record model.TranscriptRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.Key]; !exists {
		s.order = append(s.order, record.Key)
	}
	s.records[record.Key] = record
}

// Get returns the record for key.
func (s *Store) Get(key string) (model.TranscriptRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[key]
	return r, ok
}

// All returns every record in insertion order.
func (s *Store) All() []model.TranscriptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TranscriptRecord, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.records[key])
	}
	return out
}

// Remove deletes one record.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[key]; !exists {
		return
	}
	delete(s.records, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Replace discards the whole mapping and installs records in the given
// order. A pipeline re-run replaces, never appends.
func (s *Store) Replace(records []model.TranscriptRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]model.TranscriptRecord, len(records))
	s.order = s.order[:0]
	for _, r := range records {
		if _, exists := s.records[r.Key]; !exists {
			s.order = append(s.order, r.Key)
		}
		s.records[r.Key] = r
	}
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
