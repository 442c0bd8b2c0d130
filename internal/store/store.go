// Package store holds the session's canonical in-memory record collection.
package store

import (
	"sync"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

// Store is the authoritative record collection for a viewer session. It is
// created empty, populated once by Load, and then mutated only through
// Append, Replace, and Remove. Every mutation bumps the version, which keys
// downstream memoization.
type Store struct {
	mu      sync.RWMutex
	records []models.StockRecord
	version uint64
}

func New() *Store { return &Store{} }

// Load replaces the whole collection. The input is copied.
func (s *Store) Load(records []models.StockRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]models.StockRecord, len(records))
	copy(s.records, records)
	s.version++
}

func (s *Store) Append(rec models.StockRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	s.version++
}

// Replace swaps the record matching key for rec, keeping every other record
// and the collection order untouched. Reports whether a record matched; the
// version does not move on a miss.
func (s *Store) Replace(key models.RecordKey, rec models.StockRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].Key() == key {
			s.records[i] = rec
			s.version++
			return true
		}
	}
	return false
}

// Remove deletes the record matching key. No-op on a miss.
func (s *Store) Remove(key models.RecordKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].Key() == key {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.version++
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the collection and its version. Callers may
// mutate the copy freely.
func (s *Store) Snapshot() ([]models.StockRecord, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StockRecord, len(s.records))
	copy(out, s.records)
	return out, s.version
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
