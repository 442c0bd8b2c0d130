package server

import (
	"errors"
	"sync"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

var (
	ErrNotFound  = errors.New("stock entry not found")
	ErrDuplicate = errors.New("stock entry already exists")
)

// repository keeps records in insertion order under a lock. (trade_code,
// date) is unique; the collection is small enough that linear scans beat
// maintaining a position index across deletes.
type repository struct {
	mu      sync.RWMutex
	records []models.StockRecord
}

func newRepository() *repository { return &repository{} }

func (r *repository) List() []models.StockRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.StockRecord, len(r.records))
	copy(out, r.records)
	return out
}

func (r *repository) Get(key models.RecordKey) (models.StockRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.Key() == key {
			return rec, true
		}
	}
	return models.StockRecord{}, false
}

func (r *repository) Insert(rec models.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.Key() == rec.Key() {
			return ErrDuplicate
		}
	}
	r.records = append(r.records, rec)
	return nil
}

// Update replaces the record at key with rec, in place. Re-keying is allowed
// as long as the new key is free.
func (r *repository) Update(key models.RecordKey, rec models.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	at := -1
	for i, existing := range r.records {
		if existing.Key() == key {
			at = i
		} else if existing.Key() == rec.Key() {
			return ErrDuplicate
		}
	}
	if at < 0 {
		return ErrNotFound
	}
	r.records[at] = rec
	return nil
}

func (r *repository) Delete(key models.RecordKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.Key() == key {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
