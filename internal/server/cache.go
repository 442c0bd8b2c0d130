package server

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

const listKey = "stock_data:list"

// listCache fronts the full-collection response. Every mutation deletes the
// entry, so readers only ever see a list the repository agreed with within
// the TTL.
type listCache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func newListCache(ttl time.Duration) (*listCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 24, // ~16MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &listCache{c: c, ttl: ttl}, nil
}

func (l *listCache) Get() ([]models.StockRecord, bool) {
	v, ok := l.c.Get(listKey)
	if !ok {
		return nil, false
	}
	rows, ok := v.([]models.StockRecord)
	return rows, ok
}

func (l *listCache) Set(rows []models.StockRecord) {
	l.c.SetWithTTL(listKey, rows, 1, l.ttl)
	// Writes are buffered; flush so a mutation's Invalidate cannot lose to a
	// straggling Set from an earlier read.
	l.c.Wait()
}

func (l *listCache) Invalidate() {
	l.c.Del(listKey)
	l.c.Wait()
}
