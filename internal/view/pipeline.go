// Package view derives the displayed rows from the collection store by
// applying a trade-code filter and a date sort.
package view

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
	"github.com/Al-Faravi/Stock-Viewer/internal/store"
)

// SortKey names a sortable column. Only SortByDate orders rows today; other
// keys are accepted and leave the filtered order unchanged.
type SortKey string

const SortByDate SortKey = "date"

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Toggle returns the query after a click on column key: clicking the active
// column flips direction, activating a new column resets to ascending.
func (q Query) Toggle(key SortKey) Query {
	if q.Key == key && q.Dir == Ascending {
		q.Dir = Descending
	} else {
		q.Dir = Ascending
	}
	q.Key = key
	return q
}

// Query is the view state: search term plus active sort.
type Query struct {
	Search string
	Key    SortKey
	Dir    Direction
}

// Apply filters records whose trade code contains the search term
// (case-insensitively; an empty term matches everything), then stably sorts
// by the query's key. The input slice is never mutated; the sort runs on the
// filtered copy.
func Apply(records []models.StockRecord, q Query) []models.StockRecord {
	term := strings.ToLower(q.Search)
	out := make([]models.StockRecord, 0, len(records))
	for _, r := range records {
		if term == "" || strings.Contains(strings.ToLower(r.TradeCode), term) {
			out = append(out, r)
		}
	}
	if q.Key != SortByDate {
		return out
	}

	// Parse each date once. Unparseable dates order after parseable ones;
	// equal dates keep their relative input order.
	days := make([]int64, len(out))
	for i, r := range out {
		if d, err := time.Parse(models.DateLayout, r.Date); err == nil {
			days[i] = d.Unix()
		} else {
			days[i] = 1<<63 - 1
		}
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if q.Dir == Ascending {
			return days[idx[a]] < days[idx[b]]
		}
		return days[idx[a]] > days[idx[b]]
	})
	sorted := make([]models.StockRecord, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

// Pipeline memoizes Apply over a store: a query is recomputed only when the
// store version or the query itself changes. Rows returned by Rows are shared
// with the memo and must not be mutated by callers.
type Pipeline struct {
	store *store.Store

	mu      sync.Mutex
	memo    map[Query][]models.StockRecord
	version uint64
}

func NewPipeline(s *store.Store) *Pipeline {
	return &Pipeline{store: s, memo: make(map[Query][]models.StockRecord)}
}

func (p *Pipeline) Rows(q Query) []models.StockRecord {
	records, version := p.store.Snapshot()

	p.mu.Lock()
	defer p.mu.Unlock()
	if version != p.version {
		// Store moved on; every memoized derivation is stale.
		p.memo = make(map[Query][]models.StockRecord)
		p.version = version
	}
	if rows, ok := p.memo[q]; ok {
		return rows
	}
	rows := Apply(records, q)
	p.memo[q] = rows
	return rows
}
