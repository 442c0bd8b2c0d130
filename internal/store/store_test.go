package store

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

func rec(code, date string) models.StockRecord {
	return models.StockRecord{
		Date:      date,
		TradeCode: code,
		High:      decimal.NewFromInt(10),
		Low:       decimal.NewFromInt(5),
		Open:      decimal.NewFromInt(7),
		Close:     decimal.NewFromInt(9),
		Volume:    100,
	}
}

func TestLoadReplacesCollection(t *testing.T) {
	s := New()
	s.Append(rec("OLD", "2023-01-01"))

	s.Load([]models.StockRecord{rec("ABC", "2023-01-05"), rec("XYZ", "2023-01-03")})

	rows, _ := s.Snapshot()
	assert.Equal(t, 2, len(rows))
	assert.Equal(t, "ABC", rows[0].TradeCode)
	assert.Equal(t, "XYZ", rows[1].TradeCode)
}

func TestAppendBumpsVersion(t *testing.T) {
	s := New()
	_, v0 := s.Snapshot()
	s.Append(rec("ABC", "2023-01-05"))
	rows, v1 := s.Snapshot()
	assert.Equal(t, 1, len(rows))
	assert.Equal(t, v0+1, v1)
}

func TestReplaceOnlyTouchesMatch(t *testing.T) {
	s := New()
	s.Load([]models.StockRecord{
		rec("ABC", "2023-01-05"),
		rec("XYZ", "2023-01-03"),
		rec("ABC", "2023-01-06"),
	})

	updated := rec("XYZ", "2023-01-03")
	updated.Volume = 999
	ok := s.Replace(models.RecordKey{TradeCode: "XYZ", Date: "2023-01-03"}, updated)
	assert.Equal(t, true, ok)

	rows, _ := s.Snapshot()
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, rec("ABC", "2023-01-05"), rows[0])
	assert.Equal(t, updated, rows[1])
	assert.Equal(t, rec("ABC", "2023-01-06"), rows[2])
}

func TestReplaceMissingIsNoop(t *testing.T) {
	s := New()
	s.Load([]models.StockRecord{rec("ABC", "2023-01-05")})
	_, v0 := s.Snapshot()

	ok := s.Replace(models.RecordKey{TradeCode: "NOPE", Date: "2023-01-05"}, rec("NOPE", "2023-01-05"))
	assert.Equal(t, false, ok)

	rows, v1 := s.Snapshot()
	assert.Equal(t, v0, v1)
	assert.Equal(t, 1, len(rows))
}

func TestRemoveExactMatch(t *testing.T) {
	s := New()
	s.Load([]models.StockRecord{
		rec("ABC", "2023-01-05"),
		rec("ABC", "2023-01-06"),
		rec("XYZ", "2023-01-05"),
	})

	ok := s.Remove(models.RecordKey{TradeCode: "ABC", Date: "2023-01-06"})
	assert.Equal(t, true, ok)

	rows, _ := s.Snapshot()
	assert.Equal(t, 2, len(rows))
	assert.Equal(t, "2023-01-05", rows[0].Date)
	assert.Equal(t, "XYZ", rows[1].TradeCode)

	assert.Equal(t, false, s.Remove(models.RecordKey{TradeCode: "ABC", Date: "2023-01-06"}))
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.Load([]models.StockRecord{rec("ABC", "2023-01-05")})

	rows, _ := s.Snapshot()
	rows[0].TradeCode = "MUTATED"

	again, _ := s.Snapshot()
	assert.Equal(t, "ABC", again[0].TradeCode)
}
