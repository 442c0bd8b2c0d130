package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for record dates.
const DateLayout = "2006-01-02"

// StockRecord is one daily stock observation. Prices travel as JSON strings
// (decimal.Decimal marshals quoted) but numeric bodies are accepted too.
type StockRecord struct {
	Date      string          `json:"date"`
	TradeCode string          `json:"trade_code"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Open      decimal.Decimal `json:"open"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
}

// RecordKey addresses a record. (trade_code, date) is the natural key: no two
// records may share it.
type RecordKey struct {
	TradeCode string `json:"trade_code"`
	Date      string `json:"date"`
}

func (r StockRecord) Key() RecordKey {
	return RecordKey{TradeCode: r.TradeCode, Date: r.Date}
}

// Day parses the record date.
func (r StockRecord) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

func (k RecordKey) String() string {
	return k.TradeCode + "/" + k.Date
}

// Validate rejects keys the backend cannot address: empty segments or a date
// that does not parse.
func (k RecordKey) Validate() error {
	if k.TradeCode == "" {
		return fmt.Errorf("record key: empty trade code")
	}
	if _, err := time.Parse(DateLayout, k.Date); err != nil {
		return fmt.Errorf("record key: bad date %q: %w", k.Date, err)
	}
	return nil
}
