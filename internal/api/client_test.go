package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

func TestListFetchesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/stock_data", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2023-01-05","trade_code":"ABC","high":"12.5","low":"11","open":"11.2","close":"12.1","volume":15000},
			{"date":"2023-01-03","trade_code":"XYZ","high":"9.8","low":"9.1","open":"9.5","close":"9.6","volume":8000}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	records, err := c.List(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, "ABC", records[0].TradeCode)
	assert.Equal(t, "12.5", records[0].High.String())
	assert.Equal(t, int64(8000), records[1].Volume)
}

func TestCreatePostsDraftAndReturnsCanonical(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/stock_data", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEqual(t, "", r.Header.Get("X-Request-Id"))

		var draft models.StockRecord
		assert.Equal(t, nil, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "GP", draft.TradeCode)

		// Server normalizes the price scale.
		draft.High = draft.High.Round(2)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(draft)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	draft := models.StockRecord{Date: "2023-02-01", TradeCode: "GP"}
	rec, err := c.Create(context.Background(), draft)
	assert.Equal(t, nil, err)
	assert.Equal(t, "GP", rec.TradeCode)
	assert.Equal(t, "2023-02-01", rec.Date)
}

func TestUpdateAddressesPreEditKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/stock_data/ABC/2023-01-05", r.URL.Path)
		var rec models.StockRecord
		json.NewDecoder(r.Body).Decode(&rec)
		json.NewEncoder(w).Encode(rec)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	key := models.RecordKey{TradeCode: "ABC", Date: "2023-01-05"}
	rec, err := c.Update(context.Background(), key, models.StockRecord{Date: "2023-01-05", TradeCode: "ABC", Volume: 42})
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(42), rec.Volume)
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/stock_data/XYZ/2023-01-03", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "Stock data deleted successfully!"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	err := c.Delete(context.Background(), models.RecordKey{TradeCode: "XYZ", Date: "2023-01-03"})
	assert.Equal(t, nil, err)
}

func TestNon2xxBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"not_found","message":"stock entry not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	_, err := c.Get(context.Background(), models.RecordKey{TradeCode: "NOPE", Date: "2023-01-01"})

	var apiErr *Error
	assert.Equal(t, true, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "stock entry not found", apiErr.Message)
}

func TestTransportFailureBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, nil, zap.NewNop())
	_, err := c.List(context.Background())
	assert.NotEqual(t, nil, err)
}

func TestMalformedJSONIsAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, zap.NewNop())
	_, err := c.List(context.Background())
	assert.NotEqual(t, nil, err)
}
