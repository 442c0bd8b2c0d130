// Package api is the HTTP client for the stock_data backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

// Error is a non-2xx backend response. Message carries the server-supplied
// error text when the body was parseable.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %d %s", e.Status, http.StatusText(e.Status))
}

type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: httpClient, logger: logger}
}

func (c *Client) recordURL(key models.RecordKey) string {
	return c.base + "/api/stock_data/" +
		url.PathEscape(key.TradeCode) + "/" + url.PathEscape(key.Date)
}

// List fetches the full collection.
func (c *Client) List(ctx context.Context) ([]models.StockRecord, error) {
	var out []models.StockRecord
	if err := c.do(ctx, http.MethodGet, c.base+"/api/stock_data", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record by key.
func (c *Client) Get(ctx context.Context, key models.RecordKey) (models.StockRecord, error) {
	var out models.StockRecord
	err := c.do(ctx, http.MethodGet, c.recordURL(key), nil, &out)
	return out, err
}

// Create submits a draft. The returned record is the backend's canonical
// version of it.
func (c *Client) Create(ctx context.Context, draft models.StockRecord) (models.StockRecord, error) {
	var out models.StockRecord
	err := c.do(ctx, http.MethodPost, c.base+"/api/stock_data", draft, &out)
	return out, err
}

// Update submits an edited record addressed by its pre-edit key.
func (c *Client) Update(ctx context.Context, key models.RecordKey, rec models.StockRecord) (models.StockRecord, error) {
	var out models.StockRecord
	err := c.do(ctx, http.MethodPut, c.recordURL(key), rec, &out)
	return out, err
}

// Delete removes the record addressed by key. There is no response body to
// reconcile against.
func (c *Client) Delete(ctx context.Context, key models.RecordKey) error {
	return c.do(ctx, http.MethodDelete, c.recordURL(key), nil, nil)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.logger.Warn("backend_error",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls the error text out of a failure body. Both the
// {"error": ...} and {"message": ...} shapes are seen in the wild.
func readErrorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
