// Package coordinator turns user intents (add, edit, delete) into backend
// calls and reconciles the collection store with the responses.
package coordinator

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
	"github.com/Al-Faravi/Stock-Viewer/internal/notify"
	"github.com/Al-Faravi/Stock-Viewer/internal/store"
)

var (
	// ErrSubmitting rejects a second mutation while one is in flight.
	ErrSubmitting = errors.New("coordinator: mutation already submitting")
	// ErrDeclined reports a delete the user cancelled at the prompt.
	ErrDeclined = errors.New("coordinator: delete declined")
	// ErrClosed reports a coordinator torn down before the call completed.
	ErrClosed = errors.New("coordinator: closed")
)

// Backend is the remote collaborator. *api.Client satisfies it.
type Backend interface {
	List(ctx context.Context) ([]models.StockRecord, error)
	Create(ctx context.Context, draft models.StockRecord) (models.StockRecord, error)
	Update(ctx context.Context, key models.RecordKey, rec models.StockRecord) (models.StockRecord, error)
	Delete(ctx context.Context, key models.RecordKey) error
}

// ConfirmFunc gates a delete. Returning false aborts before any request is
// sent. The prompt shown to the user must name the action as irreversible.
type ConfirmFunc func(key models.RecordKey) bool

// Coordinator serializes mutations against the backend: at most one create,
// update, or delete may be Submitting at a time, and completions arriving
// after Close never touch the store or the notifier.
type Coordinator struct {
	store    *store.Store
	backend  Backend
	notifier *notify.Notifier
	confirm  ConfirmFunc
	logger   *zap.Logger

	gate   chan struct{} // holds a token while a mutation is in flight
	closed chan struct{}
}

func New(s *store.Store, b Backend, n *notify.Notifier, confirm ConfirmFunc, logger *zap.Logger) *Coordinator {
	c := &Coordinator{
		store:    s,
		backend:  b,
		notifier: n,
		confirm:  confirm,
		logger:   logger,
		gate:     make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
	c.gate <- struct{}{}
	return c
}

// Close marks the coordinator torn down. In-flight calls finish their
// requests but discard the results.
func (c *Coordinator) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
}

func (c *Coordinator) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Load fetches the full collection into the store. It does not take the
// mutation gate: a mutation resolving before or after the initial load is
// reconciled against whatever the store holds at completion time.
func (c *Coordinator) Load(ctx context.Context) error {
	id := uuid.NewString()
	records, err := c.backend.List(ctx)
	if err != nil {
		c.logger.Error("load_failed", zap.String("request_id", id), zap.Error(err))
		return err
	}
	if c.isClosed() {
		return ErrClosed
	}
	c.store.Load(records)
	c.logger.Info("loaded", zap.String("request_id", id), zap.Int("records", len(records)))
	return nil
}

// Create submits a draft. On success the backend's canonical record — not
// the draft — is appended; the caller then clears the draft and closes the
// dialog. On failure the store is untouched and the draft survives for retry.
func (c *Coordinator) Create(ctx context.Context, draft models.StockRecord) error {
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	id := uuid.NewString()
	rec, err := c.backend.Create(ctx, draft)
	if err != nil {
		return c.fail("create", id, draft.Key(), err, "Error adding stock.")
	}
	if c.isClosed() {
		return ErrClosed
	}
	c.store.Append(rec)
	c.notifier.Publish(notify.Success, "Stock added successfully!")
	c.logger.Info("created", zap.String("request_id", id), zap.String("key", rec.Key().String()))
	return nil
}

// Update submits an edited record addressed by its pre-edit key. The store
// entry matching that key is replaced with the response record; the
// response's key wins if the edit changed it.
func (c *Coordinator) Update(ctx context.Context, key models.RecordKey, edited models.StockRecord) error {
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	id := uuid.NewString()
	rec, err := c.backend.Update(ctx, key, edited)
	if err != nil {
		return c.fail("update", id, key, err, "Error updating stock.")
	}
	if c.isClosed() {
		return ErrClosed
	}
	if !c.store.Replace(key, rec) {
		// Tolerated: the load may not have resolved yet, or the row is gone.
		c.logger.Warn("update_target_missing", zap.String("request_id", id), zap.String("key", key.String()))
	}
	c.notifier.Publish(notify.Success, "Stock updated successfully!")
	c.logger.Info("updated", zap.String("request_id", id), zap.String("key", rec.Key().String()))
	return nil
}

// Delete asks for confirmation, then removes the record both remotely and
// locally. A declined prompt sends nothing and notifies nothing.
func (c *Coordinator) Delete(ctx context.Context, key models.RecordKey) error {
	if c.confirm != nil && !c.confirm(key) {
		return ErrDeclined
	}
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	id := uuid.NewString()
	if err := c.backend.Delete(ctx, key); err != nil {
		return c.fail("delete", id, key, err, "Error deleting stock.")
	}
	if c.isClosed() {
		return ErrClosed
	}
	c.store.Remove(key)
	c.notifier.Publish(notify.Success, "Stock deleted successfully!")
	c.logger.Info("deleted", zap.String("request_id", id), zap.String("key", key.String()))
	return nil
}

func (c *Coordinator) acquire() (func(), error) {
	if c.isClosed() {
		return nil, ErrClosed
	}
	select {
	case <-c.gate:
		return func() { c.gate <- struct{}{} }, nil
	default:
		return nil, ErrSubmitting
	}
}

func (c *Coordinator) fail(op, id string, key models.RecordKey, err error, message string) error {
	c.logger.Error(op+"_failed",
		zap.String("request_id", id),
		zap.String("key", key.String()),
		zap.Error(err),
	)
	if !c.isClosed() {
		c.notifier.Publish(notify.Failure, message)
	}
	return err
}
