package board

import (
	"context"
	"log/slog"
	"sync"

	"github.com/josephgoksu/daytrack/models"
	"github.com/josephgoksu/daytrack/store"
)

// Writer serialises snapshot writes and drops any write older than the last
// one persisted, so saves issued asynchronously cannot land out of order.
type Writer struct {
	mu      sync.Mutex
	store   store.Store
	written uint64
}

// NewWriter wraps st.
func NewWriter(st store.Store) *Writer {
	return &Writer{store: st}
}

// Write persists data if gen is newer than the last persisted generation.
// It reports whether the store was written.
func (w *Writer) Write(ctx context.Context, gen uint64, data models.TasksByDate) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen <= w.written {
		slog.Debug("skipping stale snapshot", "generation", gen, "written", w.written)
		return false, nil
	}
	if err := w.store.Save(ctx, data); err != nil {
		return false, err
	}
	w.written = gen
	return true, nil
}

// Written returns the last persisted generation.
func (w *Writer) Written() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}
