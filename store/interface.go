package store

import (
	"context"
	"errors"

	"github.com/josephgoksu/daytrack/models"
)

// StorageKey is the single key the whole task map is stored under.
const StorageKey = "tasksByDate"

var (
	// ErrChecksumMismatch is returned when the data file does not match its checksum sidecar.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrUnsupportedFormat is returned for a data format other than json, yaml or toml.
	ErrUnsupportedFormat = errors.New("unsupported data format")
	// ErrUnsupportedBackend is returned for a backend other than file or sqlite.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// Store persists the complete task map.
// Writes always replace the stored value wholesale; there are no incremental
// writes and no reconciliation with other writers (last writer wins).
type Store interface {
	// Load reads the stored map. A store that has never been written loads as an
	// empty, non-nil map.
	Load(ctx context.Context) (models.TasksByDate, error)

	// Save overwrites the stored map with m.
	Save(ctx context.Context, m models.TasksByDate) error

	// Close releases any resources held by the store.
	Close() error
}
