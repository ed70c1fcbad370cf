package store

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	Backend        string
	Dir            string
	File           string // data file name for the file backend
	DBFile         string // database file name for the sqlite backend
	Format         string
	VerifyChecksum bool
	Fs             afero.Fs // defaults to the OS filesystem
}

// Path returns the location the selected backend reads and writes.
func (o Options) Path() string {
	if o.Backend == BackendSQLite {
		return filepath.Join(o.Dir, o.DBFile)
	}
	return filepath.Join(o.Dir, o.File)
}

// Open returns the backend described by opts.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		fsys := opts.Fs
		if fsys == nil {
			fsys = afero.NewOsFs()
		}
		return NewFileStore(fsys, opts.Path(), FileOptions{
			Format:         opts.Format,
			VerifyChecksum: opts.VerifyChecksum,
		})
	case BackendSQLite:
		return NewSQLiteStore(opts.Path())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, opts.Backend)
	}
}
