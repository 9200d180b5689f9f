package journal

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Store persists the whole ledger. Save is a full rewrite.
type Store interface {
	Load() (*Ledger, LoadReport, error)
	Save(*Ledger) error
	Close() error
}

// Backend names a Store implementation in config.
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

type storeOptions struct {
	backups int
	log     zerolog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

// WithBackups keeps the last n versions of the CSV file as <file>.v1..vn.
func WithBackups(n int) StoreOption {
	return func(o *storeOptions) {
		if n < 0 {
			n = 0
		}
		o.backups = n
	}
}

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.log = log
	}
}

func buildOptions(opts []StoreOption) storeOptions {
	o := storeOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open returns the Store for backend at path.
func Open(backend Backend, path string, opts ...StoreOption) (Store, error) {
	switch backend {
	case BackendCSV, "":
		return NewCSVStore(path, opts...), nil
	case BackendSQLite:
		return NewSQLiteStore(path, opts...)
	}
	return nil, fmt.Errorf("unknown journal backend %q", backend)
}
