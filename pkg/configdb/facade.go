package configdb

import (
	"sync"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/pkg/dbloader"
	"github.com/giang-nguyentbk/configdb/pkg/fs"
)

// DB wraps one *dbloader.Loader behind the typed Get/Update surface of
// spec §4.1. Most callers use the process-wide singleton via Default,
// Init, and the package-level functions; DB is exported so tests and
// multi-instance callers (the CLI harness) can construct their own.
type DB struct {
	loader *dbloader.Loader
}

// Open constructs a DB from cfg, loading the base image and overlay file
// immediately (dbloader.New's contract).
func Open(cfg dbloader.Config, sink dbtrace.Sink) (*DB, error) {
	loader, err := dbloader.New(cfg, fs.NewReal(), sink)
	if err != nil {
		return nil, err
	}

	return &DB{loader: loader}, nil
}

// Reload re-reads both tiers from disk.
func (db *DB) Reload() error {
	return db.loader.Reload()
}

var (
	defaultMu sync.RWMutex
	defaultDB *DB
)

// Init installs db as the process-wide singleton returned by Default.
// Intended to be called once during process startup.
func Init(db *DB) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultDB = db
}

// Default returns the process-wide singleton installed by Init. It panics
// if Init has not been called — a caller that reaches for package-level
// Get/Update before installing a DB has a startup-ordering bug, not a
// recoverable error.
func Default() *DB {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	if defaultDB == nil {
		panic("configdb: Default() called before Init()")
	}

	return defaultDB
}
