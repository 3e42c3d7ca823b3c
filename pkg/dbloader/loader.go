package dbloader

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/internal/dbwire"
	"github.com/giang-nguyentbk/configdb/pkg/fs"
)

// Loader is the runtime core (spec §2, §5): a base store loaded once at
// construction, an overlay store mutated at runtime, and the five
// sync.RWMutex values guarding them in the documented lock order
// (baseStoreMu -> baseIndexMu -> overlayStoreMu -> overlayIndexMu ->
// persistMu). entryStore bundles its own entries slice and inverted index,
// but the two mutexes per tier are kept distinct — rather than folded into
// one per tier — so the lock order matches §5 literally.
type Loader struct {
	cfg Config
	fs  fs.FS
	sink dbtrace.Sink

	baseStoreMu sync.RWMutex
	baseIndexMu sync.RWMutex
	base        *entryStore

	overlayStoreMu sync.RWMutex
	overlayIndexMu sync.RWMutex
	overlay        *entryStore

	persistMu sync.RWMutex
}

// New constructs a Loader, loading the base image (fatal on failure) and
// the overlay file (treated as empty on failure, per spec §7).
func New(cfg Config, filesystem fs.FS, sink dbtrace.Sink) (*Loader, error) {
	if sink == nil {
		sink = dbtrace.Discard
	}

	l := &Loader{
		cfg:     cfg,
		fs:      filesystem,
		sink:    sink,
		base:    newEntryStore(),
		overlay: newEntryStore(),
	}

	if err := l.loadBase(); err != nil {
		return nil, err
	}

	l.loadOverlay()

	return l, nil
}

// Reload re-reads both tiers from disk, replacing in-memory state. A failed
// base reload leaves the previous base store untouched and returns the
// error; a failed overlay reload degrades to an empty overlay, as at
// construction.
func (l *Loader) Reload() error {
	l.baseStoreMu.Lock()
	l.baseIndexMu.Lock()
	l.overlayStoreMu.Lock()
	l.overlayIndexMu.Lock()

	defer l.overlayIndexMu.Unlock()
	defer l.overlayStoreMu.Unlock()
	defer l.baseIndexMu.Unlock()
	defer l.baseStoreMu.Unlock()

	entries, err := l.readBaseLocked()
	if err != nil {
		return err
	}

	l.base.buildFrom(entries)

	overlayEntries, err := l.readOverlayLocked()
	if err != nil {
		l.sink.Trace(dbtrace.ERROR, "overlay reload failed, using empty overlay", "err", err.Error())
		overlayEntries = nil
	}

	l.overlay.buildFrom(overlayEntries)

	return nil
}

func (l *Loader) loadBase() error {
	l.baseStoreMu.Lock()
	l.baseIndexMu.Lock()
	defer l.baseIndexMu.Unlock()
	defer l.baseStoreMu.Unlock()

	entries, err := l.readBaseLocked()
	if err != nil {
		return err
	}

	l.base.buildFrom(entries)

	l.sink.Trace(dbtrace.INFO, "base image loaded", "path", l.cfg.BasePath, "entries", len(entries))

	return nil
}

func (l *Loader) loadOverlay() {
	l.overlayStoreMu.Lock()
	l.overlayIndexMu.Lock()
	defer l.overlayIndexMu.Unlock()
	defer l.overlayStoreMu.Unlock()

	entries, err := l.readOverlayLocked()
	if err != nil {
		l.sink.Trace(dbtrace.ERROR, "overlay load failed, using empty overlay", "path", l.cfg.OverlayPath, "err", err.Error())

		entries = nil
	}

	l.overlay.buildFrom(entries)

	l.sink.Trace(dbtrace.INFO, "overlay loaded", "path", l.cfg.OverlayPath, "entries", len(entries))
}

func (l *Loader) readBaseLocked() ([]dbwire.Entry, error) {
	data, err := l.fs.ReadFile(l.cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("reading base image %s: %w", l.cfg.BasePath, err)
	}

	entries, err := dbwire.DecodeImage(bytes.NewReader(data), l.sink)
	if err != nil {
		return nil, fmt.Errorf("decoding base image %s: %w", l.cfg.BasePath, err)
	}

	return entries, nil
}

func (l *Loader) readOverlayLocked() ([]dbwire.Entry, error) {
	exists, err := l.fs.Exists(l.cfg.OverlayPath)
	if err != nil {
		return nil, fmt.Errorf("checking overlay file %s: %w", l.cfg.OverlayPath, err)
	}

	if !exists {
		return nil, nil
	}

	data, err := l.fs.ReadFile(l.cfg.OverlayPath)
	if err != nil {
		return nil, fmt.Errorf("reading overlay file %s: %w", l.cfg.OverlayPath, err)
	}

	entries, err := dbwire.DecodeOverlay(bytes.NewReader(data), l.sink)
	if err != nil {
		return nil, fmt.Errorf("decoding overlay file %s: %w", l.cfg.OverlayPath, err)
	}

	return entries, nil
}

func (l *Loader) rLockTier(t Tier) {
	if t == Base {
		l.baseStoreMu.RLock()
		l.baseIndexMu.RLock()

		return
	}

	l.overlayStoreMu.RLock()
	l.overlayIndexMu.RLock()
}

func (l *Loader) rUnlockTier(t Tier) {
	if t == Base {
		l.baseIndexMu.RUnlock()
		l.baseStoreMu.RUnlock()

		return
	}

	l.overlayIndexMu.RUnlock()
	l.overlayStoreMu.RUnlock()
}

func (l *Loader) lockOverlayWrite() {
	l.overlayStoreMu.Lock()
	l.overlayIndexMu.Lock()
}

func (l *Loader) unlockOverlayWrite() {
	l.overlayIndexMu.Unlock()
	l.overlayStoreMu.Unlock()
}

func (l *Loader) storeFor(t Tier) *entryStore {
	if t == Base {
		return l.base
	}

	return l.overlay
}
