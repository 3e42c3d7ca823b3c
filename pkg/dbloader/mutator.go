package dbloader

import (
	"strings"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/internal/dbwire"
)

// Update implements the Mutator's update operation (spec §4.6) for a
// numeric element type T.
func Update[T Numeric](l *Loader, key string, values []T, persistent bool) ReturnCode {
	numeric := make([]dbwire.Value, len(values))

	want := numericTypeOf[T]()
	for i, v := range values {
		numeric[i] = dbwire.NumericValue(want, int64(v))
	}

	return l.update(key, want, numeric, persistent)
}

// UpdateString implements update for STRING entries: values are rebuilt per
// invariant 6 (each token, then the joined whole string).
func UpdateString(l *Loader, key string, tokens []string, persistent bool) ReturnCode {
	values := make([]dbwire.Value, 0, len(tokens)+1)
	for _, t := range tokens {
		values = append(values, dbwire.StringValue(t))
	}

	values = append(values, dbwire.StringValue(strings.Join(tokens, " ")))

	return l.update(key, dbwire.TypeString, values, persistent)
}

func (l *Loader) update(key string, want dbwire.Type, values []dbwire.Value, persistent bool) ReturnCode {
	l.baseStoreMu.RLock()
	l.baseIndexMu.RLock()
	l.lockOverlayWrite()

	defer l.unlockOverlayWrite()
	defer l.baseIndexMu.RUnlock()
	defer l.baseStoreMu.RUnlock()

	res := l.resolve(key)
	if !res.found {
		return KeyNotFound
	}

	entry := l.storeFor(res.tier).entries[res.index]

	if entry.Erased {
		return KeyNotFound
	}

	if entry.Permission == dbwire.PermissionReadOnly {
		return NotWritable
	}

	if entry.Type != want {
		return TypeMismatch
	}

	var overlayIdx int

	if res.tier == Overlay {
		entry.Values = values
		entry.Erased = false
		l.overlay.entries[res.index] = entry
		overlayIdx = res.index
	} else {
		shadow := entry.Clone()
		shadow.Values = values
		shadow.Erased = false
		overlayIdx = l.overlay.append(shadow)
	}

	if persistent {
		l.persistLocked(l.overlay.entries[overlayIdx])
	}

	return OK
}

// Restore implements restore (spec §4.6): drops the overlay entry for key,
// reverting resolution to the base entry, and rebuilds the overlay index.
// If a persisted overlay record exists, it is removed too.
func (l *Loader) Restore(key string) ReturnCode {
	l.lockOverlayWrite()

	matches := l.overlay.resolve(key)
	if len(matches) == 0 {
		l.unlockOverlayWrite()

		return KeyNotFound
	}

	l.removeOverlayEntryLocked(key)
	l.unlockOverlayWrite()

	l.persistMu.Lock()
	defer l.persistMu.Unlock()

	if err := l.removePersistedEntry(key); err != nil {
		l.sink.Trace(dbtrace.ERROR, "failed to remove persisted overlay entry on restore", "key", key, "err", err.Error())
	}

	return OK
}

// Erase implements erase (spec §4.6, §4.6.1): shadow-copies from base if
// necessary and sets the erased flag. When persistent, the tombstone
// sentinel is written to the overlay file (§4.6.1).
func (l *Loader) Erase(key string, persistent bool) ReturnCode {
	l.baseStoreMu.RLock()
	l.baseIndexMu.RLock()
	l.lockOverlayWrite()

	res := l.resolve(key)
	if !res.found {
		l.unlockOverlayWrite()
		l.baseIndexMu.RUnlock()
		l.baseStoreMu.RUnlock()

		return KeyNotFound
	}

	var overlayIdx int

	if res.tier == Overlay {
		entry := l.overlay.entries[res.index]
		entry.Erased = true
		l.overlay.entries[res.index] = entry
		overlayIdx = res.index
	} else {
		shadow := l.base.entries[res.index].Clone()
		shadow.Erased = true
		overlayIdx = l.overlay.append(shadow)
	}

	entryToPersist := l.overlay.entries[overlayIdx]

	l.unlockOverlayWrite()
	l.baseIndexMu.RUnlock()
	l.baseStoreMu.RUnlock()

	if persistent {
		l.persistMu.Lock()
		l.persistEntryLocked(entryToPersist)
		l.persistMu.Unlock()
	}

	return OK
}

// Reset implements reset (spec §4.6): empties the overlay store and index
// and deletes the overlay file. The base store is untouched.
func (l *Loader) Reset() ReturnCode {
	l.lockOverlayWrite()
	l.overlay.buildFrom(nil)
	l.unlockOverlayWrite()

	l.persistMu.Lock()
	defer l.persistMu.Unlock()

	if err := l.deleteOverlayFile(); err != nil {
		l.sink.Trace(dbtrace.ERROR, "failed to delete overlay file on reset", "err", err.Error())
	}

	return OK
}

// removeOverlayEntryLocked drops the overlay entry for key (if any) and
// rebuilds the overlay index. Caller holds the overlay write locks.
func (l *Loader) removeOverlayEntryLocked(key string) {
	matches := l.overlay.resolve(key)
	if len(matches) == 0 {
		return
	}

	idx, _ := lowestOf(matches)

	remaining := make([]dbwire.Entry, 0, len(l.overlay.entries)-1)

	for i, e := range l.overlay.entries {
		if i == idx {
			continue
		}

		remaining = append(remaining, e)
	}

	l.overlay.buildFrom(remaining)
}

// persistLocked persists entry while already holding the overlay write
// locks, by separately acquiring persistMu. Used by update, which needs
// the overlay entry's final in-memory state before releasing overlay
// locks.
func (l *Loader) persistLocked(entry dbwire.Entry) {
	l.persistMu.Lock()
	defer l.persistMu.Unlock()

	l.persistEntryLocked(entry)
}
