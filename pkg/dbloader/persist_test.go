package dbloader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/internal/dbwire"
)

func Test_PersistEntryLocked_Round_Trips_Through_Overlay_File(t *testing.T) {
	l, overlayPath := newTestLoader(t)

	entry := dbwire.Entry{
		Key:        "/supportedCapabilities",
		Permission: dbwire.PermissionReadWrite,
		Type:       dbwire.TypeU16,
		Values:     []dbwire.Value{dbwire.NumericValue(dbwire.TypeU16, 7)},
	}

	l.persistMu.Lock()
	l.persistEntryLocked(entry)
	l.persistMu.Unlock()

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		t.Fatalf("reading overlay file: %v", err)
	}

	got, err := dbwire.DecodeOverlay(bytes.NewReader(data), dbtrace.Discard)
	if err != nil {
		t.Fatalf("DecodeOverlay: %v", err)
	}

	if len(got) != 1 || got[0].Key != "/supportedCapabilities" || got[0].Values[0].U16() != 7 {
		t.Fatalf("got=%v, want one entry /supportedCapabilities=7", got)
	}
}

func Test_PersistEntryLocked_Preserves_Unrelated_Existing_Entries(t *testing.T) {
	l, overlayPath := newTestLoader(t)

	l.persistMu.Lock()
	l.persistEntryLocked(dbwire.Entry{Key: "/a", Permission: dbwire.PermissionReadWrite, Type: dbwire.TypeU8, Values: []dbwire.Value{dbwire.NumericValue(dbwire.TypeU8, 1)}})
	l.persistEntryLocked(dbwire.Entry{Key: "/b", Permission: dbwire.PermissionReadWrite, Type: dbwire.TypeU8, Values: []dbwire.Value{dbwire.NumericValue(dbwire.TypeU8, 2)}})
	l.persistMu.Unlock()

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		t.Fatalf("reading overlay file: %v", err)
	}

	got, err := dbwire.DecodeOverlay(bytes.NewReader(data), dbtrace.Discard)
	if err != nil {
		t.Fatalf("DecodeOverlay: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2 (unrelated entry /a dropped when /b persisted)", len(got))
	}
}

// Test_PersistEntryLocked_Failed_Write_Leaves_Existing_Overlay_File_Untouched
// injects the narrowest fault this package can reach without OS permission
// tricks that root bypasses: the rewrite targets a path whose parent
// directory does not exist, so natefinch/atomic's temp-file creation fails
// before it ever reaches rename. The existing, valid overlay file is
// asserted unchanged — the durability floor of spec §4.7.
func Test_PersistEntryLocked_Failed_Write_Leaves_Existing_Overlay_File_Untouched(t *testing.T) {
	l, overlayPath := newTestLoader(t)

	if rc := Update[uint16](l, "/supportedCapabilities", []uint16{3}, true); rc != OK {
		t.Fatalf("seed update rc=%v, want OK", rc)
	}

	before, err := os.ReadFile(overlayPath)
	if err != nil {
		t.Fatalf("reading overlay before fault: %v", err)
	}

	l.cfg.OverlayPath = filepath.Join(filepath.Dir(overlayPath), "missing-subdir", "configdb.overlay")

	l.persistMu.Lock()
	l.persistEntryLocked(dbwire.Entry{
		Key:        "/temperatureRanges",
		Permission: dbwire.PermissionReadWrite,
		Type:       dbwire.TypeS16,
		Values:     []dbwire.Value{dbwire.NumericValue(dbwire.TypeS16, 1)},
	})
	l.persistMu.Unlock()

	after, err := os.ReadFile(overlayPath)
	if err != nil {
		t.Fatalf("reading overlay after fault: %v", err)
	}

	if !bytes.Equal(before, after) {
		t.Fatal("overlay file content changed despite the rewrite targeting an unreachable path")
	}
}
