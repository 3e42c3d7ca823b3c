package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/internal/dbwire"
	"github.com/giang-nguyentbk/configdb/pkg/configdb"
	"github.com/giang-nguyentbk/configdb/pkg/dbloader"
)

func newTestDB(t *testing.T) *configdb.DB {
	t.Helper()

	dir := t.TempDir()
	basePath := filepath.Join(dir, "configdb.bin")

	entries := []dbwire.Entry{
		{Key: "/isFeatureXyzEnabled", Permission: dbwire.PermissionReadWrite, Type: dbwire.TypeU8, Values: []dbwire.Value{dbwire.NumericValue(dbwire.TypeU8, 1)}},
		{Key: "/initSequence", Permission: dbwire.PermissionReadOnly, Type: dbwire.TypeU8, Values: []dbwire.Value{dbwire.NumericValue(dbwire.TypeU8, 9)}},
	}

	if err := os.WriteFile(basePath, dbwire.EncodeImage(entries), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg := dbloader.Config{BasePath: basePath, OverlayPath: filepath.Join(dir, "configdb.overlay")}

	db, err := configdb.Open(cfg, dbtrace.Discard)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	return db
}

func runCommand(t *testing.T, cmd *Command, args []string) (stdout, stderr string, exitCode int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	io := NewIO(&outBuf, &errBuf)

	exitCode = cmd.Run(context.Background(), io, args)

	return outBuf.String(), errBuf.String(), exitCode
}

func Test_GetCmd_Prints_Resolved_Value(t *testing.T) {
	db := newTestDB(t)

	stdout, _, code := runCommand(t, GetCmd(db), []string{"--type", "u8", "/isFeatureXyzEnabled"})

	if code != 0 {
		t.Fatalf("exit code=%d, want 0", code)
	}

	if strings.TrimSpace(stdout) != "1" {
		t.Fatalf("stdout=%q, want %q", stdout, "1")
	}
}

func Test_GetCmd_Unknown_Key_Returns_Error(t *testing.T) {
	db := newTestDB(t)

	_, stderr, code := runCommand(t, GetCmd(db), []string{"--type", "u8", "/doesNotExist"})

	if code == 0 {
		t.Fatalf("exit code=0, want non-zero")
	}

	if !strings.Contains(stderr, "KEY_NOT_FOUND") {
		t.Fatalf("stderr=%q, want KEY_NOT_FOUND", stderr)
	}
}

func Test_SetCmd_Then_GetCmd_Observes_New_Value(t *testing.T) {
	db := newTestDB(t)

	_, _, code := runCommand(t, SetCmd(db), []string{"--type", "u8", "/isFeatureXyzEnabled", "0"})
	if code != 0 {
		t.Fatalf("set exit code=%d, want 0", code)
	}

	stdout, _, code := runCommand(t, GetCmd(db), []string{"--type", "u8", "/isFeatureXyzEnabled"})
	if code != 0 {
		t.Fatalf("get exit code=%d, want 0", code)
	}

	if strings.TrimSpace(stdout) != "0" {
		t.Fatalf("stdout=%q, want %q", stdout, "0")
	}
}

func Test_SetCmd_On_ReadOnly_Key_Returns_Not_Writable(t *testing.T) {
	db := newTestDB(t)

	_, stderr, code := runCommand(t, SetCmd(db), []string{"--type", "u8", "/initSequence", "5"})

	if code == 0 {
		t.Fatalf("exit code=0, want non-zero")
	}

	if !strings.Contains(stderr, "NOT_WRITABLE") {
		t.Fatalf("stderr=%q, want NOT_WRITABLE", stderr)
	}
}

func Test_EraseCmd_Then_RestoreCmd_Round_Trips(t *testing.T) {
	db := newTestDB(t)

	_, _, code := runCommand(t, EraseCmd(db), []string{"/isFeatureXyzEnabled"})
	if code != 0 {
		t.Fatalf("erase exit code=%d, want 0", code)
	}

	_, stderr, code := runCommand(t, GetCmd(db), []string{"--type", "u8", "/isFeatureXyzEnabled"})
	if code == 0 || !strings.Contains(stderr, "KEY_NOT_FOUND") {
		t.Fatalf("expected KEY_NOT_FOUND after erase, stderr=%q", stderr)
	}

	_, _, code = runCommand(t, RestoreCmd(db), []string{"/isFeatureXyzEnabled"})
	if code != 0 {
		t.Fatalf("restore exit code=%d, want 0", code)
	}

	stdout, _, code := runCommand(t, GetCmd(db), []string{"--type", "u8", "/isFeatureXyzEnabled"})
	if code != 0 || strings.TrimSpace(stdout) != "1" {
		t.Fatalf("stdout=%q code=%d, want 1/0", stdout, code)
	}
}

func Test_ResetCmd_Empties_Overlay(t *testing.T) {
	db := newTestDB(t)

	runCommand(t, SetCmd(db), []string{"--type", "u8", "/isFeatureXyzEnabled", "0"})

	_, _, code := runCommand(t, ResetCmd(db), nil)
	if code != 0 {
		t.Fatalf("reset exit code=%d, want 0", code)
	}

	stdout, _, code := runCommand(t, GetCmd(db), []string{"--type", "u8", "/isFeatureXyzEnabled"})
	if code != 0 || strings.TrimSpace(stdout) != "1" {
		t.Fatalf("stdout=%q code=%d, want base value 1", stdout, code)
	}
}

func Test_Run_Help_Prints_Usage_And_Commands(t *testing.T) {
	var stdout, stderr bytes.Buffer

	exitCode := Run(nil, &stdout, &stderr, []string{"--help"}, nil)

	if exitCode != 0 {
		t.Fatalf("exit code=%d, want 0", exitCode)
	}

	out := stdout.String()

	if !strings.Contains(out, "configdb-cli") {
		t.Fatalf("stdout should contain title: %q", out)
	}

	if !strings.Contains(out, "repl") {
		t.Fatalf("stdout should mention repl: %q", out)
	}
}
