package cli

import (
	"context"
	"fmt"

	"github.com/giang-nguyentbk/configdb/pkg/configdb"

	flag "github.com/spf13/pflag"
)

// RestoreCmd returns the restore command.
func RestoreCmd(db *configdb.DB) *Command {
	return &Command{
		Flags: flag.NewFlagSet("restore", flag.ContinueOnError),
		Usage: "restore <key>",
		Short: "Remove a key's overlay entry, reverting to the base value",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execRestore(io, db, args)
		},
	}
}

func execRestore(io *IO, db *configdb.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing key")
	}

	key := args[0]

	rc := db.Restore(key)
	if rc != configdb.OK {
		return fmt.Errorf("%s: %s", key, rc)
	}

	io.Println("OK")

	return nil
}
