package cli

import (
	"context"
	"fmt"

	"github.com/giang-nguyentbk/configdb/pkg/configdb"

	flag "github.com/spf13/pflag"
)

// EraseCmd returns the erase command.
func EraseCmd(db *configdb.DB) *Command {
	flags := flag.NewFlagSet("erase", flag.ContinueOnError)
	flagPersist := flags.Bool("persist", false, "write a tombstone to the overlay file (survives reload)")

	return &Command{
		Flags: flags,
		Usage: "erase [--persist] <key>",
		Short: "Mark a key as erased in the overlay tier",
		Long:  "Mark a key's overlay entry as erased, making it resolve to KEY_NOT_FOUND until restored.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execErase(io, db, *flagPersist, args)
		},
	}
}

func execErase(io *IO, db *configdb.DB, persist bool, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing key")
	}

	key := args[0]

	rc := db.Erase(key, persist)
	if rc != configdb.OK {
		return fmt.Errorf("%s: %s", key, rc)
	}

	io.Println("OK")

	return nil
}
