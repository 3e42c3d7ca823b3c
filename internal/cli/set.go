package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/giang-nguyentbk/configdb/pkg/configdb"

	flag "github.com/spf13/pflag"
)

// SetCmd returns the set command.
func SetCmd(db *configdb.DB) *Command {
	flags := flag.NewFlagSet("set", flag.ContinueOnError)
	flagType := flags.StringP("type", "t", "", "element type (u8/s8/u16/s16/u32/s32/u64/s64/string)")
	flagPersist := flags.Bool("persist", false, "write the update to the overlay file (hard update)")

	return &Command{
		Flags: flags,
		Usage: "set --type <type> [--persist] <key> <value>[,<value>...]",
		Short: "Update a key's values in the overlay tier",
		Long: `Update a key's values.

Without --persist the update is ephemeral: it shadows the base value for
this process only and is lost on restart. With --persist it is written
through the overlay persister and survives reload.

For string keys, pass each token as a separate trailing argument; they
are rejoined with a single space, matching the whole-string form a STRING
entry always carries alongside its tokens.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execSet(io, db, *flagType, *flagPersist, args)
		},
	}
}

func execSet(io *IO, db *configdb.DB, rawType string, persist bool, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: set --type <type> [--persist] <key> <value>[,<value>...]")
	}

	typ, err := normalizeElementType(rawType)
	if err != nil {
		return err
	}

	key := args[0]

	var raw []string
	if typ == "string" {
		raw = args[1:]
	} else {
		raw = strings.Split(args[1], ",")
	}

	rc, err := updateByType(db, typ, key, raw, persist)
	if err != nil {
		return err
	}

	if rc != configdb.OK {
		return fmt.Errorf("%s: %s", key, rc)
	}

	io.Println("OK")

	return nil
}
