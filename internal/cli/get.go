package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/giang-nguyentbk/configdb/pkg/configdb"

	flag "github.com/spf13/pflag"
)

// GetCmd returns the get command.
func GetCmd(db *configdb.DB) *Command {
	flags := flag.NewFlagSet("get", flag.ContinueOnError)
	flagType := flags.StringP("type", "t", "", "element type (u8/s8/u16/s16/u32/s32/u64/s64/string)")

	return &Command{
		Flags: flags,
		Usage: "get --type <type> <key>",
		Short: "Resolve and print a key's values",
		Long:  "Resolve a key against the overlay then base tier and print its value sequence.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execGet(io, db, *flagType, args)
		},
	}
}

func execGet(io *IO, db *configdb.DB, rawType string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing key")
	}

	typ, err := normalizeElementType(rawType)
	if err != nil {
		return err
	}

	key := args[0]

	rc, values := getByType(db, typ, key)
	if rc != configdb.OK {
		return fmt.Errorf("%s: %s", key, rc)
	}

	io.Println(strings.Join(values, ", "))

	return nil
}
