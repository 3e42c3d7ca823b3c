package cli

import (
	"context"
	"fmt"

	"github.com/giang-nguyentbk/configdb/pkg/configdb"

	flag "github.com/spf13/pflag"
)

// ResetCmd returns the reset command.
func ResetCmd(db *configdb.DB) *Command {
	return &Command{
		Flags: flag.NewFlagSet("reset", flag.ContinueOnError),
		Usage: "reset",
		Short: "Empty the overlay tier and delete the overlay file",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execReset(io, db)
		},
	}
}

func execReset(io *IO, db *configdb.DB) error {
	if rc := db.Reset(); rc != configdb.OK {
		return fmt.Errorf("reset: %s", rc)
	}

	io.Println("OK")

	return nil
}
