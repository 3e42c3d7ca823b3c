// configdb-cli is the interactive and scriptable test harness for configdb
// (SPEC_FULL.md §6, C9): one-shot subcommands for scripting plus a liner
// REPL for interactive exploration, both wired over the same configdb.DB.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/giang-nguyentbk/configdb/internal/cli"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:], sigCh)

	os.Exit(exitCode)
}
