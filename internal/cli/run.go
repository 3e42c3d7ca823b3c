package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/pkg/configdb"
	"github.com/giang-nguyentbk/configdb/pkg/dbloader"

	flag "github.com/spf13/pflag"
)

// Run is the main entry point, adapted from the teacher's own
// internal/cli/run.go (global flag parsing, config load, command dispatch,
// signal-aware execution), retargeted from a ticket store to a configdb
// instance.
func Run(_ io.Reader, out, errOut io.Writer, args []string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("configdb-cli", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(&strings.Builder{})

	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagCwd := globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globalFlags.StringP("config", "c", "", "Use specified config `file`")
	flagBase := globalFlags.String("base", "", "Override the base image `path`")
	flagOverlay := globalFlags.String("overlay", "", "Override the overlay `path`")

	if err := globalFlags.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		printGlobalOptions(errOut)

		return 1
	}

	// Help/usage display never needs a live configdb instance, so the
	// listing is built off a nil DB: command Usage/Short are static, and
	// the db-bound Exec closures are never invoked here.
	commands := allCommands(nil)

	commandAndArgs := globalFlags.Args()

	if *flagHelp || (len(commandAndArgs) == 0 && globalFlags.NFlag() == 0) {
		printUsage(out, commands)

		return 0
	}

	if len(commandAndArgs) == 0 {
		fprintln(errOut, "error: no command provided")
		printUsage(errOut, commands)

		return 1
	}

	cmdName := commandAndArgs[0]

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	if _, ok := commandMap[cmdName]; !ok && cmdName != "repl" {
		fprintln(errOut, "error: unknown command:", cmdName)
		printUsage(errOut, commands)

		return 1
	}

	workDir := *flagCwd
	if workDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			workDir = cwd
		}
	}

	cfg, _, err := dbloader.LoadConfig(workDir, *flagConfig)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if *flagBase != "" {
		cfg.BasePath = *flagBase
	}

	if *flagOverlay != "" {
		cfg.OverlayPath = *flagOverlay
	}

	db, err := configdb.Open(cfg, dbtrace.NewWriter(errOut))
	if err != nil {
		fprintln(errOut, "error: opening configdb:", err)

		return 1
	}

	if cmdName == "repl" {
		if err := NewREPL(db).Run(); err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}

		return 0
	}

	liveCommands := allCommands(db)

	liveCommandMap := make(map[string]*Command, len(liveCommands))
	for _, cmd := range liveCommands {
		liveCommandMap[cmd.Name()] = cmd
	}

	cmd := liveCommandMap[cmdName]

	cmdIO := NewIO(out, errOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		done <- cmd.Run(ctx, cmdIO, commandAndArgs[1:])
	}()

	select {
	case exitCode := <-done:
		return exitCode
	case <-sigCh:
		fprintln(errOut, "shutting down with 5s timeout...")
		cancel()
	}

	select {
	case <-done:
		fprintln(errOut, "graceful shutdown ok (130)")

		return 130
	case <-time.After(5 * time.Second):
		fprintln(errOut, "graceful shutdown timed out, forced exit (130)")

		return 130
	case <-sigCh:
		fprintln(errOut, "graceful shutdown interrupted, forced exit (130)")

		return 130
	}
}

func allCommands(db *configdb.DB) []*Command {
	return []*Command{
		GetCmd(db),
		SetCmd(db),
		EraseCmd(db),
		RestoreCmd(db),
		ResetCmd(db),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

const globalOptionsHelp = `  -h, --help             Show help
  -C, --cwd <dir>        Run as if started in <dir>
  -c, --config <file>    Use specified config file
  --base <path>          Override the base image path
  --overlay <path>       Override the overlay path`

func printGlobalOptions(w io.Writer) {
	fprintln(w, "Usage: configdb-cli [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprintln(w, globalOptionsHelp)
	fprintln(w)
	fprintln(w, "Run 'configdb-cli --help' for a list of commands.")
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "configdb-cli - interactive and scriptable test harness for configdb")
	fprintln(w)
	fprintln(w, "Usage: configdb-cli [flags] <command> [args]")
	fprintln(w, "       configdb-cli repl")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, globalOptionsHelp)
	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w, "  repl                         Start an interactive session")
}
