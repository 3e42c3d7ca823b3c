package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/giang-nguyentbk/configdb/pkg/configdb"
	"github.com/peterh/liner"
)

// REPL is the interactive command loop, grounded on cmd/sloty's liner-based
// REPL (history file, tab completion, line-based command dispatch).
type REPL struct {
	db    *configdb.DB
	liner *liner.State
}

// NewREPL returns a REPL wired over db.
func NewREPL(db *configdb.DB) *REPL {
	return &REPL{db: db}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".configdb_cli_history")
}

// Run starts the REPL loop and blocks until the user exits.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Println("configdb-cli - interactive session. Type 'help' for commands.")

	for {
		line, err := r.liner.Prompt("configdb> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		r.dispatch(strings.Fields(line))
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		_, _ = r.liner.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{"get", "set", "erase", "restore", "reset", "help", "exit", "quit"}

	var out []string

	for _, c := range commands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}

	return out
}

func (r *REPL) dispatch(parts []string) {
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		os.Exit(0)

	case "help", "?":
		r.printHelp()

	case "get":
		r.cmdGet(args)

	case "set":
		r.cmdSet(args)

	case "erase":
		r.cmdErase(args)

	case "restore":
		r.cmdRestore(args)

	case "reset":
		r.cmdReset()

	default:
		fmt.Printf("unknown command: %s (type 'help')\n", cmd)
	}
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  get <type> <key>                       Resolve and print a key's values")
	fmt.Println("  set <type> <key> <v>[,<v>...] [persist] Update a key (ephemeral unless 'persist' trails)")
	fmt.Println("  erase <key> [persist]                   Mark a key erased")
	fmt.Println("  restore <key>                           Revert a key to its base value")
	fmt.Println("  reset                                   Empty the overlay tier")
	fmt.Println("  help                                    Show this help")
	fmt.Println("  exit / quit / q                         Exit")
}

func (r *REPL) cmdGet(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: get <type> <key>")

		return
	}

	typ, err := normalizeElementType(args[0])
	if err != nil {
		fmt.Println(err)

		return
	}

	rc, values := getByType(r.db, typ, args[1])
	if rc != configdb.OK {
		fmt.Println(rc)

		return
	}

	fmt.Println(strings.Join(values, ", "))
}

func (r *REPL) cmdSet(args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: set <type> <key> <v>[,<v>...] [persist]")

		return
	}

	typ, err := normalizeElementType(args[0])
	if err != nil {
		fmt.Println(err)

		return
	}

	key := args[1]

	persist := len(args) > 3 && args[len(args)-1] == "persist"

	var raw []string
	if typ == "string" {
		end := len(args)
		if persist {
			end--
		}

		raw = args[2:end]
	} else {
		raw = strings.Split(args[2], ",")
	}

	rc, err := updateByType(r.db, typ, key, raw, persist)
	if err != nil {
		fmt.Println(err)

		return
	}

	if rc != configdb.OK {
		fmt.Println(rc)

		return
	}

	fmt.Println("OK")
}

func (r *REPL) cmdErase(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: erase <key> [persist]")

		return
	}

	persist := len(args) > 1 && args[1] == "persist"

	rc := r.db.Erase(args[0], persist)
	if rc != configdb.OK {
		fmt.Println(rc)

		return
	}

	fmt.Println("OK")
}

func (r *REPL) cmdRestore(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: restore <key>")

		return
	}

	rc := r.db.Restore(args[0])
	if rc != configdb.OK {
		fmt.Println(rc)

		return
	}

	fmt.Println("OK")
}

func (r *REPL) cmdReset() {
	if rc := r.db.Reset(); rc != configdb.OK {
		fmt.Println(rc)

		return
	}

	fmt.Println("OK")
}
