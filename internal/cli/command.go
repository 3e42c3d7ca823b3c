// Package cli implements the configdb-cli test harness (SPEC_FULL.md §6,
// C9): a thin Command dispatch table over pflag plus a liner-backed REPL,
// wired over the public configdb facade.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines one CLI subcommand with unified help generation, adapted
// from the teacher's own Command table (internal/cli/command.go).
type Command struct {
	Flags *flag.FlagSet
	Usage string
	Short string
	Long  string
	Exec  func(ctx context.Context, io *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-28s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "configdb-cli <cmd> --help".
func (c *Command) PrintHelp(io *IO) {
	io.Println("Usage: configdb-cli", c.Usage)
	io.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	io.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		io.Println()
		io.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		io.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command, returning an exit code.
func (c *Command) Run(ctx context.Context, io *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(io)

			return 0
		}

		io.ErrPrintln("error:", err)
		io.ErrPrintln()
		c.PrintHelp(io)

		return 1
	}

	if err := c.Exec(ctx, io, c.Flags.Args()); err != nil {
		io.ErrPrintln("error:", err)

		return 1
	}

	return 0
}
