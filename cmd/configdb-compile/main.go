// configdb-compile converts a line-oriented text source into the
// checksummed binary image the Loader reads at startup.
//
// Usage:
//
//	configdb-compile -i <text-source> -o <binary-image> [-e]
//
// Each non-blank, non-comment line of the text source declares one entry:
//
//	<key> <permission> <type> <value...>
//
// permission is RO or RW; type is one of U8/S8/U16/S16/U32/S32/U64/S64/
// STRING. Lines starting with '#' and blank lines are skipped. The value
// grammar (quoted string, comma-separated numeric tokens) is unchanged from
// the binary codec's own parser.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/internal/dbwire"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("configdb-compile", flag.ContinueOnError)

	textPath := fs.StringP("input", "i", "", "absolute path to the text-based source file")
	binPath := fs.StringP("output", "o", "", "absolute path to the compiled binary image")
	encrypted := fs.BoolP("encrypt", "e", false, "reserve the image as encrypted (accepted, never acted upon)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: configdb-compile -i <text-source> -o <binary-image> [-e]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	_ = encrypted // reserved flag, never interpreted (SPEC_FULL.md §4.2)

	if *textPath == "" || *binPath == "" {
		fs.Usage()

		return fmt.Errorf("both -i and -o are required")
	}

	entries, err := compileTextSource(*textPath)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", *textPath, err)
	}

	image := dbwire.EncodeImage(entries)

	if err := os.WriteFile(*binPath, image, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("writing %s: %w", *binPath, err)
	}

	fmt.Printf("compiled %d entries into %s (%d bytes)\n", len(entries), *binPath, len(image))

	return nil
}

func compileTextSource(path string) ([]dbwire.Entry, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []dbwire.Entry

	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseSourceLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func parseSourceLine(line string) (dbwire.Entry, error) {
	key, rest, ok := strings.Cut(line, " ")
	if !ok {
		return dbwire.Entry{}, fmt.Errorf("expected at least key, permission, type, value: %q", line)
	}

	rest = strings.TrimLeft(rest, " \t")

	permToken, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return dbwire.Entry{}, fmt.Errorf("missing type/value after permission: %q", line)
	}

	perm, err := parsePermissionToken(permToken)
	if err != nil {
		return dbwire.Entry{}, err
	}

	rest = strings.TrimLeft(rest, " \t")

	typeToken, rawValue, ok := strings.Cut(rest, " ")
	if !ok {
		return dbwire.Entry{}, fmt.Errorf("missing value after type: %q", line)
	}

	typ, err := parseTypeToken(typeToken)
	if err != nil {
		return dbwire.Entry{}, err
	}

	rawValue = strings.TrimLeft(rawValue, " \t")

	values, err := dbwire.ParseValues(dbtrace.Discard, key, typ, rawValue)
	if err != nil {
		return dbwire.Entry{}, err
	}

	return dbwire.Entry{Key: key, Permission: perm, Type: typ, Values: values}, nil
}

func parsePermissionToken(tok string) (dbwire.Permission, error) {
	switch tok {
	case "RO":
		return dbwire.PermissionReadOnly, nil
	case "RW":
		return dbwire.PermissionReadWrite, nil
	default:
		return dbwire.PermissionUndefined, fmt.Errorf("unknown permission %q (want RO or RW)", tok)
	}
}

func parseTypeToken(tok string) (dbwire.Type, error) {
	switch tok {
	case "U8":
		return dbwire.TypeU8, nil
	case "S8":
		return dbwire.TypeS8, nil
	case "U16":
		return dbwire.TypeU16, nil
	case "S16":
		return dbwire.TypeS16, nil
	case "U32":
		return dbwire.TypeU32, nil
	case "S32":
		return dbwire.TypeS32, nil
	case "U64":
		return dbwire.TypeU64, nil
	case "S64":
		return dbwire.TypeS64, nil
	case "STRING":
		return dbwire.TypeString, nil
	default:
		return dbwire.TypeUndefined, fmt.Errorf("unknown type %q", tok)
	}
}
