package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/giang-nguyentbk/configdb/pkg/configdb"
)

// validElementTypes names the nine element kinds a key can hold, matching
// the type tokens the compiler's text source accepts.
var validElementTypes = []string{"u8", "s8", "u16", "s16", "u32", "s32", "u64", "s64", "string"}

func normalizeElementType(t string) (string, error) {
	t = strings.ToLower(t)

	for _, v := range validElementTypes {
		if v == t {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown --type %q (want one of %s)", t, strings.Join(validElementTypes, ", "))
}

// getByType dispatches to the matching configdb.DB getter and renders the
// result as display strings, so "get" and the REPL can share one printer.
func getByType(db *configdb.DB, typ, key string) (configdb.ReturnCode, []string) {
	switch typ {
	case "u8":
		rc, v := db.GetU8(key)
		return rc, formatUints(v)
	case "s8":
		rc, v := db.GetS8(key)
		return rc, formatInts(v)
	case "u16":
		rc, v := db.GetU16(key)
		return rc, formatUints(v)
	case "s16":
		rc, v := db.GetS16(key)
		return rc, formatInts(v)
	case "u32":
		rc, v := db.GetU32(key)
		return rc, formatUints(v)
	case "s32":
		rc, v := db.GetS32(key)
		return rc, formatInts(v)
	case "u64":
		rc, v := db.GetU64(key)
		return rc, formatUints(v)
	case "s64":
		rc, v := db.GetS64(key)
		return rc, formatInts(v)
	case "string":
		return db.GetString(key)
	default:
		return configdb.Undefined, nil
	}
}

// updateByType parses each element of raw (already split by the caller) as
// a value of typ and dispatches to the matching configdb.DB updater.
func updateByType(db *configdb.DB, typ, key string, raw []string, persistent bool) (configdb.ReturnCode, error) {
	switch typ {
	case "u8":
		v, err := parseUints[uint8](raw, 8)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateU8(key, v, persistent), nil
	case "s8":
		v, err := parseInts[int8](raw, 8)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateS8(key, v, persistent), nil
	case "u16":
		v, err := parseUints[uint16](raw, 16)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateU16(key, v, persistent), nil
	case "s16":
		v, err := parseInts[int16](raw, 16)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateS16(key, v, persistent), nil
	case "u32":
		v, err := parseUints[uint32](raw, 32)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateU32(key, v, persistent), nil
	case "s32":
		v, err := parseInts[int32](raw, 32)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateS32(key, v, persistent), nil
	case "u64":
		v, err := parseUints[uint64](raw, 64)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateU64(key, v, persistent), nil
	case "s64":
		v, err := parseInts[int64](raw, 64)
		if err != nil {
			return configdb.Undefined, err
		}

		return db.UpdateS64(key, v, persistent), nil
	case "string":
		return db.UpdateString(key, raw, persistent), nil
	default:
		return configdb.Undefined, fmt.Errorf("unknown type %q", typ)
	}
}

func formatUints[T ~uint8 | ~uint16 | ~uint32 | ~uint64](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatUint(uint64(v), 10)
	}

	return out
}

func formatInts[T ~int8 | ~int16 | ~int32 | ~int64](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatInt(int64(v), 10)
	}

	return out
}

func parseUints[T ~uint8 | ~uint16 | ~uint32 | ~uint64](raw []string, bitSize int) ([]T, error) {
	out := make([]T, 0, len(raw))

	for _, r := range raw {
		n, err := strconv.ParseUint(strings.TrimSpace(r), 10, bitSize)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", r, err)
		}

		out = append(out, T(n))
	}

	return out, nil
}

func parseInts[T ~int8 | ~int16 | ~int32 | ~int64](raw []string, bitSize int) ([]T, error) {
	out := make([]T, 0, len(raw))

	for _, r := range raw {
		n, err := strconv.ParseInt(strings.TrimSpace(r), 10, bitSize)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", r, err)
		}

		out = append(out, T(n))
	}

	return out, nil
}
