package dbwire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
)

const (
	entryMarker = 'F'
)

// TokenizeKey splits a path-style key on '/', discarding empty segments
// produced by leading or repeated slashes, matching the original tokenizer's
// behavior of skipping zero-length runs between delimiters.
func TokenizeKey(key string) []string {
	raw := strings.Split(key, "/")

	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if t != "" {
			tokens = append(tokens, t)
		}
	}

	return tokens
}

// decodePermission and decodeType validate the wire byte values for
// Permission/Type; kept separate from the String() methods, which are for
// diagnostics, not the wire.

func decodePermission(b byte) (Permission, error) {
	switch Permission(b) {
	case PermissionReadOnly, PermissionReadWrite:
		return Permission(b), nil
	default:
		return PermissionUndefined, fmt.Errorf("%w: %d", ErrUnknownPermission, b)
	}
}

func decodeType(b byte) (Type, error) {
	switch Type(b) {
	case TypeU8, TypeS8, TypeU16, TypeS16, TypeU32, TypeS32, TypeU64, TypeS64, TypeString:
		return Type(b), nil
	default:
		return TypeUndefined, fmt.Errorf("%w: %d", ErrUnknownType, b)
	}
}

// typeBounds returns the inclusive [min, max] range a value of type t must
// fit in, interpreted as signed 64-bit. Only called for numeric types other
// than U64/S64, whose range checks are vacuous against an int64 input — the
// same omission the original compiler makes intentionally (spec §9).
func typeBounds(t Type) (minV, maxV int64) {
	switch t {
	case TypeU8:
		return 0, 0xFF
	case TypeS8:
		return -0x80, 0x7F
	case TypeU16:
		return 0, 0xFFFF
	case TypeS16:
		return -0x8000, 0x7FFF
	case TypeU32:
		return 0, 0xFFFFFFFF
	case TypeS32:
		return -0x80000000, 0x7FFFFFFF
	default:
		return 0, 0
	}
}

func fitsType(v int64, t Type) bool {
	if t == TypeU64 || t == TypeS64 {
		return true
	}

	minV, maxV := typeBounds(t)

	return v >= minV && v <= maxV
}

// parseNumericToken parses one comma-separated numeric token: decimal, or
// hexadecimal if the token contains "0x" anywhere, after stripping spaces
// and tabs (the original tokenizer strips whitespace from tokens, not just
// around them).
func parseNumericToken(tok string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}

		return r
	}, tok)

	base := 10
	if strings.Contains(cleaned, "0x") {
		base = 16
		cleaned = strings.Replace(cleaned, "0x", "", 1)
	}

	return strconv.ParseInt(cleaned, base, 64)
}

// ParseValues decodes the text-form value grammar (spec §4.2) for an entry
// of the given type into its tagged-union sequence. Out-of-range or
// non-numeric tokens are dropped with a diagnostic; sibling tokens survive,
// matching the original loader's per-token try/catch. key and sink are only
// used for diagnostics.
func ParseValues(sink dbtrace.Sink, key string, t Type, raw string) ([]Value, error) {
	if t == TypeString {
		return parseStringValue(key, raw)
	}

	return parseNumericValues(sink, key, t, raw)
}

func parseStringValue(key, raw string) ([]Value, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return nil, fmt.Errorf("%w: STRING value for %q not quoted: %q", ErrMalformedValue, key, raw)
	}

	inner := raw[1 : len(raw)-1]

	words := strings.Split(inner, " ")

	values := make([]Value, 0, len(words)+1)
	for _, w := range words {
		values = append(values, StringValue(w))
	}

	values = append(values, StringValue(inner))

	return values, nil
}

func parseNumericValues(sink dbtrace.Sink, key string, t Type, raw string) ([]Value, error) {
	tokens := strings.Split(raw, ",")

	values := make([]Value, 0, len(tokens))

	for _, tok := range tokens {
		if tok == "" {
			continue
		}

		n, err := parseNumericToken(tok)
		if err != nil {
			sink.Trace(dbtrace.ERROR, "failed to convert DB value into numeric", "key", key, "token", tok)

			continue
		}

		if !fitsType(n, t) {
			sink.Trace(dbtrace.ERROR, "DB value is out of range", "key", key, "token", tok, "type", t.String())

			continue
		}

		values = append(values, NumericValue(t, n))
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no usable values for %q (type %s): %q", ErrMalformedValue, key, t.String(), raw)
	}

	return values, nil
}

// FormatValue re-serializes an entry's values back into the text-form value
// grammar, for the overlay persister (spec §4.7 step 4) and the compiler.
func FormatValue(e Entry) string {
	if e.Type == TypeString {
		return `"` + e.StringWhole() + `"`
	}

	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = strconv.FormatInt(int64(v.Num), 10)
	}

	return strings.Join(parts, ",")
}

// ReadEntry decodes one ENTRY record (marker, key, permission, type, value)
// from r, returning the parsed [Entry]. The permission/type bytes are
// validated but the value grammar is not re-validated against permission —
// that's a resolver/query-engine concern.
func ReadEntry(r *bufio.Reader, sink dbtrace.Sink) (Entry, error) {
	marker, err := r.ReadByte()
	if err != nil {
		return Entry{}, err
	}

	if marker != entryMarker {
		return Entry{}, fmt.Errorf("%w: got %q", ErrBadEntryMarker, marker)
	}

	key, err := readCString(r)
	if err != nil {
		return Entry{}, fmt.Errorf("reading key: %w", err)
	}

	permByte, err := r.ReadByte()
	if err != nil {
		return Entry{}, fmt.Errorf("reading permission: %w", err)
	}

	perm, err := decodePermission(permByte)
	if err != nil {
		return Entry{}, err
	}

	typeByte, err := r.ReadByte()
	if err != nil {
		return Entry{}, fmt.Errorf("reading type: %w", err)
	}

	typ, err := decodeType(typeByte)
	if err != nil {
		return Entry{}, err
	}

	rawValue, err := readCString(r)
	if err != nil {
		return Entry{}, fmt.Errorf("reading value: %w", err)
	}

	if erased, ok := tombstoneValue(typ, rawValue); ok {
		return Entry{Key: key, Permission: perm, Type: typ, Erased: erased}, nil
	}

	values, err := ParseValues(sink, key, typ, rawValue)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Key: key, Permission: perm, Type: typ, Values: values}, nil
}

// WriteEntry encodes e as a single ENTRY record, appending it to buf and
// returning the result.
func WriteEntry(buf []byte, e Entry) []byte {
	buf = append(buf, entryMarker)
	buf = append(buf, e.Key...)
	buf = append(buf, 0)
	buf = append(buf, byte(e.Permission))
	buf = append(buf, byte(e.Type))

	value := tombstoneOrFormat(e)
	buf = append(buf, value...)
	buf = append(buf, 0)

	return buf
}

func readCString(r *bufio.Reader) (string, error) {
	s, err := r.ReadString(0)
	if err != nil {
		return "", err
	}

	return s[:len(s)-1], nil
}

// countReadEntries decodes count ENTRY records in sequence from r.
func countReadEntries(r *bufio.Reader, count int, sink dbtrace.Sink) ([]Entry, error) {
	entries := make([]Entry, 0, count)

	for i := 0; i < count; i++ {
		e, err := ReadEntry(r, sink)
		if err != nil {
			if isEOF(err) {
				return nil, fmt.Errorf("%w: entry %d/%d", ErrTruncated, i, count)
			}

			return nil, fmt.Errorf("entry %d/%d: %w", i, count, err)
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func isEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
