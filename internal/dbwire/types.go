package dbwire

import "fmt"

// Permission is the access mode declared for an entry in the image.
type Permission uint8

// Permission values, matching the single byte stored in the wire format.
const (
	PermissionUndefined Permission = 0
	PermissionReadOnly  Permission = 1
	PermissionReadWrite Permission = 2
)

// String renders the permission the way diagnostics expect to see it.
func (p Permission) String() string {
	switch p {
	case PermissionReadOnly:
		return "READ_ONLY"
	case PermissionReadWrite:
		return "READ_WRITE"
	default:
		return "UNDEFINED"
	}
}

// Type is the declared element type of an entry's values.
type Type uint8

// Type values, matching the single byte stored in the wire format.
const (
	TypeUndefined Type = 0
	TypeU8        Type = 1
	TypeS8        Type = 2
	TypeU16       Type = 3
	TypeS16       Type = 4
	TypeU32       Type = 5
	TypeS32       Type = 6
	TypeU64       Type = 7
	TypeS64       Type = 8
	TypeString    Type = 9
)

// String renders the type the way diagnostics expect to see it.
func (t Type) String() string {
	switch t {
	case TypeU8:
		return "U8"
	case TypeS8:
		return "S8"
	case TypeU16:
		return "U16"
	case TypeS16:
		return "S16"
	case TypeU32:
		return "U32"
	case TypeS32:
		return "S32"
	case TypeU64:
		return "U64"
	case TypeS64:
		return "S64"
	case TypeString:
		return "STRING"
	default:
		return "UNDEFINED"
	}
}

// IsNumeric reports whether t is one of the eight integer types (everything
// but [TypeString] and [TypeUndefined]).
func (t Type) IsNumeric() bool {
	return t >= TypeU8 && t <= TypeS64
}

// Value is a single tagged-union element of an entry's value sequence.
//
// Per spec §9's design note, this avoids runtime reflection: numeric values
// are stored as a 64-bit bit pattern reinterpreted according to Kind at read
// time, and string values carry their own field. Exactly one of Num/Str is
// meaningful for a given Kind.
type Value struct {
	Kind Type
	Num  uint64
	Str  string
}

// U8 returns the U8 interpretation of v. Callers must check Kind first.
func (v Value) U8() uint8 { return uint8(v.Num) }

// S8 returns the S8 interpretation of v.
func (v Value) S8() int8 { return int8(v.Num) }

// U16 returns the U16 interpretation of v.
func (v Value) U16() uint16 { return uint16(v.Num) }

// S16 returns the S16 interpretation of v.
func (v Value) S16() int16 { return int16(v.Num) }

// U32 returns the U32 interpretation of v.
func (v Value) U32() uint32 { return uint32(v.Num) }

// S32 returns the S32 interpretation of v.
func (v Value) S32() int32 { return int32(v.Num) }

// U64 returns the U64 interpretation of v.
func (v Value) U64() uint64 { return v.Num }

// S64 returns the S64 interpretation of v.
func (v Value) S64() int64 { return int64(v.Num) }

// NumericValue builds a [Value] for one of the eight integer [Type]s from a
// 64-bit signed representation. The full 64-bit pattern is stored; the
// width-specific accessors (U8, S16, ...) truncate it when read.
func NumericValue(kind Type, signed int64) Value {
	return Value{Kind: kind, Num: uint64(signed)}
}

// StringValue builds a [Value] of [TypeString].
func StringValue(s string) Value {
	return Value{Kind: TypeString, Str: s}
}

// Entry is one record of the base image or the overlay store.
//
// Erased is the tombstone flag: it is never part of the base image (base
// entries are never erased) and is only meaningful on an overlay entry. It
// stays in memory unless a persistent erase writes it to the overlay file.
type Entry struct {
	Key        string
	Permission Permission
	Type       Type
	Values     []Value
	Erased     bool
}

// Clone returns a deep copy of e, safe to mutate independently.
func (e Entry) Clone() Entry {
	values := make([]Value, len(e.Values))
	copy(values, e.Values)

	return Entry{
		Key:        e.Key,
		Permission: e.Permission,
		Type:       e.Type,
		Values:     values,
		Erased:     e.Erased,
	}
}

// StringTokens returns the whitespace-tokenized words of a STRING entry,
// without the trailing whole-string element required by invariant 6.
// Panics if e.Type is not [TypeString] or if Values is empty — callers must
// only call this on a well-formed STRING entry.
func (e Entry) StringTokens() []string {
	if e.Type != TypeString {
		panic(fmt.Sprintf("dbwire: StringTokens on non-STRING entry (type=%s)", e.Type))
	}

	tokens := make([]string, 0, len(e.Values)-1)
	for _, v := range e.Values[:len(e.Values)-1] {
		tokens = append(tokens, v.Str)
	}

	return tokens
}

// StringWhole returns the untokenized whole-string element of a STRING
// entry (the final element of Values, per invariant 6).
func (e Entry) StringWhole() string {
	if e.Type != TypeString || len(e.Values) == 0 {
		panic(fmt.Sprintf("dbwire: StringWhole on non-STRING entry (type=%s)", e.Type))
	}

	return e.Values[len(e.Values)-1].Str
}
