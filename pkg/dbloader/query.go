package dbloader

import (
	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/giang-nguyentbk/configdb/internal/dbwire"
)

// Numeric is the set of element types the generic Get/Update helpers
// support, mirroring the eight integer dbwire.Type tags.
type Numeric interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64
}

// numericTypeOf maps a Numeric type parameter to its dbwire.Type tag.
func numericTypeOf[T Numeric]() dbwire.Type {
	var zero T

	switch any(zero).(type) {
	case uint8:
		return dbwire.TypeU8
	case int8:
		return dbwire.TypeS8
	case uint16:
		return dbwire.TypeU16
	case int16:
		return dbwire.TypeS16
	case uint32:
		return dbwire.TypeU32
	case int32:
		return dbwire.TypeS32
	case uint64:
		return dbwire.TypeU64
	case int64:
		return dbwire.TypeS64
	default:
		return dbwire.TypeUndefined
	}
}

func downcastNumeric[T Numeric](v dbwire.Value, sink dbtrace.Sink, key string) T {
	switch any(T(0)).(type) {
	case uint8:
		return T(v.U8())
	case int8:
		return T(v.S8())
	case uint16:
		return T(v.U16())
	case int16:
		return T(v.S16())
	case uint32:
		return T(v.U32())
	case int32:
		return T(v.S32())
	case uint64:
		return T(v.U64())
	case int64:
		return T(v.S64())
	default:
		sink.Trace(dbtrace.ERROR, "downcast failed, using zero value", "key", key)

		return T(0)
	}
}

// Get implements the Query Engine (spec §4.5) for a numeric element type T:
// erased -> KEY_NOT_FOUND, type tag mismatch -> TYPE_MISMATCH, otherwise
// the full values sequence downcast to T.
func Get[T Numeric](l *Loader, key string) (ReturnCode, []T) {
	l.rLockTier(Base)
	l.rLockTier(Overlay)
	defer l.rUnlockTier(Overlay)
	defer l.rUnlockTier(Base)

	res := l.resolve(key)
	if !res.found {
		return KeyNotFound, nil
	}

	entry := l.storeFor(res.tier).entries[res.index]

	if entry.Erased {
		return KeyNotFound, nil
	}

	want := numericTypeOf[T]()
	if entry.Type != want {
		return TypeMismatch, nil
	}

	out := make([]T, len(entry.Values))
	for i, v := range entry.Values {
		out[i] = downcastNumeric[T](v, l.sink, key)
	}

	return OK, out
}

// GetString implements the Query Engine for STRING entries, returning the
// full sequence including the trailing whole-string element (spec §4.5 —
// trimming it is a facade-level convenience, not a core concern).
func GetString(l *Loader, key string) (ReturnCode, []string) {
	l.rLockTier(Base)
	l.rLockTier(Overlay)
	defer l.rUnlockTier(Overlay)
	defer l.rUnlockTier(Base)

	res := l.resolve(key)
	if !res.found {
		return KeyNotFound, nil
	}

	entry := l.storeFor(res.tier).entries[res.index]

	if entry.Erased {
		return KeyNotFound, nil
	}

	if entry.Type != dbwire.TypeString {
		return TypeMismatch, nil
	}

	out := make([]string, len(entry.Values))
	for i, v := range entry.Values {
		out[i] = v.Str
	}

	return OK, out
}
