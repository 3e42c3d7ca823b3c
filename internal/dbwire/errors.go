package dbwire

import "errors"

// Image errors (spec §7): fatal for the tier being loaded. The base tier
// refusing any of these means the process does not come up with data;
// the overlay tier treats any of these as "overlay is empty" instead.
var (
	ErrBadMagic          = errors.New("dbwire: bad magic")
	ErrBadRevision       = errors.New("dbwire: bad revision")
	ErrBadEndMarker      = errors.New("dbwire: missing end marker")
	ErrCRCMismatch       = errors.New("dbwire: crc mismatch")
	ErrTruncated         = errors.New("dbwire: truncated image")
	ErrUnknownPermission = errors.New("dbwire: unknown permission byte")
	ErrUnknownType       = errors.New("dbwire: unknown type byte")
	ErrMalformedValue    = errors.New("dbwire: malformed value")
	ErrBadEntryMarker    = errors.New("dbwire: bad entry marker")
)
