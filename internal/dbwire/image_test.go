package dbwire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/google/go-cmp/cmp"
)

func testEntries() []Entry {
	stringValues, _ := ParseValues(dbtrace.Discard, "/name", TypeString, `"driver name"`)

	return []Entry{
		{Key: "/driverName", Permission: PermissionReadOnly, Type: TypeString, Values: stringValues},
		{Key: "/limits/maxRetries", Permission: PermissionReadWrite, Type: TypeU8, Values: []Value{NumericValue(TypeU8, 5)}},
		{Key: "/limits/timeoutMs", Permission: PermissionReadWrite, Type: TypeU32, Values: []Value{NumericValue(TypeU32, 1500)}},
	}
}

func Test_EncodeImage_Then_DecodeImage_Round_Trips_Entries(t *testing.T) {
	entries := testEntries()

	buf := EncodeImage(entries)

	got, err := DecodeImage(bytes.NewReader(buf), dbtrace.Discard)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}

	if diff := cmp.Diff(entries, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func Test_DecodeImage_Rejects_Wrong_Magic(t *testing.T) {
	buf := EncodeImage(testEntries())
	buf[0] = 'X'

	_, err := DecodeImage(bytes.NewReader(buf), dbtrace.Discard)

	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("err=%v, want ErrBadMagic", err)
	}
}

func Test_DecodeImage_Rejects_Wrong_Revision(t *testing.T) {
	buf := EncodeImage(testEntries())
	buf[1] = 9

	_, err := DecodeImage(bytes.NewReader(buf), dbtrace.Discard)

	if !errors.Is(err, ErrBadRevision) {
		t.Fatalf("err=%v, want ErrBadRevision", err)
	}
}

func Test_DecodeImage_Rejects_Missing_End_Marker(t *testing.T) {
	buf := EncodeImage(testEntries())
	buf[len(buf)-3] = 'X' // end marker byte

	_, err := DecodeImage(bytes.NewReader(buf), dbtrace.Discard)

	if !errors.Is(err, ErrBadEndMarker) {
		t.Fatalf("err=%v, want ErrBadEndMarker", err)
	}
}

func Test_DecodeImage_Rejects_CRC_Mismatch_When_Payload_Tampered(t *testing.T) {
	buf := EncodeImage(testEntries())

	// Flip a byte inside the entries section, after the 10-byte header.
	buf[15] ^= 0xFF

	_, err := DecodeImage(bytes.NewReader(buf), dbtrace.Discard)

	if !errors.Is(err, ErrCRCMismatch) {
		t.Fatalf("err=%v, want ErrCRCMismatch", err)
	}
}

func Test_DecodeImage_Rejects_Truncated_Input(t *testing.T) {
	buf := EncodeImage(testEntries())

	_, err := DecodeImage(bytes.NewReader(buf[:len(buf)-5]), dbtrace.Discard)

	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err=%v, want ErrTruncated", err)
	}
}
