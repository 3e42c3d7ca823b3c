package dbwire

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
	"github.com/google/go-cmp/cmp"
)

func Test_CRC16_Of_Empty_Input_Is_Seed_XORed_With_Final_XOR(t *testing.T) {
	got := CRC16(nil)
	want := uint16(0x0000) // 0xFFFF seed, 0xFFFF final XOR, cancels out

	if got != want {
		t.Fatalf("CRC16(nil)=%04x, want %04x", got, want)
	}
}

func Test_CRC16_Is_Deterministic_And_Sensitive_To_Single_Byte_Change(t *testing.T) {
	a := CRC16([]byte("the quick brown fox"))
	b := CRC16([]byte("the quick brown fod"))

	if a == b {
		t.Fatalf("CRC16 collided on single-byte change: both %04x", a)
	}

	if got := CRC16([]byte("the quick brown fox")); got != a {
		t.Fatalf("CRC16 not deterministic: %04x != %04x", got, a)
	}
}

func Test_ParseValues_Numeric_Splits_On_Comma_And_Parses_Decimal(t *testing.T) {
	values, err := ParseValues(dbtrace.Discard, "/k", TypeU8, "1,2,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []uint64{values[0].Num, values[1].Num, values[2].Num}
	want := []uint64{1, 2, 3}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func Test_ParseValues_Numeric_Parses_Hex_Tokens_Containing_0x(t *testing.T) {
	values, err := ParseValues(dbtrace.Discard, "/k", TypeU16, "0xFF,0x100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := values[0].Num, uint64(0xFF); got != want {
		t.Fatalf("values[0]=%d, want %d", got, want)
	}

	if got, want := values[1].Num, uint64(0x100); got != want {
		t.Fatalf("values[1]=%d, want %d", got, want)
	}
}

func Test_ParseValues_Numeric_Drops_Out_Of_Range_Token_But_Keeps_Siblings(t *testing.T) {
	values, err := ParseValues(dbtrace.Discard, "/k", TypeU8, "1,999,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := len(values), 2; got != want {
		t.Fatalf("len(values)=%d, want %d (999 should be dropped)", got, want)
	}
}

func Test_ParseValues_Numeric_Strips_Internal_Whitespace_And_Tabs(t *testing.T) {
	values, err := ParseValues(dbtrace.Discard, "/k", TypeU32, "1 2\t3, 456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := values[0].Num, uint64(123); got != want {
		t.Fatalf("values[0]=%d, want %d", got, want)
	}

	if got, want := values[1].Num, uint64(456); got != want {
		t.Fatalf("values[1]=%d, want %d", got, want)
	}
}

func Test_ParseValues_String_Tokenizes_On_Spaces_And_Appends_Whole_String(t *testing.T) {
	values, err := ParseValues(dbtrace.Discard, "/k", TypeString, `"hello world foo"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := len(values), 4; got != want {
		t.Fatalf("len(values)=%d, want %d", got, want)
	}

	want := []string{"hello", "world", "foo", "hello world foo"}

	got := make([]string, len(values))
	for i, v := range values {
		got[i] = v.Str
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func Test_ParseValues_String_Requires_Double_Quotes(t *testing.T) {
	_, err := ParseValues(dbtrace.Discard, "/k", TypeString, "unquoted")
	if err == nil {
		t.Fatal("expected error for unquoted STRING value, got nil")
	}
}

func Test_FitsType_Enforces_Exhaustive_Range_Per_Type(t *testing.T) {
	cases := []struct {
		t    Type
		v    int64
		want bool
	}{
		{TypeU8, 0, true},
		{TypeU8, 255, true},
		{TypeU8, 256, false},
		{TypeU8, -1, false},
		{TypeS8, -128, true},
		{TypeS8, 127, true},
		{TypeS8, 128, false},
		{TypeU16, 65535, true},
		{TypeU16, 65536, false},
		{TypeS16, -32768, true},
		{TypeS16, 32768, false},
		{TypeU32, 4294967295, true},
		{TypeU32, 4294967296, false},
		{TypeS64, -1, true},
		{TypeU64, -1, true}, // U64 check is vacuous against int64 input, by design
	}

	for _, c := range cases {
		if got := fitsType(c.v, c.t); got != c.want {
			t.Errorf("fitsType(%d, %s)=%v, want %v", c.v, c.t.String(), got, c.want)
		}
	}
}

func Test_WriteEntry_Then_ReadEntry_Round_Trips_Numeric_Entry(t *testing.T) {
	original := Entry{
		Key:        "/a/b/c",
		Permission: PermissionReadWrite,
		Type:       TypeU16,
		Values:     []Value{NumericValue(TypeU16, 10), NumericValue(TypeU16, 20)},
	}

	buf := WriteEntry(nil, original)

	got := decodeOneEntry(t, buf)

	if diff := cmp.Diff(original, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func Test_WriteEntry_Then_ReadEntry_Round_Trips_String_Entry(t *testing.T) {
	values, err := ParseValues(dbtrace.Discard, "/s", TypeString, `"a b"`)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	original := Entry{
		Key:        "/s",
		Permission: PermissionReadOnly,
		Type:       TypeString,
		Values:     values,
	}

	buf := WriteEntry(nil, original)

	got := decodeOneEntry(t, buf)

	if diff := cmp.Diff(original, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func Test_WriteEntry_Then_ReadEntry_Round_Trips_Erased_Entry(t *testing.T) {
	original := Entry{
		Key:        "/gone",
		Permission: PermissionReadWrite,
		Type:       TypeU8,
		Erased:     true,
	}

	buf := WriteEntry(nil, original)

	got := decodeOneEntry(t, buf)

	if diff := cmp.Diff(original, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func Test_TokenizeKey_Discards_Empty_Segments_From_Leading_And_Repeated_Slashes(t *testing.T) {
	got := TokenizeKey("//a//b/c/")
	want := []string{"a", "b", "c"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func decodeOneEntry(t *testing.T, buf []byte) Entry {
	t.Helper()

	r := bufio.NewReader(bytes.NewReader(buf))

	e, err := ReadEntry(r, dbtrace.Discard)
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}

	return e
}
