package dbwire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
)

// DecodeOverlay parses the overlay file format (spec §4.2): a 4-byte
// big-endian entry count followed by that many ENTRY records, no header
// magic and no CRC. An empty or missing overlay is represented by the
// caller passing an empty reader — this function treats zero bytes as
// zero entries, not as truncation.
func DecodeOverlay(r io.Reader, sink dbtrace.Sink) ([]Entry, error) {
	br := bufio.NewReader(r)

	countBytes := make([]byte, 4)

	n, err := io.ReadFull(br, countBytes)
	if err == io.EOF && n == 0 {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: reading entry count: %v", ErrTruncated, err)
	}

	count := binary.BigEndian.Uint32(countBytes)

	return countReadEntries(br, int(count), sink)
}

// EncodeOverlay serializes entries into a complete overlay file.
func EncodeOverlay(entries []Entry) []byte {
	buf := binary.BigEndian.AppendUint32(nil, uint32(len(entries)))

	for _, e := range entries {
		buf = WriteEntry(buf, e)
	}

	return buf
}
