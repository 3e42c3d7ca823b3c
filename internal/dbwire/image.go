package dbwire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/giang-nguyentbk/configdb/internal/dbtrace"
)

const (
	imageMagic    byte = 'H'
	imageRevision byte = 10
	imageEndMark  byte = 'E'

	imageHeaderLen = 1 + 1 + 4 + 4
	imageFooterLen = 1 + 2
)

// DecodeImage parses a complete base image (header, entries section,
// footer) per spec §4.2, validating the CRC-16 over the entries section
// only. Any structural problem is fatal — the caller refuses the whole
// image, it never loads partially.
func DecodeImage(r io.Reader, sink dbtrace.Sink) ([]Entry, error) {
	br := bufio.NewReader(r)

	header := make([]byte, imageHeaderLen)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrTruncated, err)
	}

	if header[0] != imageMagic {
		return nil, fmt.Errorf("%w: got %q", ErrBadMagic, header[0])
	}

	if header[1] != imageRevision {
		return nil, fmt.Errorf("%w: got %d", ErrBadRevision, header[1])
	}

	payloadLen := binary.BigEndian.Uint32(header[6:10])

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, fmt.Errorf("%w: reading entries section: %v", ErrTruncated, err)
	}

	footer := make([]byte, imageFooterLen)
	if _, err := io.ReadFull(br, footer); err != nil {
		return nil, fmt.Errorf("%w: reading footer: %v", ErrTruncated, err)
	}

	if footer[0] != imageEndMark {
		return nil, fmt.Errorf("%w: got %q", ErrBadEndMarker, footer[0])
	}

	wantCRC := binary.BigEndian.Uint16(footer[1:3])
	gotCRC := CRC16(payload)

	if wantCRC != gotCRC {
		return nil, fmt.Errorf("%w: want %04x, got %04x", ErrCRCMismatch, wantCRC, gotCRC)
	}

	return decodeEntriesSection(payload, sink)
}

// decodeEntriesSection decodes back-to-back ENTRY records filling exactly
// len(payload) bytes.
func decodeEntriesSection(payload []byte, sink dbtrace.Sink) ([]Entry, error) {
	r := bufio.NewReader(bytes.NewReader(payload))

	var entries []Entry

	for {
		e, err := ReadEntry(r, sink)
		if err != nil {
			if err == io.EOF {
				break
			}

			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// EncodeImage serializes entries into a complete base image, computing
// payload_len and crc16 from the encoded entries section. Used by the
// compiler (C7).
func EncodeImage(entries []Entry) []byte {
	var payload []byte

	for _, e := range entries {
		payload = WriteEntry(payload, e)
	}

	buf := make([]byte, 0, imageHeaderLen+len(payload)+imageFooterLen)

	buf = append(buf, imageMagic, imageRevision, 0, 0, 0, 0)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	buf = append(buf, imageEndMark)
	buf = binary.BigEndian.AppendUint16(buf, CRC16(payload))

	return buf
}
