package rpmfile

import (
	"encoding/binary"
	"fmt"

	"github.com/ralt/rpmtool/internal/models"
)

// Structural constants of the RPM v3 on-disk format
const (
	leadSize       = 96
	introSize      = 16 // header magic+version, reserved, entry count, store size
	indexEntrySize = 16
)

// Header section magic: 0x8E 0xAD 0xE8 followed by version 1
var headerMagic = []byte{0x8E, 0xAD, 0xE8, 0x01}

// parseSegmentOffsets computes the byte boundaries of the four
// sections from the fixed-size lead and the two header intro records.
// Each header section occupies intro + 16*count index entries + store;
// the signature header is additionally padded to 8-byte alignment.
// Nothing beyond the intro records is interpreted.
func parseSegmentOffsets(data []byte) (models.SegmentOffsets, error) {
	offsets := models.SegmentOffsets{Lead: 0, SignatureHeader: leadSize}

	sigLen, err := headerSectionLength(data, leadSize)
	if err != nil {
		return models.SegmentOffsets{}, fmt.Errorf("signature header: %w", err)
	}
	if pad := sigLen % 8; pad != 0 {
		sigLen += 8 - pad
	}
	offsets.Header = leadSize + sigLen

	hdrLen, err := headerSectionLength(data, offsets.Header)
	if err != nil {
		return models.SegmentOffsets{}, fmt.Errorf("header: %w", err)
	}
	offsets.Payload = offsets.Header + hdrLen

	if offsets.Payload > len(data) {
		return models.SegmentOffsets{}, fmt.Errorf("header sections run past end of package (%d > %d)",
			offsets.Payload, len(data))
	}

	return offsets, nil
}

// headerSectionLength reads the intro record at start and returns the
// total byte length of that header section.
func headerSectionLength(data []byte, start int) (int, error) {
	if start+introSize > len(data) {
		return 0, fmt.Errorf("truncated intro record at offset %d", start)
	}
	intro := data[start : start+introSize]

	for i, b := range headerMagic {
		if intro[i] != b {
			return 0, fmt.Errorf("bad magic at offset %d: % x", start, intro[:4])
		}
	}

	count := binary.BigEndian.Uint32(intro[8:12])
	size := binary.BigEndian.Uint32(intro[12:16])

	// Same sanity bounds rpm itself applies to intro records
	if count > 65535 || size > 256*1024*1024 {
		return 0, fmt.Errorf("implausible intro record at offset %d: count=%d size=%d", start, count, size)
	}

	return introSize + int(count)*indexEntrySize + int(size), nil
}
