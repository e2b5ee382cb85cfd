package rpmfile

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// section builds a header section with the given entry count and
// store size, filled with zero index entries and store bytes.
func section(count, size int) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x8E, 0xAD, 0xE8, 0x01, 0, 0, 0, 0})
	binary.Write(&buf, binary.BigEndian, uint32(count))
	binary.Write(&buf, binary.BigEndian, uint32(size))
	buf.Write(make([]byte, count*indexEntrySize+size))
	return buf.Bytes()
}

func TestParseSegmentOffsets(t *testing.T) {
	lead := make([]byte, leadSize)
	sig := section(1, 4)    // 36 bytes, padded to 40
	hdr := section(2, 10)   // 58 bytes, no padding
	payload := []byte("payload")

	sigPadded := append(sig, make([]byte, 4)...)
	data := bytes.Join([][]byte{lead, sigPadded, hdr, payload}, nil)

	offsets, err := parseSegmentOffsets(data)
	if err != nil {
		t.Fatalf("parseSegmentOffsets failed: %v", err)
	}

	if offsets.Lead != 0 || offsets.SignatureHeader != 96 {
		t.Errorf("Lead/SignatureHeader = %d/%d, want 0/96", offsets.Lead, offsets.SignatureHeader)
	}
	if want := 96 + 40; offsets.Header != want {
		t.Errorf("Header = %d, want %d", offsets.Header, want)
	}
	if want := 96 + 40 + 58; offsets.Payload != want {
		t.Errorf("Payload = %d, want %d", offsets.Payload, want)
	}
	if got := data[offsets.Payload:]; !bytes.Equal(got, payload) {
		t.Errorf("Payload offset does not point at the payload: %q", got)
	}
}

func TestParseSegmentOffsetsSignatureAlreadyAligned(t *testing.T) {
	lead := make([]byte, leadSize)
	sig := section(2, 8) // 16 + 32 + 8 = 56, already 8-aligned
	hdr := section(0, 0)

	data := bytes.Join([][]byte{lead, sig, hdr}, nil)

	offsets, err := parseSegmentOffsets(data)
	if err != nil {
		t.Fatalf("parseSegmentOffsets failed: %v", err)
	}
	if want := 96 + 56; offsets.Header != want {
		t.Errorf("Header = %d, want %d", offsets.Header, want)
	}
	if want := 96 + 56 + 16; offsets.Payload != want {
		t.Errorf("Payload = %d, want %d", offsets.Payload, want)
	}
}

func TestParseSegmentOffsetsTruncated(t *testing.T) {
	if _, err := parseSegmentOffsets(make([]byte, 100)); err == nil {
		t.Error("Expected an error for a buffer shorter than lead + intro")
	}
}

func TestParseSegmentOffsetsBadMagic(t *testing.T) {
	data := make([]byte, 200)
	// No header magic after the lead
	if _, err := parseSegmentOffsets(data); err == nil {
		t.Error("Expected an error for a missing header magic")
	}
}

func TestParseSegmentOffsetsOverrun(t *testing.T) {
	lead := make([]byte, leadSize)
	sig := section(1, 1024) // claims more store bytes than the buffer holds

	data := append(lead, sig[:introSize]...)

	if _, err := parseSegmentOffsets(data); err == nil {
		t.Error("Expected an error when the declared section runs past end of buffer")
	}
}

func TestParseSegmentOffsetsImplausibleIntro(t *testing.T) {
	lead := make([]byte, leadSize)
	var intro bytes.Buffer
	intro.Write([]byte{0x8E, 0xAD, 0xE8, 0x01, 0, 0, 0, 0})
	binary.Write(&intro, binary.BigEndian, uint32(1<<30)) // absurd entry count
	binary.Write(&intro, binary.BigEndian, uint32(0))

	data := append(lead, intro.Bytes()...)

	if _, err := parseSegmentOffsets(data); err == nil {
		t.Error("Expected an error for an implausible intro record")
	}
}
