package driver

import (
	"testing"

	"go.cdrtool.dev/cdr/schema"
	"go.cdrtool.dev/cdr/tlv"
)

func TestScanAdvancesPastPadding(t *testing.T) {
	s, err := schema.Compile(`M DEFINITIONS ::= BEGIN
R ::= SEQUENCE { a [0] INTEGER }
END`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// One byte of junk padding, then two back-to-back records.
	buf := []byte{
		0xff,
		0x30, 0x05, 0x80, 0x03, 0x01, 0x02, 0x03,
		0x30, 0x05, 0x80, 0x03, 0x0a, 0x0b, 0x0c,
	}

	var records []tlv.TLV
	count := scan(s, "R", buf, func(item tlv.TLV) {
		records = append(records, item)
	})

	if count != 2 {
		t.Fatalf("scan found %d records, want 2", count)
	}
	if len(records) != 2 {
		t.Fatalf("emit called %d times, want 2", len(records))
	}
	if string(records[0].Value) != "\x80\x03\x01\x02\x03" {
		t.Fatalf("first record value = % x", records[0].Value)
	}
}

func TestScanEmptyBufferTerminates(t *testing.T) {
	s, err := schema.Compile(`M DEFINITIONS ::= BEGIN
R ::= SEQUENCE { a [0] INTEGER }
END`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	count := scan(s, "R", nil, func(tlv.TLV) { t.Fatal("emit should not be called on an empty buffer") })
	if count != 0 {
		t.Fatalf("scan on empty buffer returned %d, want 0", count)
	}
}

func TestScanAllJunkTerminates(t *testing.T) {
	s, err := schema.Compile(`M DEFINITIONS ::= BEGIN
R ::= SEQUENCE { a [0] INTEGER }
END`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	buf := []byte{0xff, 0xff, 0xff, 0xff}
	count := scan(s, "R", buf, func(tlv.TLV) { t.Fatal("emit should not be called, no valid record here") })
	if count != 0 {
		t.Fatalf("scan returned %d, want 0", count)
	}
}
