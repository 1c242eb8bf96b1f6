// Package jsonw streams JSON tokens directly to an output buffer as the
// decoder walks a record, without ever building an intermediate value (spec
// §4.2). It writes exactly two kinds of scalar: a JSON-escaped string and a
// lowercase-hex-encoded byte string, plus the object/array punctuation that
// glues them together.
package jsonw

import "encoding/hex"

// Writer appends JSON tokens to Buf. The zero value is ready to use; Buf may
// be pre-allocated by the caller to size the expected output.
//
// A Writer is not safe for concurrent use; the driver gives each worker its
// own Writer (spec §5).
type Writer struct {
	Buf []byte

	// scratch is reused across calls to WriteHex so that hex-encoding a leaf
	// value costs O(1) allocations regardless of how many leaves a record
	// has (spec §4.2).
	scratch []byte
}

// Reset truncates Buf to length 0 without releasing its backing array, so a
// Writer can be reused for the next record.
func (w *Writer) Reset() { w.Buf = w.Buf[:0] }

// WriteByte appends a single raw byte, e.g. structural punctuation.
func (w *Writer) WriteByte(b byte) { w.Buf = append(w.Buf, b) }

// WriteRaw appends s unescaped, verbatim.
func (w *Writer) WriteRaw(s string) { w.Buf = append(w.Buf, s...) }

// WriteString appends s as a JSON string literal, escaping the characters
// that must be escaped per RFC 8259: the quote and backslash, the common
// two-character escapes, and other control bytes as \u00xx.
func (w *Writer) WriteString(s string) {
	w.Buf = append(w.Buf, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		w.Buf = append(w.Buf, s[start:i]...)
		switch c {
		case '"':
			w.Buf = append(w.Buf, '\\', '"')
		case '\\':
			w.Buf = append(w.Buf, '\\', '\\')
		case '\n':
			w.Buf = append(w.Buf, '\\', 'n')
		case '\r':
			w.Buf = append(w.Buf, '\\', 'r')
		case '\t':
			w.Buf = append(w.Buf, '\\', 't')
		default:
			const hexDigits = "0123456789abcdef"
			w.Buf = append(w.Buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	w.Buf = append(w.Buf, s[start:]...)
	w.Buf = append(w.Buf, '"')
}

// WriteHex appends b as a double-quoted, lowercase hex string, e.g. "01ab".
// An empty or nil b produces `""`.
func (w *Writer) WriteHex(b []byte) {
	n := hex.EncodedLen(len(b))
	if cap(w.scratch) < n {
		w.scratch = make([]byte, n)
	}
	scratch := w.scratch[:n]
	hex.Encode(scratch, b)

	w.Buf = append(w.Buf, '"')
	w.Buf = append(w.Buf, scratch...)
	w.Buf = append(w.Buf, '"')
}

// WriteKey appends an object key literal followed by a colon, e.g. `"name":`.
func (w *Writer) WriteKey(name string) {
	w.WriteString(name)
	w.Buf = append(w.Buf, ':')
}

// WriteUnknownTagKey appends the synthesised key used for a TLV whose tag
// was not found in a SEQUENCE/SET's field table, e.g. `"unknown_tag_2_5":`
// for a context-specific tag 5 (spec §4.4).
func (w *Writer) WriteUnknownTagKey(class, number int) {
	w.Buf = append(w.Buf, '"')
	w.Buf = append(w.Buf, "unknown_tag_"...)
	w.Buf = appendUint(w.Buf, class)
	w.Buf = append(w.Buf, '_')
	w.Buf = appendUint(w.Buf, number)
	w.Buf = append(w.Buf, '"', ':')
}

// appendUint appends the decimal representation of a non-negative int.
func appendUint(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// digits were appended least-significant-first; reverse them in place.
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
