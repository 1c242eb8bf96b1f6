package vlq

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestRead(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    uint64
		wantErr error
	}{
		"SingleByte":    {[]byte{0x05}, 5, nil},
		"MultiByte":     {[]byte{0x85, 0x01}, 641, nil},
		"EOF":           {nil, 0, io.EOF},
		"UnexpectedEOF": {[]byte{0x81}, 0, io.ErrUnexpectedEOF},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Read[uint64](bytes.NewReader(tc.data))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Read() error = %v, want %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("Read() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReadMinimal(t *testing.T) {
	_, err := ReadMinimal[uint64](bytes.NewReader([]byte{0x80, 0x05}))
	if !errors.Is(err, errNotMinimal) {
		t.Errorf("ReadMinimal() error = %v, want %v", err, errNotMinimal)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 5, 127, 128, 641, 1 << 20} {
		var buf bytes.Buffer
		n, err := Write(&buf, v)
		if err != nil {
			t.Fatalf("Write(%d) error = %v", v, err)
		}
		if n != Length(v) {
			t.Errorf("Write(%d) n = %d, want Length() = %d", v, n, Length(v))
		}
		got, err := Read[uint64](&buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got != v {
			t.Errorf("round trip = %d, want %d", got, v)
		}
	}
}
