package jsonw

import "testing"

func TestWriteString(t *testing.T) {
	cases := map[string]string{
		"plain":        `"plain"`,
		"a\"b":         `"a\"b"`,
		"a\\b":         `"a\\b"`,
		"a\nb\r\tc":    `"a\nb\r\tc"`,
		"\x01":         `""`,
		"unicode: é": "\"unicode: é\"",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			var w Writer
			w.WriteString(in)
			if got := string(w.Buf); got != want {
				t.Errorf("WriteString(%q) = %s, want %s", in, got, want)
			}
		})
	}
}

func TestWriteHex(t *testing.T) {
	var w Writer
	w.WriteHex([]byte{0x01, 0xab, 0xff})
	if got, want := string(w.Buf), `"01abff"`; got != want {
		t.Errorf("WriteHex() = %s, want %s", got, want)
	}
}

func TestWriteHexEmpty(t *testing.T) {
	var w Writer
	w.WriteHex(nil)
	if got, want := string(w.Buf), `""`; got != want {
		t.Errorf("WriteHex(nil) = %s, want %s", got, want)
	}
}

func TestWriteHexScratchReuse(t *testing.T) {
	var w Writer
	w.WriteHex([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	firstScratch := w.scratch
	w.Reset()
	w.WriteHex([]byte{0xaa})
	if &w.scratch[0] != &firstScratch[0] {
		t.Error("expected scratch buffer to be reused across calls")
	}
}

func TestWriteUnknownTagKey(t *testing.T) {
	var w Writer
	w.WriteUnknownTagKey(2, 5)
	if got, want := string(w.Buf), `"unknown_tag_2_5":`; got != want {
		t.Errorf("WriteUnknownTagKey() = %s, want %s", got, want)
	}
}

func TestWriteKey(t *testing.T) {
	var w Writer
	w.WriteKey("a")
	if got, want := string(w.Buf), `"a":`; got != want {
		t.Errorf("WriteKey() = %s, want %s", got, want)
	}
}

func TestReset(t *testing.T) {
	var w Writer
	w.WriteRaw("{}")
	w.Reset()
	if len(w.Buf) != 0 {
		t.Errorf("Reset() left len = %d, want 0", len(w.Buf))
	}
}
