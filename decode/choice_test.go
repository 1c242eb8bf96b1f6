package decode

import "testing"

func TestDecodeChoiceOctetStringWrapped(t *testing.T) {
	s := mustCompile(t, `M DEFINITIONS ::= BEGIN
C ::= CHOICE { x [0] OCTET STRING, y [1] OCTET STRING }
END`)
	// 04 04: outer primitive OCTET STRING, content reparsed carries the
	// alternative key 81 02 aabb (spec §4.5 "OCTET STRING wrapped").
	got := decodeHex(t, s, "C", []byte{0x04, 0x04, 0x81, 0x02, 0xaa, 0xbb})
	want := `{"y":"aabb"}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeChoiceExplicitlyWrapped(t *testing.T) {
	s := mustCompile(t, `M DEFINITIONS ::= BEGIN
C ::= CHOICE { x [0] OCTET STRING, y [1] OCTET STRING }
END`)
	// 30 04: constructed outer wrapper (not itself an alternative key), first
	// inner TLV carries the alternative key.
	got := decodeHex(t, s, "C", []byte{0x30, 0x04, 0x80, 0x02, 0x01, 0x02})
	want := `{"x":"0102"}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeChoiceUnknownAlternative(t *testing.T) {
	s := mustCompile(t, `M DEFINITIONS ::= BEGIN
C ::= CHOICE { x [0] OCTET STRING, y [1] OCTET STRING }
END`)
	got := decodeHex(t, s, "C", []byte{0x85, 0x02, 0xaa, 0xbb})
	want := `{"unknown_alternative":"8502aabb"}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
