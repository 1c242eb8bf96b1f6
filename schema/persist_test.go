package schema

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"go.cdrtool.dev/cdr"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := Compile(`M DEFINITIONS ::= BEGIN
S ::= SEQUENCE { a [0] INTEGER }
T ::= SET { b [0] INTEGER }
C ::= CHOICE { s S, t T }
END`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	path := filepath.Join(t.TempDir(), "schema.bin")
	if err := Save(s, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantOrder := s.OrderedAlternatives("C")
	gotOrder := loaded.OrderedAlternatives("C")
	if len(wantOrder) != len(gotOrder) {
		t.Fatalf("OrderedAlternatives(C) len mismatch after round-trip: got %v want %v", gotOrder, wantOrder)
	}
	for i := range wantOrder {
		if wantOrder[i] != gotOrder[i] {
			t.Fatalf("OrderedAlternatives(C)[%d] = %v, want %v", i, gotOrder[i], wantOrder[i])
		}
	}

	if _, kind := loaded.KindOf("S"); kind != KindSequence {
		t.Fatalf("KindOf(S) after round-trip = %v, want KindSequence", kind)
	}
	tag := cdr.Tag{Class: cdr.ClassContextSpecific, Number: 0}
	if f, ok := loaded.Sequences["S"][tag]; !ok || f.Name != "a" {
		t.Fatalf("Sequences[S] after round-trip = %+v ok=%v, want field a", f, ok)
	}
}

func TestLoadVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.bin")
	var buf bytes.Buffer
	g := gobSchema{Version: blobVersion + 1}
	if err := gob.NewEncoder(&buf).Encode(&g); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load of a blob with a future version should fail, got nil error")
	}
}
