package mmapfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenReadsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	want := []byte{0x30, 0x05, 0x80, 0x03, 0x01, 0x02, 0x03}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mf, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer mf.Close()

	got := mf.Bytes()
	if len(got) != len(want) {
		t.Fatalf("Bytes() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Bytes()[%d] = %x, want %x", i, got[i], want[i])
		}
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mf, err := Open(path)
	if err != nil {
		t.Fatalf("Open of empty file should succeed, got: %v", err)
	}
	defer mf.Close()

	if len(mf.Bytes()) != 0 {
		t.Fatalf("Bytes() = %v, want empty", mf.Bytes())
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatalf("Open of a missing file should fail")
	}
}
