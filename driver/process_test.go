package driver

import (
	"os"
	"path/filepath"
	"testing"

	"go.cdrtool.dev/cdr/schema"
)

func TestProcessFileWritesJSONL(t *testing.T) {
	s, err := schema.Compile(`M DEFINITIONS ::= BEGIN
R ::= SEQUENCE { a [0] INTEGER }
END`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	dir := t.TempDir()
	inPath := filepath.Join(dir, "records.cdr")
	if err := os.WriteFile(inPath, []byte{
		0x30, 0x05, 0x80, 0x03, 0x01, 0x02, 0x03,
		0x30, 0x05, 0x80, 0x03, 0x0a, 0x0b, 0x0c,
	}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg := Config{Schema: s, RootType: "R", OutputDir: outDir}
	rep := ProcessFile(cfg, inPath)
	if rep.Err != nil {
		t.Fatalf("ProcessFile: %v", rep.Err)
	}
	if rep.Records != 2 {
		t.Fatalf("rep.Records = %d, want 2", rep.Records)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "records.cdr.jsonl"))
	if err != nil {
		t.Fatalf("ReadFile output: %v", err)
	}
	want := "{\"a\":\"010203\"}\n{\"a\":\"0a0b0c\"}\n"
	if string(data) != want {
		t.Fatalf("output = %q, want %q", string(data), want)
	}
}
