package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverRecursiveAndExtFilter(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, "a.cdr"), "a")
	writeFile(t, filepath.Join(sub, "b.cdr"), "b")
	writeFile(t, filepath.Join(sub, "c.txt"), "c")

	files, err := Discover([]string{root}, []string{"cdr"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Discover found %d files, want 2: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) != ".cdr" {
			t.Fatalf("unexpected file in result: %s", f)
		}
	}
}

func TestDiscoverDedupesFileInsideDirectory(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.cdr")
	writeFile(t, path, "a")

	files, err := Discover([]string{root, path}, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Discover returned %d entries, want 1 (deduplicated): %v", len(files), files)
	}
}

func TestDiscoverNoExtFilterReturnsEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.cdr"), "a")
	writeFile(t, filepath.Join(root, "b.bin"), "b")

	files, err := Discover([]string{root}, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Discover found %d files, want 2: %v", len(files), files)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
