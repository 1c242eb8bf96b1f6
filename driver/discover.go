package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands roots (a mix of files and directories) into a sorted,
// deduplicated list of regular files to process (spec §6.1 "directories
// walked recursively, symlinks not followed"; spec §9 "behaviour when a
// directory and one of its descendants are both passed is deduplicated...
// preserve deduplication and stable sort order").
//
// Deduplication keys on the absolute, symlink-resolved path, so passing both
// a directory and a file inside it (or two different paths that alias the
// same file through a symlink) yields the file exactly once.
func Discover(roots []string, exts []string) ([]string, error) {
	patterns := extPatterns(exts)
	seen := make(map[string]bool)
	var files []string

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("driver: resolve %s: %w", path, err)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return fmt.Errorf("driver: resolve %s: %w", path, err)
		}
		if seen[resolved] {
			return nil
		}
		if !matchesExt(patterns, resolved) {
			return nil
		}
		seen[resolved] = true
		files = append(files, resolved)
		return nil
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("driver: stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if err := add(root); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() {
				// symlinks and other non-regular entries are skipped rather
				// than followed (spec §6.1 "symlinks not followed").
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("driver: walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// extPatterns lowercases and normalises a csv-style extension list into
// doublestar glob patterns, e.g. {"cdr", ".BIN"} -> {"*.cdr", "*.bin"}.
func extPatterns(exts []string) []string {
	var patterns []string
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(e, "."))
		if e == "" {
			continue
		}
		patterns = append(patterns, "*."+e)
	}
	return patterns
}

// matchesExt reports whether path's base name matches one of patterns. No
// patterns means no filtering.
func matchesExt(patterns []string, path string) bool {
	if len(patterns) == 0 {
		return true
	}
	base := strings.ToLower(filepath.Base(path))
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}
