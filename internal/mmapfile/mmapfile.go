// Package mmapfile memory-maps one input file read-only, giving the decode
// pipeline a single borrowed buffer per worker to parse TLVs against without
// ever copying file content onto the heap (spec §5 "a memory-mapped view of
// its input file"; spec §9 "the whole decode pipeline operates on views
// into the input memory-map").
package mmapfile

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// File is a read-only memory-mapped view of one input file.
type File struct {
	f *os.File
	m mmap.MMap
}

// Open maps path read-only. An empty file maps to a zero-length Bytes
// rather than failing, since a truncated or empty CDR file is a per-file
// I/O condition the driver tolerates (spec §7 class 2), not a fatal error.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapfile: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return &File{f: f}, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapfile: map %s: %w", path, err)
	}
	return &File{f: f, m: m}, nil
}

// Bytes returns the mapped file content. The returned slice is valid only
// until Close is called.
func (mf *File) Bytes() []byte {
	return mf.m
}

// Close unmaps the file and releases its descriptor.
func (mf *File) Close() error {
	var err error
	if mf.m != nil {
		err = mf.m.Unmap()
	}
	if cerr := mf.f.Close(); err == nil {
		err = cerr
	}
	return err
}
