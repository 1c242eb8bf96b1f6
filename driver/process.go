package driver

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.cdrtool.dev/cdr/decode"
	"go.cdrtool.dev/cdr/internal/mmapfile"
	"go.cdrtool.dev/cdr/jsonw"
	"go.cdrtool.dev/cdr/tlv"
)

// ProcessFile memory-maps path, scans it for Config.RootType records, and
// writes one JSON object per line to <Config.OutputDir>/<base name of
// path>.jsonl (spec §4.6, §6.2). Within a single file, emitted lines
// preserve the byte order of the records found in the input (spec §5
// "within a single file, emitted JSON lines preserve the byte order").
func ProcessFile(cfg Config, path string) Report {
	rep := Report{File: path}

	mf, err := mmapfile.Open(path)
	if err != nil {
		rep.Err = fmt.Errorf("open: %w", err)
		return rep
	}
	defer mf.Close()

	outPath := filepath.Join(cfg.OutputDir, filepath.Base(path)+".jsonl")
	out, err := os.Create(outPath)
	if err != nil {
		rep.Err = fmt.Errorf("create output: %w", err)
		return rep
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	var w jsonw.Writer
	var writeErr error

	rep.Records = scan(cfg.Schema, cfg.RootType, mf.Bytes(), func(item tlv.TLV) {
		if writeErr != nil {
			return
		}
		w.Reset()
		decode.Decode(cfg.Schema, cfg.RootType, item, &w)
		w.Buf = append(w.Buf, '\n')
		if _, err := bw.Write(w.Buf); err != nil {
			writeErr = err
		}
	})

	if writeErr != nil {
		rep.Err = fmt.Errorf("write output: %w", writeErr)
		return rep
	}
	if err := bw.Flush(); err != nil {
		rep.Err = fmt.Errorf("flush output: %w", err)
	}
	return rep
}
