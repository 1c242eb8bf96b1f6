// Package driver wires the compiled schema, the TLV reader and the decoder
// together into the per-file pipeline: discover input files, memory-map
// each one, scan it for root-typed records, and write one JSONL file per
// input (spec §4.6, §5, §6.1, §6.2).
package driver

import "go.cdrtool.dev/cdr/schema"

// Config holds everything one invocation of the driver needs (spec §6.1).
type Config struct {
	Schema *schema.Schema

	// RootType is the post-alias-resolution name of the top-level record
	// type. The caller is responsible for validating it is known before
	// building a Config — that check is a fatal configuration error (spec
	// §7 class 1), not a per-file one.
	RootType string

	// OutputDir is created if absent; one <name>.jsonl is written per input
	// file (spec §6.2).
	OutputDir string

	// Ext, if non-empty, restricts discovered files to these lowercased
	// extensions (without the leading dot), e.g. {"cdr", "bin"}.
	Ext []string
}
