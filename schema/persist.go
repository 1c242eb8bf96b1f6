package schema

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"go.cdrtool.dev/cdr"
)

// blobVersion is bumped whenever the wire shape of gobSchema changes. A
// mismatched version is a fatal configuration error (spec §7 class 1):
// "producers write with the same version that consumers read" (spec §6.3).
const blobVersion = 1

// gobSchema is the flattened, gob-friendly mirror of Schema. Schema itself
// is not gob-encoded directly because its unexported choiceOrder field
// would be silently dropped by encoding/gob, losing the untagged-CHOICE
// declaration order (spec §4.5 step 3).
type gobSchema struct {
	Version     int
	Choices     map[string]map[cdr.Tag]Alternative
	Sequences   map[string]map[cdr.Tag]Field
	Sets        map[string]map[cdr.Tag]Field
	SeqOf       map[string]string
	SetOf       map[string]string
	Primitive   map[string]PrimitiveKind
	Aliases     map[string]string
	OuterTag    map[string]cdr.Tag
	ChoiceOrder map[string][]cdr.Tag
}

// Save serialises s to path as an opaque compiled-schema blob (spec §6.3).
func Save(s *Schema, path string) error {
	g := gobSchema{
		Version:     blobVersion,
		Choices:     s.Choices,
		Sequences:   s.Sequences,
		Sets:        s.Sets,
		SeqOf:       s.SeqOf,
		SetOf:       s.SetOf,
		Primitive:   s.Primitive,
		Aliases:     s.Aliases,
		OuterTag:    s.OuterTag,
		ChoiceOrder: s.choiceOrder,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&g); err != nil {
		return fmt.Errorf("schema: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("schema: write %s: %w", path, err)
	}
	return nil
}

// Load reads a compiled-schema blob previously written by Save. A version
// mismatch is returned as an error rather than tolerated, since the blob's
// internal shape carries no forward- or backward-compatibility guarantee
// (spec §6.3 "its stability across versions is not guaranteed").
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	var g gobSchema
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", path, err)
	}
	if g.Version != blobVersion {
		return nil, fmt.Errorf("schema: %s was compiled with blob version %d, this build reads version %d",
			path, g.Version, blobVersion)
	}
	return &Schema{
		Choices:     g.Choices,
		Sequences:   g.Sequences,
		Sets:        g.Sets,
		SeqOf:       g.SeqOf,
		SetOf:       g.SetOf,
		Primitive:   g.Primitive,
		Aliases:     g.Aliases,
		OuterTag:    g.OuterTag,
		choiceOrder: g.ChoiceOrder,
	}, nil
}
