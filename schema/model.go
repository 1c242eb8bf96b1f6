// Package schema compiles a textual ASN.1 module into the in-memory,
// tag-keyed dispatch tables the decoder walks (spec §3, §4.3). Compilation
// is a one-shot, side-effect-free pass: the result is immutable and safe to
// share by reference across every worker in the process (spec §3.5, §5).
package schema

import "go.cdrtool.dev/cdr"

// PrimitiveKind identifies one of the primitive ASN.1 types this tool
// recognises (spec §3.2 "primitives").
type PrimitiveKind int

// The primitive kinds the compiler can assign to a type name.
const (
	PrimInteger PrimitiveKind = iota
	PrimOctetString
	PrimBitString
	PrimIA5String
	PrimUTF8String
	PrimBoolean
	PrimNull
	PrimEnumerated
	PrimTBCDString
	PrimObjectIdentifier
	PrimGraphicString
	PrimVisibleString
)

// primitiveUniversalTag maps each primitive kind to its universal tag number
// (spec §3.4). TBCD-STRING shares OCTET STRING's universal tag: it is an
// OCTET STRING with a different display convention, not a distinct ASN.1
// universal type.
var primitiveUniversalTag = map[PrimitiveKind]uint64{
	PrimInteger:          cdr.TagInteger,
	PrimOctetString:      cdr.TagOctetString,
	PrimBitString:        cdr.TagBitString,
	PrimBoolean:          cdr.TagBoolean,
	PrimNull:             cdr.TagNull,
	PrimEnumerated:       cdr.TagEnumerated,
	PrimUTF8String:       cdr.TagUTF8String,
	PrimIA5String:        cdr.TagIA5String,
	PrimObjectIdentifier: cdr.TagObjectID,
	PrimTBCDString:       cdr.TagOctetString,
	PrimGraphicString:    cdr.TagGraphicString,
	PrimVisibleString:    cdr.TagVisibleString,
}

// UniversalTag returns the tag key a bare (untagged) field of this primitive
// kind dispatches on.
func (k PrimitiveKind) UniversalTag() cdr.Tag {
	return cdr.Universal(primitiveUniversalTag[k])
}

// Field is one member of a compiled SEQUENCE or SET (spec §3.2 "field
// spec").
type Field struct {
	Name       string
	Type       string // the field's declared type name, pre-alias-resolution
	Optional   bool
	SequenceOf bool // true if the field's type is "SEQUENCE OF <Type>"
	SetOf      bool // true if the field's type is "SET OF <Type>"
}

// Alternative is one member of a compiled CHOICE (spec §3.2 "choices").
type Alternative struct {
	Name string
	Type string
}

// Schema is the compiled, immutable form of an ASN.1 module (spec §3.2).
// Every map is keyed by the type's name as it appears in the module text
// (before alias resolution except where noted).
type Schema struct {
	Choices   map[string]map[cdr.Tag]Alternative
	Sequences map[string]map[cdr.Tag]Field
	Sets      map[string]map[cdr.Tag]Field
	SeqOf     map[string]string // name -> element type name
	SetOf     map[string]string
	Primitive map[string]PrimitiveKind
	Aliases   map[string]string
	OuterTag  map[string]cdr.Tag // name -> explicit [CLASS n] outer tag

	// choiceOrder preserves the declaration order of each untagged CHOICE's
	// synthetic alternative keys, needed for the ordered probe of §4.5
	// step 3. Map iteration order in Go is randomised, so Choices alone
	// cannot answer "ascending ordinal order".
	choiceOrder map[string][]cdr.Tag
}

// maxAliasDepth bounds alias-chain resolution so a cyclic or very deep alias
// definition cannot loop or recurse unboundedly (spec §3.2 "fixed bound").
const maxAliasDepth = 32

// Resolve follows the alias chain for name up to maxAliasDepth hops and
// returns the final, non-alias name. If name is not itself an alias, it is
// returned unchanged (alias resolution on an already-resolved name is a
// no-op, spec §8 "alias idempotence"). If the chain exceeds maxAliasDepth,
// Resolve returns the last name it reached.
func (s *Schema) Resolve(name string) string {
	for i := 0; i < maxAliasDepth; i++ {
		next, ok := s.Aliases[name]
		if !ok {
			return name
		}
		name = next
	}
	return name
}

// Kind classifies what a (possibly aliased) type name resolves to, for the
// decoder's structural dispatch.
type Kind int

const (
	KindUnknown Kind = iota
	KindChoice
	KindSequence
	KindSet
	KindSeqOf
	KindSetOf
	KindPrimitive
)

// KindOf resolves name through aliases and reports what it is.
func (s *Schema) KindOf(name string) (string, Kind) {
	name = s.Resolve(name)
	if _, ok := s.Choices[name]; ok {
		return name, KindChoice
	}
	if _, ok := s.Sequences[name]; ok {
		return name, KindSequence
	}
	if _, ok := s.Sets[name]; ok {
		return name, KindSet
	}
	if _, ok := s.SeqOf[name]; ok {
		return name, KindSeqOf
	}
	if _, ok := s.SetOf[name]; ok {
		return name, KindSetOf
	}
	if _, ok := s.Primitive[name]; ok {
		return name, KindPrimitive
	}
	return name, KindUnknown
}

// OuterTagOf returns the dispatch tag key a bare reference to name produces:
// an explicit outer tag if one was declared (spec §3.3, "type_outer_tag
// entries take precedence"), otherwise the type's natural universal tag for
// primitives and SEQUENCE/SEQUENCE OF/SET/SET OF, or ok=false for a CHOICE
// (which has no outer tag, spec §3.4) or an unknown type.
func (s *Schema) OuterTagOf(name string) (tag cdr.Tag, ok bool) {
	name = s.Resolve(name)
	if tag, ok = s.OuterTag[name]; ok {
		return tag, true
	}
	_, kind := s.KindOf(name)
	switch kind {
	case KindPrimitive:
		return s.Primitive[name].UniversalTag(), true
	case KindSequence, KindSeqOf:
		return cdr.Universal(cdr.TagSequence), true
	case KindSet, KindSetOf:
		return cdr.Universal(cdr.TagSet), true
	default:
		return cdr.Tag{}, false
	}
}

// OrderedAlternatives returns the synthetic tag keys of name's untagged CHOICE
// alternatives in ascending declaration order, for the untagged-CHOICE probe
// of §4.5 step 3. It returns nil for a CHOICE with tagged alternatives.
func (s *Schema) OrderedAlternatives(name string) []cdr.Tag {
	return s.choiceOrder[s.Resolve(name)]
}

// newSchema returns an empty, ready-to-populate Schema.
func newSchema() *Schema {
	return &Schema{
		Choices:     make(map[string]map[cdr.Tag]Alternative),
		Sequences:   make(map[string]map[cdr.Tag]Field),
		Sets:        make(map[string]map[cdr.Tag]Field),
		SeqOf:       make(map[string]string),
		SetOf:       make(map[string]string),
		Primitive:   make(map[string]PrimitiveKind),
		Aliases:     make(map[string]string),
		OuterTag:    make(map[string]cdr.Tag),
		choiceOrder: make(map[string][]cdr.Tag),
	}
}
