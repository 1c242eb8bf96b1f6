package schema

import (
	"fmt"
	"strconv"

	"go.cdrtool.dev/cdr"
)

// CompileError reports a problem found while compiling an ASN.1 module text
// (spec §4.3). Unlike the decoder's soft-failure-by-default philosophy (spec
// §7), compilation happens once at startup and is allowed to fail hard: an
// unparseable schema is a fatal-configuration error (spec §7 class 1).
type CompileError struct {
	Context string // the definition being parsed when the error occurred
	Err     error
}

func (e *CompileError) Error() string {
	if e.Context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("schema: in %s: %s", e.Context, e.Err.Error())
}

func (e *CompileError) Unwrap() error { return e.Err }

// definition is one top-level "Name ::= ..." statement, after splitting but
// before interpretation (spec §4.3 step 3).
type definition struct {
	name string
	body []token
}

// rawSeqSet accumulates a SEQUENCE or SET's fields plus any pending
// COMPONENTS OF source types, to be inlined once all definitions have been
// parsed (spec §4.3 step 7).
type rawSeqSet struct {
	isSet        bool
	fields       []Field
	tags         []cdr.Tag // parallel to fields; zero Tag if undetermined yet
	componentsOf []string
}

// Compile parses the full text of an ASN.1 module and returns its compiled
// dispatch tables. Compilation is deterministic and side-effect-free (spec
// §4.3); the same text always compiles to an equivalent Schema.
func Compile(text string) (*Schema, error) {
	toks := tokenize(stripComments(text))
	defs := splitDefinitions(toks)

	s := newSchema()
	rawSeqSets := make(map[string]*rawSeqSet)

	for _, d := range defs {
		if err := compileDefinition(s, rawSeqSets, d); err != nil {
			return nil, &CompileError{Context: d.name, Err: err}
		}
	}

	if err := inlineComponentsOf(rawSeqSets); err != nil {
		return nil, err
	}
	for name, raw := range rawSeqSets {
		finalizeFields(s, name, raw)
	}
	return s, nil
}

// compileDefinition dispatches one "Name ::= ..." statement to the
// appropriate table based on its defining phrase (spec §4.3 steps 2-6).
func compileDefinition(s *Schema, rawSeqSets map[string]*rawSeqSet, d definition) error {
	c := &cursor{toks: d.body}

	if c.peekPunct("[") {
		tag, err := parseTag(c)
		if err != nil {
			return err
		}
		s.OuterTag[d.name] = tag
	}
	c.skipImplicitExplicit()

	switch {
	case c.peekIdent("CHOICE"):
		c.next()
		return compileChoice(s, d.name, c)

	case c.peekIdent("SEQUENCE"):
		c.next()
		return compileSeqOrSet(s, rawSeqSets, d.name, false, c)

	case c.peekIdent("SET"):
		c.next()
		return compileSeqOrSet(s, rawSeqSets, d.name, true, c)

	case c.peekIdent("ENUMERATED"):
		s.Primitive[d.name] = PrimEnumerated
		return nil

	default:
		if kind, ok := primitiveKeywordKind(c); ok {
			s.Primitive[d.name] = kind
			return nil
		}
		// A bare "Name ::= OtherName" alias: exactly one identifier token,
		// and that identifier is not itself a keyword (spec §4.3 step 2).
		if c.remaining() == 1 && c.cur().kind == tokIdent && !isKeyword(c.cur().text) {
			s.Aliases[d.name] = c.cur().text
			return nil
		}
		// Anything else (parameterised types, information objects, value
		// assignments, …) is outside the accepted subset and is silently
		// dropped: the type stays opaque and decodes as hex (spec §3.3,
		// §9 "accepts a large subset... at the cost of rejecting exotic
		// constructs").
		return nil
	}
}

// primitiveKeywordKind recognises a primitive type's defining phrase at the
// cursor, consuming its tokens on success.
func primitiveKeywordKind(c *cursor) (PrimitiveKind, bool) {
	switch {
	case c.peekIdent("INTEGER"):
		c.next()
		return PrimInteger, true
	case c.peekIdent("BOOLEAN"):
		c.next()
		return PrimBoolean, true
	case c.peekIdent("NULL"):
		c.next()
		return PrimNull, true
	case c.peekIdent("IA5String"):
		c.next()
		return PrimIA5String, true
	case c.peekIdent("UTF8String"):
		c.next()
		return PrimUTF8String, true
	case c.peekIdent("TBCD-STRING"):
		c.next()
		return PrimTBCDString, true
	case c.peekIdent("GraphicString"):
		c.next()
		return PrimGraphicString, true
	case c.peekIdent("VisibleString"):
		c.next()
		return PrimVisibleString, true
	case c.peekIdent("OCTET") && c.peekIdentAt(1, "STRING"):
		c.next()
		c.next()
		return PrimOctetString, true
	case c.peekIdent("BIT") && c.peekIdentAt(1, "STRING"):
		c.next()
		c.next()
		return PrimBitString, true
	case c.peekIdent("OBJECT") && c.peekIdentAt(1, "IDENTIFIER"):
		c.next()
		c.next()
		return PrimObjectIdentifier, true
	default:
		return 0, false
	}
}

// compileChoice parses a CHOICE body: "{ alt, alt, ... }" where each
// alternative is "name [tag]? Type" (spec §4.3 step 4).
func compileChoice(s *Schema, name string, c *cursor) error {
	body, err := c.expectBraceGroup()
	if err != nil {
		return err
	}
	alts := splitTopLevel(body, ",")

	table := make(map[cdr.Tag]Alternative)
	var order []cdr.Tag
	var untagged []Alternative
	anyTagged := false

	for _, altToks := range alts {
		if len(altToks) == 0 {
			continue
		}
		ac := &cursor{toks: altToks}
		altName, err := ac.expectIdent()
		if err != nil {
			return err
		}
		var tag cdr.Tag
		hasTag := false
		if ac.peekPunct("[") {
			tag, err = parseTag(ac)
			if err != nil {
				return err
			}
			hasTag = true
		}
		ac.skipImplicitExplicit()
		typeName, err := parseTypeRef(ac)
		if err != nil {
			return err
		}
		alt := Alternative{Name: altName, Type: typeName}
		if hasTag {
			anyTagged = true
			table[tag] = alt
		} else {
			untagged = append(untagged, alt)
		}
	}

	if !anyTagged {
		// Fall back to synthetic tags in declaration order, dropping the
		// conventional placeholders (spec §4.3 step 4).
		ord := 0
		for _, alt := range untagged {
			if alt.Name == "isPdu" || alt.Name == "TRUE" {
				continue
			}
			if ord >= cdr.MaxSynthAlternatives {
				break
			}
			tag := cdr.Tag{Class: cdr.ClassPrivate, Number: cdr.SynthBase + uint64(ord)}
			table[tag] = alt
			order = append(order, tag)
			ord++
		}
	}

	s.Choices[name] = table
	s.choiceOrder[name] = order
	return nil
}

// compileSeqOrSet parses a SEQUENCE/SET's defining phrase after the keyword
// has been consumed: either "OF Type" (a top-level SEQUENCE OF/SET OF, spec
// §4.3 step 6) or an optional constraint followed by a "{ fields }" body
// (spec §4.3 step 5, step 7 for COMPONENTS OF).
func compileSeqOrSet(s *Schema, rawSeqSets map[string]*rawSeqSet, name string, isSet bool, c *cursor) error {
	c.skipConstraint()
	if c.peekIdent("OF") {
		c.next()
		elem, err := parseTypeRef(c)
		if err != nil {
			return err
		}
		if isSet {
			s.SetOf[name] = elem
		} else {
			s.SeqOf[name] = elem
		}
		return nil
	}

	if !c.peekPunct("{") {
		// A type definition with no body and no "OF": treated as opaque,
		// decodes as hex per the unknown-type contract.
		return nil
	}
	body, err := c.expectBraceGroup()
	if err != nil {
		return err
	}
	raw := &rawSeqSet{isSet: isSet}
	for _, fieldToks := range splitTopLevel(body, ",") {
		if len(fieldToks) == 0 {
			continue
		}
		fc := &cursor{toks: fieldToks}
		if fc.peekIdent("COMPONENTS") && fc.peekIdentAt(1, "OF") {
			fc.next()
			fc.next()
			src, err := fc.expectIdent()
			if err != nil {
				return err
			}
			raw.componentsOf = append(raw.componentsOf, src)
			continue
		}
		field, tag, hasTag, err := parseField(fc)
		if err != nil {
			return err
		}
		raw.fields = append(raw.fields, field)
		if hasTag {
			raw.tags = append(raw.tags, tag)
		} else {
			raw.tags = append(raw.tags, cdr.Tag{})
		}
	}
	rawSeqSets[name] = raw
	return nil
}

// parseField parses one SEQUENCE/SET field: "name [tag]? (IMPLICIT|EXPLICIT)?
// TypeRef (DEFAULT ...|OPTIONAL)?" (spec §4.3 step 5).
func parseField(c *cursor) (field Field, tag cdr.Tag, hasTag bool, err error) {
	name, err := c.expectIdent()
	if err != nil {
		return Field{}, cdr.Tag{}, false, err
	}
	if c.peekPunct("[") {
		tag, err = parseTag(c)
		if err != nil {
			return Field{}, cdr.Tag{}, false, err
		}
		hasTag = true
	}
	c.skipImplicitExplicit()

	typeName, seqOf, setOf, err := parseFieldTypeRef(c)
	if err != nil {
		return Field{}, cdr.Tag{}, false, err
	}

	optional := false
	for !c.done() {
		if c.peekIdent("OPTIONAL") {
			optional = true
		}
		c.next()
	}

	return Field{Name: name, Type: typeName, Optional: optional, SequenceOf: seqOf, SetOf: setOf}, tag, hasTag, nil
}

// parseFieldTypeRef parses a field's TypeRef, which may be a plain type name,
// "SEQUENCE OF T" or "SET OF T".
func parseFieldTypeRef(c *cursor) (name string, seqOf, setOf bool, err error) {
	switch {
	case c.peekIdent("SEQUENCE"):
		c.next()
		c.skipConstraint()
		if !c.peekIdent("OF") {
			return "", false, false, fmt.Errorf("expected OF after SEQUENCE in field type")
		}
		c.next()
		name, err = parseTypeRef(c)
		return name, true, false, err
	case c.peekIdent("SET"):
		c.next()
		c.skipConstraint()
		if !c.peekIdent("OF") {
			return "", false, false, fmt.Errorf("expected OF after SET in field type")
		}
		c.next()
		name, err = parseTypeRef(c)
		return name, false, true, err
	default:
		name, err = parseTypeRef(c)
		return name, false, false, err
	}
}

// parseTypeRef parses a single type reference: either a bare identifier, or
// one of the two-token primitive phrases ("OCTET STRING", "BIT STRING",
// "OBJECT IDENTIFIER").
func parseTypeRef(c *cursor) (string, error) {
	if c.done() {
		return "", fmt.Errorf("expected type reference")
	}
	switch {
	case c.peekIdent("OCTET") && c.peekIdentAt(1, "STRING"):
		c.next()
		c.next()
		return "OCTET STRING", nil
	case c.peekIdent("BIT") && c.peekIdentAt(1, "STRING"):
		c.next()
		c.next()
		return "BIT STRING", nil
	case c.peekIdent("OBJECT") && c.peekIdentAt(1, "IDENTIFIER"):
		c.next()
		c.next()
		return "OBJECT IDENTIFIER", nil
	default:
		return c.expectIdent()
	}
}

// parseTag parses "[ (class-word)? number ]" at the cursor; bare number with
// no class word means CONTEXT (spec §4.3 "A bare number... means CONTEXT").
func parseTag(c *cursor) (cdr.Tag, error) {
	if !c.peekPunct("[") {
		return cdr.Tag{}, fmt.Errorf("expected '['")
	}
	c.next()
	class := cdr.ClassContextSpecific
	if c.cur().kind == tokIdent {
		switch c.cur().text {
		case "APPLICATION":
			class = cdr.ClassApplication
		case "UNIVERSAL":
			class = cdr.ClassUniversal
		case "PRIVATE":
			class = cdr.ClassPrivate
		case "CONTEXT", "CONTEXT-SPECIFIC":
			class = cdr.ClassContextSpecific
		default:
			return cdr.Tag{}, fmt.Errorf("unexpected class word %q", c.cur().text)
		}
		c.next()
	}
	if c.cur().kind != tokNumber {
		return cdr.Tag{}, fmt.Errorf("expected tag number")
	}
	num, err := strconv.ParseUint(c.cur().text, 10, 64)
	if err != nil {
		return cdr.Tag{}, err
	}
	c.next()
	if !c.peekPunct("]") {
		return cdr.Tag{}, fmt.Errorf("expected ']'")
	}
	c.next()
	return cdr.Tag{Class: class, Number: num}, nil
}

// inlineComponentsOf resolves every rawSeqSet's pending COMPONENTS OF
// references by splicing the named source's own (already or recursively
// resolved) fields in, after all top-level definitions have been parsed
// (spec §4.3 step 7, "after all other declarations have been processed").
func inlineComponentsOf(rawSeqSets map[string]*rawSeqSet) error {
	resolving := make(map[string]bool)
	var resolve func(name string) error
	resolve = func(name string) error {
		raw, ok := rawSeqSets[name]
		if !ok || len(raw.componentsOf) == 0 {
			return nil
		}
		if resolving[name] {
			return fmt.Errorf("schema: COMPONENTS OF cycle involving %s", name)
		}
		resolving[name] = true
		defer delete(resolving, name)

		srcs := raw.componentsOf
		raw.componentsOf = nil
		for _, src := range srcs {
			if err := resolve(src); err != nil {
				return err
			}
			if srcRaw, ok := rawSeqSets[src]; ok {
				raw.fields = append(raw.fields, srcRaw.fields...)
				raw.tags = append(raw.tags, srcRaw.tags...)
			}
		}
		return nil
	}
	for name := range rawSeqSets {
		if err := resolve(name); err != nil {
			return err
		}
	}
	return nil
}

// finalizeFields computes each field's dispatch tag key — the explicit tag
// if one was written, otherwise the field type's natural outer tag (spec
// §3.2, §3.4) — and drops fields with no derivable tag (spec §3.2 "Fields
// with no derivable tag are dropped at compile time").
func finalizeFields(s *Schema, name string, raw *rawSeqSet) {
	table := make(map[cdr.Tag]Field)
	for i, field := range raw.fields {
		tag := raw.tags[i]
		if tag == (cdr.Tag{}) {
			var ok bool
			switch {
			case field.SequenceOf:
				tag, ok = cdr.Universal(cdr.TagSequence), true
			case field.SetOf:
				tag, ok = cdr.Universal(cdr.TagSet), true
			default:
				tag, ok = s.OuterTagOf(field.Type)
			}
			if !ok {
				continue
			}
		}
		table[tag] = field
	}
	if raw.isSet {
		s.Sets[name] = table
	} else {
		s.Sequences[name] = table
	}
}
