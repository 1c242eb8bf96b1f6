package decode

import (
	"go.cdrtool.dev/cdr"
	"go.cdrtool.dev/cdr/jsonw"
	"go.cdrtool.dev/cdr/schema"
	"go.cdrtool.dev/cdr/tlv"
)

// decodeChoice resolves a CHOICE per spec §4.5. raw is the whole outer TLV's
// bytes (tag, length and content), which lets the resolver inspect the
// outer tag directly — the reason [decodeTLV] always hands a CHOICE its
// raw bytes rather than its unwrapped content.
func decodeChoice(s *schema.Schema, name string, raw []byte, w *jsonw.Writer) {
	outer, _, ok := tlv.Read(raw, 0)
	if !ok {
		writeUnknownAlternative(w, raw)
		return
	}

	candidates := choiceCandidates(outer)
	table := s.Choices[name]

	for _, cand := range candidates {
		if alt, ok := table[cand.Tag]; ok {
			emitAlternative(s, alt, cand, w)
			return
		}
	}

	// No alternative carries a tag matching any candidate directly: probe
	// the untagged alternatives in declaration order by structural shape
	// (spec §4.5 step 3). [schema.Schema.OrderedAlternatives] only returns a
	// non-empty list when the CHOICE had no tagged alternatives at all
	// (spec §4.3 step 4), so this loop is a no-op for fully-tagged CHOICEs.
	for _, tag := range s.OrderedAlternatives(name) {
		alt := table[tag]
		for _, cand := range candidates {
			if matchesStructurally(s, alt.Type, cand) {
				emitAlternative(s, alt, cand, w)
				return
			}
		}
	}

	writeUnknownAlternative(w, outer.Raw)
}

// choiceCandidates forms up to three candidate TLVs for a CHOICE probe (spec
// §4.5 step 1): the outer TLV itself; if constructed, the first TLV inside
// its content (the explicit-wrapper case); and if the outer is a primitive
// universal OCTET STRING with non-empty content that isn't merely a stray
// end-of-contents pair, the first TLV inside that content (the
// OCTET-STRING-wrapped case).
func choiceCandidates(outer tlv.TLV) []tlv.TLV {
	candidates := []tlv.TLV{outer}

	if outer.Constructed {
		if inner, _, ok := tlv.Read(outer.Value, 0); ok {
			candidates = append(candidates, inner)
		}
	}

	if !outer.Constructed && outer.Tag == cdr.Universal(cdr.TagOctetString) &&
		len(outer.Value) > 0 && !isEndOfContents(outer.Value) {
		if inner, _, ok := tlv.Read(outer.Value, 0); ok {
			candidates = append(candidates, inner)
		}
	}

	return candidates
}

func isEndOfContents(b []byte) bool {
	return len(b) == 2 && b[0] == 0 && b[1] == 0
}

// matchesStructurally implements the "does this candidate match the alt type
// structurally?" test of spec §4.5 step 3 for an untagged alternative whose
// declared type carries no tag of its own.
func matchesStructurally(s *schema.Schema, altType string, cand tlv.TLV) bool {
	resolved := s.Resolve(altType)
	if tag, ok := s.OuterTagOf(resolved); ok {
		return cand.Tag == tag
	}
	// OuterTagOf only returns ok=false for a CHOICE or an unknown type.
	name, kind := s.KindOf(resolved)
	if kind != schema.KindChoice {
		return false
	}
	_, ok := s.Choices[name][cand.Tag]
	return ok
}

// emitAlternative writes `{"<name>": <recurse>}` for a matched CHOICE
// alternative (spec §4.5 step 4). Recursing through [decodeTLV] gives a
// nested CHOICE alternative's own resolver the candidate's raw bytes
// automatically, matching "passing candidate.raw if the alt type is itself
// a CHOICE... candidate.value otherwise".
func emitAlternative(s *schema.Schema, alt schema.Alternative, cand tlv.TLV, w *jsonw.Writer) {
	w.WriteByte('{')
	w.WriteKey(alt.Name)
	decodeTLV(s, alt.Type, cand, w)
	w.WriteByte('}')
}

func writeUnknownAlternative(w *jsonw.Writer, raw []byte) {
	w.WriteRaw(`{"unknown_alternative":`)
	w.WriteHex(raw)
	w.WriteByte('}')
}
