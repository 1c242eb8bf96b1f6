// Package decode walks a compiled [schema.Schema] against a stream of TLVs
// parsed by [go.cdrtool.dev/cdr/tlv], emitting JSON directly to a
// [jsonw.Writer] without ever building an intermediate representation of the
// record (spec §4.4, §4.5). Every primitive leaf is emitted as a lowercase
// hex string; no ASN.1 semantic constraint is validated (spec §1 Non-goals).
package decode

import (
	"go.cdrtool.dev/cdr"
	"go.cdrtool.dev/cdr/jsonw"
	"go.cdrtool.dev/cdr/schema"
	"go.cdrtool.dev/cdr/tlv"
)

// Decode decodes one already-parsed top-level TLV as typeName and appends its
// JSON representation to w. This is the entry point the file driver calls
// for each record a root scan finds (spec §4.6): typeName is the schema's
// declared root type, resolved through aliases as needed.
func Decode(s *schema.Schema, typeName string, item tlv.TLV, w *jsonw.Writer) {
	decodeTLV(s, typeName, item, w)
}

// decodeTLV implements the shared recursion rule used for both SEQUENCE/SET
// fields and SEQUENCE OF/SET OF elements (spec §4.4): if the field's
// resolved type is a CHOICE, the CHOICE resolver gets the TLV's raw bytes so
// it can see the outer tag; otherwise, a constructed TLV is decoded
// structurally from its content, and a primitive TLV is emitted as hex
// regardless of what the schema declared for it.
func decodeTLV(s *schema.Schema, typeName string, item tlv.TLV, w *jsonw.Writer) {
	name, kind := s.KindOf(typeName)
	if kind == schema.KindChoice {
		decodeChoice(s, name, item.Raw, w)
		return
	}
	if item.Constructed {
		decodeValue(s, name, item.Value, w)
		return
	}
	w.WriteHex(item.Value)
}

// decodeValue decodes content (already unwrapped of its tag and length) as
// typeName, which must resolve to a SEQUENCE, SET, SEQUENCE OF, SET OF or
// primitive type. It is not called with a CHOICE type: decodeTLV always
// intercepts those first so the CHOICE resolver can see the outer tag.
func decodeValue(s *schema.Schema, typeName string, content []byte, w *jsonw.Writer) {
	name, kind := s.KindOf(typeName)
	switch kind {
	case schema.KindSequence:
		decodeStructural(s, s.Sequences[name], content, w)
	case schema.KindSet:
		decodeStructural(s, s.Sets[name], content, w)
	case schema.KindSeqOf:
		decodeOf(s, s.SeqOf[name], content, w)
	case schema.KindSetOf:
		decodeOf(s, s.SetOf[name], content, w)
	default:
		// Primitive or unknown type: emit the content verbatim as hex (spec
		// §4.4 "Primitive / unknown: emit the provided bytes as a hex
		// string"; spec §7 class 4 "a field referencing a type name not in
		// the schema decodes as hex").
		w.WriteHex(content)
	}
}

// decodeStructural decodes a SEQUENCE or SET body: it repeatedly parses a
// TLV from content, looks its tag up in fields, and emits either the known
// field's value or an unknown_tag_* fallback (spec §4.4). A TLV that fails
// to parse terminates the body early — the malformed region and anything
// after it within this SEQUENCE/SET is silently dropped (spec §7 class 3,
// "malformed TLV terminates the local scope").
func decodeStructural(s *schema.Schema, fields map[cdr.Tag]schema.Field, content []byte, w *jsonw.Writer) {
	w.WriteByte('{')
	offset := 0
	first := true
	for offset < len(content) {
		item, next, ok := tlv.Read(content, offset)
		if !ok {
			break
		}
		if !first {
			w.WriteByte(',')
		}
		first = false

		field, known := fields[item.Tag]
		if !known {
			w.WriteUnknownTagKey(int(item.Tag.Class), int(item.Tag.Number))
			w.WriteHex(item.Value)
		} else {
			w.WriteKey(field.Name)
			switch {
			case field.SequenceOf, field.SetOf:
				decodeOf(s, field.Type, item.Value, w)
			default:
				decodeTLV(s, field.Type, item, w)
			}
		}
		offset = next
	}
	w.WriteByte('}')
}

// decodeOf decodes a SEQUENCE OF/SET OF body: content is a concatenation of
// element TLVs, each decoded as elemType and joined into a JSON array (spec
// §4.5 is titled around CHOICE, but the "…OF" delegation happens here per
// §4.4's "If the field is `… OF`, invoke §4.5 sequence-of on the content").
func decodeOf(s *schema.Schema, elemType string, content []byte, w *jsonw.Writer) {
	w.WriteByte('[')
	offset := 0
	first := true
	for offset < len(content) {
		item, next, ok := tlv.Read(content, offset)
		if !ok {
			break
		}
		if !first {
			w.WriteByte(',')
		}
		first = false
		decodeTLV(s, elemType, item, w)
		offset = next
	}
	w.WriteByte(']')
}
