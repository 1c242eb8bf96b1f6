package driver

import (
	"go.cdrtool.dev/cdr/schema"
	"go.cdrtool.dev/cdr/tlv"
)

// scan walks buf for root-typed records (spec §4.6). At each position it
// attempts to parse a TLV; if the TLV's tag matches the root type (any
// alternative's tag, for a CHOICE root), the record is passed to emit and
// the cursor advances past it. Otherwise the cursor advances by exactly one
// byte and retries. This guarantees progress — the scan always advances by
// at least one byte per iteration (spec §8 "root-scan progress") — and
// therefore always terminates on a finite buffer.
func scan(s *schema.Schema, rootType string, buf []byte, emit func(tlv.TLV)) int {
	count := 0
	offset := 0
	for offset < len(buf) {
		item, next, ok := tlv.Read(buf, offset)
		if ok && rootMatches(s, rootType, item) {
			emit(item)
			count++
			offset = next
			continue
		}
		offset++
	}
	return count
}

// rootMatches reports whether item's tag could open a record of rootType.
func rootMatches(s *schema.Schema, rootType string, item tlv.TLV) bool {
	name, kind := s.KindOf(rootType)
	if kind == schema.KindChoice {
		_, ok := s.Choices[name][item.Tag]
		return ok
	}
	tag, ok := s.OuterTagOf(rootType)
	return ok && item.Tag == tag
}
