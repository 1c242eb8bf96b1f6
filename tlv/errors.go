package tlv

import "fmt"

// SyntaxError reports a malformed TLV encountered at a specific byte offset
// (spec §7 class 3; AMBIENT STACK error taxonomy). [Read] collapses every
// failure to a bare ok=false, since its callers treat any malformed TLV the
// same way regardless of which structural rule failed: end of the local
// scope, be that a SEQUENCE body, a CHOICE probe or a root-record scan
// (spec §4.1). SyntaxError exists for callers that want the detail for
// diagnostics or logging — see [ReadErr].
type SyntaxError struct {
	Err    error  // underlying error, if any; nil for purely structural failures
	Offset int    // the offset Read/ReadErr was asked to parse from
	Reason string // a short, human-readable description of what failed
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tlv: malformed TLV at offset %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("tlv: malformed TLV at offset %d: %s", e.Offset, e.Reason)
}
