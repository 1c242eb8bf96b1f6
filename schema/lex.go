package schema

import "strings"

// token is one lexical unit of a stripped ASN.1 module: an identifier,
// keyword, number, or one of the punctuation marks this grammar subset
// cares about (spec §9 "textual pattern matching rather than a full ASN.1
// grammar").
type token struct {
	text string
	kind tokenKind
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokAssign // ::=
	tokPunct  // { } [ ] , ( )
)

// stripComments removes ASN.1 line comments ("--" through end of line) and
// SNACC-style directive blocks ("-- snacc ... --"), per spec §4.3 step 1.
// ASN.1 permits "--" to also close a comment early on the same line; this
// scanner treats any "--" as opening a comment that runs to end-of-line,
// which also absorbs the SNACC "-- snacc ... --" form since both the
// opening and any same-line closing marker fall inside the stripped span.
func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '-' && i+1 < len(text) && text[i+1] == '-' {
			for i < len(text) && text[i] != '\n' {
				i++
			}
			if i < len(text) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// tokenize splits stripped module text into a flat token stream. String
// literals (used only inside constraints/DEFAULT values this compiler
// otherwise ignores) are passed through as single ident tokens delimited by
// quotes, so they cannot corrupt brace/paren depth tracking.
func tokenize(text string) []token {
	var toks []token
	i := 0
	n := len(text)
	for i < n {
		c := text[i]
		switch {
		case isSpace(c):
			i++
		case c == ':' && i+2 < n && text[i+1] == ':' && text[i+2] == '=':
			toks = append(toks, token{"::=", tokAssign})
			i += 3
		case strings.ContainsRune("{}[](),", rune(c)):
			toks = append(toks, token{string(c), tokPunct})
			i++
		case c == '"':
			j := i + 1
			for j < n && text[j] != '"' {
				j++
			}
			if j < n {
				j++
			}
			toks = append(toks, token{text[i:j], tokIdent})
			i = j
		case isDigit(c):
			j := i
			for j < n && isDigit(text[j]) {
				j++
			}
			toks = append(toks, token{text[i:j], tokNumber})
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentPart(text[j]) {
				j++
			}
			toks = append(toks, token{text[i:j], tokIdent})
			i = j
		default:
			i++
		}
	}
	return toks
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) || c == '-' }

// keywords this grammar subset recognises. Anything else in type position is
// treated as a reference to another defined (or undefined-but-opaque) type.
var keywords = map[string]bool{
	"CHOICE": true, "SEQUENCE": true, "SET": true, "ENUMERATED": true,
	"INTEGER": true, "OCTET": true, "STRING": true, "BIT": true,
	"BOOLEAN": true, "NULL": true, "OBJECT": true, "IDENTIFIER": true,
	"IA5String": true, "UTF8String": true, "TBCD-STRING": true,
	"GraphicString": true, "VisibleString": true,
	"OF": true, "IMPLICIT": true, "EXPLICIT": true, "OPTIONAL": true,
	"DEFAULT": true, "COMPONENTS": true,
	"APPLICATION": true, "UNIVERSAL": true, "PRIVATE": true,
	"CONTEXT": true, "CONTEXT-SPECIFIC": true,
	"DEFINITIONS": true, "BEGIN": true, "END": true, "TAGS": true,
}

func isKeyword(s string) bool { return keywords[s] }
