package schema

import "fmt"

// cursor is a simple, non-backtracking reader over a token slice, used by
// the compiler's pattern matchers (spec §9 "the source uses textual pattern
// matching rather than a full ASN.1 grammar").
type cursor struct {
	toks []token
	pos  int
}

func (c *cursor) done() bool      { return c.pos >= len(c.toks) }
func (c *cursor) remaining() int  { return len(c.toks) - c.pos }
func (c *cursor) next()           { c.pos++ }
func (c *cursor) cur() token {
	if c.done() {
		return token{}
	}
	return c.toks[c.pos]
}

func (c *cursor) at(offset int) token {
	i := c.pos + offset
	if i < 0 || i >= len(c.toks) {
		return token{}
	}
	return c.toks[i]
}

func (c *cursor) peekIdent(s string) bool   { return c.cur().kind == tokIdent && c.cur().text == s }
func (c *cursor) peekIdentAt(offset int, s string) bool {
	t := c.at(offset)
	return t.kind == tokIdent && t.text == s
}
func (c *cursor) peekPunct(s string) bool { return c.cur().kind == tokPunct && c.cur().text == s }

func (c *cursor) expectIdent() (string, error) {
	if c.cur().kind != tokIdent {
		return "", fmt.Errorf("expected identifier, got %q", c.cur().text)
	}
	s := c.cur().text
	c.next()
	return s, nil
}

// skipImplicitExplicit consumes a leading IMPLICIT or EXPLICIT keyword, if
// present. Whether a tag is implicit or explicit affects only how the
// decoder walks into a constructed wrapper, not the dispatch key itself
// (spec §3.2), so the compiler does not need to remember which was used.
func (c *cursor) skipImplicitExplicit() {
	if c.peekIdent("IMPLICIT") || c.peekIdent("EXPLICIT") {
		c.next()
	}
}

// skipConstraint consumes a parenthesised constraint such as "(SIZE(1..64))"
// if present at the cursor. This compiler does not validate ASN.1 semantic
// constraints (spec §1 Non-goals), it only needs to skip past their text.
func (c *cursor) skipConstraint() {
	for c.peekPunct("(") {
		depth := 0
		for !c.done() {
			if c.peekPunct("(") {
				depth++
			} else if c.peekPunct(")") {
				depth--
				c.next()
				if depth == 0 {
					break
				}
				continue
			}
			c.next()
		}
	}
}

// expectBraceGroup consumes a balanced "{ ... }" group at the cursor and
// returns the tokens strictly between the braces.
func (c *cursor) expectBraceGroup() ([]token, error) {
	if !c.peekPunct("{") {
		return nil, fmt.Errorf("expected '{'")
	}
	c.next()
	start := c.pos
	depth := 1
	for !c.done() {
		switch {
		case c.peekPunct("{"):
			depth++
		case c.peekPunct("}"):
			depth--
			if depth == 0 {
				body := c.toks[start:c.pos]
				c.next()
				return body, nil
			}
		}
		c.next()
	}
	return nil, fmt.Errorf("unterminated '{'")
}

// splitTopLevel splits toks on occurrences of the punctuation sep that are
// not nested inside any bracket/brace/paren.
func splitTopLevel(toks []token, sep string) [][]token {
	var groups [][]token
	start := 0
	depth := 0
	for i, t := range toks {
		if t.kind == tokPunct {
			switch t.text {
			case "{", "[", "(":
				depth++
			case "}", "]", ")":
				depth--
			}
		}
		if depth == 0 && t.kind == tokPunct && t.text == sep {
			groups = append(groups, toks[start:i])
			start = i + 1
		}
	}
	groups = append(groups, toks[start:])
	return groups
}

// splitDefinitions scans a full module's tokens for top-level "Name ::="
// statements and returns each one's name plus the tokens making up its
// right-hand side (spec §4.3 step 3). Tokens outside of any such statement
// (the module header: "ModuleName DEFINITIONS ... BEGIN" and the trailing
// "END") are discarded.
func splitDefinitions(toks []token) []definition {
	var defs []definition
	depth := 0
	starts := []int{}
	names := []string{}
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind == tokPunct {
			switch t.text {
			case "{", "[", "(":
				depth++
			case "}", "]", ")":
				depth--
			}
			continue
		}
		if depth == 0 && t.kind == tokIdent && !isKeyword(t.text) &&
			i+1 < len(toks) && toks[i+1].kind == tokAssign {
			starts = append(starts, i+2)
			names = append(names, t.text)
		}
	}
	last := len(toks)
	if last > 0 && toks[last-1].kind == tokIdent && toks[last-1].text == "END" {
		last--
	}
	for i, start := range starts {
		end := last
		if i+1 < len(starts) {
			// the next definition's name+"::=" tokens precede its body start
			end = starts[i+1] - 2
		}
		defs = append(defs, definition{name: names[i], body: toks[start:end]})
	}
	return defs
}
