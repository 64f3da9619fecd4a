// Package parser compiles a Rift pattern string into a syntax tree
// (package ast), enforcing the flavor's escape, quantifier, group, and
// lookaround syntax described in spec.md §4.1.
//
// The parser is a plain recursive-descent parser over the pattern's rune
// sequence: no lexer stage, no lookahead beyond a handful of runes. It
// never inspects the subject text — that is the engine's job.
package parser

import (
	"strconv"
	"strings"

	"github.com/riftlang/rift/ast"
	"github.com/riftlang/rift/flags"
)

// Pattern is the result of a successful Parse: the syntax tree plus the
// bookkeeping the engine needs to size its capture table and the façade
// needs to resolve named groups.
type Pattern struct {
	Root       ast.Seq
	GroupCount int
	// GroupNames maps a named group's name to its 1-based capture index.
	GroupNames map[string]int
}

// Parse compiles pattern under the given flags into a Pattern, or
// returns an *Error describing the first syntax problem encountered.
//
// Only flags.Set.Verbose affects parsing itself (it changes whether
// whitespace/comments are skipped between atoms); the remaining flags
// are carried through unevaluated for the engine to consult at match
// time.
func Parse(pattern string, fl flags.Set) (*Pattern, error) {
	p := &parser{
		input: []rune(pattern),
		flags: fl,
		names: map[string]int{},
	}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		// Only reachable via a stray top-level ')': parseSequence stops
		// there, and parseAlternation only consumes '|'.
		return nil, newError(ErrUnmatchedParen, p.pos, p.fragment())
	}
	return &Pattern{Root: root, GroupCount: p.groupCount, GroupNames: p.names}, nil
}

type parser struct {
	input      []rune
	pos        int
	flags      flags.Set
	groupCount int
	names      map[string]int
}

// --- low-level cursor helpers -------------------------------------------------

func (p *parser) current() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) peekAt(n int) (rune, bool) {
	if p.pos+n >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos+n], true
}

func (p *parser) is(r rune) bool {
	c, ok := p.current()
	return ok && c == r
}

func (p *parser) advance() (rune, bool) {
	c, ok := p.current()
	if ok {
		p.pos++
	}
	return c, ok
}

// fragment returns a short snippet of input around the cursor, for error
// diagnostics only.
func (p *parser) fragment() string {
	end := p.pos + 12
	if end > len(p.input) {
		end = len(p.input)
	}
	start := p.pos
	if start > len(p.input) {
		start = len(p.input)
	}
	return string(p.input[start:end])
}

func (p *parser) errf(kind error) *Error {
	return newError(kind, p.pos, p.fragment())
}

// skipTrivia skips verbose-mode whitespace and '#'-comments. A no-op
// unless flags.Verbose is set. Never called from inside a character
// class or an escape sequence.
func (p *parser) skipTrivia() {
	if !p.flags.Verbose {
		return
	}
	for {
		c, ok := p.current()
		if !ok {
			return
		}
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			p.pos++
		case c == '#':
			p.pos++
			for {
				c, ok := p.current()
				if !ok || c == '\n' {
					break
				}
				p.pos++
			}
		default:
			return
		}
	}
}

// --- grammar -------------------------------------------------------------

// alternation := sequence ('|' sequence)*
func (p *parser) parseAlternation() (ast.Seq, error) {
	var branches []ast.Seq

	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	branches = append(branches, first)

	for p.is('|') {
		p.advance()
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}

	if len(branches) == 1 {
		return branches[0], nil
	}
	return ast.Seq{&ast.Alternation{Branches: branches}}, nil
}

// sequence := (atom quantifier?)* until '|', ')', or EOF
func (p *parser) parseSequence() (ast.Seq, error) {
	var nodes ast.Seq
	for {
		p.skipTrivia()
		c, ok := p.current()
		if !ok || c == '|' || c == ')' {
			return nodes, nil
		}
		node, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		node, err = p.applyQuantifier(node)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// atom := '.' | '^' | '$' | set | group | escape | LITERAL
func (p *parser) parseAtom() (ast.Node, error) {
	c, ok := p.current()
	if !ok {
		return nil, p.errf(ErrInvalidPattern)
	}
	switch c {
	case '.':
		p.advance()
		return &ast.CharClass{Kind: ast.ClassDot}, nil
	case '^':
		p.advance()
		return &ast.StartAnchor{}, nil
	case '$':
		p.advance()
		return &ast.EndAnchor{}, nil
	case '[':
		return p.parseCharClass()
	case '(':
		return p.parseGroup()
	case '\\':
		return p.parseEscape()
	default:
		p.advance()
		return &ast.Literal{Ch: c}, nil
	}
}

// --- escapes ---------------------------------------------------------------

var simpleClassEscapes = map[rune]ast.ClassKind{
	'd': ast.ClassDigit,
	'D': ast.ClassNonDigit,
	'w': ast.ClassWord,
	'W': ast.ClassNonWord,
	's': ast.ClassWhitespace,
	'S': ast.ClassNonWhitespace,
	'l': ast.ClassLowercase,
	'L': ast.ClassNonLowercase,
	'u': ast.ClassUppercase,
	'U': ast.ClassNonUppercase,
	'x': ast.ClassHex,
	'X': ast.ClassNonHex,
	'o': ast.ClassOctal,
	'O': ast.ClassNonOctal,
	'h': ast.ClassWordStart,
	'H': ast.ClassNonWordStart,
	'p': ast.ClassPunctuation,
	'P': ast.ClassNonPunctuation,
	'a': ast.ClassAlphanumeric,
	'A': ast.ClassNonAlphanumeric,
}

var simpleLiteralEscapes = map[rune]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'f': '\x0C',
	'v': '\x0B',
	'\\': '\\',
}

// parseEscape decodes a single \X sequence. The backslash has already
// been confirmed present (it is current()).
func (p *parser) parseEscape() (ast.Node, error) {
	p.advance() // consume '\'

	c, ok := p.current()
	if !ok {
		return nil, p.errf(ErrInvalidPattern)
	}

	if kind, isClass := simpleClassEscapes[c]; isClass {
		p.advance()
		return &ast.CharClass{Kind: kind}, nil
	}
	if lit, isLit := simpleLiteralEscapes[c]; isLit {
		p.advance()
		return &ast.Literal{Ch: lit}, nil
	}

	switch c {
	case 'b':
		p.advance()
		return &ast.WordBoundary{}, nil
	case '<':
		p.advance()
		return &ast.StartWord{}, nil
	case '>':
		p.advance()
		return &ast.EndWord{}, nil
	case 'z':
		p.advance()
		next, ok := p.current()
		if !ok {
			return nil, p.errf(ErrInvalidEscape)
		}
		switch next {
		case 's':
			p.advance()
			return &ast.SetMatchStart{}, nil
		case 'e':
			p.advance()
			return &ast.SetMatchEnd{}, nil
		default:
			return nil, p.errf(ErrInvalidEscape)
		}
	}

	if c >= '0' && c <= '9' {
		p.advance()
		return &ast.Backref{Index: int(c - '0')}, nil
	}

	// Any other escaped character is a literal of itself (e.g. \*, \[, \.).
	p.advance()
	return &ast.Literal{Ch: c}, nil
}

// --- character classes -------------------------------------------------------

// set := '[' '^'? setItem+ ']'
func (p *parser) parseCharClass() (ast.Node, error) {
	start := p.pos
	p.advance() // consume '['

	negated := false
	if p.is('^') {
		p.advance()
		negated = true
	}

	var ranges []ast.CharRange
	for {
		c, ok := p.current()
		if !ok {
			p.pos = start
			return nil, p.errf(ErrInvalidPattern)
		}
		if c == ']' && len(ranges) > 0 {
			// A ']' here with items already collected closes the class.
			// A ']' right after '[' or '[^' is taken as a literal item
			// (below), so an empty class never closes and fails via the
			// end-of-input error above.
			p.advance()
			break
		}

		var item rune
		if c == '\\' {
			p.advance()
			esc, ok := p.current()
			if !ok {
				return nil, p.errf(ErrInvalidPattern)
			}
			p.advance()
			item = esc
		} else if c == ']' {
			// len(ranges) == 0: '[]...]' treats the first ']' as literal,
			// matching the grammar's "item+" requirement without a
			// separate empty-class error case.
			p.advance()
			item = ']'
		} else {
			p.advance()
			item = c
		}

		if p.is('-') {
			if next, ok := p.peekAt(1); ok && next != ']' {
				p.advance() // consume '-'
				var end rune
				ec, ok := p.current()
				if !ok {
					return nil, p.errf(ErrInvalidPattern)
				}
				if ec == '\\' {
					p.advance()
					esc, ok := p.current()
					if !ok {
						return nil, p.errf(ErrInvalidPattern)
					}
					p.advance()
					end = esc
				} else {
					p.advance()
					end = ec
				}
				ranges = append(ranges, ast.CharRange{Lo: item, Hi: end})
				continue
			}
		}
		ranges = append(ranges, ast.CharRange{Lo: item, Hi: item})
	}

	return &ast.CharClass{Kind: ast.ClassSet, Ranges: ranges, Negated: negated}, nil
}

// --- groups ------------------------------------------------------------------

// group := '(' ( '?' extGroup | alternation ) ')'
func (p *parser) parseGroup() (ast.Node, error) {
	p.advance() // consume '('

	if p.is('?') {
		p.advance()
		return p.parseExtendedGroup()
	}

	p.groupCount++
	index := p.groupCount
	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if err := p.expectCloseParen(); err != nil {
		return nil, err
	}
	return &ast.Group{Body: body, Capture: true, Index: index}, nil
}

// extGroup := ':' alternation
//           | '<' '=' alternation
//           | '<' '!' alternation
//           | '<' NAME '>' alternation
//           | '>' '=' alternation
//           | '>' '!' alternation
func (p *parser) parseExtendedGroup() (ast.Node, error) {
	c, ok := p.current()
	if !ok {
		return nil, p.errf(ErrInvalidGroup)
	}

	switch c {
	case ':':
		p.advance()
		body, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if err := p.expectCloseParen(); err != nil {
			return nil, err
		}
		return &ast.Group{Body: body, Capture: false}, nil

	case '<':
		p.advance()
		switch next, ok := p.current(); {
		case ok && next == '=':
			p.advance()
			return p.parseLookBody(true, true)
		case ok && next == '!':
			p.advance()
			return p.parseLookBody(true, false)
		default:
			return p.parseNamedCapture()
		}

	case '>':
		p.advance()
		switch next, ok := p.current(); {
		case ok && next == '=':
			p.advance()
			return p.parseLookBody(false, true)
		case ok && next == '!':
			p.advance()
			return p.parseLookBody(false, false)
		default:
			return nil, p.errf(ErrInvalidGroup)
		}

	default:
		return nil, p.errf(ErrInvalidGroup)
	}
}

func (p *parser) parseLookBody(behind, positive bool) (ast.Node, error) {
	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if err := p.expectCloseParen(); err != nil {
		return nil, err
	}
	return &ast.LookAround{Body: body, Behind: behind, Positive: positive}, nil
}

func (p *parser) parseNamedCapture() (ast.Node, error) {
	name, err := p.parseGroupName()
	if err != nil {
		return nil, err
	}
	if !p.is('>') {
		return nil, p.errf(ErrInvalidGroup)
	}
	p.advance()

	if _, dup := p.names[name]; dup {
		return nil, p.errf(ErrDuplicateGroupName)
	}

	p.groupCount++
	index := p.groupCount
	p.names[name] = index

	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if err := p.expectCloseParen(); err != nil {
		return nil, err
	}
	return &ast.Group{Body: body, Capture: true, Index: index, Name: name}, nil
}

// parseGroupName reads [A-Za-z0-9_]+, the Rift flavor's named-group
// alphabet (spec.md §3.2 invariant).
func (p *parser) parseGroupName() (string, error) {
	var sb strings.Builder
	for {
		c, ok := p.current()
		if !ok {
			break
		}
		if isNameRune(c) {
			sb.WriteRune(c)
			p.advance()
			continue
		}
		break
	}
	if sb.Len() == 0 {
		return "", p.errf(ErrInvalidGroup)
	}
	return sb.String(), nil
}

func isNameRune(c rune) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func (p *parser) expectCloseParen() error {
	if !p.is(')') {
		return p.errf(ErrUnmatchedParen)
	}
	p.advance()
	return nil
}

// --- quantifiers ---------------------------------------------------------

// quantifier := ('*' | '+' | '?' | bounded) '?'?
func (p *parser) applyQuantifier(node ast.Node) (ast.Node, error) {
	p.skipTrivia()
	c, ok := p.current()
	if !ok {
		return node, nil
	}

	switch c {
	case '*':
		p.advance()
		return &ast.Quantifier{Child: node, Min: 0, Max: nil, Greedy: p.consumeLazyMark()}, nil
	case '+':
		p.advance()
		return &ast.Quantifier{Child: node, Min: 1, Max: nil, Greedy: p.consumeLazyMark()}, nil
	case '?':
		p.advance()
		one := 1
		return &ast.Quantifier{Child: node, Min: 0, Max: &one, Greedy: p.consumeLazyMark()}, nil
	case '{':
		return p.parseBoundedQuantifier(node)
	default:
		return node, nil
	}
}

// consumeLazyMark consumes a trailing '?' (toggling laziness) and
// returns whether the quantifier remains greedy.
func (p *parser) consumeLazyMark() bool {
	if p.is('?') {
		p.advance()
		return false
	}
	return true
}

// bounded := '{' number? (',' number?)? '}'
func (p *parser) parseBoundedQuantifier(node ast.Node) (ast.Node, error) {
	start := p.pos
	p.advance() // consume '{'

	var min int
	haveMin := false
	if !p.is(',') {
		n, ok := p.tryParseNumber()
		if !ok {
			p.pos = start
			return nil, p.errf(ErrInvalidQuantifier)
		}
		min = n
		haveMin = true
	}

	switch {
	case p.is(','):
		p.advance()
		var max *int
		if !p.is('}') {
			n, ok := p.tryParseNumber()
			if !ok {
				p.pos = start
				return nil, p.errf(ErrInvalidQuantifier)
			}
			max = &n
		}
		if !haveMin && max == nil {
			p.pos = start
			return nil, p.errf(ErrInvalidQuantifier)
		}
		if !p.is('}') {
			p.pos = start
			return nil, p.errf(ErrInvalidQuantifier)
		}
		p.advance()
		return &ast.Quantifier{Child: node, Min: min, Max: max, Greedy: p.consumeLazyMark()}, nil

	case p.is('}'):
		if !haveMin {
			p.pos = start
			return nil, p.errf(ErrInvalidQuantifier)
		}
		p.advance()
		return &ast.Quantifier{Child: node, Min: min, Max: &min, Greedy: p.consumeLazyMark()}, nil

	default:
		p.pos = start
		return nil, p.errf(ErrInvalidQuantifier)
	}
}

func (p *parser) tryParseNumber() (int, bool) {
	start := p.pos
	for {
		c, ok := p.current()
		if !ok || c < '0' || c > '9' {
			break
		}
		p.advance()
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(string(p.input[start:p.pos]))
	if err != nil {
		return 0, false
	}
	return n, true
}
