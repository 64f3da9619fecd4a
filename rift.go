// Package rift provides a regular-expression engine for the Vim-influenced
// "Rift" pattern flavor: lookahead is (?>=...)/(?>!...), lookbehind is
// (?<=...)/(?<!...), and the flavor adds \zs, \ze, \<, \>, and an enlarged
// set of character-class shorthands (\l \u \x \o \h \p \a and their negated
// forms) beyond the usual \d \w \s.
//
// The core of the module — the pattern parser (package parser) and the
// backtracking match engine (package engine) — is described in detail in
// SPEC_FULL.md. This package is the thin façade bundling a compiled
// pattern with its flags and exposing the usual find/replace surface:
//
//	re, err := rift.Compile(`\bfoo\b`, flags.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.IsMatch("a foo bar") {
//	    fmt.Println(re.Find("a foo bar"))
//	}
//
// Or, using the combined "pattern/flags" form:
//
//	re, err := rift.CompileFlavor(`foo/i`)
package rift

import (
	"strings"

	"github.com/riftlang/rift/ast"
	"github.com/riftlang/rift/engine"
	"github.com/riftlang/rift/flags"
	"github.com/riftlang/rift/flavor"
	"github.com/riftlang/rift/parser"
)

// Span is a half-open byte-offset interval into the text a Regexp was
// matched against. Both Start and End lie on UTF-8 character boundaries.
type Span struct {
	Start, End int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Slice returns the substring of text that s refers to.
func (s Span) Slice(text string) string { return text[s.Start:s.End] }

func spanFrom(s engine.Span) Span { return Span{Start: s.Start, End: s.End} }

// Captures is the result of a successful match: the full-match span plus
// every capturing group's span (nil if the group did not participate in
// the match) and a name-keyed view over the named groups.
type Captures struct {
	full  Span
	groups []*Span
	names  map[string]int
}

// Group returns the span of the capture group at index (0 is the full
// match, matching spec.md §6.1's Captures contract), or nil if index is
// out of range or the group did not participate in the match.
func (c *Captures) Group(index int) *Span {
	if index == 0 {
		full := c.full
		return &full
	}
	if index < 1 || index > len(c.groups) {
		return nil
	}
	return c.groups[index-1]
}

// Named returns the span of the named capture group, or nil if the name
// is unknown or the group did not participate in the match.
func (c *Captures) Named(name string) *Span {
	idx, ok := c.names[name]
	if !ok {
		return nil
	}
	return c.Group(idx)
}

// Regexp is a compiled Rift pattern: an immutable syntax tree plus its
// flag set, safely sharable for concurrent read-only matching (spec.md
// §5) since matching carries all of its mutable state on the call stack.
type Regexp struct {
	source string
	flags  flags.Set
	tree   ast.Seq
	groups int
	names  map[string]int
	eng    *engine.Matcher
}

// Compile parses pattern under fl and returns the compiled Regexp, or
// the *parser.Error describing the first syntax problem found.
func Compile(pattern string, fl flags.Set) (*Regexp, error) {
	p, err := parser.Parse(pattern, fl)
	if err != nil {
		return nil, err
	}
	return &Regexp{
		source: pattern,
		flags:  fl,
		tree:   p.Root,
		groups: p.GroupCount,
		names:  p.GroupNames,
		eng:    engine.New(p.Root, p.GroupCount, fl),
	}, nil
}

// CompileFlavor splits input as "pattern/flags" (package flavor) and
// compiles the result.
func CompileFlavor(input string) (*Regexp, error) {
	pattern, fl, err := flavor.Split(input)
	if err != nil {
		return nil, err
	}
	return Compile(pattern, fl)
}

// MustCompile is like Compile but panics on error, for package-level
// pattern variables.
func MustCompile(pattern string, fl flags.Set) *Regexp {
	re, err := Compile(pattern, fl)
	if err != nil {
		panic(err)
	}
	return re
}

// String returns the original pattern source.
func (re *Regexp) String() string { return re.source }

// Flags returns the flag set the pattern was compiled with.
func (re *Regexp) Flags() flags.Set { return re.flags }

// NumGroups returns the number of capturing groups in the pattern.
func (re *Regexp) NumGroups() int { return re.groups }

// GroupNames returns the names of the pattern's named capturing groups,
// in no particular order.
func (re *Regexp) GroupNames() []string {
	out := make([]string, 0, len(re.names))
	for name := range re.names {
		out = append(out, name)
	}
	return out
}

// IsMatch reports whether the pattern matches anywhere in text.
func (re *Regexp) IsMatch(text string) bool {
	_, ok := re.eng.Find(text)
	return ok
}

// Find returns the leftmost match in text, or (Span{}, false) if the
// pattern does not match.
func (re *Regexp) Find(text string) (Span, bool) {
	res, ok := re.eng.Find(text)
	if !ok {
		return Span{}, false
	}
	return spanFrom(res.Span), true
}

// Captures returns the leftmost match's full span and capture groups, or
// nil if the pattern does not match.
func (re *Regexp) Captures(text string) *Captures {
	res, ok := re.eng.Find(text)
	if !ok {
		return nil
	}
	return re.toCaptures(res)
}

func (re *Regexp) toCaptures(res *engine.Result) *Captures {
	groups := make([]*Span, re.groups)
	for i := 1; i <= re.groups && i < len(res.Groups); i++ {
		if res.Groups[i] != nil {
			s := spanFrom(*res.Groups[i])
			groups[i-1] = &s
		}
	}
	return &Captures{full: spanFrom(res.Span), groups: groups, names: re.names}
}

// FindAllIterator yields non-overlapping matches from left to right,
// advancing per spec.md §6.1's forward-progress rule.
type FindAllIterator struct {
	re      *Regexp
	text    string
	lastEnd int
	done    bool
}

// FindAll returns an iterator over every non-overlapping match in text.
func (re *Regexp) FindAll(text string) *FindAllIterator {
	return &FindAllIterator{re: re, text: text}
}

// Next returns the next match, or (Span{}, false) once iteration is
// exhausted.
func (it *FindAllIterator) Next() (Span, bool) {
	if it.done || it.lastEnd > len(it.text) {
		return Span{}, false
	}
	res, ok := it.re.eng.Find(it.text[it.lastEnd:])
	if !ok {
		it.done = true
		return Span{}, false
	}
	span := Span{Start: it.lastEnd + res.Span.Start, End: it.lastEnd + res.Span.End}
	if span.End > span.Start {
		it.lastEnd = span.End
	} else {
		it.lastEnd = span.Start + 1
	}
	return span, true
}

// CapturesIterator yields non-overlapping Captures from left to right.
type CapturesIterator struct {
	re      *Regexp
	text    string
	lastEnd int
	done    bool
}

// CapturesAll returns an iterator over every non-overlapping match's
// captures in text.
func (re *Regexp) CapturesAll(text string) *CapturesIterator {
	return &CapturesIterator{re: re, text: text}
}

// Next returns the next Captures, or nil once iteration is exhausted.
func (it *CapturesIterator) Next() *Captures {
	if it.done || it.lastEnd > len(it.text) {
		return nil
	}
	res, ok := it.re.eng.Find(it.text[it.lastEnd:])
	if !ok {
		it.done = true
		return nil
	}
	offset := it.lastEnd
	caps := it.re.toCaptures(res)
	caps.full.Start += offset
	caps.full.End += offset
	for _, g := range caps.groups {
		if g != nil {
			g.Start += offset
			g.End += offset
		}
	}

	if caps.full.End > caps.full.Start {
		it.lastEnd = caps.full.End
	} else {
		it.lastEnd = caps.full.Start + 1
	}
	return caps
}

// Replace replaces the first match in text with replacement, spliced in
// literally (no backreference substitution — spec.md §1, §6.1).
func (re *Regexp) Replace(text, replacement string) string {
	span, ok := re.Find(text)
	if !ok {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(text[:span.Start])
	b.WriteString(replacement)
	b.WriteString(text[span.End:])
	return b.String()
}

// ReplaceAll replaces every non-overlapping match in text with
// replacement, spliced in literally.
func (re *Regexp) ReplaceAll(text, replacement string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastEnd := 0
	it := re.FindAll(text)
	for {
		span, ok := it.Next()
		if !ok {
			break
		}
		b.WriteString(text[lastEnd:span.Start])
		b.WriteString(replacement)
		lastEnd = span.End
	}
	b.WriteString(text[lastEnd:])
	return b.String()
}
