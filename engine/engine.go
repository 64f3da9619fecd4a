// Package engine walks a parsed syntax tree (package ast) against input
// text, implementing the backtracking discipline described in spec.md
// §4.2–§4.3: greedy/lazy quantifiers, alternation priority, capture
// bookkeeping, anchors, word boundaries, \zs/\ze overrides,
// back-references, and both lookaround directions.
//
// The engine is a direct tree interpreter: no compiled NFA/DFA, no
// prefilter, no optimization pass (spec.md §1 Non-goals). It is pure and
// re-entrant — a *Matcher holds no attempt-local state, so the same
// compiled pattern can be matched concurrently from multiple goroutines
// as long as each call supplies its own text (spec.md §5).
package engine

import (
	"unicode"
	"unicode/utf8"

	"github.com/riftlang/rift/ast"
	"github.com/riftlang/rift/flags"
)

// Result is a single successful match: the overall span plus the spans
// captured by each group (1-based; index 0 is unused so Groups[i]
// aligns with the pattern's capture index i).
type Result struct {
	Span   Span
	Groups []*Span
}

// Matcher matches one compiled pattern (a syntax tree plus its flags)
// against arbitrary text. It holds no per-match state.
type Matcher struct {
	root       ast.Seq
	groupCount int
	flags      flags.Set
}

// New builds a Matcher for the given tree. groupCount must be the number
// of capturing groups the parser assigned (so the capture table is sized
// correctly even for groups that never participate in a given match).
func New(root ast.Seq, groupCount int, fl flags.Set) *Matcher {
	return &Matcher{root: root, groupCount: groupCount, flags: fl}
}

// Find returns the leftmost match in text, trying every character
// boundary in order and, finally, the end-of-input position (so empty
// matches and pure end anchors at EOF are reachable — spec.md §9).
func (m *Matcher) Find(text string) (*Result, bool) {
	for pos := 0; pos <= len(text); {
		st := newState(m.groupCount)
		if end, ok := m.matchSeq(m.root, pos, text, st); ok {
			return m.finish(pos, end, st), true
		}
		if pos == len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return nil, false
}

func (m *Matcher) finish(start, end int, st *state) *Result {
	if st.matchStartOverride != nil {
		start = *st.matchStartOverride
	}
	if st.matchEndOverride != nil {
		end = *st.matchEndOverride
	}
	return &Result{Span: Span{Start: start, End: end}, Groups: st.captures}
}

// matchSeq matches nodes in order starting at pos, threading st through
// (mutating it in place); it returns the position reached once every
// node in nodes has matched, or (0, false) on failure. Captures are
// committed into st only by nodes that succeed — a failed attempt never
// needs explicit rollback of its own writes, because the caller that
// forked st before a speculative attempt simply discards the fork.
func (m *Matcher) matchSeq(nodes ast.Seq, pos int, text string, st *state) (int, bool) {
	if len(nodes) == 0 {
		return pos, true
	}

	node := nodes[0]
	rest := nodes[1:]

	switch n := node.(type) {
	case *ast.Literal:
		return m.matchLiteral(n, rest, pos, text, st)
	case *ast.CharClass:
		return m.matchCharClass(n, rest, pos, text, st)
	case *ast.StartAnchor:
		if m.atStartAnchor(pos, text) {
			return m.matchSeq(rest, pos, text, st)
		}
		return 0, false
	case *ast.EndAnchor:
		if m.atEndAnchor(pos, text) {
			return m.matchSeq(rest, pos, text, st)
		}
		return 0, false
	case *ast.WordBoundary:
		if m.isWordBoundary(pos, text) {
			return m.matchSeq(rest, pos, text, st)
		}
		return 0, false
	case *ast.StartWord:
		if m.isWordBoundary(pos, text) && m.isWordCharAt(pos, text) {
			return m.matchSeq(rest, pos, text, st)
		}
		return 0, false
	case *ast.EndWord:
		if m.isWordBoundary(pos, text) && !m.isWordCharAt(pos, text) {
			return m.matchSeq(rest, pos, text, st)
		}
		return 0, false
	case *ast.SetMatchStart:
		p := pos
		st.matchStartOverride = &p
		return m.matchSeq(rest, pos, text, st)
	case *ast.SetMatchEnd:
		p := pos
		st.matchEndOverride = &p
		return m.matchSeq(rest, pos, text, st)
	case *ast.Alternation:
		return m.matchAlternation(n, rest, pos, text, st)
	case *ast.Group:
		return m.matchGroup(n, rest, pos, text, st)
	case *ast.Backref:
		return m.matchBackref(n, rest, pos, text, st)
	case *ast.LookAround:
		return m.matchLookAround(n, rest, pos, text, st)
	case *ast.Quantifier:
		return m.matchQuantifier(n.Child, n.Min, n.Max, n.Greedy, rest, pos, text, st)
	default:
		return 0, false
	}
}

func (m *Matcher) matchLiteral(n *ast.Literal, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	if pos >= len(text) {
		return 0, false
	}
	c, size := utf8.DecodeRuneInString(text[pos:])
	if !runesEqual(n.Ch, c, m.flags.Insensitive()) {
		return 0, false
	}
	return m.matchSeq(rest, pos+size, text, st)
}

func (m *Matcher) matchCharClass(n *ast.CharClass, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	if pos >= len(text) {
		return 0, false
	}
	c, size := utf8.DecodeRuneInString(text[pos:])
	if !classMatches(n, c, m.flags.DotAll) {
		return 0, false
	}
	return m.matchSeq(rest, pos+size, text, st)
}

func (m *Matcher) matchAlternation(n *ast.Alternation, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	for _, branch := range n.Branches {
		fork := st.clone()
		next, ok := m.matchSeq(branch, pos, text, fork)
		if !ok {
			continue
		}
		final, ok := m.matchSeq(rest, next, text, fork)
		if !ok {
			continue
		}
		*st = *fork
		return final, true
	}
	return 0, false
}

func (m *Matcher) matchGroup(n *ast.Group, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	start := pos
	next, ok := m.matchSeq(n.Body, pos, text, st)
	if !ok {
		return 0, false
	}
	if n.Capture && n.Index > 0 && n.Index < len(st.captures) {
		st.captures[n.Index] = &Span{Start: start, End: next}
	}
	return m.matchSeq(rest, next, text, st)
}

func (m *Matcher) matchBackref(n *ast.Backref, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	if n.Index <= 0 || n.Index >= len(st.captures) || st.captures[n.Index] == nil {
		return 0, false
	}
	captured := st.captures[n.Index]
	sub := text[captured.Start:captured.End]
	if len(text)-pos < len(sub) || text[pos:pos+len(sub)] != sub {
		return 0, false
	}
	return m.matchSeq(rest, pos+len(sub), text, st)
}

func (m *Matcher) matchLookAround(n *ast.LookAround, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	var matched bool
	if !n.Behind {
		fork := st.clone()
		_, matched = m.matchSeq(n.Body, pos, text, fork)
	} else {
		for start := 0; start <= pos; start++ {
			fork := st.clone()
			end, ok := m.matchSeq(n.Body, start, text, fork)
			if ok && end == pos {
				matched = true
				break
			}
		}
	}
	if matched != n.Positive {
		return 0, false
	}
	return m.matchSeq(rest, pos, text, st)
}

// matchQuantifier implements spec.md §4.2.2: match min occurrences
// unconditionally, then enter an optional phase bounded by max-min
// (unbounded if max is nil).
func (m *Matcher) matchQuantifier(node ast.Node, min int, max *int, greedy bool, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	cur := pos
	for i := 0; i < min; i++ {
		next, ok := m.matchSeq(ast.Seq{node}, cur, text, st)
		if !ok {
			return 0, false
		}
		cur = next
	}

	var budget *int
	if max != nil {
		b := *max - min
		budget = &b
	}
	return m.matchQuantifierOptional(node, budget, greedy, rest, cur, text, st)
}

// matchQuantifierOptional matches the "may repeat further" phase of a
// quantifier. The zero-width guard (refusing an iteration that consumes
// no bytes) lives here, never in the mandatory min-phase above, exactly
// as spec.md §4.2.2 specifies.
func (m *Matcher) matchQuantifierOptional(node ast.Node, budget *int, greedy bool, rest ast.Seq, pos int, text string, st *state) (int, bool) {
	if budget != nil && *budget == 0 {
		return m.matchSeq(rest, pos, text, st)
	}

	if greedy {
		fork := st.clone()
		if next, ok := m.matchSeq(ast.Seq{node}, pos, text, fork); ok && next > pos {
			nextBudget := decrement(budget)
			if final, ok := m.matchQuantifierOptional(node, nextBudget, greedy, rest, next, text, fork); ok {
				*st = *fork
				return final, true
			}
		}
		return m.matchSeq(rest, pos, text, st)
	}

	// Lazy: try the remainder first, then one more iteration.
	fork := st.clone()
	if final, ok := m.matchSeq(rest, pos, text, fork); ok {
		*st = *fork
		return final, true
	}
	if next, ok := m.matchSeq(ast.Seq{node}, pos, text, st); ok && next > pos {
		nextBudget := decrement(budget)
		return m.matchQuantifierOptional(node, nextBudget, greedy, rest, next, text, st)
	}
	return 0, false
}

func decrement(budget *int) *int {
	if budget == nil {
		return nil
	}
	v := *budget - 1
	return &v
}

func runesEqual(a, b rune, insensitive bool) bool {
	if a == b {
		return true
	}
	if !insensitive {
		return false
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}
