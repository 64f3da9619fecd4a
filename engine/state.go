package engine

// Span is a half-open byte-offset interval into the subject text.
type Span struct {
	Start, End int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// state is the per-attempt mutable match state: the capture table plus
// the \zs/\ze override fields (spec.md §3.3).
//
// state is cloned before every piece of speculative work (alternation
// branches, lookaround probes, greedy/lazy quantifier forks) and only
// committed back to the caller's state when that work succeeds — the
// backtracking discipline spec.md §3.3 requires. Captures is a plain
// slice rather than a copy-on-write structure: patterns are small enough
// in practice that a full clone per speculative branch is cheap, and it
// keeps the commit/discard logic trivially correct (spec.md §9 notes
// COW as an optional optimization, not a requirement).
type state struct {
	captures           []*Span
	matchStartOverride *int
	matchEndOverride   *int
}

func newState(groupCount int) *state {
	return &state{captures: make([]*Span, groupCount+1)}
}

// clone returns a deep-enough copy for speculative work: the captures
// slice is copied (so writes through it don't alias the original) but
// the Span values themselves are immutable once set, so copying pointers
// is safe.
func (s *state) clone() *state {
	caps := make([]*Span, len(s.captures))
	copy(caps, s.captures)
	return &state{
		captures:           caps,
		matchStartOverride: s.matchStartOverride,
		matchEndOverride:   s.matchEndOverride,
	}
}
