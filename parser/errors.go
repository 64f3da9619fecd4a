package parser

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Compare against these with errors.Is; a failed
// Parse always returns an *Error wrapping one of them.
var (
	// ErrInvalidPattern covers structural parse failures not otherwise
	// classified (e.g. an atom ends the input unexpectedly).
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidQuantifier covers a malformed {...} body: missing '}',
	// a non-numeric bound, or both bounds absent.
	ErrInvalidQuantifier = errors.New("invalid quantifier")

	// ErrInvalidGroup covers an unknown (?...) extension or a malformed
	// lookaround introducer.
	ErrInvalidGroup = errors.New("invalid group")

	// ErrUnmatchedParen covers a group missing its closing ')'.
	ErrUnmatchedParen = errors.New("unmatched parenthesis")

	// ErrInvalidEscape covers \z not followed by s/e. Every other
	// escaped character is accepted (as a class, anchor, backreference
	// or literal).
	ErrInvalidEscape = errors.New("invalid escape sequence")

	// ErrDuplicateGroupName covers two named groups sharing a name.
	ErrDuplicateGroupName = errors.New("duplicate group name")

	// ErrInvalidBackref covers backreference syntax without a digit.
	ErrInvalidBackref = errors.New("invalid backreference")
)

// Error wraps a sentinel error kind with positional context, mirroring
// the teacher's *CompileError shape (a named reusable Err plus the
// pattern fragment that triggered it).
type Error struct {
	Kind     error
	Pos      int
	Fragment string
}

func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("%v at position %d: %q", e.Kind, e.Pos, e.Fragment)
	}
	return fmt.Sprintf("%v at position %d", e.Kind, e.Pos)
}

// Unwrap lets errors.Is/errors.As match against the sentinel Kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, pos int, fragment string) *Error {
	return &Error{Kind: kind, Pos: pos, Fragment: fragment}
}
