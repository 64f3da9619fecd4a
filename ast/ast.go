// Package ast defines the syntax tree produced by package parser and
// walked by package engine.
//
// Every node variant is a concrete struct implementing the Node marker
// interface; the tree is immutable once the parser returns it. Quantifier
// nodes own a single child; Group and each Alternation branch own an
// ordered slice of sibling nodes.
package ast

// Node is implemented by every syntax tree variant. The method is
// unexported so the node set is closed to this package, mirroring how the
// standard library's go/ast restricts its Expr/Stmt interfaces.
type Node interface {
	astNode()
}

// Seq is an ordered sequence of sibling nodes: a group body, an
// alternation branch, or a lookaround body.
type Seq []Node

// Literal matches a single rune exactly (subject to the flag set's case
// mode).
type Literal struct {
	Ch rune
}

func (*Literal) astNode() {}

// ClassKind identifies a built-in character-class shorthand. The zero
// value, ClassSet, is never used bare — a Set-kind CharClass always
// carries its Ranges/Negated fields too.
type ClassKind int

const (
	ClassSet ClassKind = iota
	ClassDigit
	ClassNonDigit
	ClassWord
	ClassNonWord
	ClassWhitespace
	ClassNonWhitespace
	ClassLowercase
	ClassNonLowercase
	ClassUppercase
	ClassNonUppercase
	ClassHex
	ClassNonHex
	ClassOctal
	ClassNonOctal
	ClassAlphanumeric
	ClassNonAlphanumeric
	ClassPunctuation
	ClassNonPunctuation
	ClassWordStart
	ClassNonWordStart
	ClassDot
)

// CharRange is one inclusive [Lo, Hi] range inside a custom set.
type CharRange struct {
	Lo, Hi rune
}

// CharClass matches one character against a class. For Kind == ClassSet
// the membership rule is "any of Ranges contains the rune, then flip if
// Negated"; for every other Kind, Ranges/Negated are unused and the rule
// is the built-in shorthand's own predicate (see engine/charclass.go).
type CharClass struct {
	Kind    ClassKind
	Ranges  []CharRange
	Negated bool
}

func (*CharClass) astNode() {}

// StartAnchor is ^: start of string, or start of line under Multiline.
type StartAnchor struct{}

func (*StartAnchor) astNode() {}

// EndAnchor is $: end of string, or end of line under Multiline.
type EndAnchor struct{}

func (*EndAnchor) astNode() {}

// WordBoundary is \b: a zero-width position where word-char membership
// flips.
type WordBoundary struct{}

func (*WordBoundary) astNode() {}

// StartWord is \<: a word boundary where the following character is a
// word character.
type StartWord struct{}

func (*StartWord) astNode() {}

// EndWord is \>: a word boundary where the following character is not a
// word character (or is absent).
type EndWord struct{}

func (*EndWord) astNode() {}

// SetMatchStart is \zs: overrides the reported match start to the
// position reached here, without affecting what the engine consumes.
type SetMatchStart struct{}

func (*SetMatchStart) astNode() {}

// SetMatchEnd is \ze: overrides the reported match end, symmetric to
// SetMatchStart.
type SetMatchEnd struct{}

func (*SetMatchEnd) astNode() {}

// Quantifier repeats Child between Min and Max times (Max == nil means
// unbounded). Greedy is ignored when Min == Max (an Exact{n} quantifier
// has nothing to be greedy or lazy about).
type Quantifier struct {
	Child  Node
	Min    int
	Max    *int
	Greedy bool
}

func (*Quantifier) astNode() {}

// Group is a parenthesized sub-pattern: capturing, non-capturing, or
// named-capturing. Index is 1-based and only meaningful when Capture is
// true.
type Group struct {
	Body    Seq
	Capture bool
	Index   int
	Name    string
}

func (*Group) astNode() {}

// Alternation tries each Branch in order and commits to the first one
// that lets the remainder of the pattern succeed (leftmost-match
// priority, not longest-match).
type Alternation struct {
	Branches []Seq
}

func (*Alternation) astNode() {}

// Backref matches the literal text most recently captured by group
// Index. Matching fails (not errors) if that group has not participated
// in the match yet.
type Backref struct {
	Index int
}

func (*Backref) astNode() {}

// LookAround is a zero-width assertion about the text ahead of or behind
// the current position; Body's captures never escape into the outer
// match state.
type LookAround struct {
	Body     Seq
	Behind   bool // false = lookahead, true = lookbehind
	Positive bool
}

func (*LookAround) astNode() {}
