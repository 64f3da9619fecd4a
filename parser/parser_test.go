package parser

import (
	"errors"
	"testing"

	"github.com/riftlang/rift/ast"
	"github.com/riftlang/rift/flags"
)

func TestParseLiteralSequence(t *testing.T) {
	p, err := Parse("abc", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Root) != 3 {
		t.Fatalf("want 3 nodes, got %d", len(p.Root))
	}
	for i, ch := range "abc" {
		lit, ok := p.Root[i].(*ast.Literal)
		if !ok {
			t.Fatalf("node %d: want *ast.Literal, got %T", i, p.Root[i])
		}
		if lit.Ch != ch {
			t.Errorf("node %d: want %q, got %q", i, ch, lit.Ch)
		}
	}
}

func TestParseAlternation(t *testing.T) {
	p, err := Parse("cat|dog", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Root) != 1 {
		t.Fatalf("want 1 node, got %d", len(p.Root))
	}
	alt, ok := p.Root[0].(*ast.Alternation)
	if !ok {
		t.Fatalf("want *ast.Alternation, got %T", p.Root[0])
	}
	if len(alt.Branches) != 2 {
		t.Fatalf("want 2 branches, got %d", len(alt.Branches))
	}
}

func TestParseQuantifiers(t *testing.T) {
	tests := []struct {
		pattern    string
		min        int
		max        *int
		greedy     bool
		wantMaxNil bool
	}{
		{"a*", 0, nil, true, true},
		{"a*?", 0, nil, false, true},
		{"a+", 1, nil, true, true},
		{"a?", 0, intPtr(1), true, false},
	}
	for _, tt := range tests {
		p, err := Parse(tt.pattern, flags.Default())
		if err != nil {
			t.Fatalf("%s: Parse: %v", tt.pattern, err)
		}
		q, ok := p.Root[0].(*ast.Quantifier)
		if !ok {
			t.Fatalf("%s: want *ast.Quantifier, got %T", tt.pattern, p.Root[0])
		}
		if q.Min != tt.min {
			t.Errorf("%s: min = %d, want %d", tt.pattern, q.Min, tt.min)
		}
		if q.Greedy != tt.greedy {
			t.Errorf("%s: greedy = %v, want %v", tt.pattern, q.Greedy, tt.greedy)
		}
		if tt.wantMaxNil != (q.Max == nil) {
			t.Errorf("%s: max nil = %v, want %v", tt.pattern, q.Max == nil, tt.wantMaxNil)
		}
	}
}

func TestParseBoundedQuantifier(t *testing.T) {
	p, err := Parse("a{2,4}", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	q := p.Root[0].(*ast.Quantifier)
	if q.Min != 2 || q.Max == nil || *q.Max != 4 {
		t.Fatalf("got min=%d max=%v, want min=2 max=4", q.Min, q.Max)
	}

	p, err = Parse("a{3}", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	q = p.Root[0].(*ast.Quantifier)
	if q.Min != 3 || q.Max == nil || *q.Max != 3 {
		t.Fatalf("got min=%d max=%v, want min=3 max=3", q.Min, q.Max)
	}
}

func TestParseCapturingGroups(t *testing.T) {
	p, err := Parse("(a)(?:b)(?<name>c)", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.GroupCount != 2 {
		t.Fatalf("GroupCount = %d, want 2", p.GroupCount)
	}
	if p.GroupNames["name"] != 2 {
		t.Fatalf("GroupNames[name] = %d, want 2", p.GroupNames["name"])
	}

	first := p.Root[0].(*ast.Group)
	if !first.Capture || first.Index != 1 {
		t.Errorf("first group: capture=%v index=%d, want true/1", first.Capture, first.Index)
	}
	second := p.Root[1].(*ast.Group)
	if second.Capture {
		t.Errorf("second group should be non-capturing")
	}
}

func TestParseLookaround(t *testing.T) {
	p, err := Parse("(?<=foo)bar", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	look := p.Root[0].(*ast.LookAround)
	if !look.Behind || !look.Positive {
		t.Errorf("want positive lookbehind, got behind=%v positive=%v", look.Behind, look.Positive)
	}

	p, err = Parse("foo(?>!bar)", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	look = p.Root[3].(*ast.LookAround)
	if look.Behind || look.Positive {
		t.Errorf("want negative lookahead, got behind=%v positive=%v", look.Behind, look.Positive)
	}
}

func TestParseDuplicateGroupNameError(t *testing.T) {
	_, err := Parse("(?<n>a)(?<n>b)", flags.Default())
	if err == nil {
		t.Fatal("want error, got nil")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("want *Error, got %T", err)
	}
	if !errors.Is(err, ErrDuplicateGroupName) {
		t.Errorf("want ErrDuplicateGroupName, got %v", perr.Kind)
	}
}

func TestParseUnmatchedParenError(t *testing.T) {
	_, err := Parse("(abc", flags.Default())
	if !errors.Is(err, ErrUnmatchedParen) {
		t.Fatalf("want ErrUnmatchedParen, got %v", err)
	}

	_, err = Parse("abc)", flags.Default())
	if !errors.Is(err, ErrUnmatchedParen) {
		t.Fatalf("want ErrUnmatchedParen, got %v", err)
	}
}

func TestParseInvalidQuantifierError(t *testing.T) {
	_, err := Parse("a{,}", flags.Default())
	if !errors.Is(err, ErrInvalidQuantifier) {
		t.Fatalf("want ErrInvalidQuantifier, got %v", err)
	}

	_, err = Parse("a{2", flags.Default())
	if !errors.Is(err, ErrInvalidQuantifier) {
		t.Fatalf("want ErrInvalidQuantifier, got %v", err)
	}
}

func TestParseVerboseMode(t *testing.T) {
	fl := flags.Default()
	fl.Verbose = true
	p, err := Parse("a b  # a comment\n  c", fl)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Root) != 3 {
		t.Fatalf("want 3 literal nodes, got %d", len(p.Root))
	}
}

func TestParseCharClassRange(t *testing.T) {
	p, err := Parse("[a-z0-9^]", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cc := p.Root[0].(*ast.CharClass)
	if cc.Negated {
		t.Errorf("class should not be negated")
	}
	if len(cc.Ranges) != 3 {
		t.Fatalf("want 3 ranges, got %d", len(cc.Ranges))
	}
}

func TestParseBackref(t *testing.T) {
	p, err := Parse(`(a)\1`, flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ref, ok := p.Root[1].(*ast.Backref)
	if !ok {
		t.Fatalf("want *ast.Backref, got %T", p.Root[1])
	}
	if ref.Index != 1 {
		t.Errorf("Index = %d, want 1", ref.Index)
	}
}

func intPtr(n int) *int { return &n }
