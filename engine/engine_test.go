package engine

import (
	"testing"

	"github.com/riftlang/rift/flags"
	"github.com/riftlang/rift/parser"
)

func find(t *testing.T, pattern string, fl flags.Set, text string) (string, bool) {
	t.Helper()
	p, err := parser.Parse(pattern, fl)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	m := New(p.Root, p.GroupCount, fl)
	res, ok := m.Find(text)
	if !ok {
		return "", false
	}
	return text[res.Span.Start:res.Span.End], true
}

func TestGreedyVsLazyStar(t *testing.T) {
	if got, _ := find(t, "ba*", flags.Default(), "baaaac"); got != "baaaa" {
		t.Errorf("ba* = %q, want %q", got, "baaaa")
	}
	if got, _ := find(t, "ba*?", flags.Default(), "baaaac"); got != "b" {
		t.Errorf("ba*? = %q, want %q", got, "b")
	}
}

func TestBoundedQuantifier(t *testing.T) {
	if got, _ := find(t, "a{2,4}", flags.Default(), "aaaaa"); got != "aaaa" {
		t.Errorf("a{2,4} = %q, want %q", got, "aaaa")
	}
	if got, _ := find(t, "a{2,4}?", flags.Default(), "aaaaa"); got != "aa" {
		t.Errorf("a{2,4}? = %q, want %q", got, "aa")
	}
}

func TestWordBoundary(t *testing.T) {
	if got, ok := find(t, `\bword\b`, flags.Default(), "a word b"); !ok || got != "word" {
		t.Errorf(`\bword\b on "a word b" = %q, %v; want "word", true`, got, ok)
	}
	if _, ok := find(t, `\bword\b`, flags.Default(), "sword"); ok {
		t.Errorf(`\bword\b on "sword" matched, want no match`)
	}
}

func TestMatchBoundaryOverrides(t *testing.T) {
	p, err := parser.Parse(`foo\zsbar\zebaz`, flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := New(p.Root, p.GroupCount, flags.Default())
	res, ok := m.Find("foobarbaz")
	if !ok {
		t.Fatal("want match")
	}
	if res.Span.Start != 3 || res.Span.End != 6 {
		t.Errorf("span = [%d,%d), want [3,6)", res.Span.Start, res.Span.End)
	}
}

func TestAlternationLeftBias(t *testing.T) {
	if got, _ := find(t, "cat|dog", flags.Default(), "dog"); got != "dog" {
		t.Errorf("cat|dog on dog = %q, want dog", got)
	}
	if got, _ := find(t, "a|ab", flags.Default(), "ab"); got != "a" {
		t.Errorf("a|ab on ab = %q, want a (leftmost branch wins)", got)
	}
}

func TestLookaround(t *testing.T) {
	if got, ok := find(t, "(?<=foo)bar", flags.Default(), "foobar"); !ok || got != "bar" {
		t.Errorf("positive lookbehind: got %q, %v", got, ok)
	}
	if _, ok := find(t, "(?<=foo)bar", flags.Default(), "bazbar"); ok {
		t.Errorf("positive lookbehind matched on bazbar, want no match")
	}
	if got, ok := find(t, "foo(?>!bar)", flags.Default(), "foobaz"); !ok || got != "foo" {
		t.Errorf("negative lookahead: got %q, %v", got, ok)
	}
	if _, ok := find(t, "foo(?>!bar)", flags.Default(), "foobar"); ok {
		t.Errorf("negative lookahead matched on foobar, want no match")
	}
}

func TestCaseInsensitive(t *testing.T) {
	fl := flags.Default()
	fl.Case = flags.CaseInsensitive
	p, err := parser.Parse("abc", fl)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := New(p.Root, p.GroupCount, fl)
	res, ok := m.Find("AbC")
	if !ok {
		t.Fatal("want match")
	}
	if res.Span.Start != 0 || res.Span.End != 3 {
		t.Errorf("span = [%d,%d), want [0,3)", res.Span.Start, res.Span.End)
	}
}

func TestZeroWidthGuardOnStar(t *testing.T) {
	p, err := parser.Parse("a*", flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := New(p.Root, p.GroupCount, flags.Default())
	res, ok := m.Find("bbb")
	if !ok {
		t.Fatal("want match")
	}
	if !res.Span.Empty() || res.Span.Start != 0 {
		t.Errorf("got [%d,%d), want empty match at 0", res.Span.Start, res.Span.End)
	}
}

func TestBackreference(t *testing.T) {
	p, err := parser.Parse(`(ab)\1`, flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := New(p.Root, p.GroupCount, flags.Default())
	res, ok := m.Find("abab")
	if !ok {
		t.Fatal("want match")
	}
	if res.Span.Start != 0 || res.Span.End != 4 {
		t.Errorf("got [%d,%d), want [0,4)", res.Span.Start, res.Span.End)
	}
	if _, ok := m.Find("abcd"); ok {
		t.Error("backreference matched non-repeating text")
	}
}

func TestCapturesRecorded(t *testing.T) {
	p, err := parser.Parse(`(a)(b)`, flags.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := New(p.Root, p.GroupCount, flags.Default())
	res, ok := m.Find("ab")
	if !ok {
		t.Fatal("want match")
	}
	if res.Groups[1] == nil || res.Groups[1].Start != 0 || res.Groups[1].End != 1 {
		t.Errorf("group 1 = %v, want [0,1)", res.Groups[1])
	}
	if res.Groups[2] == nil || res.Groups[2].Start != 1 || res.Groups[2].End != 2 {
		t.Errorf("group 2 = %v, want [1,2)", res.Groups[2])
	}
}

func TestDotAllFlag(t *testing.T) {
	if _, ok := find(t, ".", flags.Default(), "\n"); ok {
		t.Error(". matched newline without dotall")
	}
	fl := flags.Default()
	fl.DotAll = true
	if got, ok := find(t, ".", fl, "\n"); !ok || got != "\n" {
		t.Errorf(". with dotall on newline: got %q, %v", got, ok)
	}
}

func TestMultilineAnchors(t *testing.T) {
	fl := flags.Default()
	fl.Multiline = true
	if got, ok := find(t, "^b", fl, "a\nb"); !ok || got != "b" {
		t.Errorf("^b multiline: got %q, %v", got, ok)
	}
	if _, ok := find(t, "^b", flags.Default(), "a\nb"); ok {
		t.Error("^b without multiline matched mid-string")
	}
}
