package flavor

import (
	"errors"
	"testing"

	"github.com/riftlang/rift/flags"
)

func TestSplitExplicitFlags(t *testing.T) {
	pattern, fl, err := Split("foo/bar/i")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if pattern != "foo/bar" {
		t.Errorf("pattern = %q, want foo/bar", pattern)
	}
	if fl.Case != flags.CaseInsensitive {
		t.Errorf("case = %v, want insensitive", fl.Case)
	}
}

func TestSplitSmartcase(t *testing.T) {
	pattern, fl, err := Split("Abc/")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if pattern != "Abc" {
		t.Errorf("pattern = %q, want Abc", pattern)
	}
	if fl.Case != flags.CaseSensitive {
		t.Errorf("case = %v, want sensitive (smartcase: pattern has uppercase)", fl.Case)
	}

	pattern, fl, err = Split("abc/")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if pattern != "abc" {
		t.Errorf("pattern = %q, want abc", pattern)
	}
	if fl.Case != flags.CaseInsensitive {
		t.Errorf("case = %v, want insensitive (smartcase: no uppercase)", fl.Case)
	}
}

func TestSplitAllFlagLetters(t *testing.T) {
	_, fl, err := Split("x/cmsxug")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if fl.Case != flags.CaseSensitive {
		t.Error("want case sensitive")
	}
	if !fl.Multiline || !fl.DotAll || !fl.Verbose || !fl.Unicode || !fl.Global {
		t.Errorf("flags = %+v, want every boolean set", fl)
	}
}

func TestSplitNoDelimiter(t *testing.T) {
	_, _, err := Split("nodash")
	if !errors.Is(err, ErrNoDelimiter) {
		t.Fatalf("err = %v, want ErrNoDelimiter", err)
	}
}

func TestSplitInvalidFlagLetter(t *testing.T) {
	_, _, err := Split("x/q")
	var ferr *InvalidFlagError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want *InvalidFlagError", err)
	}
	if ferr.Letter != 'q' {
		t.Errorf("Letter = %q, want q", ferr.Letter)
	}
}

func TestSplitLastSlashWins(t *testing.T) {
	pattern, _, err := Split("a/b/c/i")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if pattern != "a/b/c" {
		t.Errorf("pattern = %q, want a/b/c", pattern)
	}
}
