// Package flavor implements the "pattern/flags" splitter described in
// spec.md §6.2: the one-shot preprocessor used when a caller supplies a
// pattern and its flags combined into a single string, split at the
// rightmost '/'.
package flavor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/riftlang/rift/flags"
)

// ErrNoDelimiter is returned when the input contains no '/' at all.
var ErrNoDelimiter = errors.New("no delimiter")

// InvalidFlagError is returned for any flag letter outside
// "icmsxug".
type InvalidFlagError struct {
	Letter rune
}

func (e *InvalidFlagError) Error() string {
	return fmt.Sprintf("invalid flag letter %q", e.Letter)
}

// Split parses input in the form PATTERN + "/" + FLAG_LETTERS, splitting
// at the last '/'. Recognized flag letters are:
//
//	i  case-insensitive     m  multiline      x  verbose
//	c  case-sensitive       s  dotall         u  unicode
//	g  global
//
// If neither 'i' nor 'c' is present, case sensitivity is resolved by
// smartcase: insensitive unless the pattern contains an uppercase code
// point (spec.md §3.1, §6.2).
func Split(input string) (pattern string, fl flags.Set, err error) {
	idx := strings.LastIndexByte(input, '/')
	if idx < 0 {
		return "", flags.Set{}, ErrNoDelimiter
	}

	pattern = input[:idx]
	flagStr := input[idx+1:]

	explicitCase := false
	for _, ch := range flagStr {
		switch ch {
		case 'i':
			fl.Case = flags.CaseInsensitive
			explicitCase = true
		case 'c':
			fl.Case = flags.CaseSensitive
			explicitCase = true
		case 'm':
			fl.Multiline = true
		case 's':
			fl.DotAll = true
		case 'x':
			fl.Verbose = true
		case 'u':
			fl.Unicode = true
		case 'g':
			fl.Global = true
		default:
			return "", flags.Set{}, &InvalidFlagError{Letter: ch}
		}
	}

	if !explicitCase {
		fl.Case = resolveSmartcase(pattern)
	}

	return pattern, fl, nil
}

// resolveSmartcase implements spec.md §3.1's smartcase rule: sensitive
// if the pattern contains any uppercase code point, insensitive
// otherwise.
func resolveSmartcase(pattern string) flags.Case {
	for _, c := range pattern {
		if unicode.IsUpper(c) {
			return flags.CaseSensitive
		}
	}
	return flags.CaseInsensitive
}
