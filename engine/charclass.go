package engine

import (
	"unicode"

	"github.com/riftlang/rift/ast"
)

// classMatches implements spec.md §4.2.1's character-class membership
// table. unicode predicates are used directly for Word/Whitespace/
// Lowercase/Uppercase/Alphanumeric, matching spec.md §9's note that these
// are already Unicode-aware regardless of the advisory Unicode flag.
func classMatches(k *ast.CharClass, c rune, dotAll bool) bool {
	switch k.Kind {
	case ast.ClassDigit:
		return c >= '0' && c <= '9'
	case ast.ClassNonDigit:
		return !(c >= '0' && c <= '9')
	case ast.ClassWord:
		return isWordChar(c)
	case ast.ClassNonWord:
		return !isWordChar(c)
	case ast.ClassWhitespace:
		return unicode.IsSpace(c)
	case ast.ClassNonWhitespace:
		return !unicode.IsSpace(c)
	case ast.ClassLowercase:
		return unicode.IsLower(c)
	case ast.ClassNonLowercase:
		return !unicode.IsLower(c)
	case ast.ClassUppercase:
		return unicode.IsUpper(c)
	case ast.ClassNonUppercase:
		return !unicode.IsUpper(c)
	case ast.ClassHex:
		return isHexDigit(c)
	case ast.ClassNonHex:
		return !isHexDigit(c)
	case ast.ClassOctal:
		return c >= '0' && c <= '7'
	case ast.ClassNonOctal:
		return !(c >= '0' && c <= '7')
	case ast.ClassAlphanumeric:
		return unicode.IsLetter(c) || unicode.IsDigit(c)
	case ast.ClassNonAlphanumeric:
		return !(unicode.IsLetter(c) || unicode.IsDigit(c))
	case ast.ClassPunctuation:
		return isASCIIPunct(c)
	case ast.ClassNonPunctuation:
		return !isASCIIPunct(c)
	case ast.ClassWordStart:
		return unicode.IsLetter(c) || c == '_'
	case ast.ClassNonWordStart:
		return !(unicode.IsLetter(c) || c == '_')
	case ast.ClassDot:
		return dotAll || c != '\n'
	case ast.ClassSet:
		return matchesSet(k, c)
	default:
		return false
	}
}

// matchesSet implements the custom [...] membership rule: a member iff
// any inclusive range contains it, then flipped by Negated. Ranges are
// never case-folded by the engine (spec.md §4.2.1 open question):
// authors who want both cases must write both into the class.
func matchesSet(k *ast.CharClass, c rune) bool {
	found := false
	for _, r := range k.Ranges {
		if c >= r.Lo && c <= r.Hi {
			found = true
			break
		}
	}
	if k.Negated {
		return !found
	}
	return found
}

func isWordChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isASCIIPunct matches C's ispunct(): a printable ASCII character that is
// neither alphanumeric nor a space. Unlike isWordChar, this does NOT
// exclude '_' — underscore is punctuation, not a letter or digit.
func isASCIIPunct(c rune) bool {
	if c < '!' || c > '~' {
		return false
	}
	isAlnum := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	return !isAlnum
}
