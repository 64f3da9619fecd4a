package engine

import "unicode/utf8"

// atStartAnchor implements ^: true at byte 0, or (under Multiline) right
// after a '\n'.
func (m *Matcher) atStartAnchor(pos int, text string) bool {
	if pos == 0 {
		return true
	}
	return m.flags.Multiline && pos > 0 && text[pos-1] == '\n'
}

// atEndAnchor implements $: true at len(text), or (under Multiline)
// right before a '\n'.
func (m *Matcher) atEndAnchor(pos int, text string) bool {
	if pos == len(text) {
		return true
	}
	return m.flags.Multiline && pos < len(text) && text[pos] == '\n'
}

// isWordBoundary implements \b: true where word-char membership differs
// across pos, treating out-of-string as non-word on both sides.
func (m *Matcher) isWordBoundary(pos int, text string) bool {
	before := m.wordCharBefore(pos, text)
	after := m.isWordCharAt(pos, text)
	return before != after
}

func (m *Matcher) wordCharBefore(pos int, text string) bool {
	if pos <= 0 {
		return false
	}
	c, _ := utf8.DecodeLastRuneInString(text[:pos])
	return isWordChar(c)
}

// isWordCharAt reports whether the character starting at pos is a word
// character, treating end-of-string as non-word.
func (m *Matcher) isWordCharAt(pos int, text string) bool {
	if pos >= len(text) {
		return false
	}
	c, _ := utf8.DecodeRuneInString(text[pos:])
	return isWordChar(c)
}
