package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Clean turns raw extracted text into a form suitable for sentence
// splitting. PDF extractors in particular drop whitespace between words and
// emit compatibility ligatures; Clean repairs both classes of artifact:
//
//   - NFKC folding (so e.g. the "ﬁ" ligature becomes "fi")
//   - whitespace runs, including newlines, collapse to a single space
//   - a space is inserted at lower-to-upper case transitions
//   - a space is inserted at digit/letter boundaries in both directions
//
// Clean is total and idempotent: applying it to already-clean text is a
// no-op, and empty input yields empty output.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if unicode.IsSpace(r) {
			if prev != ' ' && prev != 0 {
				b.WriteByte(' ')
				prev = ' '
			}
			continue
		}
		if needsBoundary(prev, r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.TrimSpace(b.String())
}

// needsBoundary reports whether a space belongs between two adjacent runes
// that a lossy extractor likely concatenated.
func needsBoundary(prev, cur rune) bool {
	switch {
	case prev == 0 || prev == ' ':
		return false
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(cur):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	}
	return false
}
