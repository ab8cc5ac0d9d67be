package utils

import "strings"

// NormalizeName converts a customer name to the comparable normal form used
// throughout matching: trimmed, case-folded, internal whitespace collapsed
// to single spaces. Export systems disagree on casing and padding; this is
// the one canonical spelling both sides are reduced to.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, " ")
}

// StripNamePunctuation removes the punctuation some platforms insert into
// customer names (e.g. "Smith, John" or "O'Brien Mr."). Applied only when
// the match policy asks for it.
func StripNamePunctuation(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case ',', '.', '\'', '-', '_', '/':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return NormalizeName(b.String())
}
