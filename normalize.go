package dualcol

import "strings"

// Normalizer canonicalizes a value before its digest is computed, enabling
// case-insensitive or format-agnostic lookups on a dual field. The
// ciphertext always preserves the original value; only the digest sees the
// normalized form.
//
// The same normalizer must be used on write and on lookup, or lookups will
// never match.
type Normalizer func(string) string

// NormalizeEmail trims surrounding whitespace and lowercases, so
// "Alice@Example.COM " and "alice@example.com" share a digest.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone strips everything but ASCII digits, so "(555) 123-4567"
// and "555.123.4567" share a digest.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, s)
}

// NormalizeTrim removes surrounding whitespace only; case stays significant.
func NormalizeTrim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeLower lowercases only; whitespace stays significant.
func NormalizeLower(s string) string {
	return strings.ToLower(s)
}
