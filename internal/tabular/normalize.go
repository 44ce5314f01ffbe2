package tabular

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer configures how text values are canonicalized before
// equality checks. Numeric and NULL values are never touched: counts,
// flags, and discrete timestamps have no imprecision to absorb.
//
// Trimming exists because reference and learner answers legitimately
// differ in incidental whitespace from string concatenation; NFC
// normalization exists because two byte-distinct encodings of the same
// character are the same answer.
type Normalizer struct {
	// TrimSpace strips leading/trailing whitespace from text values.
	TrimSpace bool

	// UnicodeNFC applies Unicode NFC normalization to text values.
	UnicodeNFC bool
}

// DefaultNormalizer is the normalization applied by default policies:
// trimming plus NFC.
func DefaultNormalizer() Normalizer {
	return Normalizer{TrimSpace: true, UnicodeNFC: true}
}

// RawNormalizer performs no normalization; values compare byte-exact.
func RawNormalizer() Normalizer {
	return Normalizer{}
}

// Apply canonicalizes a single value. Non-text values pass through.
func (n Normalizer) Apply(v Value) Value {
	if v.kind != KindText {
		return v
	}
	s := v.s
	if n.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if n.UnicodeNFC {
		s = norm.NFC.String(s)
	}
	if s == v.s {
		return v
	}
	return Text(s)
}
