// Package colkey: sentinel error set, matched via errors.Is.

package colkey

import "errors"

var (
	// ErrEmptySeparator is returned by Separator for an empty separator
	// string.
	ErrEmptySeparator = errors.New("colkey: separator must be non-empty")

	// ErrBadArity is returned for a declared arity < 1.
	ErrBadArity = errors.New("colkey: arity must be at least 1")

	// ErrBadPattern wraps a regexp compilation failure.
	ErrBadPattern = errors.New("colkey: invalid pattern")

	// ErrPatternNoGroups is returned for a pattern without capture
	// groups: there would be no fragments to extract.
	ErrPatternNoGroups = errors.New("colkey: pattern has no capture groups")

	// ErrNotInvertible is returned by Compose on a bare Pattern spec.
	// Patterns discard the literal text between capture groups, so the
	// inverse must be stated explicitly via PatternTemplate.
	ErrNotInvertible = errors.New("colkey: pattern spec is not invertible, supply a naming template")

	// ErrBadTemplate is returned for a naming template with unbalanced
	// braces or a placeholder that resolves to no fragment.
	ErrBadTemplate = errors.New("colkey: invalid naming template")

	// ErrArityMismatch is returned by Compose when the tuple length
	// differs from the spec arity.
	ErrArityMismatch = errors.New("colkey: key-tuple length does not match spec arity")

	// ErrAmbiguousFragment is returned by a separator spec's Compose
	// when a fragment contains the separator itself: the composed name
	// would no longer decompose back to the same tuple.
	ErrAmbiguousFragment = errors.New("colkey: fragment contains the separator")
)
