package colkey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// KeyTuple is the ordered list of string fragments extracted from one
// column name. Its length always equals the arity of the spec that
// produced it.
type KeyTuple []string

// Equal reports element-wise equality.
func (t KeyTuple) Equal(o KeyTuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}

	return true
}

// token returns a collision-free composite encoding of the tuple,
// used as a map key by package reshape via Token. Length-prefixing
// each fragment keeps the encoding unambiguous no matter which bytes
// the fragments contain, including any would-be delimiter.
func (t KeyTuple) token() string {
	var b strings.Builder
	for _, f := range t {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}

	return b.String()
}

// Token returns a canonical encoding of the tuple suitable for map
// keys. Distinct tuples always yield distinct tokens, whatever bytes
// their fragments contain.
func (t KeyTuple) Token() string { return t.token() }

// KeySpec is the bidirectional mapping between a column name and a
// key-tuple.
//
// Contracts:
//   - Arity() >= 1, constant for the life of the spec.
//   - Decompose returns (tuple, true) only for names that fully
//     conform; len(tuple) == Arity() whenever ok.
//   - Compose is the declared inverse. Separator specs guarantee
//     Decompose(Compose(t)) == t for every tuple they can produce;
//     bare Pattern specs return ErrNotInvertible instead (see doc.go).
type KeySpec interface {
	// Arity returns the number of fragments per key-tuple.
	Arity() int

	// Names returns per-fragment names where the spec declares them
	// (named capture groups); unnamed fragments are "". May be nil.
	Names() []string

	// Decompose extracts the key-tuple from a column name. ok is false
	// when the name does not conform to the spec.
	Decompose(columnName string) (kt KeyTuple, ok bool)

	// Compose reconstructs a column name from a key-tuple.
	Compose(kt KeyTuple) (string, error)
}

// ---------- Separator spec ----------

type sepSpec struct {
	sep   string
	arity int
}

// Separator returns a KeySpec that splits a column name on a literal
// separator into exactly arity fragments. A name that splits into any
// other number of fragments does not conform.
//
// Errors: ErrEmptySeparator, ErrBadArity.
//
// Complexity: Decompose/Compose are O(len(name)).
func Separator(sep string, arity int) (KeySpec, error) {
	if sep == "" {
		return nil, ErrEmptySeparator
	}
	if arity < 1 {
		return nil, ErrBadArity
	}

	return sepSpec{sep: sep, arity: arity}, nil
}

func (s sepSpec) Arity() int      { return s.arity }
func (s sepSpec) Names() []string { return nil }

func (s sepSpec) Decompose(name string) (KeyTuple, bool) {
	parts := strings.Split(name, s.sep)
	if len(parts) != s.arity {
		return nil, false
	}

	return KeyTuple(parts), true
}

func (s sepSpec) Compose(kt KeyTuple) (string, error) {
	if len(kt) != s.arity {
		return "", fmt.Errorf("%d fragments for arity %d: %w", len(kt), s.arity, ErrArityMismatch)
	}
	for _, f := range kt {
		if strings.Contains(f, s.sep) {
			return "", fmt.Errorf("fragment %q vs separator %q: %w", f, s.sep, ErrAmbiguousFragment)
		}
	}

	return strings.Join(kt, s.sep), nil
}

// ---------- Identity spec ----------

type identSpec struct{}

// Identity returns the arity-1 degenerate KeySpec: every column name
// conforms and the key-tuple is the bare name. Fully invertible.
func Identity() KeySpec { return identSpec{} }

func (identSpec) Arity() int      { return 1 }
func (identSpec) Names() []string { return nil }

func (identSpec) Decompose(name string) (KeyTuple, bool) {
	return KeyTuple{name}, true
}

func (identSpec) Compose(kt KeyTuple) (string, error) {
	if len(kt) != 1 {
		return "", fmt.Errorf("%d fragments for arity 1: %w", len(kt), ErrArityMismatch)
	}

	return kt[0], nil
}

// ---------- Pattern spec ----------

type patSpec struct {
	re    *regexp.Regexp
	names []string // per-group names, "" for positional groups
	tmpl  string   // naming template; "" means not invertible
}

// Pattern returns a KeySpec backed by a regular expression. The
// expression is anchored to the whole name (a partial match is no
// match) and must contain at least one capture group; each group, in
// order, yields one fragment. Named groups (`(?P<dose>\d+)`) surface
// through Names.
//
// Compose on a bare Pattern spec returns ErrNotInvertible: the literal
// text between groups is discarded during matching and cannot be
// reconstructed. Use PatternTemplate to declare the inverse.
//
// Errors: ErrBadPattern (wrapping the regexp error), ErrPatternNoGroups.
func Pattern(expr string) (KeySpec, error) {
	return compilePattern(expr, "")
}

// PatternTemplate is Pattern plus an explicit naming template used by
// Compose. Placeholders reference fragments by 1-based position
// ("dose{1}mg") or by group name ("{time}_{treatment}"); all other
// template text is copied verbatim.
//
// Errors: those of Pattern, plus ErrBadTemplate when a placeholder
// resolves to no fragment or braces are unbalanced.
func PatternTemplate(expr, tmpl string) (KeySpec, error) {
	spec, err := compilePattern(expr, tmpl)
	if err != nil {
		return nil, err
	}
	// Validate the template eagerly: composing must not fail later for
	// structural reasons.
	p := spec.(patSpec)
	probe := make(KeyTuple, len(p.names))
	if _, err = expandTemplate(tmpl, p.names, probe); err != nil {
		return nil, err
	}

	return spec, nil
}

func compilePattern(expr, tmpl string) (KeySpec, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern %q: %w", expr, ErrPatternNoGroups)
	}

	return patSpec{re: re, names: re.SubexpNames()[1:], tmpl: tmpl}, nil
}

func (p patSpec) Arity() int { return len(p.names) }

func (p patSpec) Names() []string {
	cp := make([]string, len(p.names))
	copy(cp, p.names)

	return cp
}

func (p patSpec) Decompose(name string) (KeyTuple, bool) {
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return nil, false
	}

	return KeyTuple(m[1:]), true
}

func (p patSpec) Compose(kt KeyTuple) (string, error) {
	if len(kt) != len(p.names) {
		return "", fmt.Errorf("%d fragments for arity %d: %w", len(kt), len(p.names), ErrArityMismatch)
	}
	if p.tmpl == "" {
		return "", ErrNotInvertible
	}

	return expandTemplate(p.tmpl, p.names, kt)
}

// ---------- Naming templates ----------

// expandTemplate substitutes {N} (1-based position) and {name}
// placeholders with tuple fragments. names may be nil when only
// positional placeholders are in use.
func expandTemplate(tmpl string, names []string, kt KeyTuple) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			if strings.IndexByte(tmpl[i:], '}') >= 0 {
				return "", fmt.Errorf("unbalanced '}' in %q: %w", tmpl, ErrBadTemplate)
			}
			b.WriteString(tmpl[i:])
			break
		}
		b.WriteString(tmpl[i : i+open])
		i += open
		close_ := strings.IndexByte(tmpl[i:], '}')
		if close_ < 0 {
			return "", fmt.Errorf("unbalanced '{' in %q: %w", tmpl, ErrBadTemplate)
		}
		ref := tmpl[i+1 : i+close_]
		idx, err := resolvePlaceholder(ref, names, len(kt))
		if err != nil {
			return "", err
		}
		b.WriteString(kt[idx])
		i += close_ + 1
	}

	return b.String(), nil
}

// resolvePlaceholder maps a placeholder body to a 0-based fragment index.
func resolvePlaceholder(ref string, names []string, arity int) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > arity {
			return 0, fmt.Errorf("placeholder {%s} out of range 1..%d: %w", ref, arity, ErrBadTemplate)
		}

		return n - 1, nil
	}
	for i, name := range names {
		if name != "" && name == ref {
			return i, nil
		}
	}

	return 0, fmt.Errorf("placeholder {%s} matches no fragment: %w", ref, ErrBadTemplate)
}

// ComposeTemplate renders a key-tuple through a naming template without
// constructing a KeySpec; names may supply per-fragment names for
// {name} placeholders. Package reshape uses this for the caller-supplied
// template form of Widen.
func ComposeTemplate(tmpl string, names []string, kt KeyTuple) (string, error) {
	return expandTemplate(tmpl, names, kt)
}
