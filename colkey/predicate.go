package colkey

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/katalvlaran/lvltab/table"
)

// Predicate selects columns at runtime. Variants cover the common
// selection idioms; And/Or/Not compose them. A nil Predicate is never
// valid — callers that accept an optional Predicate must treat nil as
// "not provided", not as "match all".
type Predicate interface {
	// Match reports whether the column participates in the selection.
	Match(c table.Column) bool
}

type predicateFn func(table.Column) bool

func (f predicateFn) Match(c table.Column) bool { return f(c) }

// ByName selects columns whose name is in the given set.
func ByName(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return predicateFn(func(c table.Column) bool {
		_, ok := set[c.Name()]

		return ok
	})
}

// ByPrefix selects columns whose name starts with prefix.
func ByPrefix(prefix string) Predicate {
	return predicateFn(func(c table.Column) bool {
		return strings.HasPrefix(c.Name(), prefix)
	})
}

// BySuffix selects columns whose name ends with suffix.
func BySuffix(suffix string) Predicate {
	return predicateFn(func(c table.Column) bool {
		return strings.HasSuffix(c.Name(), suffix)
	})
}

// ByPattern selects columns whose full name matches the expression
// (anchored, like Pattern). Capture groups are permitted but ignored.
//
// Errors: ErrBadPattern.
func ByPattern(expr string) (Predicate, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}

	return predicateFn(func(c table.Column) bool {
		return re.MatchString(c.Name())
	}), nil
}

// ByType selects columns with the given declared type.
func ByType(t table.Type) Predicate {
	return predicateFn(func(c table.Column) bool {
		return c.Type() == t
	})
}

// ByKeySpec selects columns whose name the spec decomposes. This is
// the predicate package reshape derives when given a KeySpec and no
// explicit column list.
func ByKeySpec(ks KeySpec) Predicate {
	return predicateFn(func(c table.Column) bool {
		_, ok := ks.Decompose(c.Name())

		return ok
	})
}

// And selects columns matching every predicate. And() matches all.
func And(ps ...Predicate) Predicate {
	return predicateFn(func(c table.Column) bool {
		for _, p := range ps {
			if !p.Match(c) {
				return false
			}
		}

		return true
	})
}

// Or selects columns matching at least one predicate. Or() matches none.
func Or(ps ...Predicate) Predicate {
	return predicateFn(func(c table.Column) bool {
		for _, p := range ps {
			if p.Match(c) {
				return true
			}
		}

		return false
	})
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return predicateFn(func(c table.Column) bool {
		return !p.Match(c)
	})
}

// Filter returns the names of t's columns matched by p, in table order.
// Selection order is always the table's left-to-right order, matching
// the ordering contract of reshape.Narrow.
func Filter(t *table.Table, p Predicate) []string {
	var names []string
	for i := 0; i < t.ColumnCount(); i++ {
		c, _ := t.ColumnAt(i)
		if p.Match(c) {
			names = append(names, c.Name())
		}
	}

	return names
}
