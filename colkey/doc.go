// Package colkey maps composite column names to key-tuples and back.
//
// A wide table often encodes several semantic variables inside one
// column header: "dose10mg" carries a dose, "T0_Control" carries a
// time and a treatment. Package colkey turns such headers into ordered
// string fragments (a KeyTuple) and, where possible, recomposes the
// header from the fragments.
//
// 🚀 Key specs:
//
//   - Separator(sep, arity) — split the name on a literal separator
//     into exactly arity fragments. Fully invertible:
//     Decompose(Compose(t)) == t for every tuple a separator spec can
//     produce.
//   - Identity() — the arity-1 degenerate spec: the key is the bare
//     column name.
//   - Pattern(expr) — a regular expression that must fully match the
//     name; its capture groups (named or positional) become the
//     fragments. NOT invertible: a pattern that discards literal text
//     between groups (e.g. `dose(\d+)mg`) cannot reconstruct it, so
//     Compose returns ErrNotInvertible. This asymmetry is documented
//     contract, not a defect.
//   - PatternTemplate(expr, tmpl) — Pattern plus an explicit naming
//     template ("dose{1}mg", "{time}_{treatment}") that restores
//     invertibility where the caller can state the inverse.
//
// ✨ Column predicates:
//
//	Runtime column selection without a string DSL: ByName, ByPrefix,
//	BySuffix, ByPattern, ByType and ByKeySpec variants, composed with
//	And / Or / Not. Package reshape accepts a Predicate anywhere it
//	accepts an explicit column list.
//
// ⚙️ Usage:
//
//	spec, err := colkey.Pattern(`dose(\d+)mg`)
//	if err != nil { ... }
//	kt, ok := spec.Decompose("dose100mg") // KeyTuple{"100"}, true
//	_, ok = spec.Decompose("subject")     // ok == false
//
// The regular-expression engine itself is a consumed capability
// (stdlib regexp); colkey adds only full-match anchoring and the
// group-to-fragment contract on top of it.
package colkey
