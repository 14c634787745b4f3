package reshape

import (
	"strconv"

	"github.com/katalvlaran/lvltab/colkey"
	"github.com/katalvlaran/lvltab/table"
)

// DuplicatePolicy controls what Widen does when one (partition,
// key-tuple) pair maps to more than one source row.
//
//   - DupError     — fail with ErrDuplicateKey. The default; silent
//     collapsing is never implicit.
//   - DupKeepFirst — keep the value from the earliest input row.
//   - DupKeepLast  — keep the value from the latest input row.
//   - DupReduce    — collapse the values with the caller's Reducer.
//
// Every non-error resolution is recorded in Diagnostics.Conflicts, so
// data loss stays auditable even after opting out of the error.
type DuplicatePolicy int

const (
	// DupError fails loudly on the first duplicate.
	DupError DuplicatePolicy = iota
	// DupKeepFirst keeps the value from the earliest source row.
	DupKeepFirst
	// DupKeepLast keeps the value from the latest source row.
	DupKeepLast
	// DupReduce collapses duplicates with WidenOptions.Reduce.
	DupReduce
)

// String returns the policy name.
func (p DuplicatePolicy) String() string {
	switch p {
	case DupError:
		return "error"
	case DupKeepFirst:
		return "keep_first"
	case DupKeepLast:
		return "keep_last"
	case DupReduce:
		return "reduce"
	default:
		return "policy(" + strconv.Itoa(int(p)) + ")"
	}
}

// Reducer collapses the duplicate values of one (partition, key-tuple)
// group into a single cell. Values arrive in input-row order.
type Reducer func(values []table.Cell) table.Cell

// NarrowOptions configures Narrow.
//
// Column selection, in precedence order:
//  1. Columns — explicit value-bearing column names. Order does not
//     matter; narrowing always walks selected columns in the table's
//     left-to-right order (the ordering contract).
//  2. Select — a colkey.Predicate evaluated over all columns.
//  3. KeySpec alone — every column the spec decomposes is selected.
//
// All unselected columns pass through as identifier columns.
type NarrowOptions struct {
	// Columns lists the value-bearing columns explicitly. nil defers
	// to Select, then to KeySpec-based selection.
	Columns []string

	// Select picks the value-bearing columns by predicate when Columns
	// is nil.
	Select colkey.Predicate

	// KeySpec decomposes selected column names into key-tuples.
	// nil means colkey.Identity(): the key is the bare column name.
	KeySpec colkey.KeySpec

	// KeyColumns names the output key columns, one per tuple fragment.
	// Empty defers to KeySpec.Names() when the spec names every
	// fragment (named capture groups).
	KeyColumns []string

	// ValueColumn names the output value column. Required.
	ValueColumn string

	// Strict controls the reaction to a selected column the KeySpec
	// cannot decompose: error (true) or exclude-and-report (false).
	Strict bool
}

// DefaultNarrowOptions returns the documented defaults: strict
// matching, identity key spec, no preselected columns.
func DefaultNarrowOptions() NarrowOptions {
	return NarrowOptions{Strict: true}
}

// SourceColumn binds one wide column to the key-tuple it carries for a
// value kind.
type SourceColumn struct {
	// Column is the wide column name holding the values.
	Column string
	// Key is the key-tuple this column represents.
	Key colkey.KeyTuple
}

// ValueKind is one independent measurement series in a multi-value
// narrow: its output column name plus the wide columns that feed it,
// one per key-tuple.
type ValueKind struct {
	// Name is the output value column for this kind.
	Name string
	// Sources maps key-tuples to the wide columns carrying this kind.
	Sources []SourceColumn
}

// MultiOptions configures NarrowMulti. Every kind must cover exactly
// the same set of key-tuples, each exactly once; the single-value
// Narrow is the degenerate one-kind case.
type MultiOptions struct {
	// Kinds lists the value kinds. Key-tuple output order follows the
	// first kind's source order.
	Kinds []ValueKind

	// KeyColumns names the output key columns; length must equal the
	// arity of every source key-tuple.
	KeyColumns []string
}

// WidenOptions configures Widen.
type WidenOptions struct {
	// Identifiers lists the partition columns. nil means every column
	// except KeyColumns and ValueColumn, in table order.
	Identifiers []string

	// KeyColumns name the long-format key columns, in fragment order.
	KeyColumns []string

	// ValueColumn names the long-format value column.
	ValueColumn string

	// KeySpec composes output column names from key-tuples. For
	// separator specs this is the exact inverse of the Narrow that
	// produced the long table.
	KeySpec colkey.KeySpec

	// NameTemplate composes output column names when KeySpec is nil,
	// with {1}..{n} positional and {keyColumn} named placeholders.
	// When both are absent, arity-1 tuples use the bare fragment and
	// larger arities fail with ErrNoComposer.
	NameTemplate string

	// Policy decides duplicate (partition, key) handling. Zero value
	// is DupError.
	Policy DuplicatePolicy

	// Reduce collapses duplicates under DupReduce.
	Reduce Reducer
}

// DefaultWidenOptions returns the documented defaults: fail on
// duplicates, derive identifiers from the complement.
func DefaultWidenOptions() WidenOptions {
	return WidenOptions{Policy: DupError}
}

// Conflict records one duplicate (partition, key-tuple) group that a
// non-error policy resolved.
type Conflict struct {
	// Identifiers holds the partition's identifier cells, in
	// identifier-column order.
	Identifiers []table.Cell
	// Key is the duplicated key-tuple.
	Key colkey.KeyTuple
	// Values are all source values of the group, in input-row order.
	Values []table.Cell
	// Resolved is the cell the policy kept.
	Resolved table.Cell
}

// Diagnostics reports everything an operation did besides producing
// its table: columns excluded under non-strict matching and duplicate
// groups resolved under a non-error policy. An operation that returns
// a bare table with silent loss is a bug; Diagnostics is how the
// opt-outs stay honest.
type Diagnostics struct {
	// SkippedColumns lists selected columns excluded because the key
	// spec did not match (Strict=false only).
	SkippedColumns []string

	// Conflicts lists duplicate groups resolved by a non-error policy.
	Conflicts []Conflict
}

// Clean reports whether nothing was skipped or resolved.
func (d *Diagnostics) Clean() bool {
	return d == nil || (len(d.SkippedColumns) == 0 && len(d.Conflicts) == 0)
}
