// Package reshape: sentinel error set.
// Operations return these sentinels, optionally wrapped with the
// offending column or key via fmt.Errorf("...: %w", ErrX); callers
// match with errors.Is. Every failure is all-or-nothing: no operation
// hands back a partially built table.

package reshape

import "errors"

var (
	// ErrNilTable is returned when the input table is nil.
	ErrNilTable = errors.New("reshape: nil input table")

	// ErrNoSelectedColumns is returned when no value-bearing columns
	// were (or remained) selected for narrowing.
	ErrNoSelectedColumns = errors.New("reshape: no value-bearing columns selected")

	// ErrNoValueColumn is returned when the value column name is empty
	// (Narrow) or names no column of the input (Widen).
	ErrNoValueColumn = errors.New("reshape: value column required")

	// ErrKeyArity is returned when the key column names and the
	// key-tuple arity disagree.
	ErrKeyArity = errors.New("reshape: key columns do not match key-tuple arity")

	// ErrPatternMismatch is returned in strict mode when a selected
	// column name does not conform to the key spec. The wrap names the
	// offending column. Non-strict mode excludes the column and lists
	// it in Diagnostics.SkippedColumns instead.
	ErrPatternMismatch = errors.New("reshape: column name does not conform to key spec")

	// ErrDuplicateKey is returned by Widen under the default policy
	// when one (partition, key-tuple) pair maps to more than one source
	// row. Silent collapsing is the correctness hazard this sentinel
	// exists to surface; resolution must be opted into.
	ErrDuplicateKey = errors.New("reshape: duplicate identifier and key combination")

	// ErrValueKindConflict is returned by NarrowMulti when the value
	// kinds disagree: a kind maps one key-tuple twice, or two kinds
	// cover different key-tuple sets.
	ErrValueKindConflict = errors.New("reshape: value kinds cover inconsistent key-tuple sets")

	// ErrMissingKeyCell is returned by Widen when a key column holds a
	// missing cell: a key fragment cannot be absent.
	ErrMissingKeyCell = errors.New("reshape: missing cell in key column")

	// ErrColumnOverlap is returned when identifier, key and value
	// column sets are not pairwise disjoint.
	ErrColumnOverlap = errors.New("reshape: identifier, key and value columns must be disjoint")

	// ErrNoComposer is returned by Widen when key-tuples have more than
	// one fragment and neither a KeySpec nor a NameTemplate was given
	// to compose output column names.
	ErrNoComposer = errors.New("reshape: multi-fragment keys require a key spec or naming template")

	// ErrBadPolicy is returned when DupReduce is selected without a
	// Reduce function.
	ErrBadPolicy = errors.New("reshape: DupReduce policy requires a Reduce function")
)
