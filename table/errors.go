// Package table: sentinel error set.
// All constructors and accessors return these sentinels; tests match
// them via errors.Is. Wrapping with fmt.Errorf("ctx: %w", ErrX) is
// allowed to add the offending column/row, never to replace the
// sentinel.

package table

import "errors"

var (
	// ErrSchemaLengthMismatch is returned when columns of differing
	// lengths are combined into one table.
	ErrSchemaLengthMismatch = errors.New("table: column lengths are not uniform")

	// ErrSchemaDuplicateColumn is returned when two columns share a name.
	ErrSchemaDuplicateColumn = errors.New("table: duplicate column name")

	// ErrSchemaEmptyName is returned for a column with an empty name.
	ErrSchemaEmptyName = errors.New("table: empty column name")

	// ErrTypeMismatch is returned when a present cell's type does not
	// match the column's declared type (Any accepts every type).
	// There is no silent coercion anywhere in this package.
	ErrTypeMismatch = errors.New("table: cell type does not match column type")

	// ErrUnknownColumn is returned when a column name is not present
	// in the table.
	ErrUnknownColumn = errors.New("table: unknown column")

	// ErrRowOutOfRange indicates a row index outside [0, RowCount).
	// Public indexers return this, they do not panic.
	ErrRowOutOfRange = errors.New("table: row index out of range")

	// ErrRecordWidth is returned by FromRecords when a record's length
	// differs from the header's.
	ErrRecordWidth = errors.New("table: record width does not match header")
)
