package table

import "fmt"

// Column is one named, typed sequence of cells. Columns are value
// types: NewColumn copies the cell slice and accessors hand out copies,
// so a Column can never be mutated through aliasing.
type Column struct {
	name  string
	typ   Type
	cells []Cell
}

// NewColumn validates and builds a column.
//
// Contracts:
//   - name must be non-empty (ErrSchemaEmptyName).
//   - every present cell must fit typ (ErrTypeMismatch); Any accepts all.
//
// Complexity: O(n) over the cells.
func NewColumn(name string, typ Type, cells ...Cell) (Column, error) {
	if name == "" {
		return Column{}, ErrSchemaEmptyName
	}
	for i, c := range cells {
		if !c.fits(typ) {
			return Column{}, fmt.Errorf("column %q, row %d: %s cell in %s column: %w",
				name, i, c.Type(), typ, ErrTypeMismatch)
		}
	}
	cp := make([]Cell, len(cells))
	copy(cp, cells)

	return Column{name: name, typ: typ, cells: cp}, nil
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the declared column type.
func (c Column) Type() Type { return c.typ }

// Len returns the number of cells.
func (c Column) Len() int { return len(c.cells) }

// At returns the cell at row i, or ErrRowOutOfRange.
func (c Column) At(i int) (Cell, error) {
	if i < 0 || i >= len(c.cells) {
		return Cell{}, fmt.Errorf("column %q: index %d of %d: %w", c.name, i, len(c.cells), ErrRowOutOfRange)
	}

	return c.cells[i], nil
}

// Cells returns a copy of all cells in row order.
func (c Column) Cells() []Cell {
	cp := make([]Cell, len(c.cells))
	copy(cp, c.cells)

	return cp
}

// Table is an ordered sequence of named columns with a uniform row
// count. Tables are immutable: no method mutates the receiver, and
// every reshape operation returns a fresh table.
type Table struct {
	cols  []Column
	index map[string]int // column name -> position in cols
	rows  int
}

// New builds a table from columns, in the given order.
//
// Errors:
//   - ErrSchemaEmptyName      — a column has an empty name.
//   - ErrSchemaDuplicateColumn — two columns share a name.
//   - ErrSchemaLengthMismatch — columns differ in length.
//
// A table with zero columns is valid and has zero rows.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		cols:  make([]Column, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c.name == "" {
			return nil, ErrSchemaEmptyName
		}
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("column %q: %w", c.name, ErrSchemaDuplicateColumn)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w",
				c.name, c.Len(), t.rows, ErrSchemaLengthMismatch)
		}
		t.cols[i] = c
		t.index[c.name] = i
	}

	return t, nil
}

// FromRecords builds a table row-wise: header names the columns, types
// declares per-column types (nil means all Any), records supplies one
// []Cell per row.
//
// Errors: the New sentinels, plus ErrRecordWidth when a record's length
// differs from the header's, plus ErrTypeMismatch for ill-typed cells.
func FromRecords(header []string, types []Type, records [][]Cell) (*Table, error) {
	if types != nil && len(types) != len(header) {
		return nil, fmt.Errorf("%d types for %d columns: %w", len(types), len(header), ErrRecordWidth)
	}
	colCells := make([][]Cell, len(header))
	for i := range colCells {
		colCells[i] = make([]Cell, 0, len(records))
	}
	for r, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("record %d has %d cells, want %d: %w", r, len(rec), len(header), ErrRecordWidth)
		}
		for i, c := range rec {
			colCells[i] = append(colCells[i], c)
		}
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		typ := Any
		if types != nil {
			typ = types[i]
		}
		col, err := NewColumn(name, typ, colCells[i]...)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	return New(cols...)
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return t.rows }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.cols) }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}

	return names
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]

	return ok
}

// Column returns the named column, or ErrUnknownColumn.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}

	return t.cols[i], nil
}

// ColumnAt returns the column at position i in table order, or
// ErrRowOutOfRange for an invalid position.
func (t *Table) ColumnAt(i int) (Column, error) {
	if i < 0 || i >= len(t.cols) {
		return Column{}, fmt.Errorf("column index %d of %d: %w", i, len(t.cols), ErrRowOutOfRange)
	}

	return t.cols[i], nil
}

// Cell returns the cell at (row, column name).
func (t *Table) Cell(row int, column string) (Cell, error) {
	c, err := t.Column(column)
	if err != nil {
		return Cell{}, err
	}

	return c.At(row)
}

// Row returns a copy of row i, one cell per column in table order.
func (t *Table) Row(i int) ([]Cell, error) {
	if i < 0 || i >= t.rows {
		return nil, fmt.Errorf("row %d of %d: %w", i, t.rows, ErrRowOutOfRange)
	}
	row := make([]Cell, len(t.cols))
	for j, c := range t.cols {
		row[j] = c.cells[i]
	}

	return row, nil
}

// Project returns a new table holding the named columns in the given
// order. The inverse reshape laws are stated "up to column order";
// Project is the reordering that closes them.
//
// Errors: ErrUnknownColumn for an unknown name; ErrSchemaDuplicateColumn
// for a name listed twice.
func (t *Table) Project(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}

	return New(cols...)
}

// Equal reports whether two tables have identical column order, names,
// declared types and cell contents. Missing cells compare equal only
// to missing cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.cols) != len(o.cols) || t.rows != o.rows {
		return false
	}
	for i, c := range t.cols {
		oc := o.cols[i]
		if c.name != oc.name || c.typ != oc.typ {
			return false
		}
		for r := range c.cells {
			if c.cells[r] != oc.cells[r] {
				return false
			}
		}
	}

	return true
}
