package reshape

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvltab/colkey"
	"github.com/katalvlaran/lvltab/table"
)

// Widen spreads a long table back into wide layout (long → wide).
//
// Rows are partitioned by the identifier columns. Every distinct
// key-tuple read from the key columns becomes one output column, named
// by recomposing the tuple (KeySpec, NameTemplate, or the bare
// fragment for arity 1); the cell for a (partition, key-tuple) pair is
// that pair's value cell.
//
// The result is always dense and rectangular: one row per distinct
// partition, one widened column per key-tuple observed anywhere in the
// table. A partition lacking a key-tuple gets an explicit missing cell,
// never an absent row or column.
//
// Ordering contract: identifier columns come first, in their original
// order; widened columns follow the first occurrence of each key-tuple
// in the input scan. Rows follow the first occurrence of each
// partition.
//
// A (partition, key-tuple) pair fed by more than one source row is
// fatal under the default policy (ErrDuplicateKey); DupKeepFirst,
// DupKeepLast and DupReduce resolve it instead, and every resolved
// group is recorded in Diagnostics.Conflicts.
//
// Errors: ErrNilTable, ErrKeyArity, ErrNoValueColumn, ErrColumnOverlap,
// ErrMissingKeyCell, ErrNoComposer, ErrBadPolicy, ErrDuplicateKey,
// colkey compose errors, table schema sentinels (name collisions).
//
// Complexity: O(rows + partitions × keys) time and space.
func Widen(t *table.Table, opts WidenOptions) (*table.Table, *Diagnostics, error) {
	if t == nil {
		return nil, nil, ErrNilTable
	}
	if len(opts.KeyColumns) == 0 {
		return nil, nil, fmt.Errorf("key column names required: %w", ErrKeyArity)
	}
	if opts.ValueColumn == "" {
		return nil, nil, ErrNoValueColumn
	}
	res, err := newConflictResolver(opts.Policy, opts.Reduce)
	if err != nil {
		return nil, nil, err
	}
	compose, err := composer(opts)
	if err != nil {
		return nil, nil, err
	}

	keyCols := make([]table.Column, len(opts.KeyColumns))
	for i, n := range opts.KeyColumns {
		if keyCols[i], err = t.Column(n); err != nil {
			return nil, nil, err
		}
	}
	valCol, err := t.Column(opts.ValueColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", err, ErrNoValueColumn)
	}

	ids, err := identifierColumns(t, opts)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows     = t.RowCount()
		arity    = len(keyCols)
		idCells  = make([][]table.Cell, len(ids))
		keyCells = make([][]table.Cell, arity)
		valCells = valCol.Cells()
	)
	for i, c := range ids {
		idCells[i] = c.Cells()
	}
	for i, c := range keyCols {
		keyCells[i] = c.Cells()
	}

	// Single input scan: partitions and key-tuples in first-occurrence
	// order, duplicate groups accumulated in row order. Composite
	// tokens length-prefix their parts, so no payload byte can alias
	// two distinct identifier tuples into one partition.
	type group struct{ part, key int }
	var (
		partIdx  = make(map[string]int)
		partRows []int // first source row of each partition
		keyIdx   = make(map[string]int)
		keyOrder []colkey.KeyTuple
		groups   = make(map[group][]table.Cell)
	)
	for r := 0; r < rows; r++ {
		ptok := ""
		for i := range ids {
			tok := idCells[i][r].Token()
			ptok += strconv.Itoa(len(tok)) + ":" + tok
		}
		p, seen := partIdx[ptok]
		if !seen {
			p = len(partRows)
			partIdx[ptok] = p
			partRows = append(partRows, r)
		}

		kt := make(colkey.KeyTuple, arity)
		for i := 0; i < arity; i++ {
			cell := keyCells[i][r]
			if cell.IsMissing() {
				return nil, nil, fmt.Errorf("row %d, column %q: %w", r, opts.KeyColumns[i], ErrMissingKeyCell)
			}
			kt[i] = cell.String()
		}
		ktok := kt.Token()
		ki, known := keyIdx[ktok]
		if !known {
			ki = len(keyOrder)
			keyIdx[ktok] = ki
			keyOrder = append(keyOrder, kt)
		}

		g := group{part: p, key: ki}
		groups[g] = append(groups[g], valCells[r])
	}

	// Resolve each (partition, key) group through the conflict policy.
	diag := &Diagnostics{}
	nParts := len(partRows)
	wideCells := make([][]table.Cell, len(keyOrder))
	for ki := range wideCells {
		cells := make([]table.Cell, nParts) // zero value is Missing
		for p := 0; p < nParts; p++ {
			vals, ok := groups[group{part: p, key: ki}]
			if !ok {
				continue // density: explicit missing cell
			}
			cell, conflicted, rErr := res.resolve(vals)
			if rErr != nil {
				return nil, nil, fmt.Errorf("identifiers %v, key %v (%d source rows): %w",
					partitionCells(idCells, partRows[p]), keyOrder[ki], len(vals), rErr)
			}
			if conflicted {
				diag.Conflicts = append(diag.Conflicts, Conflict{
					Identifiers: partitionCells(idCells, partRows[p]),
					Key:         keyOrder[ki],
					Values:      vals,
					Resolved:    cell,
				})
			}
			cells[p] = cell
		}
		wideCells[ki] = cells
	}

	cols := make([]table.Column, 0, len(ids)+len(keyOrder))
	for i, c := range ids {
		cells := make([]table.Cell, nParts)
		for p, r := range partRows {
			cells[p] = idCells[i][r]
		}
		col, cErr := table.NewColumn(c.Name(), c.Type(), cells...)
		if cErr != nil {
			return nil, nil, cErr
		}
		cols = append(cols, col)
	}
	for ki, kt := range keyOrder {
		name, cErr := compose(kt)
		if cErr != nil {
			return nil, nil, cErr
		}
		col, cErr := table.NewColumn(name, valCol.Type(), wideCells[ki]...)
		if cErr != nil {
			return nil, nil, cErr
		}
		cols = append(cols, col)
	}

	out, err := table.New(cols...)
	if err != nil {
		return nil, nil, err
	}

	return out, diag, nil
}

// identifierColumns resolves the partition columns: the explicit list,
// or the complement of key and value columns in table order. Explicit
// identifiers must be disjoint from the key and value columns.
func identifierColumns(t *table.Table, opts WidenOptions) ([]table.Column, error) {
	reserved := make(map[string]struct{}, len(opts.KeyColumns)+1)
	for _, n := range opts.KeyColumns {
		reserved[n] = struct{}{}
	}
	reserved[opts.ValueColumn] = struct{}{}

	if opts.Identifiers == nil {
		var ids []table.Column
		for i := 0; i < t.ColumnCount(); i++ {
			c, _ := t.ColumnAt(i)
			if _, r := reserved[c.Name()]; !r {
				ids = append(ids, c)
			}
		}

		return ids, nil
	}

	ids := make([]table.Column, len(opts.Identifiers))
	for i, n := range opts.Identifiers {
		if _, r := reserved[n]; r {
			return nil, fmt.Errorf("identifier %q is also a key or value column: %w", n, ErrColumnOverlap)
		}
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		ids[i] = c
	}

	return ids, nil
}

// composer resolves the key-tuple → column-name function.
func composer(opts WidenOptions) (func(colkey.KeyTuple) (string, error), error) {
	switch {
	case opts.KeySpec != nil:
		if opts.KeySpec.Arity() != len(opts.KeyColumns) {
			return nil, fmt.Errorf("spec arity %d for %d key columns: %w",
				opts.KeySpec.Arity(), len(opts.KeyColumns), ErrKeyArity)
		}

		return opts.KeySpec.Compose, nil
	case opts.NameTemplate != "":
		names := opts.KeyColumns

		return func(kt colkey.KeyTuple) (string, error) {
			return colkey.ComposeTemplate(opts.NameTemplate, names, kt)
		}, nil
	case len(opts.KeyColumns) == 1:
		return colkey.Identity().Compose, nil
	default:
		return nil, ErrNoComposer
	}
}

// partitionCells copies one row's identifier cells for diagnostics.
func partitionCells(idCells [][]table.Cell, row int) []table.Cell {
	cells := make([]table.Cell, len(idCells))
	for i := range idCells {
		cells[i] = idCells[i][row]
	}

	return cells
}
