package reshape

import (
	"fmt"

	"github.com/katalvlaran/lvltab/colkey"
	"github.com/katalvlaran/lvltab/table"
)

// Narrow collapses the selected value-bearing columns of t into
// key/value rows (wide → long).
//
// For each input row and each selected column c, one output row is
// emitted: the identifier cells (all unselected columns, unchanged),
// the key fragments decomposed from c's name, and c's cell in the
// value column. Missing cells pass through as missing. Nothing is
// aggregated, merged or dropped: the output has exactly
// t.RowCount() × len(selected) rows.
//
// Ordering contract: output rows are grouped by source row in input
// order; within one source row they follow the left-to-right table
// order of the selected columns. Consumers may rely on this.
//
// Selection and key handling are configured via NarrowOptions; see its
// doc for the precedence rules. Columns a strict spec cannot decompose
// fail with ErrPatternMismatch naming the column; with Strict=false
// they stay behind as identifier columns and are listed in
// Diagnostics.SkippedColumns.
//
// Errors: ErrNilTable, ErrNoValueColumn, ErrKeyArity,
// ErrNoSelectedColumns, ErrPatternMismatch, table.ErrUnknownColumn
// (unknown explicit column), table schema sentinels (output name
// collisions).
//
// Complexity: O(rows × selected) time and output space.
func Narrow(t *table.Table, opts NarrowOptions) (*table.Table, *Diagnostics, error) {
	if t == nil {
		return nil, nil, ErrNilTable
	}
	if opts.ValueColumn == "" {
		return nil, nil, ErrNoValueColumn
	}
	spec := opts.KeySpec
	if spec == nil {
		spec = colkey.Identity()
	}
	keyCols, err := keyColumnNames(opts.KeyColumns, spec)
	if err != nil {
		return nil, nil, err
	}

	candidates, err := selectValueColumns(t, opts)
	if err != nil {
		return nil, nil, err
	}

	diag := &Diagnostics{}
	kept := make([]table.Column, 0, len(candidates))
	tuples := make([]colkey.KeyTuple, 0, len(candidates))
	for _, c := range candidates {
		kt, ok := spec.Decompose(c.Name())
		if !ok {
			if opts.Strict {
				return nil, nil, fmt.Errorf("column %q: %w", c.Name(), ErrPatternMismatch)
			}
			diag.SkippedColumns = append(diag.SkippedColumns, c.Name())
			continue
		}
		kept = append(kept, c)
		tuples = append(tuples, kt)
	}
	if len(kept) == 0 {
		return nil, nil, ErrNoSelectedColumns
	}

	// Skipped columns do not participate: they stay behind as
	// identifier columns alongside the unselected ones.
	keptSet := make(map[string]struct{}, len(kept))
	for _, c := range kept {
		keptSet[c.Name()] = struct{}{}
	}
	var ids []table.Column
	for i := 0; i < t.ColumnCount(); i++ {
		c, _ := t.ColumnAt(i)
		if _, sel := keptSet[c.Name()]; !sel {
			ids = append(ids, c)
		}
	}

	var (
		rows    = t.RowCount()
		k       = len(kept)
		arity   = spec.Arity()
		outRows = rows * k
	)
	idCells := make([][]table.Cell, len(ids))
	for i, c := range ids {
		idCells[i] = c.Cells()
	}
	valCells := make([][]table.Cell, k)
	for j, c := range kept {
		valCells[j] = c.Cells()
	}

	idOut := make([][]table.Cell, len(ids))
	for i := range idOut {
		idOut[i] = make([]table.Cell, 0, outRows)
	}
	keyOut := make([][]table.Cell, arity)
	for f := range keyOut {
		keyOut[f] = make([]table.Cell, 0, outRows)
	}
	valOut := make([]table.Cell, 0, outRows)

	// Row-major emission: source row outermost, selected column inner,
	// per the ordering contract.
	for r := 0; r < rows; r++ {
		for j := 0; j < k; j++ {
			for i := range ids {
				idOut[i] = append(idOut[i], idCells[i][r])
			}
			for f := 0; f < arity; f++ {
				keyOut[f] = append(keyOut[f], table.TextCell(tuples[j][f]))
			}
			valOut = append(valOut, valCells[j][r])
		}
	}

	cols := make([]table.Column, 0, len(ids)+arity+1)
	for i, c := range ids {
		col, cErr := table.NewColumn(c.Name(), c.Type(), idOut[i]...)
		if cErr != nil {
			return nil, nil, cErr
		}
		cols = append(cols, col)
	}
	for f, name := range keyCols {
		col, cErr := table.NewColumn(name, table.Text, keyOut[f]...)
		if cErr != nil {
			return nil, nil, cErr
		}
		cols = append(cols, col)
	}
	valCol, err := table.NewColumn(opts.ValueColumn, commonType(kept), valOut...)
	if err != nil {
		return nil, nil, err
	}
	cols = append(cols, valCol)

	out, err := table.New(cols...)
	if err != nil {
		return nil, nil, err
	}

	return out, diag, nil
}

// NarrowMulti collapses wide columns carrying several independent
// measurement kinds (e.g. "T0_Control" response columns next to
// "T0_Control" weight columns) into one long table with one value
// column per kind.
//
// Each ValueKind maps key-tuples to its source columns. All kinds must
// cover exactly the same key-tuple set, each tuple exactly once;
// anything else is ErrValueKindConflict. Key-tuple output order
// follows the first kind's source order. Rows are grouped by source
// row, then by key-tuple, mirroring Narrow's contract; the output has
// t.RowCount() × len(key-tuples) rows.
//
// Identifier columns are every column no kind consumes.
//
// Errors: ErrNilTable, ErrNoValueColumn (no kinds or unnamed kind),
// ErrKeyArity, ErrValueKindConflict, table.ErrUnknownColumn.
func NarrowMulti(t *table.Table, opts MultiOptions) (*table.Table, *Diagnostics, error) {
	if t == nil {
		return nil, nil, ErrNilTable
	}
	if len(opts.Kinds) == 0 {
		return nil, nil, fmt.Errorf("no value kinds: %w", ErrNoValueColumn)
	}
	arity := len(opts.KeyColumns)
	if arity == 0 {
		return nil, nil, fmt.Errorf("key column names required: %w", ErrKeyArity)
	}

	// The first kind fixes the key-tuple order.
	first := opts.Kinds[0]
	keyOrder := make([]colkey.KeyTuple, 0, len(first.Sources))
	keyIdx := make(map[string]int, len(first.Sources))
	for _, src := range first.Sources {
		if len(src.Key) != arity {
			return nil, nil, fmt.Errorf("kind %q, column %q: tuple arity %d, want %d: %w",
				first.Name, src.Column, len(src.Key), arity, ErrKeyArity)
		}
		tok := src.Key.Token()
		if _, dup := keyIdx[tok]; dup {
			return nil, nil, fmt.Errorf("kind %q maps key %v twice: %w", first.Name, src.Key, ErrValueKindConflict)
		}
		keyIdx[tok] = len(keyOrder)
		keyOrder = append(keyOrder, src.Key)
	}

	// Resolve every kind's sources against the table and the key set.
	var (
		nKeys     = len(keyOrder)
		used      = make(map[string]struct{})               // all consumed source columns
		kindCells = make([][][]table.Cell, len(opts.Kinds)) // kind × key → column cells
		kindTypes = make([]table.Type, len(opts.Kinds))
	)
	for ki, kind := range opts.Kinds {
		if kind.Name == "" {
			return nil, nil, fmt.Errorf("unnamed value kind: %w", ErrNoValueColumn)
		}
		if len(kind.Sources) != nKeys {
			return nil, nil, fmt.Errorf("kind %q covers %d keys, kind %q covers %d: %w",
				kind.Name, len(kind.Sources), first.Name, nKeys, ErrValueKindConflict)
		}
		cells := make([][]table.Cell, nKeys)
		srcCols := make([]table.Column, nKeys)
		for _, src := range kind.Sources {
			if len(src.Key) != arity {
				return nil, nil, fmt.Errorf("kind %q, column %q: tuple arity %d, want %d: %w",
					kind.Name, src.Column, len(src.Key), arity, ErrKeyArity)
			}
			pos, known := keyIdx[src.Key.Token()]
			if !known {
				return nil, nil, fmt.Errorf("kind %q has key %v unknown to kind %q: %w",
					kind.Name, src.Key, first.Name, ErrValueKindConflict)
			}
			if cells[pos] != nil {
				return nil, nil, fmt.Errorf("kind %q maps key %v twice: %w", kind.Name, src.Key, ErrValueKindConflict)
			}
			col, cErr := t.Column(src.Column)
			if cErr != nil {
				return nil, nil, cErr
			}
			cells[pos] = col.Cells()
			srcCols[pos] = col
			used[src.Column] = struct{}{}
		}
		kindCells[ki] = cells
		kindTypes[ki] = commonType(srcCols)
	}

	var ids []table.Column
	for i := 0; i < t.ColumnCount(); i++ {
		c, _ := t.ColumnAt(i)
		if _, consumed := used[c.Name()]; !consumed {
			ids = append(ids, c)
		}
	}

	var (
		rows    = t.RowCount()
		outRows = rows * nKeys
	)
	idCells := make([][]table.Cell, len(ids))
	for i, c := range ids {
		idCells[i] = c.Cells()
	}
	idOut := make([][]table.Cell, len(ids))
	for i := range idOut {
		idOut[i] = make([]table.Cell, 0, outRows)
	}
	keyOut := make([][]table.Cell, arity)
	for f := range keyOut {
		keyOut[f] = make([]table.Cell, 0, outRows)
	}
	valOut := make([][]table.Cell, len(opts.Kinds))
	for ki := range valOut {
		valOut[ki] = make([]table.Cell, 0, outRows)
	}

	for r := 0; r < rows; r++ {
		for pos, kt := range keyOrder {
			for i := range ids {
				idOut[i] = append(idOut[i], idCells[i][r])
			}
			for f := 0; f < arity; f++ {
				keyOut[f] = append(keyOut[f], table.TextCell(kt[f]))
			}
			for ki := range opts.Kinds {
				valOut[ki] = append(valOut[ki], kindCells[ki][pos][r])
			}
		}
	}

	cols := make([]table.Column, 0, len(ids)+arity+len(opts.Kinds))
	for i, c := range ids {
		col, cErr := table.NewColumn(c.Name(), c.Type(), idOut[i]...)
		if cErr != nil {
			return nil, nil, cErr
		}
		cols = append(cols, col)
	}
	for f, name := range opts.KeyColumns {
		col, cErr := table.NewColumn(name, table.Text, keyOut[f]...)
		if cErr != nil {
			return nil, nil, cErr
		}
		cols = append(cols, col)
	}
	for ki, kind := range opts.Kinds {
		col, cErr := table.NewColumn(kind.Name, kindTypes[ki], valOut[ki]...)
		if cErr != nil {
			return nil, nil, cErr
		}
		cols = append(cols, col)
	}

	out, err := table.New(cols...)
	if err != nil {
		return nil, nil, err
	}

	return out, &Diagnostics{}, nil
}

// selectValueColumns resolves the value-bearing columns in table order
// per the NarrowOptions precedence: explicit list, predicate, key spec.
func selectValueColumns(t *table.Table, opts NarrowOptions) ([]table.Column, error) {
	var names []string
	switch {
	case len(opts.Columns) > 0:
		for _, n := range opts.Columns {
			if !t.HasColumn(n) {
				return nil, fmt.Errorf("selected column %q: %w", n, table.ErrUnknownColumn)
			}
		}
		names = colkey.Filter(t, colkey.ByName(opts.Columns...))
	case opts.Select != nil:
		names = colkey.Filter(t, opts.Select)
	case opts.KeySpec != nil:
		names = colkey.Filter(t, colkey.ByKeySpec(opts.KeySpec))
	default:
		return nil, ErrNoSelectedColumns
	}
	if len(names) == 0 {
		return nil, ErrNoSelectedColumns
	}

	cols := make([]table.Column, len(names))
	for i, n := range names {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}

	return cols, nil
}

// keyColumnNames resolves the output key column names: the explicit
// list when given, otherwise the spec's group names when complete.
func keyColumnNames(given []string, spec colkey.KeySpec) ([]string, error) {
	if len(given) > 0 {
		if len(given) != spec.Arity() {
			return nil, fmt.Errorf("%d key columns for arity %d: %w", len(given), spec.Arity(), ErrKeyArity)
		}

		return given, nil
	}
	names := spec.Names()
	if len(names) == spec.Arity() {
		complete := true
		for _, n := range names {
			if n == "" {
				complete = false
				break
			}
		}
		if complete {
			return names, nil
		}
	}

	return nil, fmt.Errorf("key column names required: %w", ErrKeyArity)
}

// commonType returns the shared declared type of the columns, or Any
// when they disagree. No cell is ever coerced; Any only widens the
// declared constraint.
func commonType(cols []table.Column) table.Type {
	if len(cols) == 0 {
		return table.Any
	}
	typ := cols[0].Type()
	for _, c := range cols[1:] {
		if c.Type() != typ {
			return table.Any
		}
	}

	return typ
}
