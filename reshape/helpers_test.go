package reshape_test

import (
	"testing"

	"github.com/katalvlaran/lvltab/table"
)

// col builds a column or fails the test.
func col(t *testing.T, name string, typ table.Type, cells ...table.Cell) table.Column {
	t.Helper()
	c, err := table.NewColumn(name, typ, cells...)
	if err != nil {
		t.Fatalf("NewColumn(%q): %v", name, err)
	}

	return c
}

// tab builds a table or fails the test.
func tab(t *testing.T, cols ...table.Column) *table.Table {
	t.Helper()
	tb, err := table.New(cols...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return tb
}

// doseWide builds the canonical wide scenario:
//
//	subject  dose10mg  dose100mg
//	a        0.11      1.21
//	b        0.12      1.22
func doseWide(t *testing.T) *table.Table {
	t.Helper()

	return tab(t,
		col(t, "subject", table.Text, table.TextCell("a"), table.TextCell("b")),
		col(t, "dose10mg", table.Real, table.RealCell(0.11), table.RealCell(0.12)),
		col(t, "dose100mg", table.Real, table.RealCell(1.21), table.RealCell(1.22)),
	)
}

// textColumn reads a whole column as display strings, "NA" for missing.
func textColumn(t *testing.T, tb *table.Table, name string) []string {
	t.Helper()
	c, err := tb.Column(name)
	if err != nil {
		t.Fatalf("Column(%q): %v", name, err)
	}
	cells := c.Cells()
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = cell.String()
	}

	return out
}
