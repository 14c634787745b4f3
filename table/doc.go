// Package table provides the minimal columnar data model that the
// lvltab reshape engine operates on: named, typed columns of equal
// length, with first-class missing cells.
//
// 🚀 What is table?
//
//	An immutable, in-memory table of typed columns:
//	  • Column types: Text, Int, Real, Bool, Any
//	  • Uniform row count across all columns (enforced at construction)
//	  • Unique, non-empty column names (enforced at construction)
//	  • Missing cells are explicit values, distinct from "" or 0,
//	    and survive every operation unchanged
//
// ✨ Why immutable?
//
//   - Reshape operations (see package reshape) are pure functions:
//     every operation returns a new *Table and never touches its input.
//   - Chained pipelines stay composable and testable in isolation.
//   - No locks, no defensive copying at call sites.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvltab/table"
//
//	subject, _ := table.NewColumn("subject", table.Text,
//	    table.TextCell("a"), table.TextCell("b"))
//	dose10, _ := table.NewColumn("dose10mg", table.Real,
//	    table.RealCell(1.2), table.Missing())
//
//	t, err := table.New(subject, dose10)
//	if err != nil {
//	    // ErrSchemaLengthMismatch, ErrSchemaDuplicateColumn, ...
//	}
//	fmt.Println(t.RowCount(), t.ColumnNames())
//
// Construction is all-or-nothing: a failed New / FromRecords returns a
// sentinel error (see errors.go) and no partially built table.
//
// Row order is significant for display and for the ordering contracts
// of package reshape, but rows carry no identity beyond position.
package table
