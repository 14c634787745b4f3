// Package reshape converts tables between wide and long (tidy) layout.
//
// 🚀 The two directions:
//
//   - Narrow (long-ification) collapses a set of value-bearing columns
//     into key/value rows: one output row per input row per selected
//     column. Column names are decomposed into key fragments via a
//     colkey.KeySpec, so a header like "dose100mg" becomes the key
//     value "100" in a "dose" column.
//   - Widen (wide-ification) is the inverse: rows are partitioned by
//     identifier columns and each distinct key-tuple becomes one output
//     column, named by recomposing the tuple.
//
// ✨ Guarantees:
//
//   - Pure: inputs are never mutated; every operation returns a fresh
//     *table.Table or an error, never both.
//   - Deterministic ordering, by contract: Narrow output is grouped by
//     source row (stable input order), then by the left-to-right order
//     of the selected columns. Widen output rows follow the first
//     occurrence of each identifier partition; widened columns follow
//     the first occurrence of each key-tuple in the input scan, after
//     the identifier columns in their original order.
//   - Dense results: Widen always returns a rectangular table; a
//     partition lacking some key-tuple gets an explicit missing cell.
//   - Missing cells pass through Narrow untouched; they are never
//     dropped or coerced.
//   - No silent loss: duplicate (partition, key) combinations fail
//     with ErrDuplicateKey unless a policy is chosen explicitly, and
//     every non-error resolution is reported in Diagnostics.
//
// ⚙️ Usage:
//
//	spec, _ := colkey.Pattern(`dose(\d+)mg`)
//	long, diag, err := reshape.Narrow(t, reshape.NarrowOptions{
//	    KeySpec:     spec,
//	    KeyColumns:  []string{"dose"},
//	    ValueColumn: "response",
//	    Strict:      true,
//	})
//
//	wide, diag, err := reshape.Widen(long, reshape.WidenOptions{
//	    Identifiers:  []string{"subject"},
//	    KeyColumns:   []string{"dose"},
//	    ValueColumn:  "response",
//	    NameTemplate: "dose{1}mg",
//	})
//
// Laws (tested in roundtrip_test.go):
//
//   - Row count: Narrow output has RowCount * len(selected) rows.
//   - Round trip: Widen(Narrow(t)) reproduces t up to column order for
//     separator-based key specs.
//   - Conflict: duplicate (partition, key) is fatal by default;
//     DupKeepFirst keeps the value from the earliest input row.
//
// Everything here is single-threaded and allocation-proportional to
// the output size: Narrow is O(rows × selected), Widen is
// O(rows + partitions × keys).
package reshape
