// Package tableio adapts between delimiter-separated text (CSV, TSV)
// and table.Table values. It is a collaborator of the reshape core,
// not part of it: the core only requires that some adapter can produce
// a well-formed table and render one back into rows.
//
// ✨ What it does:
//
//   - ReadCSV parses a header row (or synthesizes c1..cn names),
//     applies optional per-column declared types with strict parsing,
//     and maps a configurable token set ("NA" and the empty field by
//     default) to explicit missing cells.
//   - WriteCSV renders a table back out, missing cells as the
//     configured token.
//   - TSV and friends are one option away: WithDelimiter('\t').
//
// ⚙️ Usage:
//
//	t, err := tableio.ReadCSV(f,
//	    tableio.WithTypes(table.Text, table.Real, table.Real),
//	    tableio.WithMissingTokens("NA", "n/a"),
//	)
//	...
//	err = tableio.WriteCSV(os.Stdout, t)
//
// Known encoding limit: a present empty Text cell writes as an empty
// field, which reads back as missing. Choose a quoting convention
// upstream if that distinction matters; the table model itself keeps
// the two apart.
package tableio
