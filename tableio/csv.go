package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/lvltab/table"
)

var (
	// ErrEmptyInput is returned when the input holds no rows at all.
	ErrEmptyInput = errors.New("tableio: input is empty")

	// ErrParse is returned when a non-missing field does not parse as
	// its column's declared type. The wrap names row and column.
	ErrParse = errors.New("tableio: cannot parse field as declared type")

	// ErrTypeCount is returned when WithTypes declares a different
	// number of types than the input has columns.
	ErrTypeCount = errors.New("tableio: declared types do not match column count")

	// ErrNilTable is returned by WriteCSV for a nil table.
	ErrNilTable = errors.New("tableio: nil table")
)

// ReadCSV parses delimiter-separated text into a table.
//
// The first row names the columns unless WithNoHeader synthesizes
// c1..cn. Fields equal to a missing token (or empty) become missing
// cells; everything else parses per the declared column type, Text
// when no types were declared.
//
// Errors: ErrEmptyInput, ErrTypeCount, ErrParse (wrapped with row and
// column), csv reader errors (ragged rows included), table schema
// sentinels (duplicate header names).
func ReadCSV(r io.Reader, opts ...Option) (*table.Table, error) {
	o := gatherOptions(opts)

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	var header []string
	if o.hasHeader {
		header = rows[0]
		rows = rows[1:]
	} else {
		header = make([]string, len(rows[0]))
		for i := range header {
			header[i] = "c" + strconv.Itoa(i+1)
		}
	}

	types := o.types
	if types == nil {
		types = make([]table.Type, len(header))
		for i := range types {
			types[i] = table.Text
		}
	} else if len(types) != len(header) {
		return nil, fmt.Errorf("%d types for %d columns: %w", len(types), len(header), ErrTypeCount)
	}

	missing := make(map[string]struct{}, len(o.missingTokens)+1)
	missing[""] = struct{}{}
	for _, tok := range o.missingTokens {
		missing[tok] = struct{}{}
	}

	records := make([][]table.Cell, len(rows))
	for ri, row := range rows {
		rec := make([]table.Cell, len(row))
		for ci, field := range row {
			if _, miss := missing[field]; miss {
				rec[ci] = table.Missing()
				continue
			}
			typ := table.Text
			if ci < len(types) {
				typ = types[ci]
			}
			cell, pErr := parseField(field, typ)
			if pErr != nil {
				return nil, fmt.Errorf("row %d, column %q: field %q: %w", ri+1, columnRef(header, ci), field, pErr)
			}
			rec[ci] = cell
		}
		records[ri] = rec
	}

	return table.FromRecords(header, types, records)
}

// WriteCSV renders a table as delimiter-separated text. The header row
// is written unless WithNoHeader; missing cells render as the first
// configured missing token.
func WriteCSV(w io.Writer, t *table.Table, opts ...Option) error {
	if t == nil {
		return ErrNilTable
	}
	o := gatherOptions(opts)

	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter
	if o.hasHeader {
		if err := cw.Write(t.ColumnNames()); err != nil {
			return fmt.Errorf("tableio: %w", err)
		}
	}

	record := make([]string, t.ColumnCount())
	for r := 0; r < t.RowCount(); r++ {
		row, err := t.Row(r)
		if err != nil {
			return err
		}
		for i, cell := range row {
			if cell.IsMissing() {
				record[i] = o.missingTokens[0]
			} else {
				record[i] = cell.String()
			}
		}
		if err = cw.Write(record); err != nil {
			return fmt.Errorf("tableio: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tableio: %w", err)
	}

	return nil
}

// parseField converts one non-missing field per the declared type.
// Any reads as Text: delimiter-separated input carries no richer tag.
func parseField(field string, typ table.Type) (table.Cell, error) {
	switch typ {
	case table.Text, table.Any:
		return table.TextCell(field), nil
	case table.Int:
		i, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return table.Cell{}, ErrParse
		}

		return table.IntCell(i), nil
	case table.Real:
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return table.Cell{}, ErrParse
		}

		return table.RealCell(f), nil
	case table.Bool:
		b, err := strconv.ParseBool(field)
		if err != nil {
			return table.Cell{}, ErrParse
		}

		return table.BoolCell(b), nil
	default:
		return table.Cell{}, ErrParse
	}
}

// columnRef names a column for error context, falling back to the
// 1-based position for short headers.
func columnRef(header []string, i int) string {
	if i < len(header) {
		return header[i]
	}

	return "#" + strconv.Itoa(i+1)
}
