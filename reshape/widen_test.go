package reshape_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvltab/colkey"
	"github.com/katalvlaran/lvltab/reshape"
	"github.com/katalvlaran/lvltab/table"
)

// WidenSuite exercises wide-ification: partitioning, density, naming,
// and the duplicate-key policies.
type WidenSuite struct {
	suite.Suite
}

// longDose builds the long form of the dose scenario:
//
//	subject  dose  response
//	a        10    0.11
//	a        100   1.21
//	b        10    0.12
//	b        100   1.22
func (s *WidenSuite) longDose() *table.Table {
	t := s.T()

	return tab(t,
		col(t, "subject", table.Text,
			table.TextCell("a"), table.TextCell("a"), table.TextCell("b"), table.TextCell("b")),
		col(t, "dose", table.Text,
			table.TextCell("10"), table.TextCell("100"), table.TextCell("10"), table.TextCell("100")),
		col(t, "response", table.Real,
			table.RealCell(0.11), table.RealCell(1.21), table.RealCell(0.12), table.RealCell(1.22)),
	)
}

// TestBasic verifies the long→wide direction with a naming template.
func (s *WidenSuite) TestBasic() {
	wide, diag, err := reshape.Widen(s.longDose(), reshape.WidenOptions{
		Identifiers:  []string{"subject"},
		KeyColumns:   []string{"dose"},
		ValueColumn:  "response",
		NameTemplate: "dose{1}mg",
	})
	require.NoError(s.T(), err)
	require.True(s.T(), diag.Clean())

	require.Equal(s.T(), []string{"subject", "dose10mg", "dose100mg"}, wide.ColumnNames())
	require.Equal(s.T(), 2, wide.RowCount())
	require.Equal(s.T(), []string{"0.11", "0.12"}, textColumn(s.T(), wide, "dose10mg"))
	require.Equal(s.T(), []string{"1.21", "1.22"}, textColumn(s.T(), wide, "dose100mg"))

	// The widened columns inherit the value column's declared type.
	c, err := wide.Column("dose10mg")
	require.NoError(s.T(), err)
	require.Equal(s.T(), table.Real, c.Type())
}

// TestDefaultIdentifiers verifies the complement rule: everything that
// is not a key or value column partitions the rows.
func (s *WidenSuite) TestDefaultIdentifiers() {
	wide, _, err := reshape.Widen(s.longDose(), reshape.WidenOptions{
		KeyColumns:   []string{"dose"},
		ValueColumn:  "response",
		NameTemplate: "dose{1}mg",
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"subject", "dose10mg", "dose100mg"}, wide.ColumnNames())
}

// TestDensityInvariant verifies the result is rectangular: a partition
// lacking a key-tuple gets an explicit missing cell.
func (s *WidenSuite) TestDensityInvariant() {
	t := s.T()
	// Subject "b" has no dose-100 observation.
	long := tab(t,
		col(t, "subject", table.Text,
			table.TextCell("a"), table.TextCell("a"), table.TextCell("b")),
		col(t, "dose", table.Text,
			table.TextCell("10"), table.TextCell("100"), table.TextCell("10")),
		col(t, "response", table.Real,
			table.RealCell(0.11), table.RealCell(1.21), table.RealCell(0.12)),
	)

	wide, _, err := reshape.Widen(long, reshape.WidenOptions{
		Identifiers:  []string{"subject"},
		KeyColumns:   []string{"dose"},
		ValueColumn:  "response",
		NameTemplate: "dose{1}mg",
	})
	require.NoError(t, err)
	require.Equal(t, 2, wide.RowCount())
	require.Equal(t, []string{"subject", "dose10mg", "dose100mg"}, wide.ColumnNames())

	// Every column has exactly one cell per partition.
	for _, name := range wide.ColumnNames() {
		c, cErr := wide.Column(name)
		require.NoError(t, cErr)
		require.Equal(t, wide.RowCount(), c.Len())
	}

	hole, err := wide.Cell(1, "dose100mg")
	require.NoError(t, err)
	require.True(t, hole.IsMissing(), "absent (partition, key) must be an explicit missing cell")
}

// TestColumnAndRowOrder verifies first-occurrence ordering of both
// partitions and key-tuples.
func (s *WidenSuite) TestColumnAndRowOrder() {
	t := s.T()
	long := tab(t,
		col(t, "id", table.Text,
			table.TextCell("z"), table.TextCell("m"), table.TextCell("z"), table.TextCell("m")),
		col(t, "k", table.Text,
			table.TextCell("beta"), table.TextCell("alpha"), table.TextCell("alpha"), table.TextCell("beta")),
		col(t, "v", table.Int,
			table.IntCell(1), table.IntCell(2), table.IntCell(3), table.IntCell(4)),
	)

	wide, _, err := reshape.Widen(long, reshape.WidenOptions{
		KeyColumns:  []string{"k"},
		ValueColumn: "v",
	})
	require.NoError(t, err)

	// "beta" was scanned before "alpha"; "z" before "m". Neither gets
	// sorted: the contract is first occurrence, not lexical order.
	require.Equal(t, []string{"id", "beta", "alpha"}, wide.ColumnNames())
	require.Equal(t, []string{"z", "m"}, textColumn(t, wide, "id"))
	require.Equal(t, []string{"1", "4"}, textColumn(t, wide, "beta"))
	require.Equal(t, []string{"3", "2"}, textColumn(t, wide, "alpha"))
}

// TestConflictDefault pins the mandatory scenario: two rows sharing
// (subject=a, time=T0, treatment=Control) with different responses
// must fail with ErrDuplicateKey under default options.
func (s *WidenSuite) TestConflictDefault() {
	t := s.T()
	long := tab(t,
		col(t, "subject", table.Text, table.TextCell("a"), table.TextCell("a")),
		col(t, "time", table.Text, table.TextCell("T0"), table.TextCell("T0")),
		col(t, "treatment", table.Text, table.TextCell("Control"), table.TextCell("Control")),
		col(t, "response", table.Real, table.RealCell(1.0), table.RealCell(2.0)),
	)

	opts := reshape.DefaultWidenOptions()
	opts.Identifiers = []string{"subject"}
	opts.KeyColumns = []string{"time", "treatment"}
	opts.ValueColumn = "response"
	opts.NameTemplate = "{time}_{treatment}"

	_, _, err := reshape.Widen(long, opts)
	require.ErrorIs(t, err, reshape.ErrDuplicateKey)
}

// duplicated builds a long table where (a, 10) carries two responses.
func (s *WidenSuite) duplicated() *table.Table {
	t := s.T()

	return tab(t,
		col(t, "subject", table.Text,
			table.TextCell("a"), table.TextCell("a"), table.TextCell("b")),
		col(t, "dose", table.Text,
			table.TextCell("10"), table.TextCell("10"), table.TextCell("10")),
		col(t, "response", table.Real,
			table.RealCell(1.0), table.RealCell(2.0), table.RealCell(3.0)),
	)
}

// TestConflictKeepFirst verifies input-order first wins and the
// resolution is audited.
func (s *WidenSuite) TestConflictKeepFirst() {
	wide, diag, err := reshape.Widen(s.duplicated(), reshape.WidenOptions{
		Identifiers:  []string{"subject"},
		KeyColumns:   []string{"dose"},
		ValueColumn:  "response",
		NameTemplate: "dose{1}mg",
		Policy:       reshape.DupKeepFirst,
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"1", "3"}, textColumn(s.T(), wide, "dose10mg"))

	// The opt-out is never silent: the collapsed group is reported.
	require.False(s.T(), diag.Clean())
	require.Len(s.T(), diag.Conflicts, 1)
	c := diag.Conflicts[0]
	require.Equal(s.T(), []table.Cell{table.TextCell("a")}, c.Identifiers)
	require.Equal(s.T(), colkey.KeyTuple{"10"}, c.Key)
	require.Equal(s.T(), []table.Cell{table.RealCell(1.0), table.RealCell(2.0)}, c.Values)
	require.Equal(s.T(), table.RealCell(1.0), c.Resolved)
}

// TestConflictKeepLast mirrors KeepFirst for the other end.
func (s *WidenSuite) TestConflictKeepLast() {
	wide, diag, err := reshape.Widen(s.duplicated(), reshape.WidenOptions{
		Identifiers:  []string{"subject"},
		KeyColumns:   []string{"dose"},
		ValueColumn:  "response",
		NameTemplate: "dose{1}mg",
		Policy:       reshape.DupKeepLast,
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"2", "3"}, textColumn(s.T(), wide, "dose10mg"))
	require.Len(s.T(), diag.Conflicts, 1)
	require.Equal(s.T(), table.RealCell(2.0), diag.Conflicts[0].Resolved)
}

// TestConflictReduce verifies the caller-supplied reducer path.
func (s *WidenSuite) TestConflictReduce() {
	sum := func(values []table.Cell) table.Cell {
		var total float64
		for _, v := range values {
			if f, ok := v.Real(); ok {
				total += f
			}
		}

		return table.RealCell(total)
	}

	wide, diag, err := reshape.Widen(s.duplicated(), reshape.WidenOptions{
		Identifiers:  []string{"subject"},
		KeyColumns:   []string{"dose"},
		ValueColumn:  "response",
		NameTemplate: "dose{1}mg",
		Policy:       reshape.DupReduce,
		Reduce:       sum,
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"3", "3"}, textColumn(s.T(), wide, "dose10mg"))
	require.Len(s.T(), diag.Conflicts, 1)
}

// TestPartitionRespectsCellTypes verifies Int 1 and Text "1" identify
// different partitions even though they render alike.
func (s *WidenSuite) TestPartitionRespectsCellTypes() {
	t := s.T()
	long := tab(t,
		col(t, "id", table.Any, table.IntCell(1), table.TextCell("1")),
		col(t, "k", table.Text, table.TextCell("x"), table.TextCell("x")),
		col(t, "v", table.Int, table.IntCell(10), table.IntCell(20)),
	)

	wide, _, err := reshape.Widen(long, reshape.WidenOptions{
		KeyColumns:  []string{"k"},
		ValueColumn: "v",
	})
	require.NoError(t, err)
	require.Equal(t, 2, wide.RowCount(), "typed identity must separate look-alike partitions")
}

// TestPartitionDelimiterPayloads verifies identifier payloads can carry
// arbitrary bytes: the tuples ("a\x1fb","c") and ("a","b\x1fc") join to
// the same text under naive concatenation but must stay two partitions,
// not collapse into a spurious duplicate.
func (s *WidenSuite) TestPartitionDelimiterPayloads() {
	t := s.T()
	long := tab(t,
		col(t, "id1", table.Text, table.TextCell("a\x1fb"), table.TextCell("a")),
		col(t, "id2", table.Text, table.TextCell("c"), table.TextCell("b\x1fc")),
		col(t, "k", table.Text, table.TextCell("x"), table.TextCell("x")),
		col(t, "v", table.Int, table.IntCell(10), table.IntCell(20)),
	)

	wide, diag, err := reshape.Widen(long, reshape.WidenOptions{
		KeyColumns:  []string{"k"},
		ValueColumn: "v",
	})
	require.NoError(t, err, "distinct identifier tuples must never read as duplicates")
	require.True(t, diag.Clean())
	require.Equal(t, 2, wide.RowCount())
	require.Equal(t, []string{"10", "20"}, textColumn(t, wide, "x"))
}

// TestMissingKeyCell verifies a missing key fragment is rejected.
func (s *WidenSuite) TestMissingKeyCell() {
	t := s.T()
	long := tab(t,
		col(t, "id", table.Text, table.TextCell("a")),
		col(t, "k", table.Text, table.Missing()),
		col(t, "v", table.Int, table.IntCell(1)),
	)

	_, _, err := reshape.Widen(long, reshape.WidenOptions{
		KeyColumns:  []string{"k"},
		ValueColumn: "v",
	})
	require.ErrorIs(t, err, reshape.ErrMissingKeyCell)
}

// TestValidation covers the argument sentinels.
func (s *WidenSuite) TestValidation() {
	t := s.T()
	long := s.longDose()

	_, _, err := reshape.Widen(nil, reshape.WidenOptions{KeyColumns: []string{"k"}, ValueColumn: "v"})
	require.ErrorIs(t, err, reshape.ErrNilTable)

	_, _, err = reshape.Widen(long, reshape.WidenOptions{ValueColumn: "response"})
	require.ErrorIs(t, err, reshape.ErrKeyArity)

	_, _, err = reshape.Widen(long, reshape.WidenOptions{KeyColumns: []string{"dose"}})
	require.ErrorIs(t, err, reshape.ErrNoValueColumn)

	_, _, err = reshape.Widen(long, reshape.WidenOptions{
		KeyColumns: []string{"dose"}, ValueColumn: "nope",
	})
	require.ErrorIs(t, err, reshape.ErrNoValueColumn)

	_, _, err = reshape.Widen(long, reshape.WidenOptions{
		Identifiers: []string{"dose"}, KeyColumns: []string{"dose"}, ValueColumn: "response",
	})
	require.ErrorIs(t, err, reshape.ErrColumnOverlap)

	// Two key fragments with nothing to compose names from.
	_, _, err = reshape.Widen(long, reshape.WidenOptions{
		KeyColumns: []string{"subject", "dose"}, ValueColumn: "response",
	})
	require.ErrorIs(t, err, reshape.ErrNoComposer)

	_, _, err = reshape.Widen(long, reshape.WidenOptions{
		KeyColumns: []string{"dose"}, ValueColumn: "response", Policy: reshape.DupReduce,
	})
	require.ErrorIs(t, err, reshape.ErrBadPolicy)
}

// TestComposeWithSeparatorSpec verifies a separator spec names the
// widened columns via its Compose inverse.
func (s *WidenSuite) TestComposeWithSeparatorSpec() {
	t := s.T()
	long := tab(t,
		col(t, "subject", table.Text, table.TextCell("a"), table.TextCell("a")),
		col(t, "time", table.Text, table.TextCell("T0"), table.TextCell("T1")),
		col(t, "treatment", table.Text, table.TextCell("Control"), table.TextCell("Control")),
		col(t, "response", table.Real, table.RealCell(1), table.RealCell(2)),
	)
	spec, err := colkey.Separator("_", 2)
	require.NoError(t, err)

	wide, _, err := reshape.Widen(long, reshape.WidenOptions{
		Identifiers: []string{"subject"},
		KeyColumns:  []string{"time", "treatment"},
		ValueColumn: "response",
		KeySpec:     spec,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"subject", "T0_Control", "T1_Control"}, wide.ColumnNames())
}

func TestWidenSuite(t *testing.T) {
	suite.Run(t, new(WidenSuite))
}
