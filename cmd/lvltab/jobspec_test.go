package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvltab/reshape"
	"github.com/katalvlaran/lvltab/table"
)

// TestParseJobSpec_Narrow verifies the YAML→NarrowOptions mapping.
func TestParseJobSpec_Narrow(t *testing.T) {
	job, err := parseJobSpec([]byte(`
op: narrow
pattern: dose(\d+)mg
key_columns: [dose]
value_column: response
types: [text, real, real]
`))
	require.NoError(t, err)

	opts, err := job.narrowOptions()
	require.NoError(t, err)
	require.True(t, opts.Strict, "strict must default to true")
	require.Equal(t, []string{"dose"}, opts.KeyColumns)
	require.Equal(t, "response", opts.ValueColumn)
	require.NotNil(t, opts.KeySpec)

	kt, ok := opts.KeySpec.Decompose("dose10mg")
	require.True(t, ok)
	require.Equal(t, "10", kt[0])

	ioOpts, err := job.ioOptions()
	require.NoError(t, err)
	require.Len(t, ioOpts, 1)
}

// TestParseJobSpec_Widen verifies the YAML→WidenOptions mapping.
func TestParseJobSpec_Widen(t *testing.T) {
	job, err := parseJobSpec([]byte(`
op: widen
identifiers: [subject]
key_columns: [dose]
value_column: response
name_template: dose{1}mg
duplicate_policy: keep_first
`))
	require.NoError(t, err)

	opts, err := job.widenOptions()
	require.NoError(t, err)
	require.Equal(t, []string{"subject"}, opts.Identifiers)
	require.Equal(t, "dose{1}mg", opts.NameTemplate)
	require.Equal(t, reshape.DupKeepFirst, opts.Policy)
}

// TestParseJobSpec_Validation covers the job-level rejections.
func TestParseJobSpec_Validation(t *testing.T) {
	_, err := parseJobSpec([]byte(`op: pivot`))
	require.Error(t, err)

	_, err = parseJobSpec([]byte("op: narrow\nseparator: \"_\"\npattern: a(b)c\n"))
	require.Error(t, err, "separator and pattern are mutually exclusive")

	// A template beside a separator could only be ignored; rejected
	// instead of silently preferring the separator's join.
	_, err = parseJobSpec([]byte("op: widen\nseparator: \"_\"\nname_template: \"{1}mg\"\n"))
	require.Error(t, err, "separator and name_template are mutually exclusive")

	job, err := parseJobSpec([]byte(`
op: widen
key_columns: [k]
value_column: v
duplicate_policy: newest
`))
	require.NoError(t, err)
	_, err = job.widenOptions()
	require.Error(t, err)

	job, err = parseJobSpec([]byte("op: narrow\ntypes: [decimal]\nvalue_column: v\n"))
	require.NoError(t, err)
	_, err = job.ioOptions()
	require.Error(t, err)
}

// TestJobSpec_RunNarrow runs a parsed job end to end, minus the CSV rim.
func TestJobSpec_RunNarrow(t *testing.T) {
	job, err := parseJobSpec([]byte(`
op: narrow
separator: "_"
key_columns: [measure, series]
value_column: value
`))
	require.NoError(t, err)

	a, err := table.NewColumn("m_a", table.Int, table.IntCell(1))
	require.NoError(t, err)
	b, err := table.NewColumn("m_b", table.Int, table.IntCell(2))
	require.NoError(t, err)
	in, err := table.New(a, b)
	require.NoError(t, err)

	out, diag, err := job.run(in)
	require.NoError(t, err)
	require.True(t, diag.Clean())
	require.Equal(t, []string{"measure", "series", "value"}, out.ColumnNames())
	require.Equal(t, 2, out.RowCount())
}
