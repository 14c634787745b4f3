package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvltab/colkey"
	"github.com/katalvlaran/lvltab/reshape"
	"github.com/katalvlaran/lvltab/table"
	"github.com/katalvlaran/lvltab/tableio"
)

// JobSpec is the YAML description of one reshape run: which direction,
// which columns, how headers decompose, and how the CSV is parsed.
//
// Example (narrow):
//
//	op: narrow
//	pattern: dose(\d+)mg
//	key_columns: [dose]
//	value_column: response
//	types: [text, real, real]
//
// Example (widen):
//
//	op: widen
//	identifiers: [subject]
//	key_columns: [dose]
//	value_column: response
//	name_template: dose{1}mg
//	duplicate_policy: keep_first
type JobSpec struct {
	Op string `yaml:"op"` // narrow | widen

	// CSV adapter settings.
	Delimiter    string   `yaml:"delimiter"`     // single rune; default ","
	MissingToken string   `yaml:"missing_token"` // default "NA"
	Types        []string `yaml:"types"`         // text|int|real|bool|any per column

	// Key spec: exactly one of separator / pattern, or neither for
	// bare-name keys. name_template composes wide column names; it
	// pairs with pattern or stands alone, never with separator (whose
	// join already is the composer).
	Separator string `yaml:"separator"`
	Pattern   string `yaml:"pattern"`
	Template  string `yaml:"name_template"`

	// Reshape settings.
	Columns         []string `yaml:"columns"`
	Identifiers     []string `yaml:"identifiers"`
	KeyColumns      []string `yaml:"key_columns"`
	ValueColumn     string   `yaml:"value_column"`
	Strict          *bool    `yaml:"strict"`           // default true
	DuplicatePolicy string   `yaml:"duplicate_policy"` // error|keep_first|keep_last
}

// loadJobSpec reads and decodes the YAML job file.
func loadJobSpec(path string) (JobSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return JobSpec{}, fmt.Errorf("read job spec: %w", err)
	}

	return parseJobSpec(raw)
}

func parseJobSpec(raw []byte) (JobSpec, error) {
	var job JobSpec
	if err := yaml.Unmarshal(raw, &job); err != nil {
		return JobSpec{}, fmt.Errorf("parse job spec: %w", err)
	}
	if job.Op != "narrow" && job.Op != "widen" {
		return JobSpec{}, fmt.Errorf("op must be narrow or widen, got %q", job.Op)
	}
	if job.Separator != "" && job.Pattern != "" {
		return JobSpec{}, fmt.Errorf("separator and pattern are mutually exclusive")
	}
	// A separator spec already composes wide names by joining, so a
	// template next to it could only be ignored; refuse the ambiguity.
	if job.Separator != "" && job.Template != "" {
		return JobSpec{}, fmt.Errorf("separator and name_template are mutually exclusive")
	}

	return job, nil
}

// keySpec builds the colkey.KeySpec the job describes, or nil when the
// job uses bare column names.
func (j JobSpec) keySpec() (colkey.KeySpec, error) {
	switch {
	case j.Separator != "":
		arity := len(j.KeyColumns)
		if arity == 0 {
			arity = 1
		}

		return colkey.Separator(j.Separator, arity)
	case j.Pattern != "" && j.Template != "":
		return colkey.PatternTemplate(j.Pattern, j.Template)
	case j.Pattern != "":
		return colkey.Pattern(j.Pattern)
	default:
		return nil, nil
	}
}

// narrowOptions maps the job onto reshape.NarrowOptions.
func (j JobSpec) narrowOptions() (reshape.NarrowOptions, error) {
	spec, err := j.keySpec()
	if err != nil {
		return reshape.NarrowOptions{}, err
	}
	opts := reshape.DefaultNarrowOptions()
	opts.Columns = j.Columns
	opts.KeySpec = spec
	opts.KeyColumns = j.KeyColumns
	opts.ValueColumn = j.ValueColumn
	if j.Strict != nil {
		opts.Strict = *j.Strict
	}

	return opts, nil
}

// widenOptions maps the job onto reshape.WidenOptions.
func (j JobSpec) widenOptions() (reshape.WidenOptions, error) {
	spec, err := j.keySpec()
	if err != nil {
		return reshape.WidenOptions{}, err
	}
	opts := reshape.DefaultWidenOptions()
	opts.Identifiers = j.Identifiers
	opts.KeyColumns = j.KeyColumns
	opts.ValueColumn = j.ValueColumn
	opts.KeySpec = spec
	// A template next to a pattern is already folded into the spec;
	// standalone it names the widened columns directly.
	if spec == nil || j.Pattern == "" {
		opts.NameTemplate = j.Template
	}
	switch j.DuplicatePolicy {
	case "", "error":
		opts.Policy = reshape.DupError
	case "keep_first":
		opts.Policy = reshape.DupKeepFirst
	case "keep_last":
		opts.Policy = reshape.DupKeepLast
	default:
		return reshape.WidenOptions{}, fmt.Errorf("unknown duplicate_policy %q (want error, keep_first or keep_last)", j.DuplicatePolicy)
	}

	return opts, nil
}

// ioOptions maps the job onto tableio options.
func (j JobSpec) ioOptions() ([]tableio.Option, error) {
	var opts []tableio.Option
	if j.Delimiter != "" {
		d, size := utf8.DecodeRuneInString(j.Delimiter)
		if size != len(j.Delimiter) {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", j.Delimiter)
		}
		opts = append(opts, tableio.WithDelimiter(d))
	}
	if j.MissingToken != "" {
		opts = append(opts, tableio.WithMissingTokens(j.MissingToken))
	}
	if len(j.Types) > 0 {
		types := make([]table.Type, len(j.Types))
		for i, s := range j.Types {
			t, err := parseType(s)
			if err != nil {
				return nil, err
			}
			types[i] = t
		}
		opts = append(opts, tableio.WithTypes(types...))
	}

	return opts, nil
}

// run applies the job's operation to an already-parsed table.
func (j JobSpec) run(t *table.Table) (*table.Table, *reshape.Diagnostics, error) {
	switch j.Op {
	case "narrow":
		opts, err := j.narrowOptions()
		if err != nil {
			return nil, nil, err
		}

		return reshape.Narrow(t, opts)
	case "widen":
		opts, err := j.widenOptions()
		if err != nil {
			return nil, nil, err
		}

		return reshape.Widen(t, opts)
	default:
		return nil, nil, fmt.Errorf("op must be narrow or widen, got %q", j.Op)
	}
}

// parseType maps a YAML type name onto a table.Type.
func parseType(s string) (table.Type, error) {
	switch s {
	case "text":
		return table.Text, nil
	case "int":
		return table.Int, nil
	case "real":
		return table.Real, nil
	case "bool":
		return table.Bool, nil
	case "any":
		return table.Any, nil
	default:
		return table.Any, fmt.Errorf("unknown column type %q (want text, int, real, bool or any)", s)
	}
}
