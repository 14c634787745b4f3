// Package tableio: functional configuration for the CSV/TSV adapter.
// One Option type serves both directions; write ignores the
// read-only switches.
//
// Design goals:
//   - Documented defaults as constants, single source of truth.
//   - Constructors panic only on nonsensical values (programmer error);
//     data problems surface as errors from ReadCSV/WriteCSV.

package tableio

import "github.com/katalvlaran/lvltab/table"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDelimiter separates fields: comma, per RFC 4180.
	DefaultDelimiter = ','

	// DefaultMissingToken is the token read and written for a missing
	// cell. The empty field always reads as missing as well.
	DefaultMissingToken = "NA"

	// DefaultHasHeader treats the first row as column names.
	DefaultHasHeader = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicDelimiterInvalid = "tableio: WithDelimiter: delimiter must not be a quote, newline or carriage return"
	panicNoMissingTokens  = "tableio: WithMissingTokens: at least one token required"
)

// ---------- Options ----------

// Option mutates adapter options. Safe to apply repeatedly; the last
// writer wins.
type Option func(*Options)

// Options carries the gathered adapter configuration. Zero value is
// not meaningful; build via gatherOptions inside ReadCSV/WriteCSV.
type Options struct {
	delimiter     rune
	missingTokens []string
	types         []table.Type // nil ⇒ every column is Text
	hasHeader     bool
}

// WithDelimiter sets the field separator, e.g. '\t' for TSV.
// Panics on '"', '\n' or '\r' (they cannot delimit CSV fields).
func WithDelimiter(d rune) Option {
	if d == '"' || d == '\n' || d == '\r' {
		panic(panicDelimiterInvalid)
	}

	return func(o *Options) { o.delimiter = d }
}

// WithMissingTokens replaces the missing-token set. Every listed token
// (and the empty field) reads as a missing cell; the first token is
// what WriteCSV emits for missing cells.
func WithMissingTokens(tokens ...string) Option {
	if len(tokens) == 0 {
		panic(panicNoMissingTokens)
	}

	return func(o *Options) { o.missingTokens = tokens }
}

// WithTypes declares per-column types in header order. Parsing is
// strict: a non-missing field that does not parse as its declared type
// fails with ErrParse. Without WithTypes every column reads as Text.
func WithTypes(types ...table.Type) Option {
	return func(o *Options) { o.types = types }
}

// WithNoHeader reads data from the first row and synthesizes column
// names c1..cn; on write, the header row is omitted.
func WithNoHeader() Option {
	return func(o *Options) { o.hasHeader = false }
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts []Option) Options {
	o := Options{
		delimiter:     DefaultDelimiter,
		missingTokens: []string{DefaultMissingToken},
		hasHeader:     DefaultHasHeader,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
