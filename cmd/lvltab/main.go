// Command lvltab reshapes CSV data between wide and long layout,
// driven by a YAML job spec.
//
//	lvltab -spec narrow.yaml -in wide.csv -out long.csv
//	cat wide.csv | lvltab -spec narrow.yaml > long.csv
//
// Diagnostics (skipped columns, resolved duplicate keys) go to stderr;
// the reshaped table goes to -out.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/katalvlaran/lvltab/tableio"
)

func main() {
	specPath := flag.String("spec", "", "YAML job spec (required)")
	inPath := flag.String("in", "-", "input CSV, - for stdin")
	outPath := flag.String("out", "-", "output CSV, - for stdout")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("lvltab: ")
	if *specPath == "" {
		log.Fatal("-spec is required")
	}

	job, err := loadJobSpec(*specPath)
	if err != nil {
		log.Fatal(err)
	}
	ioOpts, err := job.ioOptions()
	if err != nil {
		log.Fatal(err)
	}

	in, closeIn, err := openInput(*inPath)
	if err != nil {
		log.Fatal(err)
	}
	t, err := tableio.ReadCSV(in, ioOpts...)
	closeIn()
	if err != nil {
		log.Fatal(err)
	}

	out, diag, err := job.run(t)
	if err != nil {
		log.Fatal(err)
	}
	if !diag.Clean() {
		for _, name := range diag.SkippedColumns {
			log.Printf("skipped non-conforming column %q", name)
		}
		for _, c := range diag.Conflicts {
			log.Printf("resolved duplicate key %v for identifiers %v (%d values collapsed)",
				c.Key, c.Identifiers, len(c.Values))
		}
	}

	w, closeOut, err := openOutput(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	if err = tableio.WriteCSV(w, out, ioOpts...); err != nil {
		log.Fatal(err)
	}
	if err = closeOut(); err != nil {
		log.Fatal(err)
	}
}

// openInput resolves "-" to stdin.
func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}

// openOutput resolves "-" to stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return f, f.Close, nil
}
