// Package lvltab is your in-memory toolkit for reshaping tabular data
// between wide and long (tidy) layouts — from the columnar table model
// to composite-header decomposition and duplicate-safe widening.
//
// 🚀 What is lvltab?
//
//	A small, deterministic library that brings together:
//		• Table model: immutable named, typed columns with explicit missing cells
//		• Column keys: split composite headers ("dose100mg", "T0_Control")
//		  into semantic key fragments via separators or anchored patterns
//		• Narrow: wide → long, one row per observation, ordering guaranteed
//		• Widen: long → wide, dense rectangular output; duplicate keys
//		  fail loudly unless a policy says otherwise
//		• CSV/TSV adapter and a YAML-driven CLI around the core
//
// ✨ Why choose lvltab?
//
//   - Pure functions – inputs are never mutated, pipelines compose
//   - No silent loss – every skipped column and resolved conflict is reported
//   - Deterministic – row and column ordering is a contract, not an accident
//   - Pure Go – no cgo
//
// Under the hood, everything is organized under five packages:
//
//	table/      — columnar data model: Table, Column, Cell & typed views
//	colkey/     — KeySpec (separator / pattern / template) + column predicates
//	reshape/    — Narrow, NarrowMulti, Widen and duplicate-key policies
//	tableio/    — CSV/TSV reader & writer producing well-formed tables
//	cmd/lvltab  — command-line front end driven by YAML job specs
//
// Quick ASCII example:
//
//	subject dose10mg dose100mg         subject dose response
//	a       0.11     1.21       --->   a       10   0.11
//	b       0.12     1.22              a       100  1.21
//	                                   b       10   0.12
//	                                   b       100  1.22
//
//	a wide table with one column per dose becomes a long table with one
//	row per (subject, dose) observation — and the reverse trip restores it.
//
// Dive into README.md and the examples/ directory for full walkthroughs.
//
//	go get github.com/katalvlaran/lvltab
package lvltab
