package table

import (
	"math"
	"strconv"
)

// Type is the declared type of a column and the payload type of a
// present cell.
//
//   - Any accepts cells of every type; no coercion is performed.
//   - The remaining types are strict: combining a Text cell into an
//     Int column fails with ErrTypeMismatch at construction time.
type Type int

const (
	// Any places no constraint on cell payloads.
	Any Type = iota
	// Text holds string payloads.
	Text
	// Int holds int64 payloads.
	Int
	// Real holds float64 payloads.
	Real
	// Bool holds boolean payloads.
	Bool
)

// String returns the lower-case name of the type.
func (t Type) String() string {
	switch t {
	case Any:
		return "any"
	case Text:
		return "text"
	case Int:
		return "int"
	case Real:
		return "real"
	case Bool:
		return "bool"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Cell is a tagged value: either present, carrying one typed payload,
// or missing. The zero value is a missing cell. Cells are comparable
// with ==; two cells are equal iff both are missing or both carry the
// same type and payload.
type Cell struct {
	typ     Type
	present bool
	s       string
	i       int64
	f       float64
	b       bool
}

// Missing returns the explicit absence marker. It is distinct from
// TextCell(""), IntCell(0) and every other present value.
func Missing() Cell { return Cell{} }

// TextCell returns a present cell holding s.
func TextCell(s string) Cell { return Cell{typ: Text, present: true, s: s} }

// IntCell returns a present cell holding i.
func IntCell(i int64) Cell { return Cell{typ: Int, present: true, i: i} }

// RealCell returns a present cell holding f.
func RealCell(f float64) Cell { return Cell{typ: Real, present: true, f: f} }

// BoolCell returns a present cell holding b.
func BoolCell(b bool) Cell { return Cell{typ: Bool, present: true, b: b} }

// IsMissing reports whether the cell is the absence marker.
func (c Cell) IsMissing() bool { return !c.present }

// Type returns the payload type of a present cell. For a missing cell
// it returns Any (a missing cell fits any column).
func (c Cell) Type() Type {
	if !c.present {
		return Any
	}
	return c.typ
}

// Text returns the string payload and true iff the cell is a present
// Text cell.
func (c Cell) Text() (string, bool) { return c.s, c.present && c.typ == Text }

// Int returns the int64 payload and true iff the cell is a present
// Int cell.
func (c Cell) Int() (int64, bool) { return c.i, c.present && c.typ == Int }

// Real returns the float64 payload and true iff the cell is a present
// Real cell.
func (c Cell) Real() (float64, bool) { return c.f, c.present && c.typ == Real }

// Bool returns the boolean payload and true iff the cell is a present
// Bool cell.
func (c Cell) Bool() (bool, bool) { return c.b, c.present && c.typ == Bool }

// String renders the payload for display. Missing cells render as "NA";
// IO adapters choose their own missing token (see package tableio).
func (c Cell) String() string {
	if !c.present {
		return "NA"
	}
	switch c.typ {
	case Text:
		return c.s
	case Int:
		return strconv.FormatInt(c.i, 10)
	case Real:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(c.b)
	default:
		return ""
	}
}

// Token returns a canonical encoding of the cell for use as a map-key
// fragment (package reshape builds partition keys from it). Token
// equality coincides with == equality, with two deliberate Real
// exceptions: 0 and -0 share one token (they are ==-equal), and every
// NaN payload shares one token — NaN never ==-equals anything, so a
// shared token is the only identity under which NaN-keyed rows can
// group at all. Not meant for display; use String for that.
func (c Cell) Token() string {
	if !c.present {
		return "!"
	}
	switch c.typ {
	case Text:
		return "t" + c.s
	case Int:
		return "i" + strconv.FormatInt(c.i, 10)
	case Real:
		switch {
		case math.IsNaN(c.f):
			return "rNaN"
		case c.f == 0:
			return "r0"
		default:
			return "r" + strconv.FormatFloat(c.f, 'b', -1, 64)
		}
	case Bool:
		return "b" + strconv.FormatBool(c.b)
	default:
		return "?"
	}
}

// fits reports whether the cell may live in a column of type t.
// Missing cells fit every column; Any columns accept every cell.
func (c Cell) fits(t Type) bool {
	return !c.present || t == Any || c.typ == t
}
