// =============================================================================
// Disbursement Payload Generator - Cell Coercion Library
// =============================================================================
//
// This package models a single spreadsheet cell as a closed tagged variant
// and provides the total coercion functions that turn raw cell values into
// the typed fields of a payload. Spreadsheet cells are heterogeneous: the
// same column can carry text, numbers, dates, booleans, or nothing at all,
// and upstream systems deliberately rely on lenient conversion rather than
// strict validation. Every function here is total - no error ever escapes
// to the caller; unparseable values degrade to an absent marker or to their
// verbatim string form.
//
// COERCION RULES:
//   Normalize : "", "null", "NULL" and absent all collapse to Empty
//   AsString  : Empty -> ""; integral floats lose the trailing ".0"
//   AsFloat   : numeric parse, absent (nil) on failure - never an error
//   AsBool    : truthy set {1, "1", "Y", "y", "true", "TRUE"}; booleans
//               pass through unchanged before the membership test
//   AsDate    : date cells -> ISO-8601 with a trailing "Z"; any other
//               non-empty value -> its string form verbatim (no parsing)
//   AsRaw     : opaque pass-through for fields kept as-is in the payload
//
// =============================================================================

package cell

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// CELL VARIANT
// =============================================================================

// Kind identifies which native type a cell carries.
type Kind int

const (
	// Empty marks a cell with no value (blank, or normalized to blank).
	Empty Kind = iota

	// Text marks a cell carrying a string value.
	Text

	// Number marks a cell carrying a numeric value.
	Number

	// Boolean marks a cell carrying an explicit TRUE/FALSE value.
	Boolean

	// DateTime marks a cell carrying a date/time value.
	DateTime
)

// Cell is a single spreadsheet cell value, tagged by Kind.
// Only the field matching the Kind is meaningful.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
	Time   time.Time
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell { return Cell{Kind: Empty} }

// TextCell returns a cell carrying a string value.
func TextCell(s string) Cell { return Cell{Kind: Text, Text: s} }

// NumberCell returns a cell carrying a numeric value.
func NumberCell(f float64) Cell { return Cell{Kind: Number, Number: f} }

// BoolCell returns a cell carrying a boolean value.
func BoolCell(b bool) Cell { return Cell{Kind: Boolean, Bool: b} }

// TimeCell returns a cell carrying a date/time value.
func TimeCell(t time.Time) Cell { return Cell{Kind: DateTime, Time: t} }

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// =============================================================================
// INGESTION
// =============================================================================

// dateLayouts are the spreadsheet display formats recognized when sniffing
// a cell value. Date cells arrive from the workbook reader already rendered
// through their cell style, so ingestion has to recognize the rendered
// forms rather than a serial number.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
}

// Sniff converts a raw string value from the workbook reader into a typed
// Cell. Detection order matters: booleans render as TRUE/FALSE, dates render
// through their cell style, and a value is a number only when the parse
// renders back to the exact raw string. The round-trip guard keeps
// leading-zero identifiers (bank codes, branch codes, mobile numbers) and
// digit strings too long for float64 as text. Everything else stays text.
func Sniff(raw string) Cell {
	if raw == "" {
		return EmptyCell()
	}
	switch raw {
	case "TRUE":
		return BoolCell(true)
	case "FALSE":
		return BoolCell(false)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return TimeCell(t)
		}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil &&
		strconv.FormatFloat(f, 'f', -1, 64) == raw {
		return NumberCell(f)
	}
	return TextCell(raw)
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize collapses the set {empty string, absent, "null", "NULL"} to an
// explicit Empty cell. The set is exact: padded or whitespace-only values
// pass through unchanged, like every other value. This runs before any
// typed coercion.
func Normalize(c Cell) Cell {
	if c.Kind == Text {
		switch c.Text {
		case "", "null", "NULL":
			return EmptyCell()
		}
	}
	return c
}

// =============================================================================
// TYPED COERCIONS
// =============================================================================

// AsString returns the string form of a cell. Empty cells become "" rather
// than null. Numeric cells with no fractional part are rendered in integer
// form, guarding against the trailing ".0" artifacts of spreadsheet numeric
// storage.
func AsString(c Cell) string {
	switch c.Kind {
	case Empty:
		return ""
	case Number:
		if c.Number == math.Trunc(c.Number) && !math.IsInf(c.Number, 0) {
			return strconv.FormatInt(int64(c.Number), 10)
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case Boolean:
		// Title-cased to match the upstream rendering of booleans that land
		// in string-coerced columns.
		if c.Bool {
			return "True"
		}
		return "False"
	case DateTime:
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return c.Text
	}
}

// AsFloat attempts a numeric parse and returns nil on failure - it never
// returns an error. Booleans convert to 1/0, text is parsed, dates and
// empty cells are absent.
func AsFloat(c Cell) *float64 {
	switch c.Kind {
	case Number:
		v := c.Number
		return &v
	case Text:
		if f, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64); err == nil {
			return &f
		}
		return nil
	case Boolean:
		v := 0.0
		if c.Bool {
			v = 1.0
		}
		return &v
	default:
		return nil
	}
}

// AsBool applies the truthy-set rule: 1, "1", "Y", "y", "true" and "TRUE"
// are true; everything else, including empty and absent, is false. Explicit
// boolean cells pass through unchanged before the membership test.
//
// Note this makes "false", "N" and empty indistinguishable - all coerce to
// false. Downstream consumers that care about "explicitly false" versus
// "not provided" cannot recover the distinction from the payload.
func AsBool(c Cell) bool {
	switch c.Kind {
	case Boolean:
		return c.Bool
	case Number:
		return c.Number == 1
	case Text:
		switch c.Text {
		case "1", "Y", "y", "true", "TRUE":
			return true
		}
	}
	return false
}

// AsDate returns a pointer to the date string, or nil when the cell is
// empty. Date cells are rendered as ISO-8601 with a trailing UTC designator.
// Any other non-empty value is passed through as its string form verbatim -
// a deliberate lenient fallback, not a validation step.
func AsDate(c Cell) *string {
	switch c.Kind {
	case Empty:
		return nil
	case DateTime:
		s := c.Time.Format("2006-01-02T15:04:05") + "Z"
		return &s
	default:
		s := AsString(c)
		return &s
	}
}

// AsRaw returns the cell's native value for fields that are intentionally
// kept opaque in the payload (cheque/trade info). Empty cells become JSON
// null, everything else keeps its native JSON type.
func AsRaw(c Cell) any {
	switch c.Kind {
	case Text:
		return c.Text
	case Number:
		return c.Number
	case Boolean:
		return c.Bool
	case DateTime:
		return c.Time.Format("2006-01-02T15:04:05") + "Z"
	default:
		return nil
	}
}
