package cell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Cell
		want Cell
	}{
		{"empty string", TextCell(""), EmptyCell()},
		{"lowercase null literal", TextCell("null"), EmptyCell()},
		{"uppercase null literal", TextCell("NULL"), EmptyCell()},
		{"padded null literal passes through", TextCell("  null  "), TextCell("  null  ")},
		{"whitespace-only passes through", TextCell("   "), TextCell("   ")},
		{"already empty", EmptyCell(), EmptyCell()},
		{"regular text passes through", TextCell("GPM"), TextCell("GPM")},
		{"zero passes through", NumberCell(0), NumberCell(0)},
		{"false passes through", BoolCell(false), BoolCell(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestAsString(t *testing.T) {
	tests := []struct {
		name string
		in   Cell
		want string
	}{
		{"empty becomes empty string not null", EmptyCell(), ""},
		{"integral float drops trailing point zero", NumberCell(1500.0), "1500"},
		{"fractional float keeps fraction", NumberCell(1500.5), "1500.5"},
		{"negative integral float", NumberCell(-42.0), "-42"},
		{"text passes through", TextCell("DT0001"), "DT0001"},
		{"boolean true renders title-cased", BoolCell(true), "True"},
		{"boolean false renders title-cased", BoolCell(false), "False"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsString(tt.in))
		})
	}
}

func TestAsFloatIsTotal(t *testing.T) {
	// Every input either yields a finite number or nil - never a panic.
	one := 1.0
	amount := 1500.0

	tests := []struct {
		name string
		in   Cell
		want *float64
	}{
		{"number", NumberCell(1500), &amount},
		{"numeric text", TextCell(" 1500 "), &amount},
		{"unparseable text degrades to absent", TextCell("N/A"), nil},
		{"empty is absent", EmptyCell(), nil},
		{"date is absent", TimeCell(time.Now()), nil},
		{"boolean true is one", BoolCell(true), &one},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsFloat(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestAsBoolTruthTable(t *testing.T) {
	truthy := []Cell{
		NumberCell(1),
		TextCell("1"),
		TextCell("Y"),
		TextCell("y"),
		TextCell("true"),
		TextCell("TRUE"),
		BoolCell(true),
	}
	for _, c := range truthy {
		assert.True(t, AsBool(c), "expected true for %+v", c)
	}

	falsy := []Cell{
		NumberCell(0),
		TextCell("N"),
		TextCell("n"),
		TextCell("false"),
		TextCell("False"),
		TextCell(""),
		EmptyCell(),
		BoolCell(false),
		NumberCell(2),
	}
	for _, c := range falsy {
		assert.False(t, AsBool(c), "expected false for %+v", c)
	}
}

func TestAsDate(t *testing.T) {
	t.Run("absent stays absent", func(t *testing.T) {
		assert.Nil(t, AsDate(EmptyCell()))
	})

	t.Run("date cell renders ISO-8601 with UTC designator", func(t *testing.T) {
		c := TimeCell(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC))
		got := AsDate(c)
		if assert.NotNil(t, got) {
			assert.Equal(t, "1990-05-17T00:00:00Z", *got)
		}
	})

	t.Run("non-date value passes through verbatim", func(t *testing.T) {
		got := AsDate(TextCell("17/05/1990"))
		if assert.NotNil(t, got) {
			assert.Equal(t, "17/05/1990", *got)
		}
	})

	t.Run("numeric value passes through as string", func(t *testing.T) {
		got := AsDate(NumberCell(19900517))
		if assert.NotNil(t, got) {
			assert.Equal(t, "19900517", *got)
		}
	})
}

func TestAsRaw(t *testing.T) {
	assert.Nil(t, AsRaw(EmptyCell()))
	assert.Equal(t, "opaque", AsRaw(TextCell("opaque")))
	assert.Equal(t, 3.5, AsRaw(NumberCell(3.5)))
	assert.Equal(t, true, AsRaw(BoolCell(true)))
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Cell
	}{
		{"blank", "", EmptyCell()},
		{"boolean true literal", "TRUE", BoolCell(true)},
		{"boolean false literal", "FALSE", BoolCell(false)},
		{"integer", "1500", NumberCell(1500)},
		{"decimal", "72.5", NumberCell(72.5)},
		{"plain text", "Bank_transfer", TextCell("Bank_transfer")},
		{"lowercase true stays text", "true", TextCell("true")},
		{"leading-zero bank code stays text", "004", TextCell("004")},
		{"leading-zero mobile number stays text", "0812345678", TextCell("0812345678")},
		{"digit string beyond float64 precision stays text", "1234567890123456789", TextCell("1234567890123456789")},
		{"negative integer", "-42", NumberCell(-42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sniff(tt.raw))
		})
	}

	t.Run("datetime", func(t *testing.T) {
		got := Sniff("1990-05-17 00:00:00")
		assert.Equal(t, DateTime, got.Kind)
		assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), got.Time)
	})
}
