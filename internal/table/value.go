package table

import (
	"strconv"
)

// Kind is the type of a cell value.
type Kind int

const (
	Empty Kind = iota
	Number
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "empty"
	}
}

// Value is a single cell. The zero Value is Empty.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Num returns a numeric cell.
func Num(f float64) Value {
	return Value{Kind: Number, Num: f}
}

// Str returns a text cell.
func Str(s string) Value {
	return Value{Kind: Text, Str: s}
}

func (v Value) IsEmpty() bool {
	return v.Kind == Empty
}

// String renders the value as text. Numbers use the shortest decimal form,
// so 1.0 renders as "1".
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case Text:
		return v.Str
	default:
		return ""
	}
}

// Interface returns the value in the form excelize expects when writing:
// float64 for numbers, string for text and nil for empty cells.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case Number:
		return v.Num
	case Text:
		return v.Str
	default:
		return nil
	}
}
