package strel

import (
	"fmt"
	"math"
	"strings"
)

// ElementType is the numeric type of the image elements a pattern will act on.
//
// The z axis of 3D patterns is given in normalized 0..1 units and scaled by
// MaxValue; integer element types additionally round z to the lattice.
type ElementType int

// Supported element types.
const (
	Bit ElementType = iota
	Uint8
	Uint16
	Int32
	Int64
	Float32
	Float64
)

var elementTypeNames = [...]string{
	Bit:     "bit",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
}

// MaxValue returns the largest value of the type, or 1 for floating-point types.
func (t ElementType) MaxValue() float64 {
	switch t {
	case Bit:
		return 1
	case Uint8:
		return math.MaxUint8
	case Uint16:
		return math.MaxUint16
	case Int32:
		return math.MaxInt32
	case Int64:
		return math.MaxInt64
	default:
		return 1
	}
}

// IsInteger reports whether z coordinates are rounded to integers for this type.
//
// Int64 is not: its scaled z values do not fit the integer lattice. Bit is
// not either, its only levels being 0 and 1.
func (t ElementType) IsInteger() bool {
	return t == Uint8 || t == Uint16 || t == Int32
}

// Valid reports whether t is one of the supported element types.
func (t ElementType) Valid() bool {
	return t >= Bit && t <= Float64
}

func (t ElementType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
	return elementTypeNames[t]
}

// ParseElementType returns the element type with the given name.
// Besides the String names, the aliases bool, byte, char, int, long, float and
// double are accepted.
func ParseElementType(name string) (ElementType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bit", "bool", "boolean":
		return Bit, nil
	case "uint8", "byte":
		return Uint8, nil
	case "uint16", "char":
		return Uint16, nil
	case "int32", "int":
		return Int32, nil
	case "int64", "long":
		return Int64, nil
	case "float32", "float":
		return Float32, nil
	case "float64", "double":
		return Float64, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownElementType, name)
}
