package strel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// args reads the comma or space separated parameters of a shape.
// The first failure is kept in err and later reads return zero values,
// so a shape can read all its parameters and check err once.
type args struct {
	fields []string
	err    error
}

func newArgs(s string) *args {
	return &args{fields: strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})}
}

// has reports whether at least n parameters are present.
func (a *args) has(n int) bool {
	return len(a.fields) >= n
}

func (a *args) field(i int) (string, bool) {
	if a.err != nil {
		return "", false
	}
	if i >= len(a.fields) {
		a.err = fmt.Errorf("%w: parameter #%d", ErrMissingParameter, i+1)
		return "", false
	}
	return a.fields[i], true
}

func (a *args) float(i int) float64 {
	s, ok := a.field(i)
	if !ok {
		return 0
	}
	v, err := parseNumber(s)
	if err != nil {
		a.err = fmt.Errorf("parameter #%d: %w", i+1, err)
	}
	return v
}

func (a *args) integer(i int) int64 {
	s, ok := a.field(i)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		a.err = fmt.Errorf("parameter #%d: %w", i+1, err)
	}
	return v
}

// count reads a 32-bit integer, such as the length of a series.
func (a *args) count(i int) int {
	s, ok := a.field(i)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		a.err = fmt.Errorf("parameter #%d: %w", i+1, err)
	}
	return int(v)
}

// center reads the optional pair at i, i+1; it is (0, 0) unless both are present.
func (a *args) center(i int) (x, y float64) {
	if !a.has(i + 2) {
		return 0, 0
	}
	return a.float(i), a.float(i + 1)
}

// intCenter is center for integer coordinates.
func (a *args) intCenter(i int) (x, y int64) {
	if !a.has(i + 2) {
		return 0, 0
	}
	return a.integer(i), a.integer(i + 1)
}

// optional reads parameter i, or returns 0 when it is absent.
func (a *args) optional(i int) float64 {
	if !a.has(i + 1) {
		return 0
	}
	return a.float(i)
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// roundHalfUp rounds to the nearest integer, halves towards +∞.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
