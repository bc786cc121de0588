package pattern

import "fmt"

// Range is a closed interval of real numbers.
type Range struct {
	Min, Max float64
}

// Size returns Max - Min.
func (r Range) Size() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies in the interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%g..%g", r.Min, r.Max)
}

// IRange is a closed interval of integers.
// A range with Min > Max is empty.
type IRange struct {
	Min, Max int64
}

// IR is a convenience function to create an IRange.
func IR(lo, hi int64) IRange {
	return IRange{Min: lo, Max: hi}
}

// Size returns the number of integers in the range.
func (r IRange) Size() int64 {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

// Empty reports whether the range contains no integers.
func (r IRange) Empty() bool {
	return r.Max < r.Min
}

// Contains reports whether v lies in the range.
func (r IRange) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// Intersect returns the intersection of two ranges, which may be empty.
func (r IRange) Intersect(s IRange) IRange {
	return IRange{Min: max(r.Min, s.Min), Max: min(r.Max, s.Max)}
}

func (r IRange) String() string {
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}
