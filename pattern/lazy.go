package pattern

import (
	"fmt"
	"sync"
)

// Sum is the Minkowski sum of several patterns, {a1 + a2 + ... : ai ∈ Pi},
// translated by a fixed offset.
//
// The terms are kept as they are, so morphology code may apply them one
// after another instead of enumerating the sum. A term repeated n times is
// stored once with its count. Points are materialized on first request only.
type Sum struct {
	dim    int
	terms  []SumTerm
	offset Point

	once   sync.Once
	result Pattern
}

// SumTerm is a summand of a Sum added Count times.
type SumTerm struct {
	Pattern Pattern
	Count   int
}

// Terms returns the summands of the sum, not including its offset.
func (s *Sum) Terms() []SumTerm {
	return append([]SumTerm(nil), s.terms...)
}

// Offset returns the translation applied after summing the terms.
func (s *Sum) Offset() Point { return s.offset }

func (s *Sum) DimCount() int { return s.dim }

func (s *Sum) PointCount() int { return s.materialize().PointCount() }

func (s *Sum) Points() []Point { return s.materialize().Points() }

// CoordRange is the sum of the terms' ranges; no points are enumerated.
func (s *Sum) CoordRange(axis int) Range {
	o := s.offset.coord[axis]
	r := Range{Min: o, Max: o}
	for _, t := range s.terms {
		pr := t.Pattern.CoordRange(axis)
		r.Min += pr.Min * float64(t.Count)
		r.Max += pr.Max * float64(t.Count)
	}
	return r
}

func (s *Sum) IsSurelyInteger() bool {
	if !s.offset.IsInteger() {
		return false
	}
	for _, t := range s.terms {
		if !t.Pattern.IsSurelyInteger() {
			return false
		}
	}
	return true
}

func (s *Sum) String() string {
	n := 0
	for _, t := range s.terms {
		n += t.Count
	}
	return fmt.Sprintf("%dD Minkowski sum of %d patterns", s.dim, n)
}

// materialize folds the terms left to right, adding repeated terms by doubling.
func (s *Sum) materialize() Pattern {
	s.once.Do(func() {
		acc := map[Point]struct{}{s.offset: {}}
		for _, t := range s.terms {
			acc = addPower(acc, toSet(t.Pattern), t.Count)
		}
		// acc is never empty: every term has at least one point
		s.result, _ = pointsFromSet(s.dim, acc)
	})
	return s.result
}

// appendTerm adds p·n to terms, merging it with the last term when it is the same pattern.
func appendTerm(terms []SumTerm, p Pattern, n int) []SumTerm {
	if last := len(terms) - 1; last >= 0 && terms[last].Pattern == p {
		terms[last].Count += n
		return terms
	}
	return append(terms, SumTerm{Pattern: p, Count: n})
}

// UnionPattern is the set union of several patterns of the same dimension.
type UnionPattern struct {
	dim   int
	parts []Pattern

	once   sync.Once
	result Pattern
}

// Parts returns the united patterns.
func (u *UnionPattern) Parts() []Pattern {
	return append([]Pattern(nil), u.parts...)
}

func (u *UnionPattern) DimCount() int { return u.dim }

func (u *UnionPattern) PointCount() int { return u.materialize().PointCount() }

func (u *UnionPattern) Points() []Point { return u.materialize().Points() }

func (u *UnionPattern) CoordRange(axis int) Range {
	r := u.parts[0].CoordRange(axis)
	for _, p := range u.parts[1:] {
		pr := p.CoordRange(axis)
		r.Min = min(r.Min, pr.Min)
		r.Max = max(r.Max, pr.Max)
	}
	return r
}

func (u *UnionPattern) IsSurelyInteger() bool {
	for _, p := range u.parts {
		if !p.IsSurelyInteger() {
			return false
		}
	}
	return true
}

func (u *UnionPattern) String() string {
	return fmt.Sprintf("%dD union of %d patterns", u.dim, len(u.parts))
}

func (u *UnionPattern) materialize() Pattern {
	u.once.Do(func() {
		acc := make(map[Point]struct{})
		for _, p := range u.parts {
			for _, q := range p.Points() {
				acc[q] = struct{}{}
			}
		}
		u.result, _ = pointsFromSet(u.dim, acc)
	})
	return u.result
}

func toSet(p Pattern) map[Point]struct{} {
	points := p.Points()
	set := make(map[Point]struct{}, len(points))
	for _, q := range points {
		set[q] = struct{}{}
	}
	return set
}

func addSets(a, b map[Point]struct{}) map[Point]struct{} {
	result := make(map[Point]struct{}, len(a)+len(b))
	for p := range a {
		for q := range b {
			result[p.Add(q)] = struct{}{}
		}
	}
	return result
}

// addPower returns acc ⊕ base ⊕ ... ⊕ base with n copies of base.
func addPower(acc, base map[Point]struct{}, n int) map[Point]struct{} {
	for n > 0 {
		if n&1 != 0 {
			acc = addSets(acc, base)
		}
		n >>= 1
		if n > 0 {
			base = addSets(base, base)
		}
	}
	return acc
}
