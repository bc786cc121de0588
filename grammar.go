package strel

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/gogpu/strel/pattern"
)

// Modifier affixes, stripped in this order before evaluation.
const (
	rawSuffix      = " -raw"
	slowSuffix     = " -slow"
	boundPrefix    = "bound "
	extBoundPrefix = "ext-bound "
)

// modifiers records the affixes found around a specification.
type modifiers struct {
	raw     bool
	slow    bool
	surface bool
	bounds  bool
}

func stripModifiers(s string) (string, modifiers) {
	var m modifiers
	s, m.raw = strings.CutSuffix(s, rawSuffix)
	s, m.slow = strings.CutSuffix(s, slowSuffix)
	s, m.surface = strings.CutPrefix(s, boundPrefix)
	s, m.bounds = strings.CutPrefix(s, extBoundPrefix)
	return s, m
}

// apply post-processes an evaluated pattern.
func (m modifiers) apply(p pattern.Pattern) (pattern.Pattern, error) {
	var err error
	if m.surface {
		p = pattern.Surface(pattern.Round(p))
	}
	if m.bounds {
		if p, err = outerBounds(p); err != nil {
			return nil, err
		}
	}
	switch {
	case m.slow:
		return pattern.NewPointSet(p.Points())
	case m.raw:
		if g, ok := p.(pattern.UniformGrid); ok {
			return pattern.NewGrid(g.Origin(), g.Steps(), g.IndexPoints())
		}
		return pattern.NewPattern(p.Points())
	}
	return p, nil
}

// outerBounds unites the extreme points of p along both directions of the
// first two axes.
func outerBounds(p pattern.Pattern) (pattern.Pattern, error) {
	parts := make([]pattern.Pattern, 0, 4)
	for _, bound := range []func(pattern.Pattern, int) (pattern.Pattern, error){pattern.MaxBound, pattern.MinBound} {
		for axis := 0; axis < 2; axis++ {
			b, err := bound(p, axis)
			if err != nil {
				return nil, err
			}
			parts = append(parts, b)
		}
	}
	return pattern.Union(parts...)
}

// evaluate builds the pattern for a normalized specification.
func (p *Parser) evaluate(key string) (pattern.Pattern, error) {
	s, mods := stripModifiers(key)
	res, err := p.build(s, &mods)
	if err == nil {
		res, err = mods.apply(res)
	}
	if err != nil {
		return nil, &SpecError{Spec: key, Err: err}
	}
	return res, nil
}

// build tries the 0/1 bitmap literal, then the operators, then the shapes.
func (p *Parser) build(s string, mods *modifiers) (pattern.Pattern, error) {
	if res, ok, err := parseBitmap(s); ok {
		return res, err
	}
	for _, op := range operators {
		if parts, ok := op.match(s); ok {
			return op.eval(p, parts)
		}
	}
	for _, sh := range shapes {
		if args, ok := sh.match(s); ok {
			if sh.literal {
				mods.raw = false
			}
			return sh.build(p, args)
		}
	}
	return nil, errUnsupported
}

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// parseBitmap reads a 0/1 matrix, one text line per row; whitespace inside
// lines is ignored. Each 1 becomes the point (x − w/2, y − h/2).
// The boolean result is false when s is not a 0/1 matrix at all.
func parseBitmap(s string) (pattern.Pattern, bool, error) {
	if s == "" {
		return nil, false, nil
	}
	lines := splitFields(lineBreak, s)
	for k, line := range lines {
		line = strings.Join(strings.Fields(line), "")
		if line == "" || strings.Trim(line, "01") != "" {
			return nil, false, nil
		}
		lines[k] = line
	}
	w, h := len(lines[0]), len(lines)
	for k := 1; k < h; k++ {
		if len(lines[k]) != w {
			return nil, true, fmt.Errorf("lines #1 and #%d of the 0/1 matrix contain different number of characters", k+1)
		}
	}
	var points []pattern.IPoint
	for y, line := range lines {
		for x := 0; x < w; x++ {
			if line[x] == '1' {
				points = append(points, pattern.IPt(int64(x-w/2), int64(y-h/2)))
			}
		}
	}
	if len(points) == 0 {
		return nil, true, fmt.Errorf("%w: all values of the %dx%d 0/1 matrix are 0", ErrEmptyPattern, w, h)
	}
	res, err := pattern.NewIntegerPattern(points)
	return res, true, err
}

// splitFields splits s around the matches of re and drops trailing empty
// fields, so that "a + b +" has two fields.
func splitFields(re *regexp.Regexp, s string) []string {
	fields := re.Split(s, -1)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// operator is an infix operator of the grammar. Binary operators match only
// when the separator splits the specification into exactly two operands;
// n-ary ones match any split into two or more.
type operator struct {
	name string
	sep  *regexp.Regexp
	nary bool
	eval func(p *Parser, operands []string) (pattern.Pattern, error)
}

func (op operator) match(s string) ([]string, bool) {
	operands := splitFields(op.sep, s)
	if op.nary {
		return operands, len(operands) > 1
	}
	return operands, len(operands) == 2
}

// operators lists the operators from the loosest binding to the tightest.
// The first one that matches wins.
var operators []operator

func init() {
	operators = []operator{
		{name: "mult", sep: regexp.MustCompile(`(\b|\s)mult(\b|\s)`), eval: (*Parser).evalMultiply},
		{name: "scale", sep: regexp.MustCompile(`(\b|\s)scale(\b|\s)`), eval: (*Parser).evalScale},
		{name: `\-`, sep: regexp.MustCompile(`\s\\-\s`), eval: (*Parser).evalErosionDifference},
		{name: `\`, sep: regexp.MustCompile(`(\b|\s)\\(\b|\s)`), eval: (*Parser).evalDifference},
		{name: "u", sep: regexp.MustCompile(`(\b|\s)u(\b|\s)`), nary: true, eval: (*Parser).evalUnion},
		{name: "+", sep: regexp.MustCompile(`\+`), nary: true, eval: (*Parser).evalSum},
		{name: "-", sep: regexp.MustCompile(`\s-\s`), eval: (*Parser).evalErosion},
		{name: "x", sep: regexp.MustCompile(`(\b|\s)x(\b|\s)`), eval: (*Parser).evalMultiple},
		{name: "*", sep: regexp.MustCompile(`(\b|\s)\*(\b|\s)`), eval: (*Parser).evalMultiply},
		{name: ">>", sep: regexp.MustCompile(`(\b|\s)>>(\b|\s)`), eval: (*Parser).evalShift},
	}
}

func (p *Parser) parseAll(specs []string) ([]pattern.Pattern, error) {
	res := make([]pattern.Pattern, len(specs))
	for k, s := range specs {
		var err error
		if res[k], err = p.Parse(s); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// evalMultiply handles "m mult P" and "m * P".
func (p *Parser) evalMultiply(operands []string) (pattern.Pattern, error) {
	m, err := parseNumber(operands[0])
	if err != nil {
		return nil, err
	}
	ptn, err := p.Parse(operands[1])
	if err != nil {
		return nil, err
	}
	return pattern.Multiply(ptn, m), nil
}

// evalScale handles "mx my scale P".
func (p *Parser) evalScale(operands []string) (pattern.Pattern, error) {
	a := newArgs(operands[0])
	mx, my := a.float(0), a.float(1)
	if a.err != nil {
		return nil, a.err
	}
	ptn, err := p.Parse(operands[1])
	if err != nil {
		return nil, err
	}
	return pattern.Scale(ptn, mx, my), nil
}

// evalErosionDifference handles "A \- B": A without its erosion by B,
// or A itself when the erosion is empty.
func (p *Parser) evalErosionDifference(operands []string) (pattern.Pattern, error) {
	ptn, err := p.parseAll(operands)
	if err != nil {
		return nil, err
	}
	erosion, ok, err := pattern.MinkowskiSubtract(ptn[0], ptn[1])
	if err != nil {
		return nil, err
	}
	if !ok {
		return ptn[0], nil
	}
	return Subtract(ptn[0], erosion)
}

// evalDifference handles "A \ B".
func (p *Parser) evalDifference(operands []string) (pattern.Pattern, error) {
	ptn, err := p.parseAll(operands)
	if err != nil {
		return nil, err
	}
	return Subtract(ptn[0], ptn[1])
}

// evalUnion handles "A u B u ...".
func (p *Parser) evalUnion(operands []string) (pattern.Pattern, error) {
	ptn, err := p.parseAll(operands)
	if err != nil {
		return nil, err
	}
	return pattern.Union(ptn...)
}

// evalSum handles "A + B + ...".
func (p *Parser) evalSum(operands []string) (pattern.Pattern, error) {
	ptn, err := p.parseAll(operands)
	if err != nil {
		return nil, err
	}
	return pattern.MinkowskiSum(ptn...)
}

// evalErosion handles "A - B"; an empty erosion is an error.
func (p *Parser) evalErosion(operands []string) (pattern.Pattern, error) {
	ptn, err := p.parseAll(operands)
	if err != nil {
		return nil, err
	}
	erosion, ok, err := pattern.MinkowskiSubtract(ptn[0], ptn[1])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmptyErosion
	}
	return erosion, nil
}

// maxMultiplier bounds n in "n x P".
const maxMultiplier = math.MaxInt32

// evalMultiple handles "n x P": P added to itself ⌊n⌋ times, plus P scaled
// by the fractional part of n and rounded to the lattice.
func (p *Parser) evalMultiple(operands []string) (pattern.Pattern, error) {
	n, err := parseNumber(operands[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative multiplier %v", ErrOutOfRange, n)
	}
	if !(n <= maxMultiplier) {
		return nil, fmt.Errorf("%w: too large multiplier %v", ErrOutOfRange, n)
	}
	ptn, err := p.Parse(operands[1])
	if err != nil {
		return nil, err
	}
	whole := int(n)
	frac := n - float64(whole)
	if whole == 0 {
		return pattern.Round(pattern.Multiply(ptn, frac)), nil
	}
	res, err := pattern.MinkowskiMultiple(ptn, whole)
	if err != nil || frac == 0 {
		return res, err
	}
	return pattern.MinkowskiSum(res, pattern.Round(pattern.Multiply(ptn, frac)))
}

// evalShift handles "P >> x y".
func (p *Parser) evalShift(operands []string) (pattern.Pattern, error) {
	a := newArgs(operands[1])
	x, y := a.float(0), a.float(1)
	if a.err != nil {
		return nil, a.err
	}
	ptn, err := p.Parse(operands[0])
	if err != nil {
		return nil, err
	}
	return pattern.Shift(ptn, pattern.Pt(x, y))
}
