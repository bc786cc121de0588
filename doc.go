// Package strel builds structuring elements for mathematical morphology
// from short text specifications.
//
// # Overview
//
// A structuring element is a finite set of points (a pattern, see package
// pattern) used as the probe of dilation, erosion, opening and closing.
// strel turns strings such as "circle 10", "rect 5 3" or
// "2 x circle 5 + square 3" into patterns, and keeps recently parsed
// patterns in a cache per element type.
//
// # Quick Start
//
//	import "github.com/gogpu/strel"
//
//	r := strel.NewRegistry()
//	defer r.Close()
//
//	disk, err := r.Parse("circle 10", strel.Uint8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(disk.PointCount())
//
// # Grammar
//
// A specification is trimmed and lower-cased, then tried in this order:
//   - modifiers: a " -raw" or " -slow" suffix, a "bound " or "ext-bound " prefix
//   - a 0/1 matrix, one text line per row
//   - operators, loosest first: mult, scale, \-, \, u, +, -, x, *, >>
//   - shapes: circle, ring, ellipse, rect, square, octagon, cross,
//     sphere, hyperboloid, paraboloid (with -surface variants), series, points
//
// Operands of operators are specifications themselves and are parsed (and
// cached) recursively.
//
// # Element Types
//
// 3D shapes take heights in 0..1 units. The z axis is scaled by
// ElementType.MaxValue and, for integer element types, rounded to the lattice.
//
// # Errors
//
// Every parse failure is a *SpecError, which matches ErrInvalidSpecification
// under errors.Is and wraps the cause (ErrOutOfRange, ErrMissingParameter,
// ErrEmptyErosion, ...).
//
// # Logging
//
// strel is silent by default. SetLogger or WithLogger installs an
// *slog.Logger; cache hits and stores are logged at Debug level.
package strel

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
