// Package pattern implements immutable point sets used as structuring elements.
//
// Concrete patterns:
//   - PointSet: explicit real-valued points
//   - Grid: explicit indexes of a uniform grid
//   - Rect: a full box of grid indexes
//   - Rows: grid indexes stored as runs along axis 0
//   - Sum, UnionPattern: lazy Minkowski sums and unions
//
// Operations that can be done on boxes or runs (shift, scale, surface,
// Minkowski sums of boxes) never enumerate points.
package pattern
