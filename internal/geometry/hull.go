// Package geometry implements the planar convex-hull primitive used for
// revenue-curve analysis.
//
// The hull is computed with Andrew's monotone chain over points sorted by
// (X, Y). Unlike the textbook variant, collinear boundary points are retained
// as vertices: observations that have been projected onto a hull edge must
// still register as hull members when the dataset is re-checked.
//
// Complexity: O(n log n) time for the sort, O(n) for the chain sweep.
package geometry

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrTooFewPoints indicates fewer than 3 distinct points were supplied.
	ErrTooFewPoints = errors.New("geometry: convex hull requires at least 3 distinct points")

	// ErrCollinearPoints indicates every supplied point lies on one line.
	ErrCollinearPoints = errors.New("geometry: points are collinear")
)

// collinearTolerance bounds the cross product magnitude treated as zero turn.
const collinearTolerance = 1e-12

// Point is a point in the (price, revenue) plane.
type Point struct {
	X float64
	Y float64
}

// Hull is a 2-D convex hull. Vertices run counter-clockwise starting from the
// lowest-X point; Indices maps each vertex back to the first input index that
// produced it.
type Hull struct {
	Vertices []Point
	Indices  []int

	lower []Point // chain sorted by ascending X
	upper []Point // chain sorted by ascending X
}

type indexedPoint struct {
	Point
	index int
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ConvexHull computes the convex hull of points. Degenerate input (fewer than
// 3 distinct points, or all points collinear) fails with ErrTooFewPoints or
// ErrCollinearPoints; callers must treat that as "hull unknown".
func ConvexHull(points []Point) (*Hull, error) {
	distinct := dedupe(points)
	if len(distinct) < 3 {
		return nil, ErrTooFewPoints
	}

	sort.Slice(distinct, func(i, j int) bool {
		if distinct[i].X != distinct[j].X {
			return distinct[i].X < distinct[j].X
		}
		return distinct[i].Y < distinct[j].Y
	})

	if allCollinear(distinct) {
		return nil, ErrCollinearPoints
	}

	// Lower chain: popping only on strict clockwise turns keeps collinear
	// boundary points as vertices.
	var lower []indexedPoint
	for _, p := range distinct {
		for len(lower) >= 2 && cross(lower[len(lower)-2].Point, lower[len(lower)-1].Point, p.Point) < -collinearTolerance {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	// Upper chain, swept right to left.
	var upper []indexedPoint
	for i := len(distinct) - 1; i >= 0; i-- {
		p := distinct[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2].Point, upper[len(upper)-1].Point, p.Point) < -collinearTolerance {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	h := &Hull{}
	for _, p := range lower {
		h.lower = append(h.lower, p.Point)
	}
	// Store the upper chain in ascending X order for interpolation.
	for i := len(upper) - 1; i >= 0; i-- {
		h.upper = append(h.upper, upper[i].Point)
	}

	// Concatenate chains counter-clockwise, dropping the duplicated endpoints.
	for _, p := range lower[:len(lower)-1] {
		h.Vertices = append(h.Vertices, p.Point)
		h.Indices = append(h.Indices, p.index)
	}
	for _, p := range upper[:len(upper)-1] {
		h.Vertices = append(h.Vertices, p.Point)
		h.Indices = append(h.Indices, p.index)
	}

	return h, nil
}

// dedupe drops exact duplicate coordinates, keeping the first input index.
func dedupe(points []Point) []indexedPoint {
	seen := make(map[Point]bool, len(points))
	out := make([]indexedPoint, 0, len(points))
	for i, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, indexedPoint{Point: p, index: i})
	}
	return out
}

func allCollinear(points []indexedPoint) bool {
	first := points[0].Point
	last := points[len(points)-1].Point
	for _, p := range points[1 : len(points)-1] {
		if math.Abs(cross(first, last, p.Point)) > collinearTolerance {
			return false
		}
	}
	return true
}

// VertexCount reports the number of hull vertices.
func (h *Hull) VertexCount() int {
	return len(h.Vertices)
}

// ContainsVertex reports whether p coincides with a hull vertex within tol on
// both coordinates.
func (h *Hull) ContainsVertex(p Point, tol float64) bool {
	for _, v := range h.Vertices {
		if math.Abs(v.X-p.X) <= tol && math.Abs(v.Y-p.Y) <= tol {
			return true
		}
	}
	return false
}

// UpperEnvelope evaluates the piecewise-linear upper hull boundary at each x.
// Values outside the hull's X range clamp to the nearest endpoint.
func (h *Hull) UpperEnvelope(xs []float64) []float64 {
	// Vertical hull edges leave both edge endpoints in the chain; the upper
	// boundary keeps the higher one.
	knots := make([]Point, 0, len(h.upper))
	for _, p := range h.upper {
		if len(knots) > 0 && knots[len(knots)-1].X == p.X {
			if p.Y > knots[len(knots)-1].Y {
				knots[len(knots)-1] = p
			}
			continue
		}
		knots = append(knots, p)
	}
	return interpolate(knots, xs)
}

// Envelope evaluates the piecewise-linear curve through all hull vertices
// sorted by X. With lower-chain vertices between the endpoints this curve is
// not the upper boundary; it reproduces the interpolation behavior of the
// original convexity check, where points may land above it.
func (h *Hull) Envelope(xs []float64) []float64 {
	sorted := make([]Point, len(h.Vertices))
	copy(sorted, h.Vertices)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	// Duplicate X coordinates (vertical hull edges) keep the higher vertex.
	uniq := sorted[:0]
	for _, p := range sorted {
		if len(uniq) > 0 && uniq[len(uniq)-1].X == p.X {
			uniq[len(uniq)-1] = p
			continue
		}
		uniq = append(uniq, p)
	}
	return interpolate(uniq, xs)
}

// interpolate linearly interpolates the polyline knots (ascending X) at each
// x, clamping beyond the ends.
func interpolate(knots []Point, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = interpolateAt(knots, x)
	}
	return out
}

func interpolateAt(knots []Point, x float64) float64 {
	if len(knots) == 0 {
		return 0
	}
	if x <= knots[0].X {
		return knots[0].Y
	}
	if x >= knots[len(knots)-1].X {
		return knots[len(knots)-1].Y
	}
	j := sort.Search(len(knots), func(k int) bool { return knots[k].X >= x })
	a, b := knots[j-1], knots[j]
	if b.X == a.X {
		return math.Max(a.Y, b.Y)
	}
	t := (x - a.X) / (b.X - a.X)
	return a.Y + t*(b.Y-a.Y)
}
