package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestConvexHullDegenerateInput(t *testing.T) {
	tests := []struct {
		name    string
		points  []Point
		wantErr error
	}{
		{
			name:    "Empty input",
			points:  nil,
			wantErr: ErrTooFewPoints,
		},
		{
			name:    "Two points",
			points:  []Point{{0, 0}, {1, 1}},
			wantErr: ErrTooFewPoints,
		},
		{
			name:    "Duplicates collapse below three",
			points:  []Point{{0, 0}, {0, 0}, {1, 1}, {1, 1}},
			wantErr: ErrTooFewPoints,
		},
		{
			name:    "Collinear points",
			points:  []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
			wantErr: ErrCollinearPoints,
		},
		{
			name:    "Vertical line",
			points:  []Point{{1, 0}, {1, 5}, {1, 10}},
			wantErr: ErrCollinearPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvexHull(tt.points)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ConvexHull() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvexHullTriangle(t *testing.T) {
	points := []Point{{0, 0}, {4, 0}, {2, 3}}
	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}
	if hull.VertexCount() != 3 {
		t.Errorf("VertexCount() = %d, expected 3", hull.VertexCount())
	}
	for _, p := range points {
		if !hull.ContainsVertex(p, 1e-9) {
			t.Errorf("hull is missing vertex %v", p)
		}
	}
}

func TestConvexHullInteriorPointExcluded(t *testing.T) {
	points := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}}
	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}
	if hull.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, expected 4", hull.VertexCount())
	}
	if hull.ContainsVertex(Point{2, 2}, 1e-9) {
		t.Errorf("interior point should not be a hull vertex")
	}
}

func TestConvexHullRetainsCollinearBoundaryPoints(t *testing.T) {
	// (2, 0) sits on the bottom edge; it must stay a vertex so projected
	// observations remain hull members.
	points := []Point{{0, 0}, {2, 0}, {4, 0}, {4, 4}, {0, 4}}
	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}
	if !hull.ContainsVertex(Point{2, 0}, 1e-9) {
		t.Errorf("collinear boundary point was dropped from the hull")
	}
	if hull.VertexCount() != 5 {
		t.Errorf("VertexCount() = %d, expected 5", hull.VertexCount())
	}
}

func TestConvexHullConcaveRevenueCurve(t *testing.T) {
	// Strictly concave revenue points: every observation is a hull vertex.
	prices := []float64{5, 10, 15, 20, 25, 30, 35}
	revenue := []float64{575, 1050, 1380, 1400, 1250, 900, 350}
	points := make([]Point, len(prices))
	for i := range prices {
		points[i] = Point{X: prices[i], Y: revenue[i]}
	}

	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}
	if hull.VertexCount() != len(points) {
		t.Errorf("VertexCount() = %d, expected %d", hull.VertexCount(), len(points))
	}
	for i, p := range points {
		if !hull.ContainsVertex(p, 1e-9) {
			t.Errorf("observation %d (%v) should be a hull vertex", i, p)
		}
	}
}

func TestUpperEnvelope(t *testing.T) {
	// Unit square: the upper envelope is the constant line y = 1.
	points := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}

	xs := []float64{0, 0.25, 0.5, 0.75, 1}
	envelope := hull.UpperEnvelope(xs)
	for i, v := range envelope {
		if math.Abs(v-1) > 1e-12 {
			t.Errorf("UpperEnvelope at x=%v = %v, expected 1", xs[i], v)
		}
	}
}

func TestUpperEnvelopeInterpolatesBetweenVertices(t *testing.T) {
	// Hill: upper chain is (0,0)-(2,4)-(4,0).
	points := []Point{{0, 0}, {2, 4}, {4, 0}, {2, -1}}
	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}

	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{1, 2},
		{2, 4},
		{3, 2},
		{4, 0},
		{-1, 0}, // clamps to the left endpoint
		{5, 0},  // clamps to the right endpoint
	}
	for _, tt := range tests {
		got := hull.UpperEnvelope([]float64{tt.x})[0]
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("UpperEnvelope(%v) = %v, expected %v", tt.x, got, tt.want)
		}
	}
}

func TestEnvelopeUsesAllVerticesSortedByX(t *testing.T) {
	// The full-vertex curve dips through the lower vertex (2.5,-1), so near
	// that x it runs well below the upper boundary.
	points := []Point{{0, 0}, {1, 3.9}, {2, 4}, {3, 3.9}, {4, 0}, {2.5, -1}}
	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}

	curve := hull.Envelope([]float64{2.25})
	upper := hull.UpperEnvelope([]float64{2.25})
	if curve[0] >= upper[0] {
		t.Errorf("full-vertex curve (%v) should dip below the upper envelope (%v)", curve[0], upper[0])
	}
}

func TestConvexHullIndicesReferenceInput(t *testing.T) {
	points := []Point{{2, 2}, {0, 0}, {4, 0}, {4, 4}, {0, 4}}
	hull, err := ConvexHull(points)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}
	for i, idx := range hull.Indices {
		if idx < 0 || idx >= len(points) {
			t.Fatalf("vertex %d has out-of-range index %d", i, idx)
		}
		if points[idx] != hull.Vertices[i] {
			t.Errorf("index %d points at %v, expected vertex %v", idx, points[idx], hull.Vertices[i])
		}
	}
}
