// Package dataset owns a price/demand observation set and its hull-based
// convexity checks and transforms.
//
// The default convexity test is the exact one: the dataset is convex iff
// every observation is itself a hull vertex. Because the hull retains
// collinear boundary points, a dataset projected onto its envelope passes the
// exact test afterwards. The alternative envelope test compares each revenue
// against the curve interpolated through all hull vertices sorted by price,
// within a small absolute tolerance; the two tests differ on interior points
// lying exactly on a hull edge.
package dataset

import (
	"fmt"
	"math"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/geometry"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/constants"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/validation"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Dataset holds co-indexed price, demand, and revenue series together with
// the most recent hull computed over the (price, revenue) points.
type Dataset struct {
	Prices  []float64
	Demands []float64
	Revenue []float64

	hull     *geometry.Hull
	envelope []float64 // upper-envelope revenue sampled at Prices
	test     string

	snapRevenue []float64
	snapDemands []float64

	logger *zap.Logger
}

// ConvexityReport summarizes a hull-based convexity check.
type ConvexityReport struct {
	IsConvex      bool
	Test          string
	VertexIndices []int
	VertexCount   int
	PointCount    int
	AboveEnvelope int
	BelowEnvelope int
}

// TransformSummary reports the outcome of a dataset mutation.
type TransformSummary struct {
	Status        string
	PointsUpdated int
	ConvexAfter   bool
}

// New constructs a Dataset from co-indexed prices and demands. A nil logger
// falls back to a no-op logger.
func New(logger *zap.Logger, prices, demands []float64) (*Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(prices) != len(demands) {
		return nil, fmt.Errorf("dataset: prices and demands must have equal length (%d != %d)", len(prices), len(demands))
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("dataset: at least one observation is required")
	}

	d := &Dataset{
		Prices:  append([]float64(nil), prices...),
		Demands: append([]float64(nil), demands...),
		Revenue: make([]float64, len(prices)),
		test:    constants.ConvexityTestExact,
		logger:  logger,
	}
	floats.MulTo(d.Revenue, d.Prices, d.Demands)
	return d, nil
}

// SetConvexityTest selects the convexity test mode. Unknown modes are
// rejected and leave the current mode in place.
func (d *Dataset) SetConvexityTest(mode string) error {
	if err := validation.ValidateConvexityTest(mode); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	d.test = mode
	return nil
}

// Len reports the number of observations.
func (d *Dataset) Len() int {
	return len(d.Prices)
}

// CheckConvexity computes the convex hull of the (price, revenue) points and
// applies the selected convexity test. A failed hull computation leaves any
// previously stored hull untouched; the caller must treat the error as
// "convexity unknown", not as non-convex.
func (d *Dataset) CheckConvexity() (*ConvexityReport, error) {
	points := make([]geometry.Point, len(d.Prices))
	for i := range points {
		points[i] = geometry.Point{X: d.Prices[i], Y: d.Revenue[i]}
	}

	hull, err := geometry.ConvexHull(points)
	if err != nil {
		return nil, fmt.Errorf("dataset: hull computation failed: %w", err)
	}
	d.hull = hull
	d.envelope = hull.UpperEnvelope(d.Prices)

	report := &ConvexityReport{
		Test:          d.test,
		VertexIndices: hull.Indices,
		VertexCount:   hull.VertexCount(),
		PointCount:    len(points),
	}

	curve := hull.Envelope(d.Prices)
	for i := range d.Revenue {
		if d.Revenue[i] > curve[i]+constants.EnvelopeTolerance {
			report.AboveEnvelope++
		} else if d.Revenue[i] < curve[i]-constants.EnvelopeTolerance {
			report.BelowEnvelope++
		}
	}

	switch d.test {
	case constants.ConvexityTestEnvelope:
		report.IsConvex = report.AboveEnvelope == 0
	default:
		report.IsConvex = true
		for _, p := range points {
			if !hull.ContainsVertex(p, constants.VertexMatchTolerance) {
				report.IsConvex = false
				break
			}
		}
	}

	d.logger.Debug("convexity check complete",
		zap.String("op", "dataset.CheckConvexity"),
		zap.String("test", report.Test),
		zap.Bool("isConvex", report.IsConvex),
		zap.Int("vertices", report.VertexCount),
		zap.Int("points", report.PointCount),
	)

	return report, nil
}

// MakeConvex replaces the revenue series with the upper-envelope values and
// recomputes demand as revenue / (price + epsilon). The hull is recomputed
// afterwards; the transformed dataset is expected, but not guaranteed, to
// pass the convexity check.
func (d *Dataset) MakeConvex() (*TransformSummary, error) {
	if d.hull == nil || d.envelope == nil {
		if _, err := d.CheckConvexity(); err != nil {
			return nil, err
		}
	}

	copy(d.Revenue, d.envelope)
	for i := range d.Demands {
		d.Demands[i] = d.Revenue[i] / (d.Prices[i] + constants.PriceEpsilon)
	}

	// The transformed dataset is expected, but not guaranteed, to pass; a
	// degenerate projection (e.g. all points pulled onto one line) leaves the
	// previous hull in place.
	convexAfter := false
	if report, err := d.CheckConvexity(); err != nil {
		d.logger.Warn("hull recomputation failed after projection",
			zap.String("op", "dataset.MakeConvex"),
			zap.Error(err),
		)
	} else {
		convexAfter = report.IsConvex
	}

	d.logger.Info("revenue replaced with hull envelope",
		zap.String("op", "dataset.MakeConvex"),
		zap.Int("pointsUpdated", len(d.Prices)),
		zap.Bool("convexAfter", convexAfter),
	)

	return &TransformSummary{
		Status:        "revenue replaced with convex hull envelope",
		PointsUpdated: len(d.Prices),
		ConvexAfter:   convexAfter,
	}, nil
}

// MakeNonConvex snapshots the current revenue and demand series and adds a
// deterministic oscillation amplitude*sin(price/frequencyFactor) to revenue,
// recomputing demand consistently. The snapshot is consumed by
// RestoreFromNonConvex.
func (d *Dataset) MakeNonConvex(amplitude, frequencyFactor float64) (*TransformSummary, error) {
	if frequencyFactor == 0 {
		return nil, fmt.Errorf("dataset: frequencyFactor must be non-zero")
	}

	d.snapRevenue = append([]float64(nil), d.Revenue...)
	d.snapDemands = append([]float64(nil), d.Demands...)

	for i := range d.Revenue {
		d.Revenue[i] += amplitude * math.Sin(d.Prices[i]/frequencyFactor)
		d.Demands[i] = d.Revenue[i] / (d.Prices[i] + constants.PriceEpsilon)
	}

	// The cached hull belongs to the previous revenue series.
	d.hull = nil
	d.envelope = nil

	report, err := d.CheckConvexity()
	convexAfter := false
	if err != nil {
		// The perturbed points may be degenerate; the hull stays invalidated
		// until the next successful check.
		d.logger.Warn("hull recomputation failed after perturbation",
			zap.String("op", "dataset.MakeNonConvex"),
			zap.Error(err),
		)
	} else {
		convexAfter = report.IsConvex
	}

	d.logger.Info("dataset perturbed",
		zap.String("op", "dataset.MakeNonConvex"),
		zap.Float64("amplitude", amplitude),
		zap.Float64("frequencyFactor", frequencyFactor),
	)

	return &TransformSummary{
		Status:        "dataset transformed to non-convex",
		PointsUpdated: len(d.Prices),
		ConvexAfter:   convexAfter,
	}, nil
}

// RestoreFromNonConvex restores the snapshot taken by MakeNonConvex, clears
// it, and re-runs MakeConvex so the restored dataset is convex. The snapshot
// is single-use; calling this without a prior perturbation is a no-op.
func (d *Dataset) RestoreFromNonConvex() (*TransformSummary, error) {
	if d.snapRevenue == nil {
		return &TransformSummary{Status: "no prior perturbation to restore"}, nil
	}

	copy(d.Revenue, d.snapRevenue)
	copy(d.Demands, d.snapDemands)
	d.snapRevenue = nil
	d.snapDemands = nil
	d.hull = nil
	d.envelope = nil

	summary, err := d.MakeConvex()
	if err != nil {
		return nil, err
	}

	return &TransformSummary{
		Status:        "dataset restored and made convex",
		PointsUpdated: summary.PointsUpdated,
		ConvexAfter:   summary.ConvexAfter,
	}, nil
}
