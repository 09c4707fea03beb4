// Package classifier analyzes the shape of the revenue-vs-price curve implied
// by a price/demand observation set.
//
// The classification uses the discrete second derivative: observations are
// sorted by price, slopes of revenue between consecutive distinct prices are
// computed, and the differences of those slopes form the curvature series. A
// uniformly non-positive series is a concave (hill-shaped) curve; uniformly
// non-negative is convex (bowl-shaped). Mixed series are graded against a
// tolerance before being declared bumpy.
package classifier

import (
	"fmt"
	"sort"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/constants"
)

// Kind identifies a curvature verdict.
type Kind int

const (
	// Indeterminate means too few distinct slopes exist for curvature analysis.
	Indeterminate Kind = iota
	// Concave means every curvature sample is <= 0.
	Concave
	// Convex means every curvature sample is >= 0.
	Convex
	// MostlyConcave means the concave fraction met the tolerance.
	MostlyConcave
	// MostlyConvex means the convex fraction met the tolerance.
	MostlyConvex
	// Mixed means neither fraction met the tolerance.
	Mixed
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Concave:
		return "Concave"
	case Convex:
		return "Convex"
	case MostlyConcave:
		return "MostlyConcave"
	case MostlyConvex:
		return "MostlyConvex"
	case Mixed:
		return "Mixed"
	default:
		return "Indeterminate"
	}
}

// Verdict is the result of a curvature classification. Fraction carries the
// share of agreeing curvature samples for the MostlyConcave and MostlyConvex
// kinds; Reason explains an Indeterminate verdict.
type Verdict struct {
	Kind     Kind
	Fraction float64
	Reason   string
}

// Describe renders the verdict the way the analysis report prints it.
func (v Verdict) Describe() string {
	switch v.Kind {
	case Concave:
		return "Concave (perfect hill shape) - maximization"
	case Convex:
		return "Convex (perfect bowl shape) - minimization"
	case MostlyConcave:
		return fmt.Sprintf("Mostly concave (%.2f%% of curvature points <= 0)", v.Fraction*100)
	case MostlyConvex:
		return fmt.Sprintf("Mostly convex (%.2f%% of curvature points >= 0)", v.Fraction*100)
	case Mixed:
		return "Non-convex (mixed/bumpy)"
	default:
		return "Indeterminate: " + v.Reason
	}
}

// Classifier grades curvature series against a tolerance. Tolerance is the
// fraction of samples that must agree in sign for a "mostly" verdict.
type Classifier struct {
	Tolerance float64
}

// New constructs a Classifier. Tolerances outside (0, 1] fall back to the
// default.
func New(tolerance float64) *Classifier {
	if tolerance <= 0 || tolerance > 1 {
		tolerance = constants.DefaultCurvatureTolerance
	}
	return &Classifier{Tolerance: tolerance}
}

// Classify computes revenue = price * demand and grades the curvature of the
// revenue-vs-price curve. It never fails: degenerate input yields an
// Indeterminate verdict with a reason.
func (c *Classifier) Classify(prices, demands []float64) Verdict {
	if len(prices) != len(demands) {
		return Verdict{Kind: Indeterminate, Reason: "prices and demands have different lengths"}
	}
	if len(prices) == 0 {
		return Verdict{Kind: Indeterminate, Reason: "empty dataset"}
	}

	order := make([]int, len(prices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return prices[order[i]] < prices[order[j]]
	})

	// Slopes between consecutive distinct prices. Duplicate prices are
	// skipped to avoid undefined slopes.
	var slopes []float64
	for i := 1; i < len(order); i++ {
		prev, cur := order[i-1], order[i]
		dx := prices[cur] - prices[prev]
		if dx == 0 {
			continue
		}
		dy := prices[cur]*demands[cur] - prices[prev]*demands[prev]
		slopes = append(slopes, dy/dx)
	}
	if len(slopes) < 2 {
		return Verdict{Kind: Indeterminate, Reason: "insufficient distinct price changes for curvature analysis"}
	}

	curvature := make([]float64, len(slopes)-1)
	for i := range curvature {
		curvature[i] = slopes[i+1] - slopes[i]
	}

	concave, convex := 0, 0
	for _, v := range curvature {
		if v <= 0 {
			concave++
		}
		if v >= 0 {
			convex++
		}
	}

	total := len(curvature)
	fracConcave := float64(concave) / float64(total)
	fracConvex := float64(convex) / float64(total)

	switch {
	case concave == total:
		return Verdict{Kind: Concave, Fraction: 1}
	case convex == total:
		return Verdict{Kind: Convex, Fraction: 1}
	case fracConcave >= c.Tolerance:
		return Verdict{Kind: MostlyConcave, Fraction: fracConcave}
	case fracConvex >= c.Tolerance:
		return Verdict{Kind: MostlyConvex, Fraction: fracConvex}
	default:
		return Verdict{Kind: Mixed}
	}
}
