// Package model builds and solves the parametric price-optimization problem.
//
// The model derives its own revenue curve R(p) = alpha*p - beta*p^2 from the
// demand equation demand = alpha - beta*price; it does not sample observed
// data. Three objective formulations share one feasible region: maximizing
// the concave revenue, minimizing its negation, and maximizing a cubic-
// perturbed variant that is neither convex nor concave. The active
// formulation is an explicit tag; Solve dispatches on it.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/config"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/constants"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/mathutil"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// ErrModelNotBuilt indicates Solve or a diagnostic was invoked before any
// build call. This is a caller bug, not a solver condition.
var ErrModelNotBuilt = errors.New("model: no objective has been built")

// ObjectiveKind tags the active objective formulation.
type ObjectiveKind int

const (
	// Unbuilt is the initial state; only the build calls leave it.
	Unbuilt ObjectiveKind = iota
	// Concave maximizes alpha*p - beta*p^2.
	Concave
	// Convex minimizes -alpha*p + beta*p^2.
	Convex
	// NonConvex maximizes the cubic-perturbed revenue; diagnostic only.
	NonConvex
)

// String implements fmt.Stringer.
func (k ObjectiveKind) String() string {
	switch k {
	case Concave:
		return "concave"
	case Convex:
		return "convex"
	case NonConvex:
		return "nonconvex_nonconcave"
	default:
		return "unbuilt"
	}
}

// Solution is the outcome of a solve. Nil pointers signal solver failure;
// they are never partially populated.
type Solution struct {
	Price  *float64
	Value  *float64
	Demand *float64
	Status string
}

// Optimal reports whether the solve reached an optimal solution.
func (s Solution) Optimal() bool {
	return s.Status == constants.SolveStatusOptimal
}

// CurvatureReport describes the symbolic curvature of the active objective
// and whether the problem composition certifies it for a convex solver.
type CurvatureReport struct {
	Kind          ObjectiveKind
	Curvature     string // "concave", "convex", or "neither convex nor concave"
	DCPCompliant  bool
	Justification string
	Conclusion    string
}

// HessianReport carries the closed-form second derivative of the active
// revenue objective plus a finite-difference cross-check.
type HessianReport struct {
	Method                  string
	SecondDerivative        float64 // closed form, evaluated at the interval midpoint when non-constant
	Constant                bool
	NumericSecondDerivative float64
	Result                  string // "concave", "convex", "linear", or "indefinite"
	IsConcave               bool
	IsConvex                bool
	SuitableForMaximization bool
}

// PricingModel owns the demand-curve parameters and the active objective tag.
type PricingModel struct {
	logger *zap.Logger

	alpha           float64
	beta            float64
	maxCapacity     float64
	maxPrice        float64
	costPerUnit     float64
	minProfitMargin float64
	minPrice        float64

	kind     ObjectiveKind
	lo, hi   float64 // feasible price interval, recomputed on every build
	feasible bool
}

// New constructs a PricingModel from the pricing configuration. A nil logger
// falls back to a no-op logger.
func New(logger *zap.Logger, pricing config.PricingConfig) *PricingModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingModel{
		logger:          logger,
		alpha:           pricing.Alpha,
		beta:            pricing.Beta,
		maxCapacity:     pricing.MaxCapacity,
		maxPrice:        pricing.MaxPrice,
		costPerUnit:     pricing.CostPerUnit,
		minProfitMargin: pricing.MinProfitMargin,
		minPrice:        pricing.MinPrice(),
	}
}

// Kind reports the active objective formulation.
func (m *PricingModel) Kind() ObjectiveKind {
	return m.kind
}

// MinPrice reports the derived lower price bound.
func (m *PricingModel) MinPrice() float64 {
	return m.minPrice
}

// FeasibleInterval reports the price interval the shared feasible region
// reduces to, and whether it is non-empty. Only meaningful after a build.
func (m *PricingModel) FeasibleInterval() (lo, hi float64, ok bool) {
	return m.lo, m.hi, m.feasible
}

// BuildConcave activates the revenue-maximization objective.
func (m *PricingModel) BuildConcave() {
	m.build(Concave)
}

// BuildConvex activates the negated-revenue minimization objective. The
// optimum location matches the concave formulation; the objective value has
// the opposite sign.
func (m *PricingModel) BuildConvex() {
	m.build(Convex)
}

// BuildNonConvex activates the cubic-perturbed objective. The cubic term
// breaks both concavity and convexity; the formulation exists for curvature
// diagnostics and its solve result carries no optimality guarantee.
func (m *PricingModel) BuildNonConvex() {
	m.build(NonConvex)
}

// RestoreConvex rebuilds the convex formulation.
func (m *PricingModel) RestoreConvex() {
	m.BuildConvex()
}

func (m *PricingModel) build(kind ObjectiveKind) {
	m.kind = kind
	m.rebuildFeasibleRegion()
	m.logger.Debug("objective built",
		zap.String("op", "model.build"),
		zap.String("kind", kind.String()),
		zap.Float64("minPrice", m.lo),
		zap.Float64("maxPrice", m.hi),
		zap.Bool("feasible", m.feasible),
	)
}

// rebuildFeasibleRegion reduces the shared constraints
// (demand = alpha - beta*price, demand <= capacity, demand >= 0,
// minPrice <= price <= maxPrice) to a single price interval. The demand
// constraints bound the price on opposite sides depending on the sign of
// beta; with beta = 0 demand is constant and they hold either everywhere or
// nowhere.
func (m *PricingModel) rebuildFeasibleRegion() {
	lo := m.minPrice
	hi := m.maxPrice
	feasible := true
	switch {
	case m.beta > 0:
		// demand <= capacity
		lo = mathutil.Max(lo, (m.alpha-m.maxCapacity)/m.beta)
		// demand >= 0
		hi = mathutil.Min(hi, m.alpha/m.beta)
	case m.beta < 0:
		// Demand grows with price, so the bounds swap sides.
		hi = mathutil.Min(hi, (m.alpha-m.maxCapacity)/m.beta)
		lo = mathutil.Max(lo, m.alpha/m.beta)
	default:
		feasible = m.alpha >= 0 && m.alpha <= m.maxCapacity
	}
	m.lo = lo
	m.hi = hi
	m.feasible = feasible && lo <= hi && !math.IsNaN(lo) && !math.IsNaN(hi) && !math.IsInf(lo, 0)
}

// Revenue evaluates R(p) = alpha*p - beta*p^2.
func (m *PricingModel) Revenue(price float64) float64 {
	return m.alpha*price - m.beta*price*price
}

// NegatedRevenue evaluates g(p) = -alpha*p + beta*p^2.
func (m *PricingModel) NegatedRevenue(price float64) float64 {
	return -m.Revenue(price)
}

// CubicRevenue evaluates the non-convex objective
// R(p) + CubicCoefficient*p^3.
func (m *PricingModel) CubicRevenue(price float64) float64 {
	return m.Revenue(price) + constants.CubicCoefficient*price*price*price
}

// ConcaveRevenueCurve samples R(p) across prices, for reporting.
func (m *PricingModel) ConcaveRevenueCurve(prices []float64) []float64 {
	return sample(prices, m.Revenue)
}

// ConvexRevenueCurve samples g(p) across prices, for reporting.
func (m *PricingModel) ConvexRevenueCurve(prices []float64) []float64 {
	return sample(prices, m.NegatedRevenue)
}

// NonConvexRevenueCurve samples the cubic-perturbed revenue across prices.
func (m *PricingModel) NonConvexRevenueCurve(prices []float64) []float64 {
	return sample(prices, m.CubicRevenue)
}

func sample(prices []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = f(p)
	}
	return out
}

// objective returns the function the solver minimizes for the active kind.
func (m *PricingModel) objective() func(float64) float64 {
	switch m.kind {
	case Convex:
		return m.NegatedRevenue
	case NonConvex:
		return func(p float64) float64 { return -m.CubicRevenue(p) }
	default:
		return func(p float64) float64 { return -m.Revenue(p) }
	}
}

// value converts a minimized objective back to the formulation's reported
// objective value.
func (m *PricingModel) value(price float64) float64 {
	switch m.kind {
	case Convex:
		return m.NegatedRevenue(price)
	case NonConvex:
		return m.CubicRevenue(price)
	default:
		return m.Revenue(price)
	}
}

// Solve optimizes the active objective over the feasible interval with
// Nelder-Mead and compares the result against the interval endpoints, so
// boundary optima are reported exactly. Solver failures are mapped to a
// status string and never propagated; solving an unbuilt model fails fast
// with ErrModelNotBuilt.
func (m *PricingModel) Solve() (Solution, error) {
	if m.kind == Unbuilt {
		return Solution{}, ErrModelNotBuilt
	}
	if !m.feasible {
		m.logger.Warn("feasible region is empty",
			zap.String("op", "model.Solve"),
			zap.Float64("minPrice", m.lo),
			zap.Float64("maxPrice", m.hi),
		)
		return Solution{Status: constants.SolveStatusInfeasible}, nil
	}

	f := m.objective()
	bounded := func(x []float64) float64 {
		return f(mathutil.Clamp(x[0], m.lo, m.hi))
	}

	problem := optimize.Problem{Func: bounded}
	start := []float64{m.lo + (m.hi-m.lo)/2}

	result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		m.logger.Warn("solver failed",
			zap.String("op", "model.Solve"),
			zap.String("kind", m.kind.String()),
			zap.Error(err),
		)
		return Solution{Status: fmt.Sprintf("%s: %v", constants.SolveStatusFailed, err)}, nil
	}
	if result == nil || result.Status == optimize.Failure {
		return Solution{Status: constants.SolveStatusFailed}, nil
	}

	price := mathutil.Clamp(result.X[0], m.lo, m.hi)
	// The simplex can stall near a boundary; the endpoints are always
	// candidates.
	for _, candidate := range []float64{m.lo, m.hi} {
		if f(candidate) < f(price) {
			price = candidate
		}
	}

	value := m.value(price)
	demand := m.alpha - m.beta*price

	m.logger.Info("problem solved",
		zap.String("op", "model.Solve"),
		zap.String("kind", m.kind.String()),
		zap.Float64("optimalPrice", price),
		zap.Float64("objectiveValue", value),
		zap.Float64("finalDemand", demand),
	)

	return Solution{
		Price:  &price,
		Value:  &value,
		Demand: &demand,
		Status: constants.SolveStatusOptimal,
	}, nil
}

// CurvatureDiagnostic reports the symbolic curvature of the active objective
// and whether the whole problem composition can be handed to a convex solver
// with a global-optimality guarantee.
func (m *PricingModel) CurvatureDiagnostic() (CurvatureReport, error) {
	if m.kind == Unbuilt {
		return CurvatureReport{}, ErrModelNotBuilt
	}

	report := CurvatureReport{Kind: m.kind}

	if m.kind == NonConvex {
		report.Curvature = "neither convex nor concave"
		report.DCPCompliant = false
		report.Justification = fmt.Sprintf("the cubic term %v*p^3 makes the second derivative change sign", constants.CubicCoefficient)
		report.Conclusion = "the objective is neither convex nor concave; a convex solver cannot certify any solution as globally optimal"
		return report, nil
	}

	// The symbolic curvature follows the sign of the quadratic coefficient,
	// so a negative beta flips the formulation's intended shape.
	second := -2 * m.beta
	if m.kind == Convex {
		second = 2 * m.beta
	}
	switch {
	case second < 0:
		report.Curvature = "concave"
		report.DCPCompliant = m.kind == Concave
		report.Justification = fmt.Sprintf("the second derivative is %v (negative)", second)
		report.Conclusion = "the objective is concave, guaranteeing a global maximum; suitable for maximization with a convex solver"
	case second > 0:
		report.Curvature = "convex"
		report.DCPCompliant = m.kind == Convex
		report.Justification = fmt.Sprintf("the second derivative is %v (positive)", second)
		report.Conclusion = "the objective is convex, guaranteeing a global minimum; suitable for minimization with a convex solver"
	default:
		report.Curvature = "affine"
		report.DCPCompliant = true
		report.Justification = "the second derivative is 0; the objective is linear in price"
		report.Conclusion = "the objective is affine; any optimum lies on the boundary of the feasible region"
	}
	if !report.DCPCompliant {
		report.Conclusion += "; the formulation does not match the objective's actual curvature, check the sign of beta"
	}

	return report, nil
}

// HessianDiagnostic reports the closed-form second derivative of the active
// objective: -2*beta for the concave framing, +2*beta for the convex one, and
// a price-dependent value for the cubic variant. A central finite difference
// at the price-bound midpoint cross-checks the closed form.
func (m *PricingModel) HessianDiagnostic() (HessianReport, error) {
	if m.kind == Unbuilt {
		return HessianReport{}, ErrModelNotBuilt
	}

	mid := m.minPrice + (m.maxPrice-m.minPrice)/2
	report := HessianReport{Method: "second derivative (1x1 Hessian)"}

	var objective func(float64) float64
	switch m.kind {
	case Convex:
		objective = m.NegatedRevenue
		report.SecondDerivative = 2 * m.beta
		report.Constant = true
	case NonConvex:
		objective = m.CubicRevenue
		report.SecondDerivative = -2*m.beta + 6*constants.CubicCoefficient*mid
		report.Constant = false
	default:
		objective = m.Revenue
		report.SecondDerivative = -2 * m.beta
		report.Constant = true
	}

	report.NumericSecondDerivative = fd.Derivative(objective, mid, &fd.Settings{
		Formula: fd.Central2nd,
	})

	switch {
	case !report.Constant:
		report.Result = "indefinite"
	case report.SecondDerivative < 0:
		report.Result = "concave"
		report.IsConcave = true
		report.SuitableForMaximization = true
	case report.SecondDerivative > 0:
		report.Result = "convex"
		report.IsConvex = true
	default:
		report.Result = "linear"
	}

	return report, nil
}
