// Package workflow sequences the full pricing analysis: dataset diagnosis,
// optional convexity repair, model builds with their diagnostics, solves, and
// the perturb/restore comparison.
package workflow

import (
	"fmt"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/classifier"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/config"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/dataset"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/model"
	"go.uber.org/zap"
)

// Runner drives the analysis for one configuration.
type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

// Report aggregates every diagnostic and solve result produced by one run.
// It is a plain value for the output package to render; the workflow performs
// no printing itself.
type Report struct {
	DatasetPoints int

	// Dataset diagnosis and repair
	Verdict             classifier.Verdict
	InitialConvexity    *dataset.ConvexityReport
	ConvexityError      string
	Repaired            bool
	RepairSummary       *dataset.TransformSummary
	PostRepairConvexity *dataset.ConvexityReport

	// Concave formulation
	ConcaveCurvature model.CurvatureReport
	ConcaveHessian   model.HessianReport
	ConcaveSolution  model.Solution

	// Convex formulation
	ConvexCurvature model.CurvatureReport
	ConvexHessian   model.HessianReport
	ConvexSolution  model.Solution

	// Non-convex formulation (diagnostic only)
	NonConvexCurvature model.CurvatureReport
	NonConvexHessian   model.HessianReport

	// After restoring the convex formulation
	RestoredSolution model.Solution

	// Dataset perturb/restore round trip
	PerturbSummary *dataset.TransformSummary
	RestoreSummary *dataset.TransformSummary
	FinalVerdict   classifier.Verdict
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run executes the analysis over the provided observations and returns the
// aggregated report. Solver and hull failures are carried inside the report;
// only invalid input or caller bugs surface as errors.
func (r *Runner) Run(prices, demands []float64) (*Report, error) {
	report := &Report{DatasetPoints: len(prices)}

	// Step 1: curvature classification of the raw data.
	cl := classifier.New(r.conf.Analysis.CurvatureTolerance)
	report.Verdict = cl.Classify(prices, demands)
	r.logger.Info("dataset classified",
		zap.String("op", "workflow.Run"),
		zap.String("curvature", report.Verdict.Describe()),
	)

	// Step 2: hull-based convexity check, with repair when it fails.
	ds, err := dataset.New(r.logger, prices, demands)
	if err != nil {
		return nil, err
	}
	if err := ds.SetConvexityTest(r.conf.Analysis.ConvexityTest); err != nil {
		return nil, err
	}

	convexity, err := ds.CheckConvexity()
	if err != nil {
		// Convexity unknown; skip the repair and continue with the model.
		report.ConvexityError = err.Error()
		r.logger.Warn("convexity check failed",
			zap.String("op", "workflow.Run"),
			zap.Error(err),
		)
	} else {
		report.InitialConvexity = convexity
		if !convexity.IsConvex {
			summary, repairErr := ds.MakeConvex()
			if repairErr != nil {
				return nil, fmt.Errorf("dataset repair failed: %w", repairErr)
			}
			report.Repaired = true
			report.RepairSummary = summary
			post, postErr := ds.CheckConvexity()
			if postErr != nil {
				report.ConvexityError = postErr.Error()
			} else {
				report.PostRepairConvexity = post
			}
		}
	}

	// Step 3: concave model, diagnostics, solve.
	m := model.New(r.logger, r.conf.Pricing)
	m.BuildConcave()
	if report.ConcaveCurvature, err = m.CurvatureDiagnostic(); err != nil {
		return nil, err
	}
	if report.ConcaveHessian, err = m.HessianDiagnostic(); err != nil {
		return nil, err
	}
	if report.ConcaveSolution, err = m.Solve(); err != nil {
		return nil, err
	}

	// Step 4: convex reformulation.
	m.BuildConvex()
	if report.ConvexCurvature, err = m.CurvatureDiagnostic(); err != nil {
		return nil, err
	}
	if report.ConvexHessian, err = m.HessianDiagnostic(); err != nil {
		return nil, err
	}
	if report.ConvexSolution, err = m.Solve(); err != nil {
		return nil, err
	}

	// Step 5: non-convex build, diagnostics only.
	m.BuildNonConvex()
	if report.NonConvexCurvature, err = m.CurvatureDiagnostic(); err != nil {
		return nil, err
	}
	if report.NonConvexHessian, err = m.HessianDiagnostic(); err != nil {
		return nil, err
	}

	// Step 6: restore the convex formulation and solve again.
	m.RestoreConvex()
	if report.RestoredSolution, err = m.Solve(); err != nil {
		return nil, err
	}

	// Step 7: dataset perturb/restore round trip for comparison.
	if report.ConvexityError == "" {
		perturb, perturbErr := ds.MakeNonConvex(r.conf.Analysis.PerturbAmplitude, r.conf.Analysis.PerturbFrequencyFactor)
		if perturbErr != nil {
			return nil, perturbErr
		}
		report.PerturbSummary = perturb
		restore, restoreErr := ds.RestoreFromNonConvex()
		if restoreErr != nil {
			return nil, restoreErr
		}
		report.RestoreSummary = restore
		report.FinalVerdict = cl.Classify(ds.Prices, ds.Demands)
	}

	return report, nil
}
