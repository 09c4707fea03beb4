package workflow

import (
	"testing"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/classifier"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/constants"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/loader"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/mathutil"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/testutil"
)

func TestNewRunnerRequiresConfiguration(t *testing.T) {
	if _, err := NewRunner(nil, nil); err == nil {
		t.Errorf("NewRunner() expected an error for a nil configuration")
	}
}

func TestRunSampleDataset(t *testing.T) {
	runner, err := NewRunner(nil, testutil.SampleConfiguration())
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	prices, demands := loader.SampleDataset()
	report, err := runner.Run(prices, demands)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.DatasetPoints != len(prices) {
		t.Errorf("DatasetPoints = %d, expected %d", report.DatasetPoints, len(prices))
	}
	if report.Verdict.Kind != classifier.Concave {
		t.Errorf("Verdict.Kind = %v, expected Concave", report.Verdict.Kind)
	}
	if report.ConvexityError != "" {
		t.Errorf("ConvexityError = %q, expected none", report.ConvexityError)
	}
	if report.InitialConvexity == nil || !report.InitialConvexity.IsConvex {
		t.Errorf("InitialConvexity = %+v, expected a passing check", report.InitialConvexity)
	}
	if report.Repaired {
		t.Errorf("Repaired = true for data that already passes the check")
	}

	// All three formulations carry diagnostics; the two convex-solver
	// formulations carry optimal solutions.
	if report.ConcaveCurvature.Curvature != "concave" || !report.ConcaveCurvature.DCPCompliant {
		t.Errorf("ConcaveCurvature = %+v", report.ConcaveCurvature)
	}
	if report.ConvexCurvature.Curvature != "convex" || !report.ConvexCurvature.DCPCompliant {
		t.Errorf("ConvexCurvature = %+v", report.ConvexCurvature)
	}
	if report.NonConvexCurvature.DCPCompliant {
		t.Errorf("NonConvexCurvature reported compliant")
	}
	if report.NonConvexHessian.Result != "indefinite" {
		t.Errorf("NonConvexHessian.Result = %q, expected indefinite", report.NonConvexHessian.Result)
	}

	if !report.ConcaveSolution.Optimal() {
		t.Errorf("ConcaveSolution.Status = %q", report.ConcaveSolution.Status)
	}
	if !report.ConvexSolution.Optimal() {
		t.Errorf("ConvexSolution.Status = %q", report.ConvexSolution.Status)
	}
	if !report.RestoredSolution.Optimal() {
		t.Errorf("RestoredSolution.Status = %q", report.RestoredSolution.Status)
	}

	concavePrice := testutil.FloatValue(t, "ConcaveSolution.Price", report.ConcaveSolution.Price)
	restoredPrice := testutil.FloatValue(t, "RestoredSolution.Price", report.RestoredSolution.Price)
	if !mathutil.WithinTolerance(concavePrice, restoredPrice, 1e-6) {
		t.Errorf("restored solve moved the optimum: %v vs %v", restoredPrice, concavePrice)
	}

	// The perturb/restore round trip ran and re-convexified the data.
	if report.PerturbSummary == nil || report.RestoreSummary == nil {
		t.Fatalf("perturb/restore round trip did not run")
	}
	if !report.RestoreSummary.ConvexAfter {
		t.Errorf("RestoreSummary.ConvexAfter = false")
	}
}

func TestRunRepairsNonConvexData(t *testing.T) {
	runner, err := NewRunner(nil, testutil.SampleConfiguration())
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	prices, demands := loader.SampleDataset()
	demands[3] = 30 // dent the revenue curve at price 20
	report, err := runner.Run(prices, demands)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.InitialConvexity == nil || report.InitialConvexity.IsConvex {
		t.Errorf("InitialConvexity = %+v, expected a failing check", report.InitialConvexity)
	}
	if !report.Repaired {
		t.Fatalf("Repaired = false, expected the envelope projection to run")
	}
	if report.RepairSummary == nil || !report.RepairSummary.ConvexAfter {
		t.Errorf("RepairSummary = %+v", report.RepairSummary)
	}
	if report.PostRepairConvexity == nil || !report.PostRepairConvexity.IsConvex {
		t.Errorf("PostRepairConvexity = %+v, expected a passing re-check", report.PostRepairConvexity)
	}
}

func TestRunDegenerateDatasetSkipsRoundTrip(t *testing.T) {
	runner, err := NewRunner(nil, testutil.SampleConfiguration())
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	// Two observations cannot form a hull; the model analysis still runs.
	report, err := runner.Run([]float64{10, 20}, []float64{90, 80})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.ConvexityError == "" {
		t.Errorf("ConvexityError empty, expected the hull failure to be recorded")
	}
	if report.Repaired {
		t.Errorf("Repaired = true with convexity unknown")
	}
	if !report.ConcaveSolution.Optimal() {
		t.Errorf("ConcaveSolution.Status = %q, expected the solve to proceed", report.ConcaveSolution.Status)
	}
	if report.PerturbSummary != nil || report.RestoreSummary != nil {
		t.Errorf("perturb/restore ran despite the failed convexity check")
	}
}

func TestRunInvalidObservations(t *testing.T) {
	runner, err := NewRunner(nil, testutil.SampleConfiguration())
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	if _, err := runner.Run([]float64{1, 2, 3}, []float64{1}); err == nil {
		t.Errorf("Run() expected an error for mismatched series lengths")
	}
}

func TestRunRejectsUnknownConvexityTest(t *testing.T) {
	conf := testutil.SampleConfiguration()
	conf.Analysis.ConvexityTest = "interior"
	runner, err := NewRunner(nil, conf)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	prices, demands := loader.SampleDataset()
	if _, err := runner.Run(prices, demands); err == nil {
		t.Errorf("Run() expected an error for an unknown convexity test mode")
	}
}

func TestRunInfeasiblePricing(t *testing.T) {
	conf := testutil.SampleConfiguration()
	conf.Pricing.MinProfitMargin = 0.95 // derived minimum price 200 > ceiling 150
	runner, err := NewRunner(nil, conf)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	prices, demands := loader.SampleDataset()
	report, err := runner.Run(prices, demands)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for name, sol := range map[string]struct {
		status string
		price  *float64
	}{
		"concave":  {report.ConcaveSolution.Status, report.ConcaveSolution.Price},
		"convex":   {report.ConvexSolution.Status, report.ConvexSolution.Price},
		"restored": {report.RestoredSolution.Status, report.RestoredSolution.Price},
	} {
		if sol.status != constants.SolveStatusInfeasible {
			t.Errorf("%s solution status = %q, expected %q", name, sol.status, constants.SolveStatusInfeasible)
		}
		if sol.price != nil {
			t.Errorf("%s solution carries a price despite being infeasible", name)
		}
	}
}
