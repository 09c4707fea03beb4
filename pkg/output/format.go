// Package output provides utilities for formatting and displaying analysis
// reports.
package output

import (
	"fmt"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/dataset"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/model"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/workflow"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(report *workflow.Report) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Dataset analysis (%d points) ---\n", report.DatasetPoints)
	fmt.Printf("Curvature: %s\n", report.Verdict.Describe())
	if report.ConvexityError != "" {
		fmt.Printf("Convex hull: unavailable (%s)\n", report.ConvexityError)
	}
	printConvexity("Convexity before transformation", report.InitialConvexity)
	if report.Repaired {
		fmt.Printf("Repair: %s (%d points)\n", report.RepairSummary.Status, report.RepairSummary.PointsUpdated)
		printConvexity("Convexity after transformation", report.PostRepairConvexity)
	}

	fmt.Printf("\n--- Concave formulation (maximize revenue) ---\n")
	printCurvature(report.ConcaveCurvature, report.ConcaveHessian)
	printSolution(p, report.ConcaveSolution)

	fmt.Printf("\n--- Convex formulation (minimize negated revenue) ---\n")
	printCurvature(report.ConvexCurvature, report.ConvexHessian)
	printSolution(p, report.ConvexSolution)

	fmt.Printf("\n--- Non-convex formulation (diagnostic only) ---\n")
	printCurvature(report.NonConvexCurvature, report.NonConvexHessian)

	fmt.Printf("\n--- Restored convex formulation ---\n")
	printSolution(p, report.RestoredSolution)

	if report.PerturbSummary != nil {
		fmt.Printf("\n--- Dataset perturb/restore ---\n")
		printSummary(report.PerturbSummary)
		printSummary(report.RestoreSummary)
		fmt.Printf("Final curvature: %s\n", report.FinalVerdict.Describe())
	}
}

func printConvexity(label string, report *dataset.ConvexityReport) {
	if report == nil {
		return
	}
	fmt.Printf("%s (%s test): convex=%t, %d/%d hull vertices, %d above envelope\n",
		label, report.Test, report.IsConvex, report.VertexCount, report.PointCount, report.AboveEnvelope)
}

func printCurvature(curvature model.CurvatureReport, hessian model.HessianReport) {
	fmt.Printf("Curvature: %s (DCP compliant: %t)\n", curvature.Curvature, curvature.DCPCompliant)
	fmt.Printf("Conclusion: %s\n", curvature.Conclusion)
	fmt.Printf("Hessian: %.4f (%s)\n", hessian.SecondDerivative, hessian.Result)
}

func printSolution(p *message.Printer, solution model.Solution) {
	fmt.Printf("Status: %s\n", solution.Status)
	if !solution.Optimal() {
		fmt.Printf("Could not find an optimal solution.\n")
		return
	}
	_, _ = p.Printf("Optimal price: $%.2f\n", *solution.Price)
	_, _ = p.Printf("Objective value: $%.2f\n", *solution.Value)
	_, _ = p.Printf("Final demand: %.2f\n", *solution.Demand)
}

func printSummary(summary *dataset.TransformSummary) {
	if summary == nil {
		return
	}
	fmt.Printf("%s (%d points, convex after: %t)\n", summary.Status, summary.PointsUpdated, summary.ConvexAfter)
}

// CsvFormat outputs the report in comma-separated value format, one metric
// per row.
func CsvFormat(report *workflow.Report) {
	fmt.Printf("\"metric\",\"value\"\n")
	fmt.Printf("\"dataset_points\",\"%d\"\n", report.DatasetPoints)
	fmt.Printf("\"dataset_curvature\",\"%s\"\n", report.Verdict.Kind)
	if report.InitialConvexity != nil {
		fmt.Printf("\"dataset_convex\",\"%t\"\n", report.InitialConvexity.IsConvex)
		fmt.Printf("\"hull_vertices\",\"%d\"\n", report.InitialConvexity.VertexCount)
	}
	fmt.Printf("\"dataset_repaired\",\"%t\"\n", report.Repaired)

	csvSolution("concave", report.ConcaveSolution)
	csvSolution("convex", report.ConvexSolution)
	csvSolution("restored_convex", report.RestoredSolution)

	fmt.Printf("\"nonconvex_curvature\",\"%s\"\n", report.NonConvexCurvature.Curvature)
	fmt.Printf("\"nonconvex_dcp_compliant\",\"%t\"\n", report.NonConvexCurvature.DCPCompliant)
	if report.RestoreSummary != nil {
		fmt.Printf("\"final_curvature\",\"%s\"\n", report.FinalVerdict.Kind)
	}
}

func csvSolution(prefix string, solution model.Solution) {
	fmt.Printf("\"%s_status\",\"%s\"\n", prefix, solution.Status)
	if !solution.Optimal() {
		return
	}
	fmt.Printf("\"%s_price\",\"%.2f\"\n", prefix, *solution.Price)
	fmt.Printf("\"%s_value\",\"%.2f\"\n", prefix, *solution.Value)
	fmt.Printf("\"%s_demand\",\"%.2f\"\n", prefix, *solution.Demand)
}
