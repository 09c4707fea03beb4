// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/internal/config"
	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/constants"
)

// FloatValue dereferences an optional float, failing the test when it is nil.
func FloatValue(t *testing.T, name string, p *float64) float64 {
	t.Helper()
	if p == nil {
		t.Fatalf("%s is nil", name)
	}
	return *p
}

// SamplePricing returns the demonstration pricing parameters: alpha=1000,
// beta=2, maxPrice=150, capacity=2500, cost=10, margin=0.2 (derived minimum
// price 12.5).
func SamplePricing() config.PricingConfig {
	return config.PricingConfig{
		Alpha:           1000,
		Beta:            2.0,
		MaxPrice:        150.0,
		MaxCapacity:     2500,
		CostPerUnit:     10.0,
		MinProfitMargin: 0.2,
	}
}

// SampleConfiguration returns a full configuration with analysis defaults
// applied, suitable for workflow tests.
func SampleConfiguration() *config.Configuration {
	conf := &config.Configuration{
		Pricing: SamplePricing(),
		Analysis: config.AnalysisConfig{
			CurvatureTolerance:     constants.DefaultCurvatureTolerance,
			ConvexityTest:          constants.ConvexityTestExact,
			PerturbAmplitude:       constants.DefaultPerturbAmplitude,
			PerturbFrequencyFactor: constants.DefaultPerturbFrequencyFactor,
		},
	}
	return conf
}
