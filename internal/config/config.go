// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the price model.
type Configuration struct {
	Pricing  PricingConfig  `yaml:"pricing"`
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	Dataset  DatasetConfig  `yaml:"dataset,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
}

// PricingConfig holds the demand-curve parameters and pricing bounds consumed
// by the optimization model.
type PricingConfig struct {
	Alpha           float64 `yaml:"alpha" mapstructure:"alpha"`                     // market size
	Beta            float64 `yaml:"beta" mapstructure:"beta"`                       // price sensitivity
	MaxPrice        float64 `yaml:"maxPrice" mapstructure:"maxPrice"`               // upper price bound
	MaxCapacity     float64 `yaml:"maxCapacity" mapstructure:"maxCapacity"`         // unit cap
	CostPerUnit     float64 `yaml:"costPerUnit" mapstructure:"costPerUnit"`         // cost per unit sold
	MinProfitMargin float64 `yaml:"minProfitMargin" mapstructure:"minProfitMargin"` // fraction in [0, 1)
}

// MinPrice derives the lowest price that preserves the minimum profit margin.
func (p PricingConfig) MinPrice() float64 {
	return p.CostPerUnit / (1 - p.MinProfitMargin)
}

// AnalysisConfig holds tunables for the dataset convexity analysis.
type AnalysisConfig struct {
	CurvatureTolerance     float64 `yaml:"curvatureTolerance,omitempty" mapstructure:"curvatureTolerance"`
	ConvexityTest          string  `yaml:"convexityTest,omitempty" mapstructure:"convexityTest"`
	PerturbAmplitude       float64 `yaml:"perturbAmplitude,omitempty" mapstructure:"perturbAmplitude"`
	PerturbFrequencyFactor float64 `yaml:"perturbFrequencyFactor,omitempty" mapstructure:"perturbFrequencyFactor"`
}

// DatasetConfig points at an optional CSV observation set; when empty the
// built-in sample dataset is used.
type DatasetConfig struct {
	Path string `yaml:"path,omitempty" mapstructure:"path"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Defaults for the analysis tunables are registered with
// viper so keys absent from the file pick them up while explicit values,
// including zeros, survive (perturbAmplitude: 0 is a legitimate no-op
// perturbation).
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	viper.SetDefault("analysis.curvatureTolerance", constants.DefaultCurvatureTolerance)
	viper.SetDefault("analysis.convexityTest", constants.ConvexityTestExact)
	viper.SetDefault("analysis.perturbAmplitude", constants.DefaultPerturbAmplitude)
	viper.SetDefault("analysis.perturbFrequencyFactor", constants.DefaultPerturbFrequencyFactor)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Normalize()

	return &configuration, nil
}

// Normalize fills in the convexity test mode when it was never set. The other
// analysis tunables are left alone: a zero amplitude is a valid no-op, a zero
// frequency factor is reported by ValidateConfiguration and rejected by the
// perturbation itself, and an out-of-range curvature tolerance is warned about
// and handled by the classifier's own fallback.
func (c *Configuration) Normalize() {
	if c.Analysis.ConvexityTest == "" {
		c.Analysis.ConvexityTest = constants.ConvexityTestExact
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Pricing.Alpha <= 0 {
		warnings = append(warnings, fmt.Sprintf("market size alpha is %v; demand will never be positive", c.Pricing.Alpha))
	}
	if c.Pricing.Beta <= 0 {
		warnings = append(warnings, fmt.Sprintf("price sensitivity beta is %v; the revenue objective will not be concave", c.Pricing.Beta))
	}
	if c.Pricing.MaxCapacity <= 0 {
		warnings = append(warnings, fmt.Sprintf("maxCapacity is %v; the capacity constraint excludes all demand", c.Pricing.MaxCapacity))
	}
	if c.Pricing.MinProfitMargin < 0 || c.Pricing.MinProfitMargin >= 1 {
		warnings = append(warnings, fmt.Sprintf("minProfitMargin %v is outside [0, 1); derived minimum price is undefined", c.Pricing.MinProfitMargin))
	} else if c.Pricing.MinPrice() > c.Pricing.MaxPrice {
		warnings = append(warnings, fmt.Sprintf("derived minimum price %.2f exceeds maxPrice %.2f; the feasible region is empty", c.Pricing.MinPrice(), c.Pricing.MaxPrice))
	}

	if c.Analysis.CurvatureTolerance <= 0 || c.Analysis.CurvatureTolerance > 1 {
		warnings = append(warnings, fmt.Sprintf("curvatureTolerance %v is outside (0, 1]; the default will be used", c.Analysis.CurvatureTolerance))
	}
	switch c.Analysis.ConvexityTest {
	case constants.ConvexityTestExact, constants.ConvexityTestEnvelope:
	default:
		warnings = append(warnings, fmt.Sprintf("convexityTest %q is not recognized; expected %q or %q", c.Analysis.ConvexityTest, constants.ConvexityTestExact, constants.ConvexityTestEnvelope))
	}
	if c.Analysis.PerturbFrequencyFactor == 0 {
		warnings = append(warnings, "perturbFrequencyFactor must be non-zero")
	}

	return warnings
}
