// Package constants provides shared constants for the price-model application.
package constants

// Curvature and envelope tolerances
const (
	// DefaultCurvatureTolerance is the fraction of curvature samples that must
	// agree in sign before a curve is reported as mostly concave or mostly
	// convex.
	DefaultCurvatureTolerance = 0.80

	// EnvelopeTolerance is the absolute tolerance used when comparing revenue
	// against the interpolated hull envelope.
	EnvelopeTolerance = 1e-8

	// PriceEpsilon guards division by price when rebuilding demand from
	// revenue at a zero price.
	PriceEpsilon = 1e-9

	// VertexMatchTolerance is the coordinate tolerance used when testing
	// whether an observation coincides with a hull vertex.
	VertexMatchTolerance = 1e-9
)

// Perturbation defaults
const (
	// DefaultPerturbAmplitude is the default amplitude of the sine
	// perturbation used to push a dataset out of convexity.
	DefaultPerturbAmplitude = 500.0

	// DefaultPerturbFrequencyFactor divides price inside the sine term of the
	// perturbation.
	DefaultPerturbFrequencyFactor = 2.0
)

// Model constants
const (
	// CubicCoefficient scales the cubic term of the non-convex objective.
	CubicCoefficient = 0.001
)

// Convexity test selection
const (
	// ConvexityTestExact declares a dataset convex iff every observation is a
	// hull vertex.
	ConvexityTestExact = "exact"

	// ConvexityTestEnvelope declares a dataset convex iff every revenue lies
	// at or below the interpolated hull curve within EnvelopeTolerance.
	ConvexityTestEnvelope = "envelope"
)

// Solver status strings
const (
	SolveStatusOptimal    = "optimal"
	SolveStatusInfeasible = "infeasible"
	SolveStatusFailed     = "failed"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)
