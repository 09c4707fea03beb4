// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/AbdelrahmanGaber528/Convex-Optimization-Price-Model/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateConvexityTest checks if the convexity test mode is supported.
func ValidateConvexityTest(mode string) error {
	if mode != constants.ConvexityTestExact && mode != constants.ConvexityTestEnvelope {
		return fmt.Errorf("expected convexity test of %s or %s, got %s",
			constants.ConvexityTestExact, constants.ConvexityTestEnvelope, mode)
	}
	return nil
}
