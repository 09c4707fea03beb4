package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"Pretty format", "pretty", false},
		{"CSV format", "csv", false},
		{"Unknown format", "json", true},
		{"Empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %t", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestValidateConvexityTest(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{"Exact test", "exact", false},
		{"Envelope test", "envelope", false},
		{"Unknown test", "interior", true},
		{"Empty test", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConvexityTest(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConvexityTest(%q) error = %v, wantErr %t", tt.mode, err, tt.wantErr)
			}
		})
	}
}
