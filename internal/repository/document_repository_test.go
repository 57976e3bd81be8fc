package repository

import "testing"

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		name      string
		embedding []float64
		want      string
	}{
		{"empty", nil, "[]"},
		{"single", []float64{0.5}, "[0.5]"},
		{"multiple", []float64{1, -0.25, 0.125}, "[1,-0.25,0.125]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vectorLiteral(tt.embedding); got != tt.want {
				t.Fatalf("vectorLiteral() = %q, want %q", got, tt.want)
			}
		})
	}
}
