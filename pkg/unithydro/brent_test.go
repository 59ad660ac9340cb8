package unithydro

import (
	"errors"
	"math"
	"testing"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

func TestSolveBrent(t *testing.T) {
	tests := []struct {
		name     string
		f        func(float64) float64
		lo, hi   float64
		expected float64
		epsilon  float64
	}{
		{
			name:     "quadratic",
			f:        func(x float64) float64 { return x*x - 4 },
			lo:       0,
			hi:       5,
			expected: 2.0,
			epsilon:  1e-6,
		},
		{
			name:     "transcendental",
			f:        func(x float64) float64 { return math.Cos(x) - x },
			lo:       0,
			hi:       1,
			expected: 0.739085,
			epsilon:  1e-6,
		},
		{
			name:     "root at bracket edge",
			f:        func(x float64) float64 { return x - 3 },
			lo:       3,
			hi:       10,
			expected: 3.0,
			epsilon:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := SolveBrent("test", tt.f, tt.lo, tt.hi, 1e-9, 100)
			if err != nil {
				t.Fatalf("SolveBrent: %v", err)
			}
			if math.Abs(res.Root-tt.expected) > tt.epsilon {
				t.Errorf("Root = %v, want %v", res.Root, tt.expected)
			}
			if res.BracketLo != tt.lo || res.BracketHi != tt.hi {
				t.Errorf("bracket diagnostics (%v, %v), want (%v, %v)",
					res.BracketLo, res.BracketHi, tt.lo, tt.hi)
			}
		})
	}
}

func TestSolveBrentNoSignChange(t *testing.T) {
	_, err := SolveBrent("test", func(x float64) float64 { return x*x + 1 }, -1, 1, 1e-9, 100)
	if err == nil {
		t.Fatal("bracket without sign change accepted")
	}
	var est *hydroerr.EstimationError
	if !errors.As(err, &est) {
		t.Fatalf("error type %T, want *hydroerr.EstimationError", err)
	}
	if est.Method != "test" || est.BracketLo != -1 || est.BracketHi != 1 {
		t.Errorf("diagnostics = %+v, want method and bracket recorded", est)
	}
}

func TestSolveBrentIterationCap(t *testing.T) {
	// One iteration cannot reach tolerance on this bracket.
	_, err := SolveBrent("test", func(x float64) float64 { return math.Cos(x) - x }, 0, 1, 1e-15, 1)
	if err == nil {
		t.Fatal("iteration cap not enforced")
	}
	var est *hydroerr.EstimationError
	if !errors.As(err, &est) {
		t.Fatalf("error type %T, want *hydroerr.EstimationError", err)
	}
	if est.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", est.Iterations)
	}
}
