package hydrograph

import (
	"math"
	"testing"
)

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}

func TestResampleDepthsPreservesTotal(t *testing.T) {
	tests := []struct {
		name     string
		depths   []float64
		fromStep float64
		toStep   float64
		outLen   int
		clamped  bool
	}{
		{name: "coarsen 5 to 10", depths: []float64{1, 2, 3, 4, 5, 6}, fromStep: 5, toStep: 10, outLen: 3},
		{name: "refine 10 to 5", depths: []float64{4, 8, 2}, fromStep: 10, toStep: 5, outLen: 6},
		{name: "uneven target grid", depths: []float64{3, 3, 3}, fromStep: 10, toStep: 7, outLen: 5, clamped: true},
		{name: "identity", depths: []float64{1, 2, 3}, fromStep: 10, toStep: 10, outLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, clamped, err := ResampleDepths(tt.depths, tt.fromStep, tt.toStep)
			if err != nil {
				t.Fatal(err)
			}
			if len(out) != tt.outLen {
				t.Fatalf("len = %d, want %d", len(out), tt.outLen)
			}
			if clamped != tt.clamped {
				t.Errorf("clamped = %v, want %v", clamped, tt.clamped)
			}
			if math.Abs(sum(out)-sum(tt.depths)) > 1e-9 {
				t.Errorf("total = %v, want %v", sum(out), sum(tt.depths))
			}
			for i, d := range out {
				if d < 0 {
					t.Errorf("out[%d] = %v, want non-negative", i, d)
				}
			}
		})
	}
}

func TestResampleDepthsCoarsenExact(t *testing.T) {
	// Merging two source steps into one target step is exact addition.
	out, _, err := ResampleDepths([]float64{1, 2, 3, 4}, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{3, 7}
	for i, v := range out {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestResampleDepthsRefineUniform(t *testing.T) {
	// Splitting a constant-intensity step spreads the depth evenly.
	out, _, err := ResampleDepths([]float64{6}, 30, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 2, 2}
	for i, v := range out {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestResampleDepthsValidation(t *testing.T) {
	if _, _, err := ResampleDepths(nil, 5, 10); err == nil {
		t.Error("empty series accepted")
	}
	if _, _, err := ResampleDepths([]float64{1}, 0, 10); err == nil {
		t.Error("zero source step accepted")
	}
	if _, _, err := ResampleDepths([]float64{1}, 5, -10); err == nil {
		t.Error("negative target step accepted")
	}
}
