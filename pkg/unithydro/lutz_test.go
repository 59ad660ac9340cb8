package unithydro

import (
	"math"
	"testing"
)

// Reference basin: L=15 km, Lc=8 km, Jg=0.02, n_M=0.035, no urban or
// forest share.
func lutzRefInputs() LutzInputs {
	return LutzInputs{
		LKm:      15,
		LcKm:     8,
		Slope:    0.02,
		ManningN: 0.035,
	}
}

func TestEstimateLutz(t *testing.T) {
	est, err := EstimateLutz(lutzRefInputs())
	if err != nil {
		t.Fatalf("EstimateLutz: %v", err)
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
		epsilon  float64
	}{
		{name: "roughness factor P1", got: est.P1, expected: 0.167615, epsilon: 1e-6},
		{name: "time to peak tp", got: est.TpHours, expected: 2.67608, epsilon: 1e-4},
		{name: "peak up", got: est.UpPerHour, expected: 0.237108, epsilon: 1e-5},
		{name: "shape target up*tp", got: est.FTarget, expected: 0.634518, epsilon: 1e-5},
		{name: "cascade shape N", got: est.N, expected: 3.69061, epsilon: 1e-4},
		{name: "storage constant K", got: est.KHours, expected: 0.994599, epsilon: 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > tt.epsilon {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}

	// The solved N reproduces the target within the solver tolerance.
	if residual := math.Abs(lutzShape(est.N) - est.FTarget); residual > 1e-5 {
		t.Errorf("f(N) residual = %v, want < 1e-5", residual)
	}
	if est.Iterations <= 0 {
		t.Errorf("Iterations = %d, want > 0", est.Iterations)
	}
	if est.BracketLo <= 1.0 || est.BracketHi != 50.0 {
		t.Errorf("bracket = (%v, %v), want (1+eps, 50)", est.BracketLo, est.BracketHi)
	}
}

func TestLutzUrbanizationShortensLag(t *testing.T) {
	rural, err := EstimateLutz(lutzRefInputs())
	if err != nil {
		t.Fatal(err)
	}
	urbanIn := lutzRefInputs()
	urbanIn.UrbanPct = 40
	urban, err := EstimateLutz(urbanIn)
	if err != nil {
		t.Fatal(err)
	}
	if urban.TpHours >= rural.TpHours {
		t.Errorf("urban tp %v not below rural tp %v", urban.TpHours, rural.TpHours)
	}

	forestIn := lutzRefInputs()
	forestIn.ForestPct = 60
	forest, err := EstimateLutz(forestIn)
	if err != nil {
		t.Fatal(err)
	}
	if forest.TpHours <= rural.TpHours {
		t.Errorf("forest tp %v not above rural tp %v", forest.TpHours, rural.TpHours)
	}
}

func TestLutzNashRoundTrip(t *testing.T) {
	est, err := EstimateLutz(lutzRefInputs())
	if err != nil {
		t.Fatal(err)
	}
	m, err := est.Nash()
	if err != nil {
		t.Fatalf("Nash: %v", err)
	}
	// The cascade peak time is (N-1)*K = tp by construction.
	if got, want := m.TimeToPeakMin(), est.TpHours*60.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("cascade tp = %v min, want %v min", got, want)
	}
	// And its peak ordinate matches up in 1/h.
	if got, want := m.PeakOrdinatePerMin()*60.0, est.UpPerHour; math.Abs(got-want) > 1e-4 {
		t.Errorf("cascade peak = %v 1/h, want %v 1/h", got, want)
	}
}

func TestEstimateLutzValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LutzInputs)
	}{
		{name: "zero length", mutate: func(in *LutzInputs) { in.LKm = 0 }},
		{name: "zero centroid length", mutate: func(in *LutzInputs) { in.LcKm = 0 }},
		{name: "zero slope", mutate: func(in *LutzInputs) { in.Slope = 0 }},
		{name: "zero roughness", mutate: func(in *LutzInputs) { in.ManningN = 0 }},
		{name: "urban share above 100", mutate: func(in *LutzInputs) { in.UrbanPct = 120 }},
		{name: "negative forest share", mutate: func(in *LutzInputs) { in.ForestPct = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := lutzRefInputs()
			tt.mutate(&in)
			if _, err := EstimateLutz(in); err == nil {
				t.Error("invalid inputs accepted")
			}
		})
	}
}
