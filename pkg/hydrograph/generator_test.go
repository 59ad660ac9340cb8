package hydrograph

import (
	"math"
	"testing"

	"github.com/hydrograf/hydrolog/pkg/scscn"
	"github.com/hydrograf/hydrolog/pkg/unithydro"
)

func refConfig() Config {
	return Config{
		AreaKm2: 45,
		CN:      72,
		TcMin:   90,
		Model:   ModelSCS,
	}
}

func refStorm() []float64 {
	return []float64{0, 5, 12, 18, 10, 5, 0}
}

func TestGeneratorSCSRun(t *testing.T) {
	g, err := New(refConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := g.Generate(refStorm(), 10)
	if err != nil {
		t.Fatal(err)
	}

	if res.CNUsed != 72 {
		t.Errorf("CNUsed = %d, want 72", res.CNUsed)
	}
	if math.Abs(res.TotalPrecipMM-50.0) > 1e-12 {
		t.Errorf("TotalPrecipMM = %v, want 50", res.TotalPrecipMM)
	}
	if math.Abs(res.TotalEffectiveMM-7.0897) > 0.001 {
		t.Errorf("TotalEffectiveMM = %v, want 7.0897", res.TotalEffectiveMM)
	}
	if math.Abs(res.RunoffCoefficient-res.TotalEffectiveMM/50.0) > 1e-12 {
		t.Errorf("RunoffCoefficient = %v, inconsistent with depths", res.RunoffCoefficient)
	}
	if res.Resampled || res.Clamped {
		t.Errorf("flags (resampled=%v, clamped=%v), want both false", res.Resampled, res.Clamped)
	}

	// Water balance within 1%.
	got := res.Hydrograph.RectangularVolumeM3()
	want := res.TotalEffectiveMM * 45.0 * 1000.0
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("volume = %v m3, want %v m3 within 1%%", got, want)
	}

	// The peak cannot precede the peak rainfall step.
	if res.PeakDischargeM3s() <= 0 {
		t.Errorf("PeakDischargeM3s = %v, want > 0", res.PeakDischargeM3s())
	}
	if res.TimeToPeakMin() <= 30 {
		t.Errorf("TimeToPeakMin = %v, want after the 30 min rainfall peak", res.TimeToPeakMin())
	}
}

func TestGeneratorIsPure(t *testing.T) {
	g, err := New(refConfig())
	if err != nil {
		t.Fatal(err)
	}
	storm := refStorm()
	a, err := g.Generate(storm, 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(storm, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Hydrograph.DischargeM3s) != len(b.Hydrograph.DischargeM3s) {
		t.Fatal("repeat run changed output length")
	}
	for i := range a.Hydrograph.DischargeM3s {
		if a.Hydrograph.DischargeM3s[i] != b.Hydrograph.DischargeM3s[i] {
			t.Fatalf("repeat run diverged at ordinate %d", i)
		}
	}
	// The input series must not be mutated.
	for i, v := range refStorm() {
		if storm[i] != v {
			t.Fatalf("input series mutated at %d", i)
		}
	}
}

func TestGeneratorModelSelection(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		model   string
		wantErr bool
	}{
		{name: "default is scs", mutate: func(c *Config) { c.Model = "" }, model: "scs"},
		{
			name:   "nash direct",
			mutate: func(c *Config) { c.Model = ModelNash; c.Nash = &NashParams{N: 3, KMin: 30} },
			model:  "nash",
		},
		{
			name:   "clark from ratio",
			mutate: func(c *Config) { c.Model = ModelClark; c.Clark = &ClarkParams{RTcRatio: 0.5} },
			model:  "clark",
		},
		{
			name: "snyder",
			mutate: func(c *Config) {
				c.Model = ModelSnyder
				c.Snyder = &SnyderParams{LKm: 15, LcKm: 8, Ct: 2.0, Cp: 0.6}
			},
			model: "snyder",
		},
		{name: "unknown tag", mutate: func(c *Config) { c.Model = "muskingum" }, wantErr: true},
		{name: "nash without params", mutate: func(c *Config) { c.Model = ModelNash }, wantErr: true},
		{name: "clark without params", mutate: func(c *Config) { c.Model = ModelClark }, wantErr: true},
		{
			name:    "scs without tc",
			mutate:  func(c *Config) { c.Model = ModelSCS; c.TcMin = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := refConfig()
			tt.mutate(&cfg)
			g, err := New(cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("invalid config accepted")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if g.Model().Name() != tt.model {
				t.Errorf("Model().Name() = %q, want %q", g.Model().Name(), tt.model)
			}
		})
	}
}

func TestGeneratorLutzDerivedNash(t *testing.T) {
	cfg := refConfig()
	cfg.Model = ModelNash
	cfg.Nash = &NashParams{
		Lutz: &unithydro.LutzInputs{LKm: 15, LcKm: 8, Slope: 0.02, ManningN: 0.035},
	}
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	est := g.Lutz()
	if est == nil {
		t.Fatal("Lutz estimate not retained")
	}
	if math.Abs(est.N-3.69061) > 1e-4 {
		t.Errorf("N = %v, want 3.69061", est.N)
	}
	if _, err := g.Generate(refStorm(), 10); err != nil {
		t.Fatalf("Generate with derived cascade: %v", err)
	}
}

func TestGeneratorAMC(t *testing.T) {
	wetCfg := refConfig()
	wetCfg.AMC = scscn.AMCWet
	wet, err := New(wetCfg)
	if err != nil {
		t.Fatal(err)
	}
	normal, err := New(refConfig())
	if err != nil {
		t.Fatal(err)
	}

	wetRes, err := wet.Generate(refStorm(), 10)
	if err != nil {
		t.Fatal(err)
	}
	normalRes, err := normal.Generate(refStorm(), 10)
	if err != nil {
		t.Fatal(err)
	}

	if wetRes.CNUsed != 86 {
		t.Errorf("wet CNUsed = %d, want 86", wetRes.CNUsed)
	}
	if normalRes.CNUsed != 72 {
		t.Errorf("normal CNUsed = %d, want 72", normalRes.CNUsed)
	}
	if wetRes.PeakDischargeM3s() <= normalRes.PeakDischargeM3s() {
		t.Errorf("wet peak %v not above normal peak %v",
			wetRes.PeakDischargeM3s(), normalRes.PeakDischargeM3s())
	}
}

func TestGeneratorResamples(t *testing.T) {
	cfg := refConfig()
	cfg.TimestepMin = 10
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// 5-minute rainfall, 10-minute computation step.
	res, err := g.Generate([]float64{0, 2, 6, 9, 9, 10, 5, 5, 2, 2, 0, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Resampled {
		t.Error("Resampled flag not set")
	}
	if res.TimestepMin != 10 {
		t.Errorf("TimestepMin = %v, want 10", res.TimestepMin)
	}
	if math.Abs(res.TotalPrecipMM-50.0) > 1e-9 {
		t.Errorf("TotalPrecipMM = %v, want 50", res.TotalPrecipMM)
	}
	if math.Abs(res.TotalEffectiveMM-7.0897) > 0.001 {
		t.Errorf("TotalEffectiveMM = %v, want 7.0897", res.TotalEffectiveMM)
	}
}

func TestGeneratorValidation(t *testing.T) {
	cfg := refConfig()
	cfg.AreaKm2 = 0
	if _, err := New(cfg); err == nil {
		t.Error("zero area accepted")
	}
	cfg = refConfig()
	cfg.CN = 120
	if _, err := New(cfg); err == nil {
		t.Error("cn above 100 accepted")
	}

	g, err := New(refConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Generate(nil, 10); err == nil {
		t.Error("empty storm accepted")
	}
	if _, err := g.Generate(refStorm(), 0); err == nil {
		t.Error("zero timestep accepted")
	}
}
