// Package hydrograph assembles direct-runoff hydrographs: it applies
// the SCS-CN abstraction to a rainfall series, generates a unit
// response, and convolves the two into a discharge series with summary
// statistics.
package hydrograph

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// Hydrograph is a discharge time series at a fixed step together with
// its summary statistics.
type Hydrograph struct {
	TimesMin         []float64
	DischargeM3s     []float64
	TimestepMin      float64
	PeakDischargeM3s float64
	TimeToPeakMin    float64
	TotalVolumeM3    float64
}

// Convolve superposes time-shifted, depth-scaled unit-response
// contributions: Q[t] = Σ_τ Pe[τ]*UH[t-τ]. Both series must share the
// same time step; reconciling mismatched steps is the generator's job,
// not this function's. Pe is in mm and UH in m³/s per mm, so Q is in
// m³/s with no further area factor. Output length is
// len(pe)+len(uh)-1.
func Convolve(effectiveMM, unitHydrographM3s []float64, timestepMin float64) (*Hydrograph, error) {
	if timestepMin <= 0 {
		return nil, hydroerr.MustBePositive("timestep_min", timestepMin)
	}
	if len(effectiveMM) == 0 {
		return nil, hydroerr.InvalidParam("effective_mm", 0, "series must not be empty")
	}
	if len(unitHydrographM3s) == 0 {
		return nil, hydroerr.InvalidParam("unit_hydrograph", 0, "ordinates must not be empty")
	}

	n := len(effectiveMM) + len(unitHydrographM3s) - 1
	discharge := make([]float64, n)
	for i, pe := range effectiveMM {
		if pe == 0 {
			continue
		}
		for j, uh := range unitHydrographM3s {
			discharge[i+j] += pe * uh
		}
	}

	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * timestepMin
	}

	volume := 0.0
	if n > 1 {
		volume = integrate.Trapezoidal(times, discharge) * 60.0
	} else {
		volume = discharge[0] * timestepMin * 60.0
	}

	peakIdx := floats.MaxIdx(discharge)
	return &Hydrograph{
		TimesMin:         times,
		DischargeM3s:     discharge,
		TimestepMin:      timestepMin,
		PeakDischargeM3s: discharge[peakIdx],
		TimeToPeakMin:    times[peakIdx],
		TotalVolumeM3:    volume,
	}, nil
}

// RectangularVolumeM3 is the rectangle-rule volume Σ Q*dt [m³], the
// quantity the convolution conserves exactly against Σ Pe * A * 1000.
func (h *Hydrograph) RectangularVolumeM3() float64 {
	return floats.Sum(h.DischargeM3s) * h.TimestepMin * 60.0
}
