// Package unithydro generates discrete unit-hydrograph ordinates for a
// watershed using one of four response models: the SCS (NRCS)
// dimensionless unit hydrograph, the Nash cascade of linear
// reservoirs, the Clark translation-storage model, and the Snyder
// synthetic unit hydrograph.
//
// All models are immutable value objects after construction and safe
// for concurrent use. Ordinates are dimensioned in m³/s per mm of
// effective rainfall over the basin area, so convolving them with an
// effective precipitation series in mm yields discharge in m³/s
// directly.
package unithydro

import (
	"gonum.org/v1/gonum/floats"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// Model is the common contract over the response-model variants. The
// time step doubles as the effective rainfall duration D of the
// generated D-minute unit hydrograph.
type Model interface {
	Name() string
	UnitHydrograph(areaKm2, timestepMin float64) (*Ordinates, error)
}

// Ordinates is a discrete D-minute unit hydrograph: the basin response
// to 1 mm of effective rainfall falling uniformly in one time step.
type Ordinates struct {
	TimesMin      []float64
	ValuesM3s     []float64 // m³/s per mm
	TimestepMin   float64
	PeakM3s       float64
	TimeToPeakMin float64
	// Clamped records that a table or curve evaluation was clamped to
	// its boundary, so the caller can see the approximation rather
	// than have it silently alter the output.
	Clamped bool
}

// IUH is a discretized instantaneous unit hydrograph. Values carry
// units of 1/min and integrate to 1 over the time base.
type IUH struct {
	TimesMin      []float64
	ValuesPerMin  []float64
	TimestepMin   float64
	TimeToPeakMin float64
	PeakPerMin    float64
}

// timeGrid builds the 0-based time axis covering durationMin at the
// given step, endpoint included.
func timeGrid(timestepMin, durationMin float64) []float64 {
	n := int(durationMin/timestepMin) + 1
	if float64(n-1)*timestepMin < durationMin {
		n++
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * timestepMin
	}
	return times
}

// normalizeVolume rescales ordinates so their rectangle-rule volume
// equals exactly one unit depth over the basin (areaKm2 * 1000 m³ per
// mm). This corrects discretization and tail-truncation losses so
// downstream convolution conserves volume.
func normalizeVolume(valuesM3s []float64, timestepMin, areaKm2 float64) {
	actual := floats.Sum(valuesM3s) * timestepMin * 60.0
	expected := areaKm2 * 1000.0
	if actual <= 0 {
		return
	}
	floats.Scale(expected/actual, valuesM3s)
}

// finalize assembles an Ordinates value, locating the discrete peak.
func finalize(timesMin, valuesM3s []float64, timestepMin float64, clamped bool) *Ordinates {
	peakIdx := floats.MaxIdx(valuesM3s)
	return &Ordinates{
		TimesMin:      timesMin,
		ValuesM3s:     valuesM3s,
		TimestepMin:   timestepMin,
		PeakM3s:       valuesM3s[peakIdx],
		TimeToPeakMin: timesMin[peakIdx],
		Clamped:       clamped,
	}
}

func validateAreaStep(areaKm2, timestepMin float64) error {
	if areaKm2 <= 0 {
		return hydroerr.MustBePositive("area_km2", areaKm2)
	}
	if timestepMin <= 0 {
		return hydroerr.MustBePositive("timestep_min", timestepMin)
	}
	return nil
}
