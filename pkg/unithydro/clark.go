package unithydro

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// Clark models the basin response in two stages: translation of excess
// rain along a time-area curve, then attenuation through a single
// linear reservoir.
//
// Clark, C.O. (1945). Storage and the Unit Hydrograph.
type Clark struct {
	TcMin float64 // translation time (time of concentration)
	RMin  float64 // linear reservoir storage coefficient
}

// NewClark validates the translation time and storage coefficient
// [min].
func NewClark(tcMin, rMin float64) (*Clark, error) {
	if tcMin <= 0 {
		return nil, hydroerr.MustBePositive("tc_min", tcMin)
	}
	if rMin <= 0 {
		return nil, hydroerr.MustBePositive("r_min", rMin)
	}
	return &Clark{TcMin: tcMin, RMin: rMin}, nil
}

// NewClarkFromRatio derives R from an R/tc ratio. Typical ratios run
// 0.2-0.4 for steep urban basins up to 0.8-1.5 for flat, swampy ones.
func NewClarkFromRatio(tcMin, rTcRatio float64) (*Clark, error) {
	if tcMin <= 0 {
		return nil, hydroerr.MustBePositive("tc_min", tcMin)
	}
	if rTcRatio <= 0 {
		return nil, hydroerr.MustBePositive("r_tc_ratio", rTcRatio)
	}
	return NewClark(tcMin, rTcRatio*tcMin)
}

// NewClarkFromRecession derives R from an observed daily recession
// constant: for a linear reservoir R = -dt/ln(kr) with dt = 1440 min.
func NewClarkFromRecession(tcMin, recessionConstant float64) (*Clark, error) {
	if tcMin <= 0 {
		return nil, hydroerr.MustBePositive("tc_min", tcMin)
	}
	if recessionConstant <= 0 || recessionConstant >= 1 {
		return nil, hydroerr.InvalidParam("recession_constant", recessionConstant, "must be in (0, 1)")
	}
	return NewClark(tcMin, -1440.0/math.Log(recessionConstant))
}

func (m *Clark) Name() string { return "clark" }

// LagTimeMin approximates the lag as tc/2 + R: the time-area centroid
// plus the reservoir delay.
func (m *Clark) LagTimeMin() float64 { return m.TcMin/2.0 + m.RMin }

// CumulativeTimeArea is the fraction of basin area contributing by
// time t, using the HEC-HMS elliptical-basin curve
// A(t) = 1.414*(t/tc)^0.5 - 0.414*(t/tc)^1.5 for t <= tc.
func (m *Clark) CumulativeTimeArea(tMin float64) float64 {
	if tMin <= 0 {
		return 0
	}
	if tMin >= m.TcMin {
		return 1
	}
	r := tMin / m.TcMin
	return 1.414*math.Sqrt(r) - 0.414*r*math.Sqrt(r)
}

// routeLinearReservoir applies O(t) = O(t-1) + C1*(I(t)+I(t-1)-2*O(t-1))
// with C1 = dt/(2R+dt).
func (m *Clark) routeLinearReservoir(inflow []float64, timestepMin float64) []float64 {
	c1 := timestepMin / (2.0*m.RMin + timestepMin)
	out := make([]float64, len(inflow))
	for i := 1; i < len(inflow); i++ {
		out[i] = out[i-1] + c1*(inflow[i]+inflow[i-1]-2.0*out[i-1])
	}
	return out
}

// IUH builds the instantaneous response: incremental time-area
// fractions routed through the reservoir, normalized to integrate
// to 1. A zero durationMin selects tc + 5*R.
func (m *Clark) IUH(timestepMin, durationMin float64) (*IUH, error) {
	if timestepMin <= 0 {
		return nil, hydroerr.MustBePositive("timestep_min", timestepMin)
	}
	if durationMin == 0 {
		durationMin = m.TcMin + 5.0*m.RMin
	}
	if durationMin < 0 {
		return nil, hydroerr.MustBePositive("duration_min", durationMin)
	}

	times := timeGrid(timestepMin, durationMin)
	translation := make([]float64, len(times))
	prev := 0.0
	for i, t := range times {
		c := m.CumulativeTimeArea(t)
		translation[i] = c - prev
		prev = c
	}

	values := m.routeLinearReservoir(translation, timestepMin)
	if total := floats.Sum(values) * timestepMin; total > 0 {
		floats.Scale(1.0/total, values)
	}

	peakIdx := floats.MaxIdx(values)
	return &IUH{
		TimesMin:      times,
		ValuesPerMin:  values,
		TimestepMin:   timestepMin,
		TimeToPeakMin: times[peakIdx],
		PeakPerMin:    values[peakIdx],
	}, nil
}

// UnitHydrograph integrates the IUH into an S-curve, shifts it by the
// rainfall duration D (= timestepMin) and differences:
// U(t) = (S(t) - S(t-D)) / D, scaled to m³/s per mm.
func (m *Clark) UnitHydrograph(areaKm2, timestepMin float64) (*Ordinates, error) {
	if err := validateAreaStep(areaKm2, timestepMin); err != nil {
		return nil, err
	}

	d := timestepMin
	iuh, err := m.IUH(timestepMin, m.TcMin+5.0*m.RMin+d)
	if err != nil {
		return nil, err
	}

	sCurve := make([]float64, len(iuh.ValuesPerMin))
	floats.CumSum(sCurve, iuh.ValuesPerMin)
	floats.Scale(timestepMin, sCurve)

	shift := int(math.Round(d / timestepMin))
	scale := areaKm2 * 1000.0 / 60.0
	values := make([]float64, len(sCurve))
	for i := range sCurve {
		shifted := 0.0
		if i-shift >= 0 {
			shifted = sCurve[i-shift]
		}
		values[i] = scale * (sCurve[i] - shifted) / d
	}

	normalizeVolume(values, timestepMin, areaKm2)
	return finalize(iuh.TimesMin, values, timestepMin, false), nil
}
