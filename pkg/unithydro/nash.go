package unithydro

import (
	"math"

	"gonum.org/v1/gonum/mathext"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// Nash models the basin as a cascade of N identical linear reservoirs
// with storage constant K. The instantaneous response is the gamma
// density u(t) = (t/K)^(n-1) * e^(-t/K) / (K*Γ(n)).
//
// Nash, J.E. (1957). The form of the instantaneous unit hydrograph.
type Nash struct {
	N    float64
	KMin float64
}

// NewNash validates the shape n and storage constant K [min]. Values
// of n in (0, 1] are accepted: the cascade is still a valid density
// but its peak sits at t = 0.
func NewNash(n, kMin float64) (*Nash, error) {
	if n <= 0 {
		return nil, hydroerr.MustBePositive("n", n)
	}
	if kMin <= 0 {
		return nil, hydroerr.MustBePositive("k_min", kMin)
	}
	return &Nash{N: n, KMin: kMin}, nil
}

// NewNashFromTc estimates the cascade from a time of concentration:
// tlag = lagRatio*tc (0.6 is the SCS relationship), K = tlag/n. A
// non-positive n selects the n=3 natural-watershed default.
func NewNashFromTc(tcMin, n, lagRatio float64) (*Nash, error) {
	if tcMin <= 0 {
		return nil, hydroerr.MustBePositive("tc_min", tcMin)
	}
	if lagRatio == 0 {
		lagRatio = 0.6
	}
	if lagRatio < 0 || lagRatio > 1 {
		return nil, hydroerr.InvalidParam("lag_ratio", lagRatio, "must be in (0, 1]")
	}
	if n <= 0 {
		n = 3.0
	}
	return NewNash(n, lagRatio*tcMin/n)
}

// NewNashFromMoments recovers (n, K) from the first moment (lag) and
// second central moment (variance) of an observed response:
// K = M2/M1, n = M1²/M2.
func NewNashFromMoments(lagMin, varianceMin2 float64) (*Nash, error) {
	if lagMin <= 0 {
		return nil, hydroerr.MustBePositive("lag_min", lagMin)
	}
	if varianceMin2 <= 0 {
		return nil, hydroerr.MustBePositive("variance_min2", varianceMin2)
	}
	k := varianceMin2 / lagMin
	return NewNash(lagMin/k, k)
}

func (m *Nash) Name() string { return "nash" }

// LagTimeMin is the first moment n*K.
func (m *Nash) LagTimeMin() float64 { return m.N * m.KMin }

// VarianceMin2 is the second central moment n*K².
func (m *Nash) VarianceMin2() float64 { return m.N * m.KMin * m.KMin }

// TimeToPeakMin is (n-1)*K for n > 1; for n <= 1 the peak is at t=0.
func (m *Nash) TimeToPeakMin() float64 {
	if m.N <= 1 {
		return 0
	}
	return (m.N - 1) * m.KMin
}

// PeakOrdinatePerMin is the kernel maximum
// (n-1)^(n-1) * e^(-(n-1)) / (K*Γ(n)) for n > 1, or 1/K for n = 1.
func (m *Nash) PeakOrdinatePerMin() float64 {
	if m.N <= 1 {
		return 1.0 / m.KMin
	}
	nm1 := m.N - 1
	return math.Pow(nm1, nm1) * math.Exp(-nm1) / (m.KMin * math.Gamma(m.N))
}

// OrdinateAt evaluates the gamma-density kernel u(t) [1/min].
func (m *Nash) OrdinateAt(tMin float64) float64 {
	if tMin <= 0 {
		return 0
	}
	tok := tMin / m.KMin
	return math.Pow(tok, m.N-1) * math.Exp(-tok) / (m.KMin * math.Gamma(m.N))
}

// SCurveAt is the cumulative response to a sustained unit input, the
// regularized lower incomplete gamma function P(n, t/K).
func (m *Nash) SCurveAt(tMin float64) float64 {
	if tMin <= 0 {
		return 0
	}
	return mathext.GammaIncReg(m.N, tMin/m.KMin)
}

// IUH samples the kernel on a regular grid. A zero durationMin selects
// max(5*lag, 10*K), beyond which the ordinates are negligible.
func (m *Nash) IUH(timestepMin, durationMin float64) (*IUH, error) {
	if timestepMin <= 0 {
		return nil, hydroerr.MustBePositive("timestep_min", timestepMin)
	}
	if durationMin == 0 {
		durationMin = math.Max(5.0*m.LagTimeMin(), 10.0*m.KMin)
	}
	if durationMin < 0 {
		return nil, hydroerr.MustBePositive("duration_min", durationMin)
	}

	times := timeGrid(timestepMin, durationMin)
	values := make([]float64, len(times))
	for i, t := range times {
		values[i] = m.OrdinateAt(t)
	}
	return &IUH{
		TimesMin:      times,
		ValuesPerMin:  values,
		TimestepMin:   timestepMin,
		TimeToPeakMin: m.TimeToPeakMin(),
		PeakPerMin:    m.PeakOrdinatePerMin(),
	}, nil
}

// UnitHydrograph builds the D-minute unit hydrograph by sampling the
// analytic S-curve and differencing a copy shifted by the rainfall
// duration D (= timestepMin): U(t) = (S(t) - S(t-D)) / D, then scales
// to m³/s per mm of effective rain over the basin.
func (m *Nash) UnitHydrograph(areaKm2, timestepMin float64) (*Ordinates, error) {
	if err := validateAreaStep(areaKm2, timestepMin); err != nil {
		return nil, err
	}

	d := timestepMin
	total := 5.0*m.LagTimeMin() + d
	times := timeGrid(timestepMin, total)

	// 1 mm over areaKm2 is areaKm2*1000 m³; U is in 1/min so divide
	// by 60 to land in m³/s.
	scale := areaKm2 * 1000.0 / 60.0
	values := make([]float64, len(times))
	for i, t := range times {
		values[i] = scale * (m.SCurveAt(t) - m.SCurveAt(t-d)) / d
	}

	normalizeVolume(values, timestepMin, areaKm2)
	return finalize(times, values, timestepMin, false), nil
}
