package unithydro

import (
	"gonum.org/v1/gonum/interp"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// Standard NRCS dimensionless unit hydrograph ratios (t/tp, q/qp).
// USDA-NRCS TR-55 / NEH Part 630 Chapter 16. Immutable after init.
var scsDimensionlessTable = [][2]float64{
	{0.0, 0.000}, {0.1, 0.030}, {0.2, 0.100}, {0.3, 0.190},
	{0.4, 0.310}, {0.5, 0.470}, {0.6, 0.660}, {0.7, 0.820},
	{0.8, 0.930}, {0.9, 0.990}, {1.0, 1.000}, {1.1, 0.990},
	{1.2, 0.930}, {1.3, 0.860}, {1.4, 0.780}, {1.5, 0.680},
	{1.6, 0.560}, {1.7, 0.460}, {1.8, 0.390}, {1.9, 0.330},
	{2.0, 0.280}, {2.2, 0.207}, {2.4, 0.147}, {2.6, 0.107},
	{2.8, 0.077}, {3.0, 0.055}, {3.2, 0.040}, {3.4, 0.029},
	{3.6, 0.021}, {3.8, 0.015}, {4.0, 0.011}, {4.5, 0.005},
	{5.0, 0.000},
}

var scsDimensionless interp.PiecewiseLinear

func init() {
	xs := make([]float64, len(scsDimensionlessTable))
	ys := make([]float64, len(scsDimensionlessTable))
	for i, row := range scsDimensionlessTable {
		xs[i] = row[0]
		ys[i] = row[1]
	}
	if err := scsDimensionless.Fit(xs, ys); err != nil {
		panic(err)
	}
}

// dimensionlessRatio interpolates q/qp for a t/tp ratio. Beyond the
// tabulated range [0, 5] the hydrograph has ended and the ratio is 0.
func dimensionlessRatio(tOverTp float64) float64 {
	if tOverTp <= 0 || tOverTp >= 5.0 {
		return 0
	}
	return scsDimensionless.Predict(tOverTp)
}

// SCS is the NRCS dimensionless unit hydrograph model parameterized by
// the basin's time of concentration.
type SCS struct {
	TcMin float64
}

// NewSCS validates the time of concentration [min].
func NewSCS(tcMin float64) (*SCS, error) {
	if tcMin <= 0 {
		return nil, hydroerr.MustBePositive("tc_min", tcMin)
	}
	return &SCS{TcMin: tcMin}, nil
}

// NewSCSFromLag constructs the model from a known basin lag time
// using the standard tlag = 0.6*tc relationship in reverse.
func NewSCSFromLag(lagMin float64) (*SCS, error) {
	if lagMin <= 0 {
		return nil, hydroerr.MustBePositive("lag_min", lagMin)
	}
	return &SCS{TcMin: lagMin / 0.6}, nil
}

func (u *SCS) Name() string { return "scs" }

// LagTimeMin is tlag = 0.6 * tc.
func (u *SCS) LagTimeMin() float64 { return 0.6 * u.TcMin }

// TimeToPeakMin is tp = D/2 + tlag for rainfall duration D.
func (u *SCS) TimeToPeakMin(timestepMin float64) float64 {
	return timestepMin/2.0 + u.LagTimeMin()
}

// PeakDischargeM3s is the triangular-balance peak qp = 0.208*A/tp with
// A in km² and tp in hours, giving m³/s per mm of effective rainfall.
// The constant is 0.208, not 2.08: 1 mm over A km² is A*1000 m³, and
// for a triangle with base tb = 2.67*tp,
// qp = 2*A*1000 / (2.67*tp*3600) ≈ 0.208*A/tp.
func (u *SCS) PeakDischargeM3s(areaKm2, timestepMin float64) float64 {
	tpHours := u.TimeToPeakMin(timestepMin) / 60.0
	return 0.208 * areaKm2 / tpHours
}

// TimeBaseMin is the triangular-approximation base tb = 2.67 * tp,
// kept as a diagnostic; the tabulated curvilinear shape extends to
// 5 * tp.
func (u *SCS) TimeBaseMin(timestepMin float64) float64 {
	return 2.67 * u.TimeToPeakMin(timestepMin)
}

// UnitHydrograph renders the dimensionless table rescaled by tp and qp
// for the basin, out to the table extent of 5*tp.
func (u *SCS) UnitHydrograph(areaKm2, timestepMin float64) (*Ordinates, error) {
	if err := validateAreaStep(areaKm2, timestepMin); err != nil {
		return nil, err
	}

	tp := u.TimeToPeakMin(timestepMin)
	qp := u.PeakDischargeM3s(areaKm2, timestepMin)

	times := timeGrid(timestepMin, 5.0*tp)
	values := make([]float64, len(times))
	for i, t := range times {
		values[i] = qp * dimensionlessRatio(t/tp)
	}

	normalizeVolume(values, timestepMin, areaKm2)
	return finalize(times, values, timestepMin, false), nil
}
