// Package scscn implements the SCS (NRCS) Curve Number rainfall
// abstraction: it turns a gross precipitation series into the effective
// (runoff-producing) portion.
//
// Reference: USDA-NRCS TR-55, Urban Hydrology for Small Watersheds.
package scscn

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// AMC is the Antecedent Moisture Condition class. It adjusts the
// curve number for the soil wetness preceding the storm.
type AMC int

const (
	AMCDry    AMC = iota + 1 // AMC-I, lowest runoff potential
	AMCNormal                // AMC-II, the condition CN tables are published for
	AMCWet                   // AMC-III, highest runoff potential
)

// String returns the conventional roman-numeral class name.
func (a AMC) String() string {
	switch a {
	case AMCDry:
		return "I"
	case AMCNormal:
		return "II"
	case AMCWet:
		return "III"
	}
	return "unknown"
}

// ParseAMC maps "I"/"II"/"III" to an AMC class.
func ParseAMC(s string) (AMC, error) {
	switch s {
	case "I":
		return AMCDry, nil
	case "II", "":
		return AMCNormal, nil
	case "III":
		return AMCWet, nil
	}
	return 0, hydroerr.InvalidParam("amc", 0, "must be one of I, II, III, got "+s)
}

// Model holds the curve number and initial-abstraction coefficient for
// one watershed. A Model is immutable after construction and safe for
// concurrent use.
type Model struct {
	CN            int
	IaCoefficient float64
}

// New validates cn and iaCoefficient and returns a Model. cn is the
// AMC-II curve number in (0, 100]; iaCoefficient defaults to the
// standard 0.2 when zero.
func New(cn int, iaCoefficient float64) (*Model, error) {
	if cn < 1 || cn > 100 {
		return nil, hydroerr.InvalidParam("cn", float64(cn), "must be in range 1-100")
	}
	if iaCoefficient == 0 {
		iaCoefficient = 0.2
	}
	if iaCoefficient < 0 || iaCoefficient > 1 {
		return nil, hydroerr.InvalidParam("ia_coefficient", iaCoefficient, "must be in range (0, 1]")
	}
	return &Model{CN: cn, IaCoefficient: iaCoefficient}, nil
}

// AdjustCN converts the AMC-II curve number to the given moisture
// class using the Chow et al. (1988) formulas. AMC-II is the identity.
// The result is rounded and clamped to [1, 100].
func (m *Model) AdjustCN(amc AMC) (int, error) {
	cn := float64(m.CN)
	switch amc {
	case AMCNormal:
		return m.CN, nil
	case AMCDry:
		cn = cn / (2.281 - 0.01281*cn)
	case AMCWet:
		cn = cn / (0.427 + 0.00573*cn)
	default:
		return 0, hydroerr.InvalidParam("amc", float64(amc), "unknown AMC class")
	}
	adjusted := int(math.Round(cn))
	if adjusted < 1 {
		adjusted = 1
	}
	if adjusted > 100 {
		adjusted = 100
	}
	return adjusted, nil
}

// Retention computes the maximum potential retention S [mm] for a
// curve number: S = 25400/CN - 254. CN=100 yields S=0, the degenerate
// but valid all-runoff case.
func Retention(cn int) float64 {
	if cn == 100 {
		return 0
	}
	return 25400.0/float64(cn) - 254.0
}

// InitialAbstraction computes Ia = coefficient * S [mm], the rainfall
// depth lost to interception, depression storage and infiltration
// before runoff begins.
func (m *Model) InitialAbstraction(retentionMM float64) float64 {
	return m.IaCoefficient * retentionMM
}

// Result carries the effective precipitation series and the water
// balance quantities it was derived from.
type Result struct {
	EffectiveMM        []float64 // incremental effective depth per step [mm]
	TotalEffectiveMM   float64
	RetentionMM        float64
	InitialAbstraction float64
	CNUsed             int
}

// EffectiveSeries transforms a gross precipitation series [mm per
// step] into incremental effective precipitation.
//
// The SCS formula is non-linear in cumulative depth, so it is
// evaluated on the running cumulative precipitation at each step
// boundary and the per-step effective depth obtained by differencing
// consecutive cumulative values. Applying the formula to raw
// increments would understate runoff.
func (m *Model) EffectiveSeries(precipMM []float64, amc AMC) (*Result, error) {
	if len(precipMM) == 0 {
		return nil, hydroerr.InvalidParam("precipitation", 0, "series must not be empty")
	}
	for _, p := range precipMM {
		if p < 0 || math.IsNaN(p) {
			return nil, hydroerr.InvalidParam("precipitation", p, "depths must be non-negative")
		}
	}

	cn, err := m.AdjustCN(amc)
	if err != nil {
		return nil, err
	}
	s := Retention(cn)
	ia := m.InitialAbstraction(s)

	cum := make([]float64, len(precipMM))
	floats.CumSum(cum, precipMM)

	peCum := make([]float64, len(cum))
	for i, p := range cum {
		peCum[i] = cumulativeEffective(p, ia, s)
	}

	// Difference the cumulative curve; clip tiny negative round-off.
	eff := make([]float64, len(peCum))
	prev := 0.0
	for i, pc := range peCum {
		d := pc - prev
		if d < 0 {
			d = 0
		}
		eff[i] = d
		prev = pc
	}

	return &Result{
		EffectiveMM:        eff,
		TotalEffectiveMM:   peCum[len(peCum)-1],
		RetentionMM:        s,
		InitialAbstraction: ia,
		CNUsed:             cn,
	}, nil
}

// cumulativeEffective evaluates the SCS runoff equation on a
// cumulative depth: Pe = (P-Ia)^2 / (P-Ia+S) for P > Ia, else 0.
// With S=0 (CN=100) everything past Ia runs off; no division occurs.
func cumulativeEffective(p, ia, s float64) float64 {
	if p <= ia {
		return 0
	}
	if s == 0 {
		return p - ia
	}
	excess := p - ia
	return excess * excess / (excess + s)
}

// EffectiveDepth applies the runoff equation to a single total storm
// depth [mm].
func (m *Model) EffectiveDepth(precipMM float64, amc AMC) (float64, error) {
	res, err := m.EffectiveSeries([]float64{precipMM}, amc)
	if err != nil {
		return 0, err
	}
	return res.TotalEffectiveMM, nil
}

// RunoffCoefficient returns C = Pe/P for a total storm depth, or 0
// for non-positive depth.
func (m *Model) RunoffCoefficient(precipMM float64, amc AMC) (float64, error) {
	if precipMM <= 0 {
		return 0, nil
	}
	pe, err := m.EffectiveDepth(precipMM, amc)
	if err != nil {
		return 0, err
	}
	return pe / precipMM, nil
}
