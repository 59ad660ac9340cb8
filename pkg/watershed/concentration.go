// Package watershed carries the physiographic description of a
// drainage basin and the empirical time-of-concentration formulas
// built on it.
package watershed

import (
	"fmt"
	"math"
	"strings"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
	"github.com/hydrograf/hydrolog/pkg/scscn"
)

// Method tags accepted by TimeOfConcentration.
const (
	MethodKirpich   = "kirpich"
	MethodSCSLag    = "scs-lag"
	MethodGiandotti = "giandotti"
)

// Kirpich estimates the time of concentration [min] from channel
// length [km] and mean channel slope [m/m].
//
//	tc = 0.0663 * L^0.77 * S^-0.385  [h]
func Kirpich(lengthKm, slope float64) (float64, error) {
	if lengthKm <= 0 {
		return 0, hydroerr.MustBePositive("length_km", lengthKm)
	}
	if slope <= 0 {
		return 0, hydroerr.MustBePositive("slope", slope)
	}
	tcHours := 0.0663 * math.Pow(lengthKm, 0.77) * math.Pow(slope, -0.385)
	return tcHours * 60.0, nil
}

// SCSLag estimates the time of concentration [min] from the NRCS lag
// equation in metric form, with the maximum retention taken from the
// curve number. Flow length is in meters and slope in percent.
//
//	lag = L^0.8 * (S + 25.4)^0.7 / (7182 * Y^0.5)  [h]
//	tc  = lag / 0.6
func SCSLag(lengthM, slopePct float64, cn int) (float64, error) {
	if lengthM <= 0 {
		return 0, hydroerr.MustBePositive("length_m", lengthM)
	}
	if slopePct <= 0 {
		return 0, hydroerr.MustBePositive("slope_pct", slopePct)
	}
	if cn < 1 || cn > 100 {
		return 0, hydroerr.InvalidParam("cn", float64(cn), "must be within [1, 100]")
	}
	s := scscn.Retention(cn)
	lagHours := math.Pow(lengthM, 0.8) * math.Pow(s+25.4, 0.7) /
		(7182.0 * math.Sqrt(slopePct))
	return lagHours / 0.6 * 60.0, nil
}

// Giandotti estimates the time of concentration [min] from basin area
// [km2], main channel length [km] and the mean basin elevation above
// the outlet [m].
//
//	tc = (4*sqrt(A) + 1.5*L) / (0.8*sqrt(Hm))  [h]
func Giandotti(areaKm2, lengthKm, meanReliefM float64) (float64, error) {
	if areaKm2 <= 0 {
		return 0, hydroerr.MustBePositive("area_km2", areaKm2)
	}
	if lengthKm <= 0 {
		return 0, hydroerr.MustBePositive("length_km", lengthKm)
	}
	if meanReliefM <= 0 {
		return 0, hydroerr.MustBePositive("mean_relief_m", meanReliefM)
	}
	tcHours := (4.0*math.Sqrt(areaKm2) + 1.5*lengthKm) /
		(0.8 * math.Sqrt(meanReliefM))
	return tcHours * 60.0, nil
}

// TimeOfConcentration dispatches on a method tag and pulls the inputs
// the chosen formula needs out of the basin parameters.
func (p *Parameters) TimeOfConcentration(method string, cn int) (float64, error) {
	switch strings.ToLower(method) {
	case MethodKirpich:
		return Kirpich(p.ChannelLengthKm, p.ChannelSlope)
	case MethodSCSLag:
		return SCSLag(p.ChannelLengthKm*1000.0, p.ChannelSlope*100.0, cn)
	case MethodGiandotti:
		relief := p.ElevationMeanM - p.ElevationMinM
		return Giandotti(p.AreaKm2, p.ChannelLengthKm, relief)
	default:
		return 0, hydroerr.InvalidParam("method", 0,
			fmt.Sprintf("must be one of %s, %s, %s; got %q",
				MethodKirpich, MethodSCSLag, MethodGiandotti, method))
	}
}
