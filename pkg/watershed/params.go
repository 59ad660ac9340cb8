package watershed

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// Parameters is the basin description exchanged with external
// delineation tooling. Field names on the wire are fixed; optional
// fields are zero when absent.
type Parameters struct {
	Name   string `json:"name,omitempty"`
	Source string `json:"source,omitempty"`
	CRS    string `json:"crs,omitempty"`

	AreaKm2       float64 `json:"area_km2"`
	PerimeterKm   float64 `json:"perimeter_km"`
	LengthKm      float64 `json:"length_km"`
	ElevationMinM float64 `json:"elevation_min_m"`
	ElevationMaxM float64 `json:"elevation_max_m"`

	ElevationMeanM  float64 `json:"elevation_mean_m,omitempty"`
	MeanSlope       float64 `json:"mean_slope_m_per_m,omitempty"`
	ChannelLengthKm float64 `json:"channel_length_km,omitempty"`
	ChannelSlope    float64 `json:"channel_slope_m_per_m,omitempty"`
	CN              int     `json:"cn,omitempty"`
}

// Validate checks the required fields and the internal consistency of
// the elevation range.
func (p *Parameters) Validate() error {
	if p.AreaKm2 <= 0 {
		return hydroerr.MustBePositive("area_km2", p.AreaKm2)
	}
	if p.PerimeterKm <= 0 {
		return hydroerr.MustBePositive("perimeter_km", p.PerimeterKm)
	}
	if p.LengthKm <= 0 {
		return hydroerr.MustBePositive("length_km", p.LengthKm)
	}
	if p.ElevationMaxM < p.ElevationMinM {
		return hydroerr.InvalidParam("elevation_max_m", p.ElevationMaxM,
			fmt.Sprintf("must not be below elevation_min_m (%g)", p.ElevationMinM))
	}
	if p.ElevationMeanM != 0 &&
		(p.ElevationMeanM < p.ElevationMinM || p.ElevationMeanM > p.ElevationMaxM) {
		return hydroerr.InvalidParam("elevation_mean_m", p.ElevationMeanM,
			"must lie within the elevation range")
	}
	if p.CN != 0 && (p.CN < 1 || p.CN > 100) {
		return hydroerr.InvalidParam("cn", float64(p.CN), "must be within [1, 100]")
	}
	return nil
}

// FromJSON decodes and validates a basin description.
func FromJSON(data []byte) (*Parameters, error) {
	var p Parameters
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding watershed parameters: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ToJSON encodes the basin description for exchange.
func (p *Parameters) ToJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(p, "", "  ")
}

// ReliefM is the total basin relief.
func (p *Parameters) ReliefM() float64 { return p.ElevationMaxM - p.ElevationMinM }

// WidthKm is the equivalent basin width A/L.
func (p *Parameters) WidthKm() float64 {
	if p.LengthKm == 0 {
		return 0
	}
	return p.AreaKm2 / p.LengthKm
}

// GraveliusIndex is the compactness coefficient, the basin perimeter
// over the perimeter of a circle of equal area. Unity is a perfect
// circle.
func (p *Parameters) GraveliusIndex() float64 {
	if p.AreaKm2 <= 0 {
		return 0
	}
	return p.PerimeterKm / (2.0 * math.Sqrt(math.Pi*p.AreaKm2))
}
