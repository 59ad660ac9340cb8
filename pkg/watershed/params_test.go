package watershed

import (
	"math"
	"strings"
	"testing"
)

func validParams() Parameters {
	return Parameters{
		Name:            "upper-reach",
		Source:          "dem-delineation",
		CRS:             "EPSG:32633",
		AreaKm2:         45,
		PerimeterKm:     32,
		LengthKm:        12,
		ElevationMinM:   200,
		ElevationMaxM:   900,
		ElevationMeanM:  550,
		MeanSlope:       0.12,
		ChannelLengthKm: 8.2,
		ChannelSlope:    0.023,
		CN:              72,
	}
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Parameters) {}},
		{name: "optional fields absent", mutate: func(p *Parameters) {
			p.ElevationMeanM = 0
			p.MeanSlope = 0
			p.ChannelLengthKm = 0
			p.ChannelSlope = 0
			p.CN = 0
		}},
		{name: "zero area", mutate: func(p *Parameters) { p.AreaKm2 = 0 }, wantErr: true},
		{name: "zero perimeter", mutate: func(p *Parameters) { p.PerimeterKm = 0 }, wantErr: true},
		{name: "inverted elevation range", mutate: func(p *Parameters) { p.ElevationMaxM = 100 }, wantErr: true},
		{name: "mean outside range", mutate: func(p *Parameters) { p.ElevationMeanM = 1200 }, wantErr: true},
		{name: "cn out of range", mutate: func(p *Parameters) { p.CN = 150 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr && err == nil {
				t.Error("invalid parameters accepted")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("valid parameters rejected: %v", err)
			}
		})
	}
}

func TestParametersJSONRoundTrip(t *testing.T) {
	p := validParams()
	data, err := p.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	// Wire names are a fixed exchange contract.
	for _, key := range []string{
		"area_km2", "perimeter_km", "length_km",
		"elevation_min_m", "elevation_max_m", "channel_slope_m_per_m",
	} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("encoded JSON missing %q", key)
		}
	}

	got, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if *got != p {
		t.Errorf("round trip changed the value: %+v != %+v", *got, p)
	}
}

func TestFromJSONRejectsInvalid(t *testing.T) {
	if _, err := FromJSON([]byte(`{"area_km2": 0}`)); err == nil {
		t.Error("invalid document accepted")
	}
	if _, err := FromJSON([]byte(`not json`)); err == nil {
		t.Error("malformed document accepted")
	}
}

func TestDerivedMetrics(t *testing.T) {
	p := validParams()
	if got := p.ReliefM(); math.Abs(got-700.0) > 1e-12 {
		t.Errorf("ReliefM = %v, want 700", got)
	}
	if got := p.WidthKm(); math.Abs(got-3.75) > 1e-12 {
		t.Errorf("WidthKm = %v, want 3.75", got)
	}
	if got := p.GraveliusIndex(); math.Abs(got-1.34567) > 1e-4 {
		t.Errorf("GraveliusIndex = %v, want 1.34567", got)
	}
}
