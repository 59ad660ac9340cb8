// Package config loads run scenarios and resolves them into generator
// configurations.
package config

import (
	"os"
	"strings"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
	"github.com/hydrograf/hydrolog/pkg/hydrograph"
	"github.com/hydrograf/hydrolog/pkg/scscn"
	"github.com/hydrograf/hydrolog/pkg/unithydro"
	"github.com/hydrograf/hydrolog/pkg/watershed"
)

// ScenarioData is the resolved form of a scenario file.
type ScenarioData struct {
	Name        string
	Basin       BasinData
	Model       ModelData
	TimestepMin float64
}

// BasinData describes the drainage basin of a scenario. When a
// watershed exchange file is referenced, its fields fill any basin
// field left unset in the scenario itself.
type BasinData struct {
	AreaKm2       float64
	CN            int
	AMC           string
	IaCoefficient float64
	TcMin         float64
	TcMethod      string
	WatershedFile string
}

// ModelData selects and parameterizes the unit-response model.
type ModelData struct {
	Type   string
	Nash   *NashData
	Clark  *ClarkData
	Snyder *SnyderData
}

type NashData struct {
	N    float64
	KMin float64
	Lutz *LutzData
}

type LutzData struct {
	LengthKm         float64
	CentroidLengthKm float64
	Slope            float64
	ManningN         float64
	UrbanPct         float64
	ForestPct        float64
}

type ClarkData struct {
	RMin     float64
	RTcRatio float64
}

type SnyderData struct {
	LengthKm         float64
	CentroidLengthKm float64
	Ct               float64
	Cp               float64
}

// Resolve turns a scenario into a generator configuration, pulling in
// the watershed exchange file and deriving the time of concentration
// when the scenario asks for it.
func (s *ScenarioData) Resolve() (*hydrograph.Config, error) {
	basin := s.Basin
	if basin.WatershedFile != "" {
		data, err := os.ReadFile(basin.WatershedFile)
		if err != nil {
			return nil, err
		}
		params, err := watershed.FromJSON(data)
		if err != nil {
			return nil, err
		}
		if basin.AreaKm2 == 0 {
			basin.AreaKm2 = params.AreaKm2
		}
		if basin.CN == 0 {
			basin.CN = params.CN
		}
		if basin.TcMin == 0 && basin.TcMethod != "" {
			basin.TcMin, err = params.TimeOfConcentration(basin.TcMethod, basin.CN)
			if err != nil {
				return nil, err
			}
		}
	}

	amc := scscn.AMCNormal
	if basin.AMC != "" {
		var err error
		amc, err = scscn.ParseAMC(basin.AMC)
		if err != nil {
			return nil, err
		}
	}

	cfg := &hydrograph.Config{
		AreaKm2:       basin.AreaKm2,
		CN:            basin.CN,
		AMC:           amc,
		IaCoefficient: basin.IaCoefficient,
		TcMin:         basin.TcMin,
		Model:         strings.ToLower(s.Model.Type),
		TimestepMin:   s.TimestepMin,
	}

	if s.Model.Nash != nil {
		cfg.Nash = &hydrograph.NashParams{
			N:    s.Model.Nash.N,
			KMin: s.Model.Nash.KMin,
		}
		if l := s.Model.Nash.Lutz; l != nil {
			cfg.Nash.Lutz = &unithydro.LutzInputs{
				LKm:       l.LengthKm,
				LcKm:      l.CentroidLengthKm,
				Slope:     l.Slope,
				ManningN:  l.ManningN,
				UrbanPct:  l.UrbanPct,
				ForestPct: l.ForestPct,
			}
		}
	}
	if s.Model.Clark != nil {
		cfg.Clark = &hydrograph.ClarkParams{
			RMin:     s.Model.Clark.RMin,
			RTcRatio: s.Model.Clark.RTcRatio,
		}
	}
	if s.Model.Snyder != nil {
		cfg.Snyder = &hydrograph.SnyderParams{
			LKm:  s.Model.Snyder.LengthKm,
			LcKm: s.Model.Snyder.CentroidLengthKm,
			Ct:   s.Model.Snyder.Ct,
			Cp:   s.Model.Snyder.Cp,
		}
	}
	return cfg, nil
}

// Generator resolves the scenario and builds the generator from it.
func (s *ScenarioData) Generator() (*hydrograph.Generator, error) {
	cfg, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	return hydrograph.New(*cfg)
}

func (s *ScenarioData) validate() error {
	if s.Basin.AreaKm2 < 0 {
		return hydroerr.MustBePositive("area_km2", s.Basin.AreaKm2)
	}
	if s.Basin.AreaKm2 == 0 && s.Basin.WatershedFile == "" {
		return hydroerr.InvalidParam("area_km2", 0,
			"required unless a watershed file supplies it")
	}
	if s.TimestepMin < 0 {
		return hydroerr.MustBePositive("timestep_min", s.TimestepMin)
	}
	return nil
}
