package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider loads scenario files written in YAML.
type YAMLProvider struct {
	filename string
	scenario *ScenarioData
}

// NewYAMLProvider creates a provider for a scenario file.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadScenario reads, parses and validates the scenario file.
func (y *YAMLProvider) LoadScenario() (*ScenarioData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlScenario ScenarioYAML
	err = yaml.Unmarshal(cfgFile, &yamlScenario)
	if err != nil {
		return nil, err
	}

	scenario := &ScenarioData{
		Name: yamlScenario.Name,
		Basin: BasinData{
			AreaKm2:       yamlScenario.Basin.AreaKm2,
			CN:            yamlScenario.Basin.CN,
			AMC:           yamlScenario.Basin.AMC,
			IaCoefficient: yamlScenario.Basin.IaCoefficient,
			TcMin:         yamlScenario.Basin.TcMin,
			TcMethod:      yamlScenario.Basin.TcMethod,
			WatershedFile: yamlScenario.Basin.WatershedFile,
		},
		Model: ModelData{
			Type: yamlScenario.Model.Type,
		},
		TimestepMin: yamlScenario.TimestepMin,
	}

	if yamlScenario.Model.Nash != nil {
		scenario.Model.Nash = &NashData{
			N:    yamlScenario.Model.Nash.N,
			KMin: yamlScenario.Model.Nash.KMin,
		}
		if yamlScenario.Model.Nash.Lutz != nil {
			scenario.Model.Nash.Lutz = &LutzData{
				LengthKm:         yamlScenario.Model.Nash.Lutz.LengthKm,
				CentroidLengthKm: yamlScenario.Model.Nash.Lutz.CentroidLengthKm,
				Slope:            yamlScenario.Model.Nash.Lutz.Slope,
				ManningN:         yamlScenario.Model.Nash.Lutz.ManningN,
				UrbanPct:         yamlScenario.Model.Nash.Lutz.UrbanPct,
				ForestPct:        yamlScenario.Model.Nash.Lutz.ForestPct,
			}
		}
	}

	if yamlScenario.Model.Clark != nil {
		scenario.Model.Clark = &ClarkData{
			RMin:     yamlScenario.Model.Clark.RMin,
			RTcRatio: yamlScenario.Model.Clark.RTcRatio,
		}
	}

	if yamlScenario.Model.Snyder != nil {
		scenario.Model.Snyder = &SnyderData{
			LengthKm:         yamlScenario.Model.Snyder.LengthKm,
			CentroidLengthKm: yamlScenario.Model.Snyder.CentroidLengthKm,
			Ct:               yamlScenario.Model.Snyder.Ct,
			Cp:               yamlScenario.Model.Snyder.Cp,
		}
	}

	if err := scenario.validate(); err != nil {
		return nil, err
	}

	y.scenario = scenario
	return scenario, nil
}

// YAML-specific structs with proper YAML tags for parsing scenario files
type ScenarioYAML struct {
	Name        string    `yaml:"name,omitempty"`
	Basin       BasinYAML `yaml:"basin"`
	Model       ModelYAML `yaml:"model"`
	TimestepMin float64   `yaml:"timestep-min,omitempty"`
}

type BasinYAML struct {
	AreaKm2       float64 `yaml:"area-km2,omitempty"`
	CN            int     `yaml:"cn,omitempty"`
	AMC           string  `yaml:"amc,omitempty"`
	IaCoefficient float64 `yaml:"ia-coefficient,omitempty"`
	TcMin         float64 `yaml:"tc-min,omitempty"`
	TcMethod      string  `yaml:"tc-method,omitempty"`
	WatershedFile string  `yaml:"watershed-file,omitempty"`
}

type ModelYAML struct {
	Type   string      `yaml:"type"`
	Nash   *NashYAML   `yaml:"nash,omitempty"`
	Clark  *ClarkYAML  `yaml:"clark,omitempty"`
	Snyder *SnyderYAML `yaml:"snyder,omitempty"`
}

type NashYAML struct {
	N    float64   `yaml:"n,omitempty"`
	KMin float64   `yaml:"k-min,omitempty"`
	Lutz *LutzYAML `yaml:"lutz,omitempty"`
}

type LutzYAML struct {
	LengthKm         float64 `yaml:"length-km"`
	CentroidLengthKm float64 `yaml:"centroid-length-km"`
	Slope            float64 `yaml:"slope"`
	ManningN         float64 `yaml:"manning-n"`
	UrbanPct         float64 `yaml:"urban-pct,omitempty"`
	ForestPct        float64 `yaml:"forest-pct,omitempty"`
}

type ClarkYAML struct {
	RMin     float64 `yaml:"r-min,omitempty"`
	RTcRatio float64 `yaml:"r-tc-ratio,omitempty"`
}

type SnyderYAML struct {
	LengthKm         float64 `yaml:"length-km"`
	CentroidLengthKm float64 `yaml:"centroid-length-km"`
	Ct               float64 `yaml:"ct,omitempty"`
	Cp               float64 `yaml:"cp,omitempty"`
}
