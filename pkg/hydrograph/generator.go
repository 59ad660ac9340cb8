package hydrograph

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
	"github.com/hydrograf/hydrolog/pkg/scscn"
	"github.com/hydrograf/hydrolog/pkg/unithydro"
)

// Model name tags accepted by the generator.
const (
	ModelSCS    = "scs"
	ModelNash   = "nash"
	ModelClark  = "clark"
	ModelSnyder = "snyder"
)

// NashParams parameterizes the Nash cascade, either directly through
// (N, KMin) or by Lutz estimation from physiographic descriptors.
type NashParams struct {
	N    float64
	KMin float64
	// Lutz, when set, derives (N, KMin) from physiographic inputs and
	// takes precedence over the direct fields.
	Lutz *unithydro.LutzInputs
}

// ClarkParams parameterizes the Clark model; the translation time
// comes from Config.TcMin. Exactly one of RMin or RTcRatio selects the
// storage coefficient.
type ClarkParams struct {
	RMin     float64
	RTcRatio float64
}

// SnyderParams parameterizes the Snyder synthetic unit hydrograph.
// Zero Ct or Cp select the customary 2.0 and 0.6 defaults.
type SnyderParams struct {
	LKm  float64
	LcKm float64
	Ct   float64
	Cp   float64
}

// Config collects everything needed to build a generator. It is a
// plain value object; the generator resolved from it is immutable.
type Config struct {
	AreaKm2       float64
	CN            int
	AMC           scscn.AMC // zero selects AMC-II
	IaCoefficient float64   // zero selects 0.2
	TcMin         float64   // required for the scs and clark models

	Model  string
	Nash   *NashParams
	Clark  *ClarkParams
	Snyder *SnyderParams

	// TimestepMin, when non-zero, is the computation step the rainfall
	// series is resampled onto before the unit response is generated.
	TimestepMin float64
}

// Generator validates a configuration once and then produces
// hydrographs from rainfall series. Every Generate call is a pure
// function of its inputs; a Generator may be shared across goroutines.
type Generator struct {
	cfg   Config
	scs   *scscn.Model
	model unithydro.Model
	lutz  *unithydro.LutzEstimate
}

// New resolves the response model named by cfg.Model and validates all
// shared parameters.
func New(cfg Config) (*Generator, error) {
	if cfg.AreaKm2 <= 0 {
		return nil, hydroerr.MustBePositive("area_km2", cfg.AreaKm2)
	}
	if cfg.AMC == 0 {
		cfg.AMC = scscn.AMCNormal
	}

	abstraction, err := scscn.New(cfg.CN, cfg.IaCoefficient)
	if err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg, scs: abstraction}
	if err := g.resolveModel(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) resolveModel() error {
	cfg := &g.cfg
	switch strings.ToLower(cfg.Model) {
	case ModelSCS, "":
		if cfg.TcMin <= 0 {
			return hydroerr.InvalidParam("tc_min", cfg.TcMin, "required for the scs model")
		}
		m, err := unithydro.NewSCS(cfg.TcMin)
		if err != nil {
			return err
		}
		g.model = m

	case ModelNash:
		if cfg.Nash == nil {
			return hydroerr.InvalidParam("nash", 0, "nash model parameters are required")
		}
		if cfg.Nash.Lutz != nil {
			est, err := unithydro.EstimateLutz(*cfg.Nash.Lutz)
			if err != nil {
				return err
			}
			m, err := est.Nash()
			if err != nil {
				return err
			}
			g.lutz = est
			g.model = m
			return nil
		}
		m, err := unithydro.NewNash(cfg.Nash.N, cfg.Nash.KMin)
		if err != nil {
			return err
		}
		g.model = m

	case ModelClark:
		if cfg.Clark == nil {
			return hydroerr.InvalidParam("clark", 0, "clark model parameters are required")
		}
		if cfg.TcMin <= 0 {
			return hydroerr.InvalidParam("tc_min", cfg.TcMin, "required for the clark model")
		}
		var m *unithydro.Clark
		var err error
		if cfg.Clark.RMin > 0 {
			m, err = unithydro.NewClark(cfg.TcMin, cfg.Clark.RMin)
		} else {
			m, err = unithydro.NewClarkFromRatio(cfg.TcMin, cfg.Clark.RTcRatio)
		}
		if err != nil {
			return err
		}
		g.model = m

	case ModelSnyder:
		if cfg.Snyder == nil {
			return hydroerr.InvalidParam("snyder", 0, "snyder model parameters are required")
		}
		m, err := unithydro.NewSnyder(cfg.Snyder.LKm, cfg.Snyder.LcKm, cfg.Snyder.Ct, cfg.Snyder.Cp)
		if err != nil {
			return err
		}
		g.model = m

	default:
		return hydroerr.InvalidParam("model", 0,
			fmt.Sprintf("must be one of %s, %s, %s, %s; got %q",
				ModelSCS, ModelNash, ModelClark, ModelSnyder, cfg.Model))
	}
	return nil
}

// Model returns the resolved unit-response model.
func (g *Generator) Model() unithydro.Model { return g.model }

// Lutz returns the retained estimation intermediates when the Nash
// parameters were derived by the Lutz method, or nil.
func (g *Generator) Lutz() *unithydro.LutzEstimate { return g.lutz }

// Result is the complete outcome of one Generate call, created once
// and never mutated afterwards.
type Result struct {
	Hydrograph  *Hydrograph
	EffectiveMM []float64
	TimestepMin float64 // computation step the series were aligned on

	TotalPrecipMM     float64
	TotalEffectiveMM  float64
	RunoffCoefficient float64

	CNUsed               int
	RetentionMM          float64
	InitialAbstractionMM float64

	// Resampled records that the rainfall series was rebinned onto the
	// configured computation step; Clamped that some numerical routine
	// clamped to a boundary along the way.
	Resampled bool
	Clamped   bool
}

// PeakDischargeM3s is the global maximum of the discharge series.
func (r *Result) PeakDischargeM3s() float64 { return r.Hydrograph.PeakDischargeM3s }

// TimeToPeakMin is the time of the discharge maximum.
func (r *Result) TimeToPeakMin() float64 { return r.Hydrograph.TimeToPeakMin }

// TotalVolumeM3 is the trapezoidal integral of the discharge series.
func (r *Result) TotalVolumeM3() float64 { return r.Hydrograph.TotalVolumeM3 }

// Generate produces the direct-runoff hydrograph for a rainfall series
// of equally spaced depth increments [mm] at timestepMin.
func (g *Generator) Generate(precipMM []float64, timestepMin float64) (*Result, error) {
	if len(precipMM) == 0 {
		return nil, hydroerr.InvalidParam("precipitation", 0, "series must not be empty")
	}
	if timestepMin <= 0 {
		return nil, hydroerr.MustBePositive("timestep_min", timestepMin)
	}

	series := precipMM
	step := timestepMin
	resampled := false
	clamped := false
	if g.cfg.TimestepMin > 0 && g.cfg.TimestepMin != timestepMin {
		var err error
		series, clamped, err = ResampleDepths(precipMM, timestepMin, g.cfg.TimestepMin)
		if err != nil {
			return nil, err
		}
		step = g.cfg.TimestepMin
		resampled = true
	}

	eff, err := g.scs.EffectiveSeries(series, g.cfg.AMC)
	if err != nil {
		return nil, err
	}

	uh, err := g.model.UnitHydrograph(g.cfg.AreaKm2, step)
	if err != nil {
		return nil, err
	}

	hyd, err := Convolve(eff.EffectiveMM, uh.ValuesM3s, step)
	if err != nil {
		return nil, err
	}

	totalPrecip := floats.Sum(series)
	coeff := 0.0
	if totalPrecip > 0 {
		coeff = eff.TotalEffectiveMM / totalPrecip
	}

	return &Result{
		Hydrograph:           hyd,
		EffectiveMM:          eff.EffectiveMM,
		TimestepMin:          step,
		TotalPrecipMM:        totalPrecip,
		TotalEffectiveMM:     eff.TotalEffectiveMM,
		RunoffCoefficient:    coeff,
		CNUsed:               eff.CNUsed,
		RetentionMM:          eff.RetentionMM,
		InitialAbstractionMM: eff.InitialAbstraction,
		Resampled:            resampled,
		Clamped:              clamped || uh.Clamped,
	}, nil
}
