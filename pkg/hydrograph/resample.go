package hydrograph

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// ResampleDepths rebins a precipitation series from one fixed step to
// another by linear interpolation on the cumulative depth curve, never
// on instantaneous rates, so the total depth is preserved. The
// returned clamped flag reports whether the target grid extended past
// the source series and was held at the final cumulative depth.
func ResampleDepths(depthsMM []float64, fromStepMin, toStepMin float64) ([]float64, bool, error) {
	if len(depthsMM) == 0 {
		return nil, false, hydroerr.InvalidParam("depths", 0, "series must not be empty")
	}
	if fromStepMin <= 0 {
		return nil, false, hydroerr.MustBePositive("from_step_min", fromStepMin)
	}
	if toStepMin <= 0 {
		return nil, false, hydroerr.MustBePositive("to_step_min", toStepMin)
	}
	if fromStepMin == toStepMin {
		out := make([]float64, len(depthsMM))
		copy(out, depthsMM)
		return out, false, nil
	}

	// Cumulative depth at each step boundary, starting from 0.
	xs := make([]float64, len(depthsMM)+1)
	ys := make([]float64, len(depthsMM)+1)
	for i, d := range depthsMM {
		xs[i+1] = float64(i+1) * fromStepMin
		ys[i+1] = ys[i] + d
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, false, err
	}

	duration := xs[len(xs)-1]
	nOut := int(math.Ceil(duration / toStepMin))
	cum := make([]float64, nOut+1)
	clamped := false
	for i := 1; i <= nOut; i++ {
		t := float64(i) * toStepMin
		if t > duration {
			// Beyond the observed storm: hold total depth.
			cum[i] = ys[len(ys)-1]
			clamped = true
			continue
		}
		cum[i] = pl.Predict(t)
	}

	out := make([]float64, nOut)
	for i := range out {
		d := cum[i+1] - cum[i]
		if d < 0 {
			d = 0
		}
		out[i] = d
	}

	// Guard against interpolation round-off in the total.
	if diff := ys[len(ys)-1] - floats.Sum(out); math.Abs(diff) > 1e-12 && len(out) > 0 {
		out[len(out)-1] += diff
	}
	return out, clamped, nil
}
