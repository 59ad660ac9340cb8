package unithydro

import (
	"math"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// SolveResult carries the root together with the diagnostics the
// caller needs to document the solve.
type SolveResult struct {
	Root       float64
	Iterations int
	BracketLo  float64
	BracketHi  float64
}

// SolveBrent finds a root of f on [lo, hi] using Brent's method
// (inverse quadratic interpolation with bisection fallback). The
// bracket must contain a sign change. Iteration is bounded by maxIter;
// exceeding it or failing to bracket returns an EstimationError with
// the attempted bracket and iteration count.
func SolveBrent(method string, f func(float64) float64, lo, hi, tol float64, maxIter int) (SolveResult, error) {
	if tol <= 0 {
		tol = 1e-6
	}
	if maxIter <= 0 {
		maxIter = 100
	}

	a, b := lo, hi
	fa, fb := f(a), f(b)
	if fa*fb > 0 {
		return SolveResult{BracketLo: lo, BracketHi: hi}, &hydroerr.EstimationError{
			Method:    method,
			BracketLo: lo,
			BracketHi: hi,
			Reason:    "no sign change in bracket",
		}
	}
	if fa == 0 {
		return SolveResult{Root: a, BracketLo: lo, BracketHi: hi}, nil
	}
	if fb == 0 {
		return SolveResult{Root: b, BracketLo: lo, BracketHi: hi}, nil
	}

	c, fc := a, fa
	d := b - a
	e := d
	for iter := 1; iter <= maxIter; iter++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		const eps = 2.220446049250313e-16
		tol1 := 2.0*eps*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return SolveResult{Root: b, Iterations: iter, BracketLo: lo, BracketHi: hi}, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation.
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2.0 * xm * s
				q = 1.0 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2.0*xm*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (s - 1.0)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2.0*p < math.Min(3.0*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return SolveResult{Root: b, Iterations: maxIter, BracketLo: lo, BracketHi: hi}, &hydroerr.EstimationError{
		Method:     method,
		BracketLo:  lo,
		BracketHi:  hi,
		Iterations: maxIter,
		Reason:     "did not converge within iteration cap",
	}
}
