package gcc

import "github.com/cwbudde/algo-vecmath"

// applyWeighting normalizes the one-sided cross-spectrum in place.
//
// PHAT replaces every bin with exp(i*angle(bin)), discarding the magnitude.
// A zero bin has angle 0 and therefore maps to 1+0i. Magnitudes are computed
// through vecmath on split real/imaginary parts.
func (e *Estimator) applyWeighting() {
	if e.weighting != WeightingPHAT {
		return
	}

	for i, c := range e.cross {
		e.re[i] = real(c)
		e.im[i] = imag(c)
	}

	vecmath.Magnitude(e.mags, e.re, e.im)

	for i, c := range e.cross {
		mag := e.mags[i]
		if mag == 0 {
			e.cross[i] = 1
			continue
		}

		e.cross[i] = complex(real(c)/mag, imag(c)/mag)
	}
}
