package gcc

import (
	"fmt"
	"math"
)

// crossSpectrum fills e.cross with the weighted one-sided cross-spectrum of
// the DC-removed, zero-padded pair. The reference spectrum is conjugated, so
// a positive output lag corresponds to x1 being delayed relative to x0.
func (e *Estimator) crossSpectrum(x0, x1 []float64) error {
	loadCentered(e.in0, x0)
	loadCentered(e.in1, x1)

	if err := e.plan.Forward(e.spec0, e.in0); err != nil {
		return fmt.Errorf("%w: forward FFT: %v", ErrConfig, err)
	}

	if err := e.plan.Forward(e.spec1, e.in1); err != nil {
		return fmt.Errorf("%w: forward FFT: %v", ErrConfig, err)
	}

	for k := range e.cross {
		x0k := e.spec0[k]
		conj0 := complex(real(x0k), -imag(x0k))
		e.cross[k] = conj0 * e.spec1[k]
	}

	e.applyWeighting()

	return nil
}

// inverse transforms the one-sided cross-spectrum back to the lag domain,
// writing nfft real samples to e.raw. Real input spectra are Hermitian, so
// the upper half is reconstructed by conjugate mirroring before the complex
// inverse transform.
func (e *Estimator) inverse() error {
	n := e.nfft
	half := n / 2

	e.full[0] = e.cross[0]
	e.full[half] = e.cross[half]
	for k := 1; k < half; k++ {
		c := e.cross[k]
		e.full[k] = c
		e.full[n-k] = complex(real(c), -imag(c))
	}

	if err := e.plan.Inverse(e.lagDomain, e.full); err != nil {
		return fmt.Errorf("%w: inverse FFT: %v", ErrConfig, err)
	}

	for i, c := range e.lagDomain {
		v := real(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at lag-domain index %d; ensure the transform length is a power of two or reduce the requested length", ErrNonFinite, i)
		}
		e.raw[i] = v
	}

	return nil
}

// loadCentered writes x minus its arithmetic mean into the real parts of
// dst and zero-pads the remainder. The input slice is left untouched.
func loadCentered(dst []complex128, x []float64) {
	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(len(x))

	for i, v := range x {
		dst[i] = complex(v-mean, 0)
	}
	for i := len(x); i < len(dst); i++ {
		dst[i] = 0
	}
}
