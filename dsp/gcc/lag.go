package gcc

// reorderLags rearranges the raw inverse-transform output into a linear lag
// sequence of length len(dst).
//
// The raw slice is circularly ordered: index 0 holds lag 0, index k holds
// lag +k, and index len(raw)-k holds lag -k. The output runs from lag -L to
// lag len(dst)-L-1 with L = (len(dst)-1)/2, so an even-length output carries
// its extra element on the positive side rather than being centered.
func reorderLags(dst, raw []float64) {
	l := (len(dst) - 1) / 2
	n := len(raw)

	copy(dst[:l], raw[n-l:])
	copy(dst[l:], raw[:len(dst)-l])
}

// MinLag returns the most negative lag of a correlation sequence of length
// ncorr, i.e. -(ncorr-1)/2. Output index i corresponds to lag i+MinLag(ncorr).
func MinLag(ncorr int) int {
	return -(ncorr - 1) / 2
}

// unbiasedDenominators returns the per-lag overlap counts for the unbiased
// estimator: max(1, numSamples-|lag|) over lags -L..L with L = (ncorr-1)/2.
// For even ncorr the sequence is extended by repeating its edge value, so
// every output lag receives a denominator.
func unbiasedDenominators(numSamples, ncorr int) []float64 {
	l := (ncorr - 1) / 2

	den := make([]float64, 0, ncorr)
	for lag := -l; lag <= l; lag++ {
		d := numSamples - abs(lag)
		if d <= 0 {
			d = 1
		}
		den = append(den, float64(d))
	}

	for len(den) < ncorr {
		den = append(den, den[len(den)-1])
	}

	return den
}

// reciprocalDenominators precomputes 1/denominator per output lag so scaling
// reduces to an elementwise multiply. Returns nil for ScaleNone.
func reciprocalDenominators(scale Scale, numSamples, ncorr int) []float64 {
	switch scale {
	case ScaleBiased:
		inv := 1 / float64(numSamples)
		den := make([]float64, ncorr)
		for i := range den {
			den[i] = inv
		}
		return den

	case ScaleUnbiased:
		den := unbiasedDenominators(numSamples, ncorr)
		for i := range den {
			den[i] = 1 / den[i]
		}
		return den

	default:
		return nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
