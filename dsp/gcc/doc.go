// Package gcc computes the Generalized Cross-Correlation (GCC) between two
// real-valued waveforms, as described by Knapp & Carter (1976). GCC is the
// standard FFT-based estimator for the time delay between a reference signal
// and a delayed replica, e.g. for sound source localization from a
// microphone pair.
//
// The pipeline removes the per-signal DC offset, computes zero-padded
// one-sided spectra, forms the cross-spectrum conj(X0)*X1, optionally
// normalizes it (PHAT phase transform), transforms back to the lag domain,
// and reorders the circular output into a linear lag sequence running from
// the most negative to the most positive lag.
//
// # Usage
//
// For one-shot correlation, use the package-level function:
//
//	r, err := gcc.GCC(x0, x1)
//	r, err := gcc.GCC(x0, x1, gcc.WithWeighting(gcc.WeightingPHAT))
//
// For repeated correlation of equally sized signals, create a reusable
// estimator; the sample count is fixed at construction and the FFT plan and
// scratch buffers are reused across calls:
//
//	e, err := gcc.New(1024, gcc.WithMaxDelay(128), gcc.WithScale(gcc.ScaleUnbiased))
//	r, err := e.Correlate(x0, x1)
//
// An Estimator is not safe for concurrent use; create one per goroutine.
//
// # Lag convention
//
// The cross-spectrum is conj(FFT(x0)) * FFT(x1), so a positive lag means x1
// is delayed relative to x0. For an output of length ncorr the first
// (ncorr-1)/2 elements are negative lags; when ncorr is even the sequence is
// not symmetric around lag zero and the extra element sits on the positive
// side.
package gcc
