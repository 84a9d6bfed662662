package gcc

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the estimator. Details are wrapped, so callers should
// discriminate with errors.Is.
var (
	// ErrShape indicates malformed or incompatible waveform shapes: empty
	// input, a sample count differing from the configured one, or
	// non-broadcastable batch sizes.
	ErrShape = errors.New("gcc: invalid waveform shape")

	// ErrConfig indicates an unrecognized weighting or scale value, an
	// invalid maximum delay, or a violated internal precondition.
	ErrConfig = errors.New("gcc: invalid configuration")

	// ErrNonFinite indicates the inverse transform produced NaN or Inf
	// values. This points at an invalid transform-length configuration, not
	// at transient bad data; retrying with the same inputs cannot help.
	ErrNonFinite = errors.New("gcc: inverse transform produced non-finite values")
)

// Weighting selects the frequency-domain normalization of the cross-spectrum.
type Weighting int

const (
	// WeightingNone passes the cross-spectrum through unchanged.
	WeightingNone Weighting = iota

	// WeightingPHAT applies the phase transform: every bin keeps only its
	// phase, so the bin magnitude becomes 1. This sharpens the correlation
	// peak at the cost of noise sensitivity near DC and Nyquist.
	WeightingPHAT
)

// String returns the weighting name.
func (w Weighting) String() string {
	switch w {
	case WeightingNone:
		return "none"
	case WeightingPHAT:
		return "phat"
	default:
		return fmt.Sprintf("Weighting(%d)", int(w))
	}
}

// Scale selects the bias-correction applied to the lag sequence.
type Scale int

const (
	// ScaleNone leaves the raw correlation values untouched.
	ScaleNone Scale = iota

	// ScaleBiased divides every lag value by the sample count.
	ScaleBiased

	// ScaleUnbiased divides each lag l by the overlap count
	// max(1, numSamples-|l|), removing the triangular taper of the biased
	// estimator.
	ScaleUnbiased
)

// String returns the scale name.
func (s Scale) String() string {
	switch s {
	case ScaleNone:
		return "none"
	case ScaleBiased:
		return "biased"
	case ScaleUnbiased:
		return "unbiased"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

type config struct {
	maxDelay    int
	maxDelaySet bool
	weighting   Weighting
	scale       Scale
}

// Option configures an Estimator.
type Option func(*config)

// WithMaxDelay caps the output length to min(2*numSamples-1, maxDelay).
// maxDelay must be positive.
func WithMaxDelay(maxDelay int) Option {
	return func(cfg *config) {
		cfg.maxDelay = maxDelay
		cfg.maxDelaySet = true
	}
}

// WithWeighting sets the cross-spectrum weighting.
func WithWeighting(w Weighting) Option {
	return func(cfg *config) {
		cfg.weighting = w
	}
}

// WithScale sets the correlation scaling.
func WithScale(s Scale) Option {
	return func(cfg *config) {
		cfg.scale = s
	}
}

// Estimator computes generalized cross-correlations for signals of a fixed
// sample count. The FFT plan and all scratch buffers are allocated once and
// reused, so a single Estimator must not be shared between goroutines.
type Estimator struct {
	numSamples int
	ncorr      int
	nfft       int
	weighting  Weighting
	scale      Scale

	plan *algofft.Plan[complex128]

	// Scratch buffers, valid for one call at a time.
	in0       []complex128
	in1       []complex128
	spec0     []complex128
	spec1     []complex128
	cross     []complex128 // one-sided, nfft/2+1 bins
	full      []complex128
	lagDomain []complex128
	raw       []float64
	re        []float64
	im        []float64
	mags      []float64

	// Reciprocal scaling denominators per output lag; nil for ScaleNone.
	invDen []float64
}

// New creates an estimator for signals of exactly numSamples samples.
// The sample count is a construction-time constant: the FFT length
// nfft = nextPowerOf2(2*numSamples-1) and the output length are derived from
// it once, and every Correlate call validates its inputs against it.
func New(numSamples int, opts ...Option) (*Estimator, error) {
	if numSamples < 2 {
		return nil, fmt.Errorf("%w: sample count must be at least 2, got %d", ErrShape, numSamples)
	}

	cfg := config{weighting: WeightingNone, scale: ScaleNone}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch cfg.weighting {
	case WeightingNone, WeightingPHAT:
	default:
		return nil, fmt.Errorf("%w: weighting %s not supported", ErrConfig, cfg.weighting)
	}

	switch cfg.scale {
	case ScaleNone, ScaleBiased, ScaleUnbiased:
	default:
		return nil, fmt.Errorf("%w: scale %s not supported", ErrConfig, cfg.scale)
	}

	m := 2*numSamples - 1
	ncorr := m
	if cfg.maxDelaySet {
		if cfg.maxDelay <= 0 {
			return nil, fmt.Errorf("%w: max delay must be positive, got %d", ErrConfig, cfg.maxDelay)
		}
		if cfg.maxDelay < m {
			ncorr = cfg.maxDelay
		}
	}

	// The inverse transform is only numerically reliable for power-of-two
	// lengths, so the minimum unaliased length m is always rounded up.
	nfft := nextPowerOf2(m)
	if nfft <= ncorr {
		return nil, fmt.Errorf("%w: transform length %d must exceed correlation length %d", ErrConfig, nfft, ncorr)
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, fmt.Errorf("%w: FFT plan of length %d: %v", ErrConfig, nfft, err)
	}

	half := nfft/2 + 1

	return &Estimator{
		numSamples: numSamples,
		ncorr:      ncorr,
		nfft:       nfft,
		weighting:  cfg.weighting,
		scale:      cfg.scale,
		plan:       plan,
		in0:        make([]complex128, nfft),
		in1:        make([]complex128, nfft),
		spec0:      make([]complex128, nfft),
		spec1:      make([]complex128, nfft),
		cross:      make([]complex128, half),
		full:       make([]complex128, nfft),
		lagDomain:  make([]complex128, nfft),
		raw:        make([]float64, nfft),
		re:         make([]float64, half),
		im:         make([]float64, half),
		mags:       make([]float64, half),
		invDen:     reciprocalDenominators(cfg.scale, numSamples, ncorr),
	}, nil
}

// NumSamples returns the configured per-signal sample count.
func (e *Estimator) NumSamples() int { return e.numSamples }

// NFFT returns the internal transform length, always a power of two.
func (e *Estimator) NFFT() int { return e.nfft }

// Len returns the output correlation-sequence length.
func (e *Estimator) Len() int { return e.ncorr }

// Correlate computes the generalized cross-correlation of the reference x0
// with the delayed replica x1. Both slices must hold exactly NumSamples
// values; neither is modified. The result is a fresh slice of Len values
// ordered from the most negative to the most positive lag.
func (e *Estimator) Correlate(x0, x1 []float64) ([]float64, error) {
	if err := e.checkPair(x0, x1); err != nil {
		return nil, err
	}

	return e.correlate(x0, x1)
}

// CorrelateBatch correlates batches of signals row by row. Batch sizes must
// be equal, or one side may hold a single signal that is broadcast against
// the other batch. Each result row is independent of the others.
func (e *Estimator) CorrelateBatch(x0, x1 [][]float64) ([][]float64, error) {
	if len(x0) == 0 || len(x1) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrShape)
	}

	b0 := len(x0)
	b1 := len(x1)
	batch := b0

	if b0 != b1 {
		switch {
		case b0 == 1:
			batch = b1
		case b1 == 1:
			batch = b0
		default:
			return nil, fmt.Errorf("%w: batch sizes %d and %d are not broadcast-compatible", ErrShape, b0, b1)
		}
	}

	out := make([][]float64, batch)

	for i := range out {
		r0 := x0[0]
		if b0 > 1 {
			r0 = x0[i]
		}

		r1 := x1[0]
		if b1 > 1 {
			r1 = x1[i]
		}

		if err := e.checkPair(r0, r1); err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, err)
		}

		res, err := e.correlate(r0, r1)
		if err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, err)
		}

		out[i] = res
	}

	return out, nil
}

// CrossSpectrum returns the weighted one-sided cross-spectrum
// conj(FFT(x0)) * FFT(x1) with NFFT/2+1 frequency bins. This is the
// intermediate the inverse transform operates on; it is exposed for
// inspection and testing of weighting behavior.
func (e *Estimator) CrossSpectrum(x0, x1 []float64) ([]complex128, error) {
	if err := e.checkPair(x0, x1); err != nil {
		return nil, err
	}

	if err := e.crossSpectrum(x0, x1); err != nil {
		return nil, err
	}

	out := make([]complex128, len(e.cross))
	copy(out, e.cross)

	return out, nil
}

// GCC is the one-shot convenience form: it derives the sample count from
// len(x0), builds an estimator, and correlates the pair.
func GCC(x0, x1 []float64, opts ...Option) ([]float64, error) {
	if len(x0) != len(x1) {
		return nil, fmt.Errorf("%w: sample counts differ: %d != %d", ErrShape, len(x0), len(x1))
	}

	e, err := New(len(x0), opts...)
	if err != nil {
		return nil, err
	}

	return e.correlate(x0, x1)
}

// checkPair validates a signal pair against the configured sample count.
func (e *Estimator) checkPair(x0, x1 []float64) error {
	if len(x0) == 0 || len(x1) == 0 {
		return fmt.Errorf("%w: empty input", ErrShape)
	}

	if len(x0) != len(x1) {
		return fmt.Errorf("%w: sample counts differ: %d != %d", ErrShape, len(x0), len(x1))
	}

	if len(x0) != e.numSamples {
		return fmt.Errorf("%w: expected %d samples, got %d", ErrShape, e.numSamples, len(x0))
	}

	return nil
}

// correlate runs the pipeline on an already validated pair.
func (e *Estimator) correlate(x0, x1 []float64) ([]float64, error) {
	if err := e.crossSpectrum(x0, x1); err != nil {
		return nil, err
	}

	if err := e.inverse(); err != nil {
		return nil, err
	}

	out := make([]float64, e.ncorr)
	reorderLags(out, e.raw)

	if e.invDen != nil {
		vecmath.MulBlockInPlace(out, e.invDen)
	}

	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
