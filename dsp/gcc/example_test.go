package gcc_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-gcc/dsp/gcc"
)

func ExampleGCC() {
	// Autocorrelation of a short alternating signal. The output covers lags
	// -3..+3; the zero-lag value equals the signal energy.
	x := []float64{1, 0, -1, 0}

	r, _ := gcc.GCC(x, x)

	fmt.Printf("length: %d\n", len(r))
	for _, v := range r {
		fmt.Printf("%d ", int(math.Round(v)))
	}
	fmt.Println()

	// Output:
	// length: 7
	// 0 -1 0 2 0 -1 0
}

func ExampleNew() {
	// A reusable estimator for 512-sample frames, limited to 101 lags with
	// biased scaling.
	e, _ := gcc.New(512,
		gcc.WithMaxDelay(101),
		gcc.WithScale(gcc.ScaleBiased),
	)

	fmt.Printf("fft length: %d\n", e.NFFT())
	fmt.Printf("output length: %d\n", e.Len())
	fmt.Printf("first lag: %d\n", gcc.MinLag(e.Len()))

	// Output:
	// fft length: 1024
	// output length: 101
	// first lag: -50
}

func ExampleEstimator_Correlate() {
	// Two sinusoid frames where the second lags the first by 4 samples.
	const n = 64
	const delay = 4

	x0 := make([]float64, n)
	x1 := make([]float64, n)
	for i := range x0 {
		x0[i] = math.Sin(2 * math.Pi * float64(i+delay) / 16)
		x1[i] = math.Sin(2 * math.Pi * float64(i) / 16)
	}

	e, _ := gcc.New(n, gcc.WithWeighting(gcc.WeightingPHAT))
	r, _ := e.Correlate(x0, x1)

	fmt.Printf("lags: %d..%d\n", gcc.MinLag(len(r)), gcc.MinLag(len(r))+len(r)-1)

	// Output:
	// lags: -63..63
}
