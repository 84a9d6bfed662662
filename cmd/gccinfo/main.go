// Command gccinfo prints the generalized cross-correlation between two WAV
// recordings of the same event, e.g. a microphone pair.
//
// Usage:
//
//	gccinfo [flags] reference.wav replica.wav
//
// Both files are decoded, reduced to their first channel, and truncated to
// the shorter recording before correlating. The correlation sequence is
// printed per lag; interpreting it (peak picking, delay decisions) is left
// to the caller.
//
// Examples:
//
//	gccinfo mic0.wav mic1.wav
//	gccinfo -weighting phat -maxdelay 441 mic0.wav mic1.wav
//	gccinfo -scale unbiased -n 25 mic0.wav mic1.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-gcc/dsp/gcc"
)

func main() {
	maxDelay := flag.Int("maxdelay", 0, "maximum lag in samples (0 = full length)")
	weighting := flag.String("weighting", "none", "cross-spectrum weighting: none, phat")
	scale := flag.String("scale", "none", "correlation scaling: none, biased, unbiased")
	limit := flag.Int("n", 0, "print only the n lags closest to zero (0 = all)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gccinfo [flags] reference.wav replica.wav\n\n")
		fmt.Fprintf(os.Stderr, "Prints the generalized cross-correlation between two WAV files.\n")
		fmt.Fprintf(os.Stderr, "A positive lag means the replica is delayed relative to the reference.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	opts, err := buildOptions(*maxDelay, *weighting, *scale)
	if err != nil {
		log.Fatalf("gccinfo: %v", err)
	}

	x0, rate0, err := readMonoWAV(flag.Arg(0))
	if err != nil {
		log.Fatalf("gccinfo: %v", err)
	}

	x1, rate1, err := readMonoWAV(flag.Arg(1))
	if err != nil {
		log.Fatalf("gccinfo: %v", err)
	}

	if rate0 != rate1 {
		log.Fatalf("gccinfo: sample rates differ: %d Hz vs %d Hz", rate0, rate1)
	}

	// The estimator requires equal sample counts; use the common prefix.
	n := len(x0)
	if len(x1) < n {
		n = len(x1)
	}
	if n < 2 {
		log.Fatalf("gccinfo: recordings too short: %d samples", n)
	}
	x0 = x0[:n]
	x1 = x1[:n]

	e, err := gcc.New(n, opts...)
	if err != nil {
		log.Fatalf("gccinfo: %v", err)
	}

	r, err := e.Correlate(x0, x1)
	if err != nil {
		log.Fatalf("gccinfo: %v", err)
	}

	printResult(r, n, e.NFFT(), rate0, *limit)
}

// buildOptions maps CLI flags to estimator options.
func buildOptions(maxDelay int, weighting, scale string) ([]gcc.Option, error) {
	var opts []gcc.Option

	if maxDelay != 0 {
		opts = append(opts, gcc.WithMaxDelay(maxDelay))
	}

	switch weighting {
	case "none":
	case "phat":
		opts = append(opts, gcc.WithWeighting(gcc.WeightingPHAT))
	default:
		return nil, fmt.Errorf("unknown weighting %q (want none or phat)", weighting)
	}

	switch scale {
	case "none":
	case "biased":
		opts = append(opts, gcc.WithScale(gcc.ScaleBiased))
	case "unbiased":
		opts = append(opts, gcc.WithScale(gcc.ScaleUnbiased))
	default:
		return nil, fmt.Errorf("unknown scale %q (want none, biased or unbiased)", scale)
	}

	return opts, nil
}

// readMonoWAV decodes a WAV file into normalized float64 samples, keeping
// only the first channel, and returns the samples and the sample rate.
func readMonoWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("no channels in %s", path)
	}

	return firstChannelFloats(buf, int(decoder.BitDepth)), buf.Format.SampleRate, nil
}

// firstChannelFloats deinterleaves the first channel of an integer PCM
// buffer and scales it to [-1, 1].
func firstChannelFloats(buf *audio.IntBuffer, bitDepth int) []float64 {
	channels := buf.Format.NumChannels
	fullScale := float64(int64(1) << (bitDepth - 1))

	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		samples = append(samples, float64(buf.Data[i])/fullScale)
	}

	return samples
}

// printResult writes the correlation sequence as a lag table.
func printResult(r []float64, numSamples, nfft, rate, limit int) {
	minLag := gcc.MinLag(len(r))

	fmt.Printf("samples: %d\n", numSamples)
	fmt.Printf("nfft:    %d\n", nfft)
	fmt.Printf("lags:    %d..%d\n", minLag, minLag+len(r)-1)
	fmt.Println()

	lo := 0
	hi := len(r)
	if limit > 0 && limit < len(r) {
		center := -minLag
		lo = center - limit/2
		if lo < 0 {
			lo = 0
		}
		hi = lo + limit
		if hi > len(r) {
			hi = len(r)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "lag\tms\tcorrelation\t")
	for i := lo; i < hi; i++ {
		lag := i + minLag
		ms := 1000 * float64(lag) / float64(rate)
		fmt.Fprintf(w, "%d\t%.3f\t%.6g\t\n", lag, ms, r[i])
	}
	w.Flush()
}
