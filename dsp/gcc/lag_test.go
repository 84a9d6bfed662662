package gcc

import (
	"math"
	"testing"
)

func TestReorderLags(t *testing.T) {
	// Circular layout over nfft=8: index 0 = lag 0, index 8-k = lag -k.
	raw := []float64{0, 1, 2, 3, 99, -3, -2, -1}

	tests := []struct {
		name     string
		ncorr    int
		expected []float64
	}{
		{"full odd", 7, []float64{-3, -2, -1, 0, 1, 2, 3}},
		{"capped odd", 5, []float64{-2, -1, 0, 1, 2}},
		{"capped even", 4, []float64{-1, 0, 1, 2}},
		{"single lag", 1, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]float64, tt.ncorr)
			reorderLags(dst, raw)

			for i := range dst {
				if dst[i] != tt.expected[i] {
					t.Errorf("dst[%d] = %v, expected %v", i, dst[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMinLag(t *testing.T) {
	tests := []struct {
		ncorr    int
		expected int
	}{
		{7, -3},
		{5, -2},
		{4, -1},
		{1, 0},
	}

	for _, tt := range tests {
		if got := MinLag(tt.ncorr); got != tt.expected {
			t.Errorf("MinLag(%d) = %d, expected %d", tt.ncorr, got, tt.expected)
		}
	}
}

func TestUnbiasedDenominators(t *testing.T) {
	den := unbiasedDenominators(4, 7)

	expected := []float64{1, 2, 3, 4, 3, 2, 1}
	for i := range den {
		if den[i] != expected[i] {
			t.Errorf("den[%d] = %v, expected %v", i, den[i], expected[i])
		}
	}

	// Symmetric around the center, strictly decreasing away from it until
	// the clamp engages.
	center := (len(den) - 1) / 2
	for i := 1; i <= center; i++ {
		if den[center-i] != den[center+i] {
			t.Errorf("denominator asymmetric at offset %d", i)
		}
		if den[center+i] >= den[center+i-1] {
			t.Errorf("denominator not decreasing at offset %d", i)
		}
	}
}

func TestUnbiasedDenominatorsClamp(t *testing.T) {
	// ncorr beyond the valid range exercises the clamp: overlap counts of
	// zero or below are raised to 1.
	den := unbiasedDenominators(3, 9)

	expected := []float64{1, 1, 1, 2, 3, 2, 1, 1, 1}
	for i := range den {
		if den[i] != expected[i] {
			t.Errorf("den[%d] = %v, expected %v", i, den[i], expected[i])
		}
	}
}

func TestUnbiasedDenominatorsEvenExtension(t *testing.T) {
	// Even ncorr: the 2L+1 core is padded by repeating the edge value.
	den := unbiasedDenominators(4, 4)

	expected := []float64{3, 4, 3, 3}
	for i := range den {
		if den[i] != expected[i] {
			t.Errorf("den[%d] = %v, expected %v", i, den[i], expected[i])
		}
	}

	if len(den) != 4 {
		t.Fatalf("length = %d, expected 4", len(den))
	}
}

func TestReciprocalDenominators(t *testing.T) {
	if reciprocalDenominators(ScaleNone, 8, 15) != nil {
		t.Error("ScaleNone should give nil denominators")
	}

	biased := reciprocalDenominators(ScaleBiased, 8, 15)
	for i, v := range biased {
		if math.Abs(v-1.0/8) > 1e-15 {
			t.Errorf("biased[%d] = %v, expected 1/8", i, v)
		}
	}

	unbiased := reciprocalDenominators(ScaleUnbiased, 8, 15)
	den := unbiasedDenominators(8, 15)
	for i := range unbiased {
		if math.Abs(unbiased[i]*den[i]-1) > 1e-15 {
			t.Errorf("unbiased[%d] is not the reciprocal of %v", i, den[i])
		}
	}
}
