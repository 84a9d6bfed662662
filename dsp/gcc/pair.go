package gcc

import "fmt"

// CorrelatePair correlates the first two channels of a multichannel
// recording shaped [channel][sample]: channel 0 is the reference, channel 1
// the delayed replica. Additional channels are ignored.
func (e *Estimator) CorrelatePair(waveforms [][]float64) ([]float64, error) {
	if len(waveforms) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 channels, got %d", ErrShape, len(waveforms))
	}

	return e.Correlate(waveforms[0], waveforms[1])
}

// CorrelatePairBatch correlates a batch of multichannel recordings shaped
// [batch][channel][sample], pairing channels 0 and 1 of each element.
func (e *Estimator) CorrelatePairBatch(waveforms [][][]float64) ([][]float64, error) {
	if len(waveforms) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrShape)
	}

	out := make([][]float64, len(waveforms))

	for i, w := range waveforms {
		if len(w) < 2 {
			return nil, fmt.Errorf("batch element %d: %w: need at least 2 channels, got %d", i, ErrShape, len(w))
		}

		if err := e.checkPair(w[0], w[1]); err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, err)
		}

		res, err := e.correlate(w[0], w[1])
		if err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, err)
		}

		out[i] = res
	}

	return out, nil
}
