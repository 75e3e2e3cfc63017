package model

import "math/rand"

// AugmentRow copies an indicator row and drops each active bit with the given
// probability. Multiplicative noise would break the {0,1} contract of the
// multi-hot encoding, so augmentation removes tokens instead.
func AugmentRow(row []float64, dropRate float64) []float64 {
	augmented := make([]float64, len(row))
	copy(augmented, row)

	for j, v := range augmented {
		if v != 0 && rand.Float64() < dropRate {
			augmented[j] = 0
		}
	}

	return augmented
}
