package genetics

import "sort"

func maxFloats(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	out := v[0]
	for i := 1; i < len(v); i++ {
		if out < v[i] {
			out = v[i]
		}
	}
	return out
}

func minFloats(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	out := v[0]
	for i := 1; i < len(v); i++ {
		if out > v[i] {
			out = v[i]
		}
	}
	return out
}

func CalculatePercentile(v []float64, percentile float64) float64 {
	if len(v) == 0 {
		return 0
	}

	sorted := make([]float64, len(v))
	copy(sorted, v)
	sort.Float64s(sorted)

	idx := int(percentile / 100 * float64(len(sorted)-1))
	return sorted[idx]
}
