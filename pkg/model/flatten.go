package model

func flattenBatchFeatures(features [][]float64, indices []int) []float64 {
	batchSize := len(indices)
	if batchSize == 0 {
		return []float64{}
	}
	featureSize := len(features[0])
	flattened := make([]float64, batchSize*featureSize)

	for i, idx := range indices {
		copy(flattened[i*featureSize:], features[idx])
	}
	return flattened
}

func flattenBatchLabels(labels []float64, indices []int) []float64 {
	batchSize := len(indices)
	if batchSize == 0 {
		return []float64{}
	}
	flattened := make([]float64, batchSize)

	for i, idx := range indices {
		flattened[i] = labels[idx]
	}
	return flattened
}
