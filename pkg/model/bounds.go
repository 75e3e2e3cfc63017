package model

import "math"

// Vocabulary and layer sizes
func BoundVocabSize(v int) int {
	return int(math.Max(100, math.Min(50000, float64(v)))) // Default: 10000
}

func BoundVocabSizeFloat64(v float64) float64 {
	return math.Max(100, math.Min(50000, v))
}

func BoundHiddenSize(v int) int {
	return int(math.Max(4, math.Min(256, float64(v)))) // Default: 16
}

func BoundHiddenSizeFloat64(v float64) float64 {
	return math.Max(4, math.Min(256, v))
}

// Training schedule
func BoundBatchSize(v int) int {
	return int(math.Max(8, math.Min(2048, float64(v)))) // Default: 512
}

func BoundBatchSizeFloat64(v float64) float64 {
	return math.Max(8, math.Min(2048, v))
}

func BoundEpochs(v int) int {
	return int(math.Max(1, math.Min(200, float64(v)))) // Default: 20
}

func BoundEpochsFloat64(v float64) float64 {
	return math.Max(1, math.Min(200, v))
}

// Regularization
func BoundDropoutRate(v float64) float64 {
	return math.Max(0, math.Min(0.8, v)) // Default: 0.3
}

func BoundL2Penalty(v float64) float64 {
	return math.Max(0, math.Min(0.1, v)) // Default: 0.001
}

func BoundLearnRate(v float64) float64 {
	return math.Max(0.00001, math.Min(0.1, v)) // Default: 0.001
}

func BoundValidationSplit(v float64) float64 {
	return math.Max(0.05, math.Min(0.5, v)) // Default: 0.1
}

// Decision and evaluation
func BoundThreshold(v float64) float64 {
	return math.Max(0.05, math.Min(0.95, v)) // Default: 0.5
}

func BoundCrossFolds(v int) int {
	return int(math.Max(2, math.Min(10, float64(v)))) // Default: 3
}

func BoundCrossFoldsFloat64(v float64) float64 {
	return math.Max(2, math.Min(10, v))
}
