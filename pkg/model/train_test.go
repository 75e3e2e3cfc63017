package model

import (
	"math/rand"
	"testing"
)

func smokeParams() ModelParams {
	return ModelParams{
		VocabSize:       16,
		HiddenSize1:     8,
		HiddenSize2:     4,
		BatchSize:       8,
		Epochs:          4,
		DropoutRate:     0,
		L2Penalty:       0.001,
		LearnRate:       0.01,
		ValidationSplit: 0.2,
		Threshold:       0.5,
		Activation:      "relu",
		CrossFolds:      2,
	}
}

// synthetic corpus: positives activate the low half of the vocabulary,
// negatives the high half
func syntheticData(n, dimension int) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(7))
	features := make([][]float64, n)
	labels := make([]float64, n)

	for i := range n {
		row := make([]float64, dimension)
		label := float64(i % 2)
		offset := 0
		if label == 0 {
			offset = dimension / 2
		}
		for j := 0; j < dimension/2; j++ {
			if rng.Float64() < 0.6 {
				row[offset+j] = 1
			}
		}
		features[i] = row
		labels[i] = label
	}

	return features, labels
}

func TestTrainAndPredict(t *testing.T) {
	params := smokeParams()
	features, labels := syntheticData(80, params.VocabSize)

	weights, err := Train(nil, params, features, labels)
	if err != nil {
		t.Fatalf("training error: %v", err)
	}
	for i, w := range weights {
		if w == nil {
			t.Fatalf("weight %d is nil", i)
		}
	}

	prob, err := Predict(weights, params, features[0])
	if err != nil {
		t.Fatalf("prediction error: %v", err)
	}
	if prob < 0 || prob > 1 {
		t.Fatalf("probability out of range: %f", prob)
	}
}

func TestTrainMishActivation(t *testing.T) {
	params := smokeParams()
	params.Activation = "mish"
	params.Epochs = 2
	features, labels := syntheticData(40, params.VocabSize)

	weights, err := Train(nil, params, features, labels)
	if err != nil {
		t.Fatalf("training error with mish: %v", err)
	}
	if _, err := Predict(weights, params, features[1]); err != nil {
		t.Fatalf("prediction error with mish: %v", err)
	}
}

func TestTrainRejectsEmptyInput(t *testing.T) {
	params := smokeParams()
	if _, err := Train(nil, params, nil, nil); err == nil {
		t.Fatal("expected error for empty training set")
	}
	if _, err := Train(nil, params, [][]float64{{1, 0}}, []float64{1, 0}); err == nil {
		t.Fatal("expected error for mismatched labels")
	}
}

func TestEvaluateConfusion(t *testing.T) {
	params := smokeParams()
	features, labels := syntheticData(80, params.VocabSize)

	weights, err := Train(nil, params, features, labels)
	if err != nil {
		t.Fatalf("training error: %v", err)
	}

	confusionMatrix := evaluate(weights, params, features, labels, nil)
	total := 0
	for i := range confusionMatrix {
		for j := range confusionMatrix[i] {
			total += confusionMatrix[i][j]
		}
	}
	if total != len(features) {
		t.Fatalf("expected %d tallied samples, got %d", len(features), total)
	}
}
