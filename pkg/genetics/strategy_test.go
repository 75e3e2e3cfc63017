package genetics

import (
	"math"
	"testing"

	"github.com/verdict-ml/verdict/pkg/model"
)

func checkParamsInBounds(t *testing.T, params model.ModelParams) {
	t.Helper()

	if params.VocabSize != model.BoundVocabSize(params.VocabSize) {
		t.Errorf("vocab size out of bounds: %d", params.VocabSize)
	}
	if params.HiddenSize1 != model.BoundHiddenSize(params.HiddenSize1) {
		t.Errorf("hidden size 1 out of bounds: %d", params.HiddenSize1)
	}
	if params.HiddenSize2 != model.BoundHiddenSize(params.HiddenSize2) {
		t.Errorf("hidden size 2 out of bounds: %d", params.HiddenSize2)
	}
	if params.BatchSize != model.BoundBatchSize(params.BatchSize) {
		t.Errorf("batch size out of bounds: %d", params.BatchSize)
	}
	if params.Epochs != model.BoundEpochs(params.Epochs) {
		t.Errorf("epochs out of bounds: %d", params.Epochs)
	}
	if params.DropoutRate != model.BoundDropoutRate(params.DropoutRate) {
		t.Errorf("dropout rate out of bounds: %f", params.DropoutRate)
	}
	if params.L2Penalty != model.BoundL2Penalty(params.L2Penalty) {
		t.Errorf("l2 penalty out of bounds: %f", params.L2Penalty)
	}
	if params.LearnRate != model.BoundLearnRate(params.LearnRate) {
		t.Errorf("learn rate out of bounds: %f", params.LearnRate)
	}
	if params.ValidationSplit != model.BoundValidationSplit(params.ValidationSplit) {
		t.Errorf("validation split out of bounds: %f", params.ValidationSplit)
	}
	if params.Threshold != model.BoundThreshold(params.Threshold) {
		t.Errorf("threshold out of bounds: %f", params.Threshold)
	}
}

func TestStrategyToParamsDefaults(t *testing.T) {
	s := newStrategy()
	params := StrategyToParams(s)
	checkParamsInBounds(t, params)

	if params.VocabSize != model.VocabSize() {
		t.Errorf("expected default vocab size %d, got %d", model.VocabSize(), params.VocabSize)
	}
	if params.HiddenSize1 != model.HiddenSize1() {
		t.Errorf("expected default hidden size %d, got %d", model.HiddenSize1(), params.HiddenSize1)
	}
}

func TestRandomizedStrategyStaysInBounds(t *testing.T) {
	for range 100 {
		s := newStrategy()
		randomizeStrategy(&s, 25)
		checkParamsInBounds(t, StrategyToParams(s))
	}
}

func TestCrossoverMixesParents(t *testing.T) {
	p1 := newStrategy()
	p2 := newStrategy()
	randomizeStrategy(&p2, 25)

	for range 100 {
		child := crossover(p1, p2)
		checkParamsInBounds(t, StrategyToParams(child))
	}
}

func TestMutateStaysInBounds(t *testing.T) {
	s := newStrategy()
	for range 100 {
		mutate(&s, 1.0)
		checkParamsInBounds(t, StrategyToParams(s))
	}
}

func TestCalculatePercentile(t *testing.T) {
	values := []float64{5, 1, 3, 2, 4}

	if got := CalculatePercentile(values, 50); got != 3 {
		t.Errorf("expected median 3, got %f", got)
	}
	if got := CalculatePercentile(values, 0); got != 1 {
		t.Errorf("expected min 1, got %f", got)
	}
	if got := CalculatePercentile(values, 100); got != 5 {
		t.Errorf("expected max 5, got %f", got)
	}

	// Input order must be preserved.
	if values[0] != 5 {
		t.Errorf("input slice reordered: %v", values)
	}
}

func TestRandPercent(t *testing.T) {
	for range 1000 {
		v := randPercent(25)
		if v < 0.75 || v > 1.25 || math.IsNaN(v) {
			t.Fatalf("randPercent(25) out of range: %f", v)
		}
	}
}
