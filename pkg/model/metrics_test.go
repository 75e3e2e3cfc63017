package model

import (
	"math"
	"testing"
)

func TestCalculateMetrics(t *testing.T) {
	// 80 correct negatives, 20 false positives, 10 false negatives,
	// 90 correct positives
	confusionMatrix := [][]int{
		{80, 20},
		{10, 90},
	}

	metrics := calculateMetrics(confusionMatrix, 200)

	if math.Abs(metrics.Accuracy-85.0) > 1e-9 {
		t.Errorf("expected accuracy 85%%, got %f", metrics.Accuracy)
	}

	// negative precision: 80 / (80 + 10)
	if math.Abs(metrics.ClassPrecision[0]-100*80.0/90.0) > 1e-9 {
		t.Errorf("unexpected negative precision: %f", metrics.ClassPrecision[0])
	}
	// negative recall: 80 / (80 + 20)
	if math.Abs(metrics.ClassRecall[0]-80.0) > 1e-9 {
		t.Errorf("unexpected negative recall: %f", metrics.ClassRecall[0])
	}
	// positive precision: 90 / (90 + 20)
	if math.Abs(metrics.ClassPrecision[1]-100*90.0/110.0) > 1e-9 {
		t.Errorf("unexpected positive precision: %f", metrics.ClassPrecision[1])
	}
	// positive recall: 90 / (90 + 10)
	if math.Abs(metrics.ClassRecall[1]-90.0) > 1e-9 {
		t.Errorf("unexpected positive recall: %f", metrics.ClassRecall[1])
	}

	for i := range 2 {
		p, r := metrics.ClassPrecision[i], metrics.ClassRecall[i]
		expected := 2 * p * r / (p + r)
		if math.Abs(metrics.F1Scores[i]-expected) > 1e-9 {
			t.Errorf("class %d: unexpected F1 %f, expected %f", i, metrics.F1Scores[i], expected)
		}
	}

	if metrics.Samples[0] != 80 || metrics.Samples[1] != 90 {
		t.Errorf("unexpected sample counts: %v", metrics.Samples)
	}
}

func TestCalculateMetricsEmptyRow(t *testing.T) {
	confusionMatrix := [][]int{
		{0, 0},
		{0, 10},
	}

	metrics := calculateMetrics(confusionMatrix, 10)
	if metrics.Accuracy != 100.0 {
		t.Errorf("expected accuracy 100%%, got %f", metrics.Accuracy)
	}
	if metrics.ClassRecall[0] != 0 {
		t.Errorf("expected zero recall for empty class, got %f", metrics.ClassRecall[0])
	}
}

func TestNewCrossValidationMetrics(t *testing.T) {
	folds := []FoldMetrics{
		{Accuracy: 80, Precision: 75, Recall: 70, F1: 72},
		{Accuracy: 90, Precision: 85, Recall: 80, F1: 82},
	}

	cv := NewCrossValidationMetrics(folds)
	if math.Abs(cv.Mean.Accuracy-85) > 1e-9 {
		t.Errorf("unexpected mean accuracy: %f", cv.Mean.Accuracy)
	}
	if cv.Min.Accuracy != 80 || cv.Max.Accuracy != 90 {
		t.Errorf("unexpected accuracy bounds: %f / %f", cv.Min.Accuracy, cv.Max.Accuracy)
	}
	if math.Abs(cv.Mean.F1-77) > 1e-9 {
		t.Errorf("unexpected mean F1: %f", cv.Mean.F1)
	}
	if cv.StdDev.F1 <= 0 {
		t.Errorf("expected positive F1 stddev, got %f", cv.StdDev.F1)
	}
}

func TestFitnessSafety(t *testing.T) {
	empty := &ModelMetrics{}
	if f := empty.Fitness(); f <= 0 {
		t.Errorf("fitness must stay positive, got %f", f)
	}

	m := &ModelMetrics{
		F1Scores: []float64{math.NaN(), 80},
		Validation: CrossValidationMetrics{
			Mean:   FoldMetrics{F1: math.Inf(1)},
			StdDev: FoldMetrics{F1: math.NaN()},
		},
	}
	if f := m.Fitness(); math.IsNaN(f) || math.IsInf(f, 0) {
		t.Errorf("fitness must be finite, got %f", f)
	}
}
