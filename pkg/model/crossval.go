package model

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/progress"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"
)

type FoldMetrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

type CrossValidationMetrics struct {
	Mean   FoldMetrics
	Min    FoldMetrics
	Max    FoldMetrics
	StdDev FoldMetrics
}

func NewCrossValidationMetrics(metrics []FoldMetrics) CrossValidationMetrics {
	accuracy := make([]float64, len(metrics))
	precision := make([]float64, len(metrics))
	recall := make([]float64, len(metrics))
	f1 := make([]float64, len(metrics))

	for i, m := range metrics {
		accuracy[i] = m.Accuracy
		precision[i] = m.Precision
		recall[i] = m.Recall
		f1[i] = m.F1
	}

	minOf := func(v []float64) float64 {
		if len(v) == 0 {
			return 0
		}
		out := v[0]
		for _, x := range v[1:] {
			if x < out {
				out = x
			}
		}
		return out
	}
	maxOf := func(v []float64) float64 {
		if len(v) == 0 {
			return 0
		}
		out := v[0]
		for _, x := range v[1:] {
			if x > out {
				out = x
			}
		}
		return out
	}

	return CrossValidationMetrics{
		Mean: FoldMetrics{
			Accuracy:  stat.Mean(accuracy, nil),
			Precision: stat.Mean(precision, nil),
			Recall:    stat.Mean(recall, nil),
			F1:        stat.Mean(f1, nil),
		},
		Min: FoldMetrics{
			Accuracy:  minOf(accuracy),
			Precision: minOf(precision),
			Recall:    minOf(recall),
			F1:        minOf(f1),
		},
		Max: FoldMetrics{
			Accuracy:  maxOf(accuracy),
			Precision: maxOf(precision),
			Recall:    maxOf(recall),
			F1:        maxOf(f1),
		},
		StdDev: FoldMetrics{
			Accuracy:  stat.StdDev(accuracy, nil),
			Precision: stat.StdDev(precision, nil),
			Recall:    stat.StdDev(recall, nil),
			F1:        stat.StdDev(f1, nil),
		},
	}
}

// evaluate runs the classifier over a feature matrix and tallies a 2x2
// confusion matrix at the decision threshold. Rows index the actual class,
// columns the predicted class.
func evaluate(weights []tensor.Tensor, params ModelParams, features [][]float64, labels []float64, tracker *progress.Tracker) [][]int {
	confusionMatrix := make([][]int, 2)
	for i := range confusionMatrix {
		confusionMatrix[i] = make([]int, 2)
	}

	for i, feature := range features {
		prob, err := Predict(weights, params, feature)
		if tracker != nil {
			tracker.Increment(1)
		}
		if err != nil {
			log.Printf("prediction error for sample %d: %v", i, err)
			continue
		}

		predictedClass := 0
		if prob >= params.Threshold {
			predictedClass = 1
		}
		actualClass := int(labels[i])

		confusionMatrix[actualClass][predictedClass]++
	}

	return confusionMatrix
}

// CrossValidate retrains the model on k held-out partitions and aggregates
// per-fold quality, giving a spread of how the architecture behaves on data
// it never saw.
func CrossValidate(pw progress.Writer, params ModelParams, features [][]float64, labels []float64) (CrossValidationMetrics, error) {
	folds := params.CrossFolds
	if folds < 2 {
		folds = 2
	}
	if len(features) < folds {
		return CrossValidationMetrics{}, fmt.Errorf("not enough samples for %d folds: %d", folds, len(features))
	}

	indices := rand.Perm(len(features))
	foldSize := len(features) / folds

	metrics := make([]FoldMetrics, 0, folds)
	for fold := range folds {
		start := fold * foldSize
		end := start + foldSize
		if fold == folds-1 {
			end = len(indices)
		}

		holdout := indices[start:end]
		training := make([]int, 0, len(indices)-len(holdout))
		training = append(training, indices[:start]...)
		training = append(training, indices[end:]...)

		trainFeatures := make([][]float64, len(training))
		trainLabels := make([]float64, len(training))
		for i, idx := range training {
			trainFeatures[i] = features[idx]
			trainLabels[i] = labels[idx]
		}

		holdoutFeatures := make([][]float64, len(holdout))
		holdoutLabels := make([]float64, len(holdout))
		for i, idx := range holdout {
			holdoutFeatures[i] = features[idx]
			holdoutLabels[i] = labels[idx]
		}

		weights, err := Train(pw, params, trainFeatures, trainLabels)
		if err != nil {
			return CrossValidationMetrics{}, fmt.Errorf("fold %d training error: %v", fold, err)
		}

		var tracker *progress.Tracker
		if pw != nil {
			tracker = &progress.Tracker{
				Message: fmt.Sprintf("Cross-validation fold %d", fold+1),
				Total:   int64(len(holdoutFeatures)),
				Units:   progress.UnitsDefault,
			}
			pw.AppendTracker(tracker)
			tracker.Start()
		}

		confusionMatrix := evaluate(weights, params, holdoutFeatures, holdoutLabels, tracker)
		if tracker != nil {
			tracker.MarkAsDone()
		}

		foldResult := calculateMetrics(confusionMatrix, len(holdoutFeatures))
		metrics = append(metrics, FoldMetrics{
			Accuracy:  foldResult.Accuracy,
			Precision: (foldResult.ClassPrecision[0] + foldResult.ClassPrecision[1]) / 2,
			Recall:    (foldResult.ClassRecall[0] + foldResult.ClassRecall[1]) / 2,
			F1:        (foldResult.F1Scores[0] + foldResult.F1Scores[1]) / 2,
		})
	}

	return NewCrossValidationMetrics(metrics), nil
}
