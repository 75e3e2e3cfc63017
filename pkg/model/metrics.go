package model

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
)

type ModelMetrics struct {
	Accuracy        float64
	ConfusionMatrix [][]float64
	ClassPrecision  []float64
	ClassRecall     []float64
	F1Scores        []float64

	Samples []int

	Validation CrossValidationMetrics
}

func safeValue(v float64, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	} else {
		return v
	}
}

// Fitness scores a model for the optimizer: mean F1 over both classes,
// dampened by fold-to-fold instability in cross-validation.
func (m *ModelMetrics) Fitness() float64 {
	if len(m.F1Scores) < 2 {
		return 0.00001
	}

	avgF1 := (m.F1Scores[0] + m.F1Scores[1]) / 200

	// Penalize models whose quality swings between folds
	stabilityPenalty := 1.0 / (1.0 + safeValue(m.Validation.StdDev.F1, 0)/10)

	// Reward models that hold up on unseen folds
	foldReward := 0.5 + 0.5*math.Tanh(safeValue(m.Validation.Mean.F1, 0)/50)

	fitness := avgF1 * stabilityPenalty * foldReward

	return safeValue(fitness+0.00001, 0.00001)
}

func (m ModelMetrics) Write(w io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Confusion Matrix")
	t.AppendHeader(table.Row{"", "NEGATIVE", "POSITIVE"})
	for i := range 2 {
		var label string
		switch i {
		case 0:
			label = "NEGATIVE"
		case 1:
			label = "POSITIVE"
		}

		rowTotal := m.ConfusionMatrix[i][0] + m.ConfusionMatrix[i][1]
		if rowTotal == 0 {
			t.AppendRows([]table.Row{
				{label, "", ""},
			})
		} else {
			t.AppendRows([]table.Row{
				{label, fmt.Sprintf("%6.2f%%", m.ConfusionMatrix[i][0]), fmt.Sprintf("%6.2f%%", m.ConfusionMatrix[i][1])},
			})
		}
	}
	t.AppendFooter(table.Row{"ACCURACY", "", fmt.Sprintf("%0.02f%%", m.Accuracy)})
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Class Metrics")
	t.AppendHeader(table.Row{"CLASS", "PRECISION", "RECALL", "F1 SCORE", "SAMPLES"})
	t.AppendRows([]table.Row{
		{"NEGATIVE", fmt.Sprintf("%6.2f%%", m.ClassPrecision[0]), fmt.Sprintf("%6.2f%%", m.ClassRecall[0]), fmt.Sprintf("%6.2f%%", m.F1Scores[0]), fmt.Sprintf("%d", m.Samples[0])},
		{"POSITIVE", fmt.Sprintf("%6.2f%%", m.ClassPrecision[1]), fmt.Sprintf("%6.2f%%", m.ClassRecall[1]), fmt.Sprintf("%6.2f%%", m.F1Scores[1]), fmt.Sprintf("%d", m.Samples[1])},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"", fmt.Sprintf("%6.2f%%", (m.ClassPrecision[0]+m.ClassPrecision[1])/2), fmt.Sprintf("%6.2f%%", (m.ClassRecall[0]+m.ClassRecall[1])/2), fmt.Sprintf("%6.2f%%", (m.F1Scores[0]+m.F1Scores[1])/2), fmt.Sprintf("%d", m.Samples[0]+m.Samples[1])},
	})
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Cross-Validation")
	t.AppendHeader(table.Row{"", "MEAN", "MIN", "MAX", "STDDEV"})
	t.AppendRows([]table.Row{
		{"Accuracy", fmt.Sprintf("%6.2f%%", m.Validation.Mean.Accuracy), fmt.Sprintf("%6.2f%%", m.Validation.Min.Accuracy), fmt.Sprintf("%6.2f%%", m.Validation.Max.Accuracy), fmt.Sprintf("%6.2f", m.Validation.StdDev.Accuracy)},
		{"Precision", fmt.Sprintf("%6.2f%%", m.Validation.Mean.Precision), fmt.Sprintf("%6.2f%%", m.Validation.Min.Precision), fmt.Sprintf("%6.2f%%", m.Validation.Max.Precision), fmt.Sprintf("%6.2f", m.Validation.StdDev.Precision)},
		{"Recall", fmt.Sprintf("%6.2f%%", m.Validation.Mean.Recall), fmt.Sprintf("%6.2f%%", m.Validation.Min.Recall), fmt.Sprintf("%6.2f%%", m.Validation.Max.Recall), fmt.Sprintf("%6.2f", m.Validation.StdDev.Recall)},
		{"F1 Score", fmt.Sprintf("%6.2f%%", m.Validation.Mean.F1), fmt.Sprintf("%6.2f%%", m.Validation.Min.F1), fmt.Sprintf("%6.2f%%", m.Validation.Max.F1), fmt.Sprintf("%6.2f", m.Validation.StdDev.F1)},
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Fitness", fmt.Sprintf("%.6f", m.Fitness())})
	t.Render()

	return nil
}

func calculateMetrics(confusionMatrix [][]int, total int) ModelMetrics {
	numClasses := len(confusionMatrix)
	metrics := ModelMetrics{
		ConfusionMatrix: make([][]float64, numClasses),
		ClassPrecision:  make([]float64, numClasses),
		ClassRecall:     make([]float64, numClasses),
		F1Scores:        make([]float64, numClasses),
		Samples:         make([]int, numClasses),
	}

	// Confusion matrix row percentages
	classTotals := make([]int, numClasses)
	for i := range numClasses {
		metrics.ConfusionMatrix[i] = make([]float64, numClasses)
		for j := 0; j < numClasses; j++ {
			classTotals[i] += confusionMatrix[i][j]
		}
		for j := 0; j < numClasses; j++ {
			if classTotals[i] > 0 {
				metrics.ConfusionMatrix[i][j] = float64(confusionMatrix[i][j]) / float64(classTotals[i]) * 100
			}
		}
		metrics.Samples[i] = confusionMatrix[i][i]
	}

	for i := 0; i < numClasses; i++ {
		truePositives := confusionMatrix[i][i]
		falsePositives := 0
		falseNegatives := 0

		for j := 0; j < numClasses; j++ {
			if i != j {
				falsePositives += confusionMatrix[j][i]
				falseNegatives += confusionMatrix[i][j]
			}
		}

		if truePositives+falsePositives > 0 {
			metrics.ClassPrecision[i] = float64(truePositives) / float64(truePositives+falsePositives) * 100
		}

		if truePositives+falseNegatives > 0 {
			metrics.ClassRecall[i] = float64(truePositives) / float64(truePositives+falseNegatives) * 100
		}

		if metrics.ClassPrecision[i]+metrics.ClassRecall[i] > 0 {
			metrics.F1Scores[i] = 2 * (metrics.ClassPrecision[i] * metrics.ClassRecall[i]) /
				(metrics.ClassPrecision[i] + metrics.ClassRecall[i])
		}
	}

	correct := 0
	for i := range numClasses {
		correct += confusionMatrix[i][i]
	}
	if total > 0 {
		metrics.Accuracy = float64(correct) / float64(total) * 100
	}

	return metrics
}
