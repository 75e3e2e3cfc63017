package genetics

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/verdict-ml/verdict/pkg/model"
	"gonum.org/v1/gonum/stat"
)

func WriteCSVHeader(writer *csv.Writer) error {
	header := []string{
		"Generation", "Started", "Finished",

		"Fitness (Mean)", "Fitness (Min)", "Fitness (Max)", "Fitness (StdDev)",
		"Accuracy (Mean)", "Accuracy (Min)", "Accuracy (Max)", "Accuracy (StdDev)",
		"F1 Score (Mean)", "F1 Score (Min)", "F1 Score (Max)", "F1 Score (StdDev)",

		"Fitness (Best Strategy)",
		"Accuracy (Best Strategy)",
		"F1 Score (Best Strategy)",

		"VERDICT_VOCAB_SIZE (Best Strategy)",
		"VERDICT_HIDDEN_SIZE_1 (Best Strategy)",
		"VERDICT_HIDDEN_SIZE_2 (Best Strategy)",
		"VERDICT_BATCH_SIZE (Best Strategy)",
		"VERDICT_EPOCHS (Best Strategy)",
		"VERDICT_DROPOUT_RATE (Best Strategy)",
		"VERDICT_L2_PENALTY (Best Strategy)",
		"VERDICT_LEARN_RATE (Best Strategy)",
		"VERDICT_VALIDATION_SPLIT (Best Strategy)",
		"VERDICT_THRESHOLD (Best Strategy)",
	}
	return writer.Write(header)
}

func WriteCSVRow(writer *csv.Writer, generation int, started, finished time.Time, fitnesses, accuracies, f1Scores []float64, params model.ModelParams, best *Strategy) error {
	row := []string{
		fmt.Sprintf("%d", generation),
		started.Format(time.RFC3339),
		finished.Format(time.RFC3339),

		fmt.Sprintf("%0.6f", stat.Mean(fitnesses, nil)),
		fmt.Sprintf("%0.6f", minFloats(fitnesses)),
		fmt.Sprintf("%0.6f", maxFloats(fitnesses)),
		fmt.Sprintf("%0.6f", stat.StdDev(fitnesses, nil)),

		fmt.Sprintf("%0.2f", stat.Mean(accuracies, nil)),
		fmt.Sprintf("%0.2f", minFloats(accuracies)),
		fmt.Sprintf("%0.2f", maxFloats(accuracies)),
		fmt.Sprintf("%0.2f", stat.StdDev(accuracies, nil)),

		fmt.Sprintf("%0.2f", stat.Mean(f1Scores, nil)),
		fmt.Sprintf("%0.2f", minFloats(f1Scores)),
		fmt.Sprintf("%0.2f", maxFloats(f1Scores)),
		fmt.Sprintf("%0.2f", stat.StdDev(f1Scores, nil)),

		fmt.Sprintf("%0.6f", best.ModelMetrics.Fitness()),
		fmt.Sprintf("%0.2f", best.ModelMetrics.Accuracy),
		fmt.Sprintf("%0.2f", (best.ModelMetrics.F1Scores[0]+best.ModelMetrics.F1Scores[1])/2),

		fmt.Sprintf("%d", params.VocabSize),
		fmt.Sprintf("%d", params.HiddenSize1),
		fmt.Sprintf("%d", params.HiddenSize2),
		fmt.Sprintf("%d", params.BatchSize),
		fmt.Sprintf("%d", params.Epochs),
		fmt.Sprintf("%0.6f", params.DropoutRate),
		fmt.Sprintf("%0.6f", params.L2Penalty),
		fmt.Sprintf("%0.6f", params.LearnRate),
		fmt.Sprintf("%0.2f", params.ValidationSplit),
		fmt.Sprintf("%0.2f", params.Threshold),
	}

	if err := writer.Write(row); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
