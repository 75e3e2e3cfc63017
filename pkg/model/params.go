package model

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

type ModelParams struct {
	VocabSize   int
	HiddenSize1 int
	HiddenSize2 int

	BatchSize int
	Epochs    int

	DropoutRate     float64
	L2Penalty       float64
	LearnRate       float64
	ValidationSplit float64

	Threshold  float64
	Activation string
	CrossFolds int
}

func (m *ModelParams) Write(w io.Writer, title string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"VERDICT_VOCAB_SIZE", fmt.Sprintf("%d", m.VocabSize)},
		{"VERDICT_HIDDEN_SIZE_1", fmt.Sprintf("%d", m.HiddenSize1)},
		{"VERDICT_HIDDEN_SIZE_2", fmt.Sprintf("%d", m.HiddenSize2)},
		{"VERDICT_BATCH_SIZE", fmt.Sprintf("%d", m.BatchSize)},
		{"VERDICT_EPOCHS", fmt.Sprintf("%d", m.Epochs)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"VERDICT_DROPOUT_RATE", fmt.Sprintf("%.06f", m.DropoutRate)},
		{"VERDICT_L2_PENALTY", fmt.Sprintf("%.06f", m.L2Penalty)},
		{"VERDICT_LEARN_RATE", fmt.Sprintf("%.06f", m.LearnRate)},
		{"VERDICT_VALIDATION_SPLIT", fmt.Sprintf("%0.02f", m.ValidationSplit)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"VERDICT_THRESHOLD", fmt.Sprintf("%0.02f", m.Threshold)},
		{"VERDICT_ACTIVATION", m.Activation},
		{"VERDICT_CROSS_FOLDS", fmt.Sprintf("%d", m.CrossFolds)},
	})
	t.Render()
}

func NewModelParamsFromDefaults() ModelParams {
	return ModelParams{
		VocabSize:   VocabSize(),
		HiddenSize1: HiddenSize1(),
		HiddenSize2: HiddenSize2(),

		BatchSize: BatchSize(),
		Epochs:    Epochs(),

		DropoutRate:     DropoutRate(),
		L2Penalty:       L2Penalty(),
		LearnRate:       LearnRate(),
		ValidationSplit: ValidationSplit(),

		Threshold:  Threshold(),
		Activation: Activation(),
		CrossFolds: CrossFolds(),
	}
}

func envInt(name string, def func() int, dec func(v int) int) func() int {
	return func() int {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseInt(v, 10, 32); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = int(v)
			}
		}
		return dec(value)
	}
}

func envFloat64(name string, def func() float64, dec func(v float64) float64) func() float64 {
	return func() float64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseFloat(v, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return dec(value)
	}
}

func envString(name string, def func() string) func() string {
	return func() string {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			value = v
		}
		return value
	}
}

var (
	VocabSize = envInt("VERDICT_VOCAB_SIZE", func() int {
		return 10000
	}, BoundVocabSize)
	HiddenSize1 = envInt("VERDICT_HIDDEN_SIZE_1", func() int {
		return 16
	}, BoundHiddenSize)
	HiddenSize2 = envInt("VERDICT_HIDDEN_SIZE_2", func() int {
		return 16
	}, BoundHiddenSize)
	BatchSize = envInt("VERDICT_BATCH_SIZE", func() int {
		return 512
	}, BoundBatchSize)
	Epochs = envInt("VERDICT_EPOCHS", func() int {
		return 20
	}, BoundEpochs)
)

var (
	DropoutRate = envFloat64("VERDICT_DROPOUT_RATE", func() float64 {
		return 0.3
	}, BoundDropoutRate)
	L2Penalty = envFloat64("VERDICT_L2_PENALTY", func() float64 {
		return 0.001
	}, BoundL2Penalty)
	LearnRate = envFloat64("VERDICT_LEARN_RATE", func() float64 {
		return 0.001
	}, BoundLearnRate)
	ValidationSplit = envFloat64("VERDICT_VALIDATION_SPLIT", func() float64 {
		return 0.1
	}, BoundValidationSplit)
)

var (
	Threshold = envFloat64("VERDICT_THRESHOLD", func() float64 {
		return 0.5
	}, BoundThreshold)
	Activation = envString("VERDICT_ACTIVATION", func() string {
		return "relu"
	})
	CrossFolds = envInt("VERDICT_CROSS_FOLDS", func() int {
		return 3
	}, BoundCrossFolds)
)
