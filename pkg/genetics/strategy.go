package genetics

import (
	"math"
	"math/rand/v2"

	"github.com/verdict-ml/verdict/pkg/model"
)

// Strategy is a genome over the model hyperparameters. Layer and batch sizes
// are carried in log2 space so mutation explores them multiplicatively.
type Strategy struct {
	VocabSize       float64
	HiddenSize1Log2 float64
	HiddenSize2Log2 float64
	BatchSizeLog2   float64
	Epochs          float64

	DropoutRate     float64
	L2Penalty       float64
	LearnRate       float64
	ValidationSplit float64
	Threshold       float64

	ModelMetrics *model.ModelMetrics
}

func randPercent(dev float64) float64 {
	return 1 + (rand.Float64()*(2*dev)-dev)/100
}

func boundLog2(v float64, bound func(float64) float64) float64 {
	return math.Log2(bound(math.Exp2(v)))
}

// Generate a strategy from configured values
func newStrategy() Strategy {
	return Strategy{
		VocabSize:       model.BoundVocabSizeFloat64(float64(model.VocabSize())),
		HiddenSize1Log2: boundLog2(math.Log2(float64(model.HiddenSize1())), model.BoundHiddenSizeFloat64),
		HiddenSize2Log2: boundLog2(math.Log2(float64(model.HiddenSize2())), model.BoundHiddenSizeFloat64),
		BatchSizeLog2:   boundLog2(math.Log2(float64(model.BatchSize())), model.BoundBatchSizeFloat64),
		Epochs:          model.BoundEpochsFloat64(float64(model.Epochs())),

		DropoutRate:     model.BoundDropoutRate(model.DropoutRate()),
		L2Penalty:       model.BoundL2Penalty(model.L2Penalty()),
		LearnRate:       model.BoundLearnRate(model.LearnRate()),
		ValidationSplit: model.BoundValidationSplit(model.ValidationSplit()),
		Threshold:       model.BoundThreshold(model.Threshold()),
	}
}

// randomizeStrategy perturbs every gene by up to dev percent, re-clamping to
// the model bounds.
func randomizeStrategy(s *Strategy, dev float64) {
	s.VocabSize = model.BoundVocabSizeFloat64(s.VocabSize * randPercent(dev))
	s.HiddenSize1Log2 = boundLog2(s.HiddenSize1Log2*randPercent(dev), model.BoundHiddenSizeFloat64)
	s.HiddenSize2Log2 = boundLog2(s.HiddenSize2Log2*randPercent(dev), model.BoundHiddenSizeFloat64)
	s.BatchSizeLog2 = boundLog2(s.BatchSizeLog2*randPercent(dev), model.BoundBatchSizeFloat64)
	s.Epochs = model.BoundEpochsFloat64(s.Epochs * randPercent(dev))

	s.DropoutRate = model.BoundDropoutRate(s.DropoutRate * randPercent(dev))
	s.L2Penalty = model.BoundL2Penalty(s.L2Penalty * randPercent(dev))
	s.LearnRate = model.BoundLearnRate(s.LearnRate * randPercent(dev))
	s.ValidationSplit = model.BoundValidationSplit(s.ValidationSplit * randPercent(dev))
	s.Threshold = model.BoundThreshold(s.Threshold * randPercent(dev))
}

func StrategyToParams(s Strategy) model.ModelParams {
	return model.ModelParams{
		VocabSize:   model.BoundVocabSize(int(math.Round(s.VocabSize))),
		HiddenSize1: model.BoundHiddenSize(int(math.Round(math.Exp2(s.HiddenSize1Log2)))),
		HiddenSize2: model.BoundHiddenSize(int(math.Round(math.Exp2(s.HiddenSize2Log2)))),
		BatchSize:   model.BoundBatchSize(int(math.Round(math.Exp2(s.BatchSizeLog2)))),
		Epochs:      model.BoundEpochs(int(math.Round(s.Epochs))),

		DropoutRate:     model.BoundDropoutRate(s.DropoutRate),
		L2Penalty:       model.BoundL2Penalty(s.L2Penalty),
		LearnRate:       model.BoundLearnRate(s.LearnRate),
		ValidationSplit: model.BoundValidationSplit(s.ValidationSplit),

		Threshold:  model.BoundThreshold(s.Threshold),
		Activation: model.Activation(),
		CrossFolds: model.CrossFolds(),
	}
}
