package model

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/progress"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Train fits a feed-forward classifier on a multi-hot feature matrix and
// returns the best weight tensors seen during training.
func Train(pw progress.Writer, params ModelParams, features [][]float64, labels []float64) ([]tensor.Tensor, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("no training samples")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("feature/label count mismatch: %d != %d", len(features), len(labels))
	}

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: "Training",
			Total:   int64(params.Epochs),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	// Network architecture with explicit shapes
	inputSize := len(features[0])
	hiddenSize1 := params.HiddenSize1
	hiddenSize2 := params.HiddenSize2
	outputSize := 1

	validateEvery := 2
	patience := 5

	// Create validation set
	totalSamples := len(features)
	validationSize := int(float64(totalSamples) * params.ValidationSplit)
	trainSize := totalSamples - validationSize

	batchSize := params.BatchSize
	if batchSize > trainSize {
		batchSize = trainSize
	}

	// Shuffle indices
	indices := rand.Perm(totalSamples)
	trainIndices := indices[:trainSize]
	validIndices := indices[trainSize:]

	g := gorgonia.NewGraph()

	xTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(batchSize, inputSize),
		gorgonia.WithName("x"))

	yTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(batchSize, outputSize),
		gorgonia.WithName("y"))

	w0 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(inputSize, hiddenSize1),
		gorgonia.WithInit(gorgonia.GlorotN(1.0)),
		gorgonia.WithName("w0"))

	w1 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(hiddenSize1, hiddenSize2),
		gorgonia.WithInit(gorgonia.GlorotN(1.0)),
		gorgonia.WithName("w1"))

	w2 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(hiddenSize2, outputSize),
		gorgonia.WithInit(gorgonia.GlorotN(1.0)),
		gorgonia.WithName("w2"))

	activate := activation(params.Activation)

	// Forward pass with dropout on the hidden layers
	l0 := gorgonia.Must(gorgonia.Mul(xTensor, w0))
	l0Act, err := activate(l0)
	if err != nil {
		return nil, fmt.Errorf("activation failed: %v", err)
	}
	if params.DropoutRate > 0 {
		l0Act = gorgonia.Must(gorgonia.Dropout(l0Act, params.DropoutRate))
	}

	l1 := gorgonia.Must(gorgonia.Mul(l0Act, w1))
	l1Act, err := activate(l1)
	if err != nil {
		return nil, fmt.Errorf("activation failed: %v", err)
	}
	if params.DropoutRate > 0 {
		l1Act = gorgonia.Must(gorgonia.Dropout(l1Act, params.DropoutRate))
	}

	logits := gorgonia.Must(gorgonia.Mul(l1Act, w2))
	probs := gorgonia.Must(gorgonia.Sigmoid(logits))

	crossEntropy, err := BinaryCrossEntropy(probs, yTensor)
	if err != nil {
		return nil, fmt.Errorf("failed to build loss: %v", err)
	}

	// L2 regularization over all weights
	l2w0 := gorgonia.Must(gorgonia.Mean(gorgonia.Must(gorgonia.Square(w0))))
	l2w1 := gorgonia.Must(gorgonia.Mean(gorgonia.Must(gorgonia.Square(w1))))
	l2w2 := gorgonia.Must(gorgonia.Mean(gorgonia.Must(gorgonia.Square(w2))))

	regularization := gorgonia.Must(gorgonia.Mul(
		gorgonia.NewConstant(params.L2Penalty),
		gorgonia.Must(gorgonia.Add(gorgonia.Must(gorgonia.Add(l2w0, l2w1)), l2w2)),
	))

	loss := gorgonia.Must(gorgonia.Add(crossEntropy, regularization))

	if _, err := gorgonia.Grad(loss, w0, w1, w2); err != nil {
		return nil, fmt.Errorf("failed to compute gradients: %v", err)
	}

	vm := gorgonia.NewTapeMachine(g,
		gorgonia.WithLogger(nil),
		gorgonia.WithValueFmt("%3.3f"),
	)
	defer vm.Close()

	solver := gorgonia.NewAdamSolver(
		gorgonia.WithLearnRate(params.LearnRate),
		gorgonia.WithBeta1(0.9),
		gorgonia.WithBeta2(0.999),
		gorgonia.WithEps(1e-8),
		gorgonia.WithClip(1.0),
	)

	runBatches := func(sampleIndices []int, learn bool) (float64, int, error) {
		batches := len(sampleIndices) / batchSize
		total := 0.0

		for batch := 0; batch < batches; batch++ {
			start := batch * batchSize
			end := start + batchSize
			if end > len(sampleIndices) {
				break
			}

			batchIndices := sampleIndices[start:end]
			batchFeatures := tensor.New(
				tensor.WithShape(batchSize, inputSize),
				tensor.WithBacking(flattenBatchFeatures(features, batchIndices)))
			batchLabels := tensor.New(
				tensor.WithShape(batchSize, outputSize),
				tensor.WithBacking(flattenBatchLabels(labels, batchIndices)))

			if err := gorgonia.Let(xTensor, batchFeatures); err != nil {
				return 0, 0, fmt.Errorf("failed to update x tensor: %v", err)
			}
			if err := gorgonia.Let(yTensor, batchLabels); err != nil {
				return 0, 0, fmt.Errorf("failed to update y tensor: %v", err)
			}

			vm.Reset()
			if err := vm.RunAll(); err != nil {
				return 0, 0, fmt.Errorf("forward/backward pass failed: %v", err)
			}

			if learn {
				solver.Step(gorgonia.NodesToValueGrads(gorgonia.Nodes{w0, w1, w2}))
			}
			total += loss.Value().Data().(float64)
		}

		return total, batches, nil
	}

	// Training loop with early stopping
	bestLoss := math.Inf(1)
	noImprovementCount := 0
	bestWeights := make([]tensor.Tensor, 3)

	for epoch := range params.Epochs {
		if tracker != nil {
			tracker.SetValue(int64(epoch))
		}

		trainLoss, batches, err := runBatches(trainIndices, true)
		if err != nil {
			return nil, err
		}
		if batches == 0 {
			return nil, fmt.Errorf("not enough samples for a single batch of %d", batchSize)
		}
		avgTrainLoss := trainLoss / float64(batches)

		if epoch%validateEvery == 0 {
			// Fall back to the training loss when the validation slice is
			// smaller than one batch.
			signalLoss := avgTrainLoss
			validLoss, validBatches, err := runBatches(validIndices, false)
			if err != nil {
				return nil, err
			}
			if validBatches > 0 {
				signalLoss = validLoss / float64(validBatches)
			}

			if signalLoss < bestLoss {
				bestLoss = signalLoss
				noImprovementCount = 0
				bestWeights[0] = w0.Value().(tensor.Tensor).Clone().(tensor.Tensor)
				bestWeights[1] = w1.Value().(tensor.Tensor).Clone().(tensor.Tensor)
				bestWeights[2] = w2.Value().(tensor.Tensor).Clone().(tensor.Tensor)
			} else {
				noImprovementCount++
			}

			if tracker != nil {
				tracker.Message = fmt.Sprintf("Training - TL: %.6f, VL: %.6f", avgTrainLoss, signalLoss)
			}

			if noImprovementCount >= patience {
				break
			}
		}

		if epoch%5 == 0 {
			runtime.GC()
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}

	return bestWeights, nil
}
