package model

import (
	"fmt"

	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Predict runs the forward pass for a single feature row and returns the
// positive-class probability.
func Predict(weights []tensor.Tensor, params ModelParams, input []float64) (float64, error) {
	if len(weights) != 3 || weights[0] == nil {
		return 0, fmt.Errorf("model has no trained weights")
	}

	g := gorgonia.NewGraph()
	inputSize := len(input)

	xVal := tensor.New(
		tensor.WithShape(1, inputSize),
		tensor.Of(tensor.Float64),
		tensor.WithBacking(input),
	)

	xTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(1, inputSize),
		gorgonia.WithValue(xVal))

	w0 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(weights[0].Shape()...),
		gorgonia.WithValue(weights[0]))
	w1 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(weights[1].Shape()...),
		gorgonia.WithValue(weights[1]))
	w2 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(weights[2].Shape()...),
		gorgonia.WithValue(weights[2]))

	activate := activation(params.Activation)

	// Forward pass matching training, without dropout
	l0 := gorgonia.Must(gorgonia.Mul(xTensor, w0))
	l0Act, err := activate(l0)
	if err != nil {
		return 0, fmt.Errorf("activation failed: %v", err)
	}

	l1 := gorgonia.Must(gorgonia.Mul(l0Act, w1))
	l1Act, err := activate(l1)
	if err != nil {
		return 0, fmt.Errorf("activation failed: %v", err)
	}

	logits := gorgonia.Must(gorgonia.Mul(l1Act, w2))
	probs := gorgonia.Must(gorgonia.Sigmoid(logits))

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()

	if err := vm.RunAll(); err != nil {
		return 0, fmt.Errorf("forward pass failed: %v", err)
	}

	switch data := probs.Value().Data().(type) {
	case []float64:
		if len(data) != 1 {
			return 0, fmt.Errorf("unexpected output size: %d", len(data))
		}
		return data[0], nil
	case float64:
		return data, nil
	default:
		return 0, fmt.Errorf("unexpected output type %T", data)
	}
}
