package model

import (
	"fmt"

	"gorgonia.org/gorgonia"
)

// Mish is x * tanh(softplus(x)), a smooth alternative to ReLU selectable via
// VERDICT_ACTIVATION.
func Mish(x *gorgonia.Node) (*gorgonia.Node, error) {
	if x == nil {
		return nil, fmt.Errorf("input node is nil")
	}

	exp, err := gorgonia.Exp(x)
	if err != nil {
		return nil, fmt.Errorf("exp error: %v", err)
	}

	added, err := gorgonia.Add(exp, gorgonia.NewConstant(1.0))
	if err != nil {
		return nil, fmt.Errorf("add error: %v", err)
	}

	softplus, err := gorgonia.Log(added)
	if err != nil {
		return nil, fmt.Errorf("log error: %v", err)
	}

	tanh, err := gorgonia.Tanh(softplus)
	if err != nil {
		return nil, fmt.Errorf("tanh error: %v", err)
	}

	result, err := gorgonia.Mul(x, tanh)
	if err != nil {
		return nil, fmt.Errorf("mul error: %v", err)
	}

	return result, nil
}

// activation selects the hidden-layer nonlinearity for a params value.
func activation(name string) func(*gorgonia.Node) (*gorgonia.Node, error) {
	switch name {
	case "mish":
		return Mish
	default:
		return func(x *gorgonia.Node) (*gorgonia.Node, error) {
			return gorgonia.Rectify(x)
		}
	}
}
