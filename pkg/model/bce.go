package model

import (
	"fmt"

	"gorgonia.org/gorgonia"
)

// BinaryCrossEntropy computes -mean(y*log(p) + (1-y)*log(1-p)) with an
// epsilon guard against log(0).
func BinaryCrossEntropy(pred, target *gorgonia.Node) (*gorgonia.Node, error) {
	eps := 1e-7

	safePred, err := gorgonia.Add(pred, gorgonia.NewConstant(eps))
	if err != nil {
		return nil, fmt.Errorf("failed to add epsilon: %v", err)
	}

	logPred, err := gorgonia.Log(safePred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute log: %v", err)
	}

	positive, err := gorgonia.HadamardProd(target, logPred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute positive term: %v", err)
	}

	oneMinusTarget, err := gorgonia.Sub(gorgonia.NewConstant(1.0), target)
	if err != nil {
		return nil, fmt.Errorf("failed to invert target: %v", err)
	}

	oneMinusPred, err := gorgonia.Sub(gorgonia.NewConstant(1.0+eps), pred)
	if err != nil {
		return nil, fmt.Errorf("failed to invert prediction: %v", err)
	}

	logOneMinusPred, err := gorgonia.Log(oneMinusPred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute complement log: %v", err)
	}

	negative, err := gorgonia.HadamardProd(oneMinusTarget, logOneMinusPred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute negative term: %v", err)
	}

	losses, err := gorgonia.Add(positive, negative)
	if err != nil {
		return nil, fmt.Errorf("failed to combine terms: %v", err)
	}

	meanLoss, err := gorgonia.Mean(losses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %v", err)
	}

	return gorgonia.Neg(meanLoss)
}
