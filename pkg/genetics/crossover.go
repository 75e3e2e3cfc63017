package genetics

import "math/rand/v2"

// Crossover (Breed new strategies from the best ones)
func crossover(parent1, parent2 Strategy) Strategy {
	// Helper function to select between parent1, parent2, or an average
	selectValue := func(a, b float64) float64 {
		r := rand.Float64()
		if r < 0.4 { // 40% chance inherit from parent 1
			return a
		} else if r < 0.8 { // 40% chance inherit from parent 2
			return b
		}
		// 20% chance take the average
		return (a + b) / 2
	}

	return Strategy{
		VocabSize:       selectValue(parent1.VocabSize, parent2.VocabSize),
		HiddenSize1Log2: selectValue(parent1.HiddenSize1Log2, parent2.HiddenSize1Log2),
		HiddenSize2Log2: selectValue(parent1.HiddenSize2Log2, parent2.HiddenSize2Log2),
		BatchSizeLog2:   selectValue(parent1.BatchSizeLog2, parent2.BatchSizeLog2),
		Epochs:          selectValue(parent1.Epochs, parent2.Epochs),

		DropoutRate:     selectValue(parent1.DropoutRate, parent2.DropoutRate),
		L2Penalty:       selectValue(parent1.L2Penalty, parent2.L2Penalty),
		LearnRate:       selectValue(parent1.LearnRate, parent2.LearnRate),
		ValidationSplit: selectValue(parent1.ValidationSplit, parent2.ValidationSplit),
		Threshold:       selectValue(parent1.Threshold, parent2.Threshold),
	}
}
