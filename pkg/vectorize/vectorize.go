package vectorize

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension = errors.New("dimension must be a positive integer")
	ErrTokenOutOfRange  = errors.New("token index out of range")
	ErrInvalidLabel     = errors.New("label must be 0 or 1")
)

// MultiHot converts token sequences into a binary indicator matrix with one
// row per sequence and dimension columns. Entry (i, j) is 1 when token j
// occurs anywhere in sequence i; repeated tokens make no difference. Any
// token outside [0, dimension) aborts the conversion, nothing partial is
// returned.
func MultiHot(sequences [][]int, dimension int) ([][]float64, error) {
	if dimension < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dimension)
	}

	rows := make([][]float64, len(sequences))
	for i, sequence := range sequences {
		row := make([]float64, dimension)
		for _, token := range sequence {
			if token < 0 || token >= dimension {
				return nil, fmt.Errorf("%w: token %d at row %d, dimension %d", ErrTokenOutOfRange, token, i, dimension)
			}
			row[token] = 1.0
		}
		rows[i] = row
	}

	return rows, nil
}

// Labels widens {0,1} class labels to float64 for the training graph, order
// preserved.
func Labels(raw []int) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, label := range raw {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("%w: got %d at index %d", ErrInvalidLabel, label, i)
		}
		out[i] = float64(label)
	}
	return out, nil
}
