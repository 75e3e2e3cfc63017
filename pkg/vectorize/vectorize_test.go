package vectorize_test

import (
	"errors"
	"testing"

	"github.com/verdict-ml/verdict/pkg/vectorize"
)

func TestMultiHotShape(t *testing.T) {
	sequences := [][]int{{0, 1}, {2}, {}}
	rows, err := vectorize.MultiHot(sequences, 8)
	if err != nil {
		t.Fatalf("error vectorizing: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 8 {
			t.Errorf("row %d: expected 8 columns, got %d", i, len(row))
		}
	}
}

func TestMultiHotMembership(t *testing.T) {
	rows, err := vectorize.MultiHot([][]int{{3, 5}}, 10)
	if err != nil {
		t.Fatalf("error vectorizing: %v", err)
	}
	for j, v := range rows[0] {
		if j == 3 || j == 5 {
			if v != 1.0 {
				t.Errorf("column %d: expected 1, got %f", j, v)
			}
		} else if v != 0.0 {
			t.Errorf("column %d: expected 0, got %f", j, v)
		}
	}
}

func TestMultiHotDuplicateTokens(t *testing.T) {
	once, err := vectorize.MultiHot([][]int{{1, 4, 7}}, 10)
	if err != nil {
		t.Fatalf("error vectorizing: %v", err)
	}
	twice, err := vectorize.MultiHot([][]int{{1, 4, 7, 1, 4, 7}}, 10)
	if err != nil {
		t.Fatalf("error vectorizing: %v", err)
	}
	for j := range once[0] {
		if once[0][j] != twice[0][j] {
			t.Errorf("column %d: duplicated tokens changed the row: %f != %f", j, once[0][j], twice[0][j])
		}
	}
}

func TestMultiHotEmptyCorpus(t *testing.T) {
	rows, err := vectorize.MultiHot([][]int{}, 10)
	if err != nil {
		t.Fatalf("error vectorizing: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
}

func TestMultiHotTokenOutOfRange(t *testing.T) {
	if _, err := vectorize.MultiHot([][]int{{10}}, 10); !errors.Is(err, vectorize.ErrTokenOutOfRange) {
		t.Fatalf("expected ErrTokenOutOfRange, got %v", err)
	}
	if _, err := vectorize.MultiHot([][]int{{-1}}, 10); !errors.Is(err, vectorize.ErrTokenOutOfRange) {
		t.Fatalf("expected ErrTokenOutOfRange for negative token, got %v", err)
	}
}

func TestMultiHotInvalidDimension(t *testing.T) {
	for _, dimension := range []int{0, -5} {
		if _, err := vectorize.MultiHot([][]int{{0}}, dimension); !errors.Is(err, vectorize.ErrInvalidDimension) {
			t.Fatalf("dimension %d: expected ErrInvalidDimension, got %v", dimension, err)
		}
	}
}

func TestLabels(t *testing.T) {
	labels, err := vectorize.Labels([]int{1, 0, 1})
	if err != nil {
		t.Fatalf("error coercing labels: %v", err)
	}
	expected := []float64{1.0, 0.0, 1.0}
	if len(labels) != len(expected) {
		t.Fatalf("expected %d labels, got %d", len(expected), len(labels))
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("label %d: expected %f, got %f", i, expected[i], labels[i])
		}
	}
}

func TestLabelsInvalid(t *testing.T) {
	if _, err := vectorize.Labels([]int{2}); !errors.Is(err, vectorize.ErrInvalidLabel) {
		t.Fatalf("expected ErrInvalidLabel, got %v", err)
	}
	if _, err := vectorize.Labels([]int{-1}); !errors.Is(err, vectorize.ErrInvalidLabel) {
		t.Fatalf("expected ErrInvalidLabel for negative label, got %v", err)
	}
}
