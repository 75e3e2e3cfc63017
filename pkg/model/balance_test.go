package model

import "testing"

func TestBalanceClasses(t *testing.T) {
	features := [][]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 1, 0},
	}
	labels := []float64{0, 0, 0, 1}

	balancedFeatures, balancedLabels := balanceClasses(nil, features, labels)

	if len(balancedFeatures) != len(balancedLabels) {
		t.Fatalf("feature/label count mismatch: %d != %d", len(balancedFeatures), len(balancedLabels))
	}

	counts := map[int]int{}
	for _, label := range balancedLabels {
		counts[int(label)]++
	}
	if counts[0] != counts[1] {
		t.Fatalf("classes not balanced: %v", counts)
	}
	if counts[0] != 3 {
		t.Fatalf("expected majority size 3, got %d", counts[0])
	}
}

func TestAugmentRowKeepsIndicatorContract(t *testing.T) {
	row := []float64{1, 0, 1, 0, 1, 1, 0, 1}
	augmented := AugmentRow(row, 0.5)

	if len(augmented) != len(row) {
		t.Fatalf("expected %d columns, got %d", len(row), len(augmented))
	}
	for j, v := range augmented {
		if v != 0 && v != 1 {
			t.Errorf("column %d: augmented value %f is not an indicator", j, v)
		}
		if row[j] == 0 && v != 0 {
			t.Errorf("column %d: augmentation introduced a token", j)
		}
	}

	// the original row must not be modified
	expected := []float64{1, 0, 1, 0, 1, 1, 0, 1}
	for j := range expected {
		if row[j] != expected[j] {
			t.Fatalf("augmentation mutated the input row at %d", j)
		}
	}
}

func TestAugmentRowZeroRate(t *testing.T) {
	row := []float64{1, 0, 1}
	augmented := AugmentRow(row, 0)
	for j := range row {
		if augmented[j] != row[j] {
			t.Errorf("column %d: expected %f, got %f", j, row[j], augmented[j])
		}
	}
}
