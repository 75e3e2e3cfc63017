package model

import (
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// augmentDropRate is the token drop probability used when oversampling the
// minority class.
const augmentDropRate = 0.05

func balanceClasses(pw progress.Writer, features [][]float64, labels []float64) ([][]float64, []float64) {
	// Group samples by class
	classSamples := make(map[int][]int)
	for i, label := range labels {
		class := int(label)
		classSamples[class] = append(classSamples[class], i)
	}

	// Find majority class size
	majoritySize := 0
	for _, samples := range classSamples {
		if len(samples) > majoritySize {
			majoritySize = len(samples)
		}
	}

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: "Balancing classes",
			Total:   int64(majoritySize * len(classSamples)),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	balancedFeatures := make([][]float64, 0)
	balancedLabels := make([]float64, 0)

	for class, samples := range classSamples {
		for _, idx := range samples {
			balancedFeatures = append(balancedFeatures, features[idx])
			balancedLabels = append(balancedLabels, float64(class))
			if tracker != nil {
				tracker.Increment(1)
			}
		}

		// Oversample the minority class with token-dropout augmentation
		if len(samples) < majoritySize {
			numAugmented := majoritySize - len(samples)
			for range numAugmented {
				originalIdx := samples[rand.Intn(len(samples))]
				balancedFeatures = append(balancedFeatures, AugmentRow(features[originalIdx], augmentDropRate))
				balancedLabels = append(balancedLabels, float64(class))
				if tracker != nil {
					tracker.Increment(1)
				}
			}
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}

	return balancedFeatures, balancedLabels
}
