package model

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/verdict-ml/verdict/pkg/reviews"
)

// EnsembleModel soft-votes over several independently trained models. The
// first member trains synchronously so the ensemble is usable immediately;
// the rest join in the background as they finish.
type EnsembleModel struct {
	mutex  sync.Mutex
	Models []*Model
}

func NewEnsembleModel(ctx context.Context, pw progress.Writer, db *leveldb.DB, idx *reviews.WordIndex, params ModelParams, count int) (*EnsembleModel, error) {
	if count < 1 {
		return nil, fmt.Errorf("ensemble needs at least one model, got %d", count)
	}

	log.Printf("creating ensemble with %d members...", count)

	e := &EnsembleModel{
		Models: []*Model{},
	}

	log.Printf("training model: member %d", 1)
	m, err := NewModel(ctx, pw, db, idx, params)
	if err != nil {
		return nil, err
	}
	e.Models = append(e.Models, m)

	go func() {
		for i := range count {
			if i == 0 {
				continue
			}
			log.Printf("training model: member %d", i+1)
			m, err := NewModel(ctx, nil, db, idx, params)
			if err != nil {
				log.Printf("error training ensemble member %d: %v", i+1, err)
				continue
			}
			e.mutex.Lock()
			e.Models = append(e.Models, m)
			e.mutex.Unlock()
		}
	}()

	return e, nil
}

// Classify averages the positive-class probability across all trained
// members and applies the shared threshold.
func (e *EnsembleModel) Classify(text string) (Sentiment, float64, error) {
	e.mutex.Lock()
	models := make([]*Model, len(e.Models))
	copy(models, e.Models)
	e.mutex.Unlock()

	if len(models) == 0 {
		return SentimentNegative, 0, fmt.Errorf("no trained models in ensemble")
	}

	total := 0.0
	votes := 0
	for _, m := range models {
		_, prob, err := m.Classify(text)
		if err != nil {
			log.Printf("ensemble member error: %v", err)
			continue
		}
		total += prob
		votes++
	}
	if votes == 0 {
		return SentimentNegative, 0, fmt.Errorf("all ensemble members failed")
	}

	prob := total / float64(votes)
	if prob >= models[0].params.Threshold {
		return SentimentPositive, prob, nil
	}
	return SentimentNegative, prob, nil
}

// Metrics reports the held-out metrics of the first trained member.
func (e *EnsembleModel) Metrics() ModelMetrics {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.Models[0].Metrics
}
