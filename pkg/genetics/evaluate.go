package genetics

import (
	"context"
	"log"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/verdict-ml/verdict/pkg/model"
	"github.com/verdict-ml/verdict/pkg/reviews"
)

// Evaluate fitness by composing a new model from the strategy
func evaluateFitness(ctx context.Context, pw progress.Writer, db *leveldb.DB, idx *reviews.WordIndex, s Strategy) *model.ModelMetrics {
	params := StrategyToParams(s)

	if m, err := model.NewModel(ctx, pw, db, idx, params); err != nil {
		log.Printf("error evaluating strategy: %v", err)
		// Zero metrics, fully shaped so downstream reporting can index classes
		return &model.ModelMetrics{
			ConfusionMatrix: [][]float64{{0, 0}, {0, 0}},
			ClassPrecision:  make([]float64, 2),
			ClassRecall:     make([]float64, 2),
			F1Scores:        make([]float64, 2),
			Samples:         make([]int, 2),
		}
	} else {
		return &m.Metrics
	}
}
