package model

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/verdict-ml/verdict/pkg/reviews"
	"github.com/verdict-ml/verdict/pkg/vectorize"
	"gorgonia.org/tensor"
)

type Model struct {
	weights []tensor.Tensor
	db      *leveldb.DB
	idx     *reviews.WordIndex
	params  ModelParams
	Metrics ModelMetrics
}

// prepare loads a split and converts it to the numeric form the training
// graph consumes: a multi-hot indicator matrix and a float64 label vector.
func prepare(ctx context.Context, pw progress.Writer, db *leveldb.DB, idx *reviews.WordIndex, split string, params ModelParams) ([][]float64, []float64, error) {
	rs, err := reviews.GetReviews(ctx, db, pw, idx, split, params.VocabSize)
	if err != nil {
		return nil, nil, err
	}
	if len(rs) == 0 {
		return nil, nil, fmt.Errorf("no review data received for %s split", split)
	}

	sequences := make([][]int, len(rs))
	rawLabels := make([]int, len(rs))
	for i, review := range rs {
		sequences[i] = review.Tokens
		rawLabels[i] = review.Label
	}

	features, err := vectorize.MultiHot(sequences, params.VocabSize)
	if err != nil {
		return nil, nil, fmt.Errorf("vectorization error for %s split: %v", split, err)
	}

	labels, err := vectorize.Labels(rawLabels)
	if err != nil {
		return nil, nil, fmt.Errorf("label error for %s split: %v", split, err)
	}

	return features, labels, nil
}

func NewModel(ctx context.Context, pw progress.Writer, db *leveldb.DB, idx *reviews.WordIndex, params ModelParams) (*Model, error) {
	trainFeatures, trainLabels, err := prepare(ctx, pw, db, idx, reviews.SplitTrain, params)
	if err != nil {
		return nil, err
	}
	testFeatures, testLabels, err := prepare(ctx, pw, db, idx, reviews.SplitTest, params)
	if err != nil {
		return nil, err
	}

	trainFeatures, trainLabels = balanceClasses(pw, trainFeatures, trainLabels)

	weights, err := Train(pw, params, trainFeatures, trainLabels)
	if err != nil {
		return nil, fmt.Errorf("training error: %v", err)
	}

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: "Validation",
			Total:   int64(len(testFeatures)),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	confusionMatrix := evaluate(weights, params, testFeatures, testLabels, tracker)
	if tracker != nil {
		tracker.MarkAsDone()
	}

	metrics := calculateMetrics(confusionMatrix, len(testFeatures))

	m := &Model{
		weights: weights,
		db:      db,
		idx:     idx,
		params:  params,
		Metrics: metrics,
	}

	if validation, err := CrossValidate(pw, params, trainFeatures, trainLabels); err != nil {
		return nil, err
	} else {
		m.Metrics.Validation = validation
	}

	return m, nil
}

func (m *Model) Params() ModelParams {
	return m.params
}

// Classify tokenizes free text against the model's vocabulary and predicts
// its sentiment with the positive-class probability.
func (m *Model) Classify(text string) (Sentiment, float64, error) {
	tokens := reviews.Cap(reviews.Tokenize(text, m.idx), m.params.VocabSize)

	rows, err := vectorize.MultiHot([][]int{tokens}, m.params.VocabSize)
	if err != nil {
		return SentimentNegative, 0, err
	}

	prob, err := Predict(m.weights, m.params, rows[0])
	if err != nil {
		return SentimentNegative, 0, err
	}

	if prob >= m.params.Threshold {
		return SentimentPositive, prob, nil
	}
	return SentimentNegative, prob, nil
}
