package db

import (
	"context"
	"time"

	"github.com/verdict-ml/verdict/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RunsCollection = "runs"

// Run records a completed training run so results can be compared across
// hyperparameter changes.
type Run struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	StartedAt  time.Time          `bson:"startedAt"`
	FinishedAt time.Time          `bson:"finishedAt"`
	Params     model.ModelParams  `bson:"params"`
	Metrics    model.ModelMetrics `bson:"metrics"`
}

func SaveRun(db *mongo.Database, ctx context.Context, run Run) error {
	indexName := "startedAt"
	if err := EnsureIndex(db, ctx, RunsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "startedAt", Value: -1}},
		Options: &options.IndexOptions{
			Name: &indexName,
		},
	}); err != nil {
		return err
	}

	_, err := WithTransaction(db, ctx, func(ctx context.Context) (any, error) {
		if run.ID.IsZero() {
			run.ID = primitive.NewObjectID()
		}
		return db.Collection(RunsCollection).InsertOne(ctx, run)
	})
	return err
}
