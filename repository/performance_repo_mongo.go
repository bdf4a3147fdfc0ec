package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vinyasaclub/models"
)

type MongoPerformanceRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoPerformanceRepo(db *mongo.Client, database string) *MongoPerformanceRepo {
	return &MongoPerformanceRepo{DB: db, Database: database}
}

func (r *MongoPerformanceRepo) coll() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("performance")
}

func (r *MongoPerformanceRepo) ListPerformance(ctx context.Context) ([]models.Performance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list performance: %w", err)
	}
	list := []models.Performance{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].CreatedAt = list[i].CreatedAt.UTC()
	}
	return list, nil
}

func (r *MongoPerformanceRepo) CreatePerformance(ctx context.Context, perf *models.Performance) error {
	perf.ID = uuid.NewString()
	if perf.CreatedAt.IsZero() {
		perf.CreatedAt = time.Now()
	}
	// BSON dates carry milliseconds.
	perf.CreatedAt = perf.CreatedAt.UTC().Truncate(time.Millisecond)

	if _, err := r.coll().InsertOne(ctx, perf); err != nil {
		return fmt.Errorf("insert performance: %w", err)
	}
	return nil
}

func (r *MongoPerformanceRepo) CountPerformanceSince(ctx context.Context, t time.Time) (int, error) {
	n, err := r.coll().CountDocuments(ctx, bson.M{"created_at": bson.M{"$gt": t}})
	if err != nil {
		return 0, fmt.Errorf("count performance: %w", err)
	}
	return int(n), nil
}
