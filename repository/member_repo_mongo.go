package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vinyasaclub/models"
)

type MongoMemberRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoMemberRepo(db *mongo.Client, database string) *MongoMemberRepo {
	return &MongoMemberRepo{DB: db, Database: database}
}

func (r *MongoMemberRepo) db() *mongo.Database {
	return r.DB.Database(r.Database)
}

func (r *MongoMemberRepo) ListMembers(ctx context.Context) ([]models.Member, error) {
	cur, err := r.db().Collection("members").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	list := []models.Member{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *MongoMemberRepo) GetMember(ctx context.Context, id string) (*models.Member, error) {
	m := &models.Member{}
	err := r.db().Collection("members").FindOne(ctx, bson.M{"_id": id}).Decode(m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (r *MongoMemberRepo) CreateMember(ctx context.Context, member *models.Member) error {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.db().Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": vinCounter},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return fmt.Errorf("next vin: %w", err)
	}

	member.ID = uuid.NewString()
	member.Seq = counter.Value
	member.VIN = models.FormatVIN(counter.Value)
	if _, err := r.db().Collection("members").InsertOne(ctx, member); err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// DeleteMember removes the member first so a failure part way through
// never leaves records pointing at a member that still looks deletable.
func (r *MongoMemberRepo) DeleteMember(ctx context.Context, id string) error {
	res, err := r.db().Collection("members").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.db().Collection("attendance").DeleteMany(ctx, bson.M{"member_id": id}); err != nil {
		return fmt.Errorf("delete member attendance: %w", err)
	}
	if _, err := r.db().Collection("performance").DeleteMany(ctx, bson.M{"member_id": id}); err != nil {
		return fmt.Errorf("delete member performance: %w", err)
	}
	return nil
}

func (r *MongoMemberRepo) CountMembers(ctx context.Context) (int, error) {
	n, err := r.db().Collection("members").CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return int(n), nil
}
