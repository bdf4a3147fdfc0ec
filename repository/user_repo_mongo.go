package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vinyasaclub/models"
)

// caseInsensitive matches emails regardless of letter case.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

type MongoUserRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoUserRepo(db *mongo.Client, database string) *MongoUserRepo {
	return &MongoUserRepo{DB: db, Database: database}
}

func (r *MongoUserRepo) coll() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("users")
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	existing, err := r.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll().InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := r.coll().
		FindOne(ctx, bson.M{"email": email}, options.FindOne().SetCollation(caseInsensitive)).
		Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepo) CountUsers(ctx context.Context) (int, error) {
	n, err := r.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return int(n), nil
}
