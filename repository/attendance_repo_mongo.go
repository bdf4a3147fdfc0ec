package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vinyasaclub/models"
)

type MongoAttendanceRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoAttendanceRepo(db *mongo.Client, database string) *MongoAttendanceRepo {
	return &MongoAttendanceRepo{DB: db, Database: database}
}

func (r *MongoAttendanceRepo) db() *mongo.Database {
	return r.DB.Database(r.Database)
}

func (r *MongoAttendanceRepo) ListAttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	return r.ListAttendanceBetween(ctx, date, date)
}

func (r *MongoAttendanceRepo) ListAttendanceBetween(ctx context.Context, from, to string) ([]models.Attendance, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "member_id", Value: 1}})

	cur, err := r.db().Collection("attendance").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	list := []models.Attendance{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ReplaceAttendanceForDate upserts one document per member and then drops
// the date's documents for members not in entries. Concurrent writers for
// the same date never leave the date empty; the last upsert per member wins.
func (r *MongoAttendanceRepo) ReplaceAttendanceForDate(ctx context.Context, date string, entries []models.AttendanceEntry) ([]models.Attendance, error) {
	coll := r.db().Collection("attendance")
	members := r.db().Collection("members")
	upsert := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	stored := []models.Attendance{}
	pos := map[string]int{}
	for _, e := range entries {
		n, err := members.CountDocuments(ctx, bson.M{"_id": e.MemberID})
		if err != nil {
			return nil, fmt.Errorf("check member: %w", err)
		}
		if n == 0 {
			continue
		}

		var a models.Attendance
		err = coll.FindOneAndUpdate(ctx,
			bson.M{"member_id": e.MemberID, "date": date},
			bson.M{
				"$set":         bson.M{"status": e.Status},
				"$setOnInsert": bson.M{"_id": uuid.NewString()},
			},
			upsert,
		).Decode(&a)
		if err != nil {
			return nil, fmt.Errorf("upsert attendance: %w", err)
		}

		if i, seen := pos[a.MemberID]; seen {
			stored[i] = a
			continue
		}
		pos[a.MemberID] = len(stored)
		stored = append(stored, a)
	}

	keep := make([]string, 0, len(stored))
	for _, a := range stored {
		keep = append(keep, a.MemberID)
	}
	if _, err := coll.DeleteMany(ctx, bson.M{"date": date, "member_id": bson.M{"$nin": keep}}); err != nil {
		return nil, fmt.Errorf("clear attendance: %w", err)
	}

	sortAttendance(stored)
	return stored, nil
}

// EnsureIndexes creates the (member_id, date) uniqueness index.
func (r *MongoAttendanceRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.db().Collection("attendance").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
