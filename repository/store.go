package repository

import (
	"database/sql"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store bundles the credential store and the domain store for one backend.
type Store struct {
	Users       UserRepository
	Members     MemberRepository
	Attendance  AttendanceRepository
	Performance PerformanceRepository
}

func NewMemoryBackedStore() *Store {
	mem := NewMemoryStore()
	return &Store{Users: mem, Members: mem, Attendance: mem, Performance: mem}
}

// NewSQLStore works on a postgres or sqlite connection that has been migrated.
func NewSQLStore(db *sql.DB) *Store {
	return &Store{
		Users:       NewSQLUserRepo(db),
		Members:     NewSQLMemberRepo(db),
		Attendance:  NewSQLAttendanceRepo(db),
		Performance: NewSQLPerformanceRepo(db),
	}
}

func NewMongoStore(client *mongo.Client, database string) *Store {
	return &Store{
		Users:       NewMongoUserRepo(client, database),
		Members:     NewMongoMemberRepo(client, database),
		Attendance:  NewMongoAttendanceRepo(client, database),
		Performance: NewMongoPerformanceRepo(client, database),
	}
}
