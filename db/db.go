package db

import "context"

type DBType string

const (
	Memory   DBType = "memory"
	SQLite   DBType = "sqlite"
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

func (t DBType) Valid() bool {
	switch t {
	case Memory, SQLite, Postgres, Mongo:
		return true
	}
	return false
}

type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
