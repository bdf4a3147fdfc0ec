package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending migration on its own connection to
// dsn and closes it afterwards. For sqlite, dsn is what sqlite.DSN returns.
func RunMigrations(dbType DBType, dsn string) error {
	var driverName, dir string
	switch dbType {
	case Postgres:
		driverName, dir = "postgres", "migrations/postgres"
	case SQLite:
		driverName, dir = "sqlite3", "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for %q", dbType)
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", dbType, err)
	}
	defer conn.Close()

	var driver database.Driver
	if dbType == Postgres {
		driver, err = postgres.WithInstance(conn, &postgres.Config{})
	} else {
		driver, err = sqlite3.WithInstance(conn, &sqlite3.Config{})
	}
	if err != nil {
		return fmt.Errorf("could not start %s driver: %w", dbType, err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(dbType), driver)
	if err != nil {
		return fmt.Errorf("migration failed to start: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	log.Printf("Migrations applied successfully (%s)", dbType)
	return nil
}
