package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	appName        = "vinyasaclub"
	connectTimeout = 5 * time.Second
)

// PostgresDB is the pool behind the postgres store.
type PostgresDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
}

func NewPostgresDB(url string) *PostgresDB {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	return &PostgresDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
	}
}

// WithAppName tags the connection string with application_name so club
// sessions can be told apart in pg_stat_activity. An existing
// application_name is left alone.
func WithAppName(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", err
		}
		q := u.Query()
		if q.Get("application_name") == "" {
			q.Set("application_name", appName)
			u.RawQuery = q.Encode()
		}
		return u.String(), nil
	}
	if strings.Contains(dsn, "application_name=") {
		return dsn, nil
	}
	return strings.TrimSpace(dsn + " application_name=" + appName), nil
}

func (p *PostgresDB) Connect() error {
	dsn, err := WithAppName(p.URL)
	if err != nil {
		return fmt.Errorf("invalid POSTGRES_URL: %w", err)
	}
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return fmt.Errorf("invalid POSTGRES_URL: %w", err)
	}

	conn := sql.OpenDB(connector)
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.PingContext(p.Ctx); err != nil {
		conn.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	p.Conn = conn
	return nil
}

func (p *PostgresDB) Disconnect() error {
	p.Cancel()
	if p.Conn == nil {
		return nil
	}
	err := p.Conn.Close()
	p.Conn = nil
	return err
}

func (p *PostgresDB) GetContext() context.Context {
	return p.Ctx
}
