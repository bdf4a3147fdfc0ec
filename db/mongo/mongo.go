package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	appName        = "vinyasaclub"
	connectTimeout = 10 * time.Second
)

// MongoDB holds the client and the database the club's collections live in.
type MongoDB struct {
	Client   *mongo.Client
	Ctx      context.Context
	Cancel   context.CancelFunc
	URL      string
	Database string
}

func NewMongoDB(url, database string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	return &MongoDB{
		Ctx:      ctx,
		Cancel:   cancel,
		URL:      url,
		Database: database,
	}
}

func (m *MongoDB) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(m.URL).
		SetAppName(appName).
		SetServerSelectionTimeout(connectTimeout)
}

func (m *MongoDB) Connect() error {
	if m.Database == "" {
		return fmt.Errorf("mongo database name is empty")
	}
	opts := m.clientOptions()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid MONGO_URL: %w", err)
	}

	client, err := mongo.Connect(m.Ctx, opts)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(m.Ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}
	m.Client = client
	return nil
}

// Disconnect uses a fresh context; the connect timeout has usually expired
// by the time the server shuts down.
func (m *MongoDB) Disconnect() error {
	m.Cancel()
	if m.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := m.Client.Disconnect(ctx)
	m.Client = nil
	return err
}

func (m *MongoDB) GetContext() context.Context {
	return m.Ctx
}
