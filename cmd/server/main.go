package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"vinyasaclub/config"
	"vinyasaclub/db"
	"vinyasaclub/db/mongo"
	"vinyasaclub/db/postgres"
	"vinyasaclub/db/sqlite"
	"vinyasaclub/handlers"
	"vinyasaclub/repository"
	"vinyasaclub/routes"
	"vinyasaclub/utils"
)

func main() {
	// Load config from .env or environment
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var (
		store *repository.Store
		conn  db.DB
	)

	switch cfg.DBType {
	case db.Postgres:
		if err := db.RunMigrations(db.Postgres, cfg.PostgresURL); err != nil {
			log.Fatal(err)
		}

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			log.Fatalf("could not connect to postgres: %v", err)
		}
		conn = pg
		store = repository.NewSQLStore(pg.Conn)

	case db.SQLite:
		if err := db.RunMigrations(db.SQLite, sqlite.DSN(cfg.SQLitePath)); err != nil {
			log.Fatal(err)
		}

		lite := sqlite.NewSQLiteDB(cfg.SQLitePath)
		if err := lite.Connect(); err != nil {
			log.Fatalf("could not open sqlite database: %v", err)
		}
		conn = lite
		store = repository.NewSQLStore(lite.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDB)
		if err := mg.Connect(); err != nil {
			log.Fatalf("could not connect to mongo: %v", err)
		}
		conn = mg

		attendance := repository.NewMongoAttendanceRepo(mg.Client, mg.Database)
		if err := attendance.EnsureIndexes(mg.GetContext()); err != nil {
			log.Fatalf("could not create mongo indexes: %v", err)
		}
		store = repository.NewMongoStore(mg.Client, mg.Database)
		store.Attendance = attendance

	default:
		log.Println("Using in-memory store; records last for the process lifetime")
		store = repository.NewMemoryBackedStore()
	}

	if conn != nil {
		defer func() {
			if err := conn.Disconnect(); err != nil {
				log.Printf("close %s connection: %v", cfg.DBType, err)
			}
		}()
	}

	clock := handlers.Clock{Now: time.Now, Location: cfg.Location}

	if cfg.SeedDemo {
		now := time.Now()
		if err := repository.SeedDemoData(context.Background(), store, utils.Today(now, cfg.Location), now); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	sessions := utils.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL)

	reportHandler := &handlers.ReportHandler{
		Repo:     repository.NewReportRepository(store.Members, store.Attendance),
		SavePath: cfg.ReportDir,
		Clock:    clock,
	}
	if cfg.R2.Enabled() {
		reportHandler.Uploader = utils.NewR2Uploader(cfg.R2)
	}

	router := routes.SetupRoutes(routes.Handlers{
		Sessions:   sessions,
		User:       &handlers.UserHandler{Repo: store.Users, Sessions: sessions},
		Member:     &handlers.MemberHandler{Repo: store.Members},
		Attendance: &handlers.AttendanceHandler{Repo: store.Attendance, Clock: clock},
		Performance: &handlers.PerformanceHandler{
			Repo:       store.Performance,
			MemberRepo: store.Members,
			Clock:      clock,
		},
		Dashboard: &handlers.DashboardHandler{
			Repo:  repository.NewDashboardRepository(store.Members, store.Attendance, store.Performance),
			Clock: clock,
		},
		Report: reportHandler,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on port %s (store: %s)", cfg.Port, cfg.DBType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
