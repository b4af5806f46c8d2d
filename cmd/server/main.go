package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftlog/internal/api"
	"liftlog/internal/config"
	"liftlog/internal/domain"
	mongorepo "liftlog/internal/repository/mongo"
	"liftlog/internal/repository/sqlite"
	"liftlog/internal/service"
	"liftlog/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// @title LiftLog API
// @version 1.0
// @description Personal workout log: entries, stats, export/import.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}
	log.Infof("starting liftlog server, storage driver: %s", cfg.Storage.Driver)

	idGen := domain.NewUUIDGenerator()

	var (
		logService      service.LogService
		transferService service.TransferService
		authService     service.AuthService
		cleanup         func()
	)

	// --- Optional export archive ---
	var archive storage.ExportArchive
	if cfg.Archive.Enabled {
		archive, err = storage.NewS3Archive(cfg.Archive.S3)
		if err != nil {
			log.Fatalf("failed to initialize export archive: %v", err)
		}
	}

	// --- Persistence variant ---
	switch cfg.Storage.Driver {
	case "mongo":
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("could not connect to MongoDB: %v", err)
		}
		cleanup = func() {
			log.Info("disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(dbClient); err != nil {
				log.Errorf("failed to disconnect MongoDB: %v", err)
			}
		}
		appDB := dbClient.Database(cfg.Database.Name)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongorepo.EnsureUserIndexes(ctx, appDB.Collection("users"))
			mongorepo.EnsureLogIndexes(ctx, appDB.Collection("log_entries"))
		}()

		repo := mongorepo.NewMongoLogRepository(appDB)
		userRepo := mongorepo.NewMongoUserRepository(appDB)
		authService = service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
		logService = service.NewLogService(repo, idGen)
		transferService = service.NewTransferService(repo, idGen, archive)

	case "sqlite":
		repo, db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("could not open SQLite database: %v", err)
		}
		cleanup = func() { db.Close() }
		// Local variant: no auth, single owner key.
		logService = service.NewLogService(repo, idGen)
		transferService = service.NewTransferService(repo, idGen, archive)

	default:
		log.Fatalf("unknown storage driver %q (use sqlite or mongo)", cfg.Storage.Driver)
	}
	defer cleanup()

	// --- HTTP ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.JWT.Secret, authService, logService, transferService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("server starting on %s", cfg.Server.Address)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Info("server exiting")
}
