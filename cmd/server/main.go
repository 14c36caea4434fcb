// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/database"
	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/logging"
	"github.com/javajoker/perfume-store/internal/middleware"
	"github.com/javajoker/perfume-store/internal/router"
	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	logging.Setup(cfg.Log, cfg.IsProduction())

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale, cfg.I18n.LocalesPath); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		logrus.Fatal("Failed to seed admin account: ", err)
	}

	ctx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	// Session store: Redis when configured, in-process otherwise
	var store session.Store
	if cfg.Redis.Enabled() {
		rdb, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logrus.Fatal("Failed to connect to redis: ", err)
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
	} else {
		logrus.Warn("Redis not configured, sessions are kept in memory")
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store, cfg.Session.Secret, time.Duration(cfg.Session.TTLHours)*time.Hour)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize storage: ", err)
	}

	audit := middleware.NewAuditLogger(db)
	limits := middleware.NewRateLimits(cfg.RateLimit)
	limits.Start(ctx)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(db, cfg, router.Dependencies{
		Sessions:   sessions,
		Notifier:   services.NewNotificationService(cfg),
		Storage:    storageService,
		Audit:      audit,
		RateLimits: limits,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}
	audit.Wait()

	logrus.Info("Server exited")
}
