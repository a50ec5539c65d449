//	@title			PawHome API
//	@version		1.0
//	@description	Backend for PawHome — pet rehoming listings.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawhome/service/internal/auth"
	"github.com/pawhome/service/internal/config"
	"github.com/pawhome/service/internal/db"
	"github.com/pawhome/service/internal/identity"
	appMiddleware "github.com/pawhome/service/internal/middleware"
	"github.com/pawhome/service/internal/pet"
	"github.com/pawhome/service/internal/router"
	"github.com/pawhome/service/internal/storage"
	"github.com/pawhome/service/internal/user"

	_ "github.com/pawhome/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: provider/repository → service → handler
	provider := identity.NewLocalProvider(pool, cfg.JWTSecret)
	users := user.NewPostgresRepository(pool)

	authSvc := auth.NewService(provider, users)
	authHandler := auth.NewHandler(authSvc)

	petRepo := pet.NewPostgresRepository(pool)
	petSvc := pet.NewService(petRepo, store)
	petHandler := pet.NewHandler(petSvc)

	handler := router.New(router.Options{
		AllowedOrigin: cfg.CORSOrigin,
		Auth:          authHandler,
		Pets:          petHandler,
		Gate:          appMiddleware.RequireUser(provider, users),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
