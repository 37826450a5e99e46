package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tomlord1122/todo-expert/internal/audit"
	"github.com/Tomlord1122/todo-expert/internal/auth"
	"github.com/Tomlord1122/todo-expert/internal/config"
	"github.com/Tomlord1122/todo-expert/internal/database"
	"github.com/Tomlord1122/todo-expert/internal/repository"
	"github.com/Tomlord1122/todo-expert/internal/server"
	"github.com/Tomlord1122/todo-expert/internal/service"
	"github.com/Tomlord1122/todo-expert/internal/weather"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight requests get 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if dbService != nil {
		log.Println("Closing database connection pool...")
		if err := dbService.Close(); err != nil {
			log.Printf("Error closing database connection pool: %v", err)
		} else {
			log.Println("Database connection pool closed.")
		}
	}

	log.Println("Server exiting")

	done <- true
}

// openStore picks the storage backend. dbService is nil for the in-memory store.
func openStore(cfg *config.Config) (repository.Store, database.Service, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		log.Println("Using in-memory storage; data is lost on exit.")
		return repository.NewMemoryStore(), nil, nil
	}

	dbService, err := database.New(cfg.DB)
	if err != nil {
		return nil, nil, err
	}

	log.Println("Running database auto-migration...")
	if err := dbService.Migrate(); err != nil {
		_ = dbService.Close()
		return nil, nil, err
	}
	log.Println("Database auto-migration complete.")

	return repository.NewGormStore(dbService.GetDB()), dbService, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	key, err := cfg.JWT.Key()
	if err != nil {
		log.Fatalf("Invalid JWT configuration: %v", err)
	}

	store, dbService, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewTokenService(key, cfg.JWT.TokenTTL)
	weatherClient := weather.NewClient(cfg.Weather.URL, cfg.Weather.Timeout,
		weather.WithMaxRetries(cfg.Weather.MaxRetries))

	deps := server.Dependencies{
		AuthService:         service.NewAuthService(store, hasher, tokens),
		TodoService:         service.NewTodoService(store, weatherClient, cfg.Weather.Fallback),
		ManagerService:      service.NewManagerService(store),
		UserService:         service.NewUserService(store, hasher),
		UserAdminService:    service.NewUserAdminService(store),
		CommentAdminService: service.NewCommentAdminService(store),
		Resolver:            auth.NewResolver(tokens),
		Audit:               audit.NewLogRecorder(nil),
	}
	if dbService != nil {
		deps.Health = dbService
	}

	apiServer := server.NewServer(cfg.Port, deps)

	done := make(chan bool, 1)

	go gracefulShutdown(apiServer, dbService, done)

	log.Printf("Starting server on %s", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
