package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/gamerzo/gamerzo-backend/internal/handlers"
	"github.com/gamerzo/gamerzo-backend/internal/logger"
	"github.com/gamerzo/gamerzo-backend/internal/middlewares"
	"github.com/gamerzo/gamerzo-backend/internal/repositories"
	"github.com/gamerzo/gamerzo-backend/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort,
		dbHost, dbPort, dbUser, dbPassword, dbName,
		dbMaxOpenConns, dbMaxIdleConns,
		migrationsDir, logLevel,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort,
		dbHost, dbPort, dbUser, dbPassword, dbName,
		dbMaxOpenConns, dbMaxIdleConns,
		migrationsDir, logLevel,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application and database configuration. Variable names and defaults
// follow the deployment's conventions (DB_HOST etc.).
func parseConfig(path string) (
	appHost, appPort string,
	dbHost string, dbPort int, dbUser, dbPassword, dbName string,
	dbMaxOpenConns, dbMaxIdleConns int,
	migrationsDir, logLevel string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "0.0.0.0")
	appPort = getEnv("APP_PORT", "5000")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	dbHost = getEnv("DB_HOST", "db")
	dbUser = getEnv("DB_USER", "postgres")
	dbPassword = getEnv("DB_PASSWORD", "postgres")
	dbName = getEnv("DB_NAME", "gamerzo")
	if dbPort, err = strconv.Atoi(getEnv("DB_PORT", "5432")); err != nil {
		return
	}
	if dbMaxOpenConns, err = strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if dbMaxIdleConns, err = strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Migrations config
	migrationsDir = getEnv("MIGRATIONS_DIR", "migrations")

	return
}

// applyMigrations runs all pending schema migrations.
func applyMigrations(migrationsDir, dsn string) error {
	m, err := migrate.New("file://"+migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// run initializes the logger and database, applies migrations, sets up
// routes and middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort string,
	dbHost string, dbPort int, dbUser, dbPassword, dbName string,
	dbMaxOpenConns, dbMaxIdleConns int,
	migrationsDir, logLevel string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", dbHost, dbPort, dbName)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Apply schema migrations
	if err := applyMigrations(migrationsDir, dsn); err != nil {
		logger.Log.Errorw("migration error", "error", err)
		return err
	}
	logger.Log.Info("Schema migrations applied")

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	gameWriteRepo := repositories.NewGameWriteRepository(db)
	statsWriteRepo := repositories.NewStatsWriteRepository(db)
	statsReadRepo := repositories.NewStatsReadRepository(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo)
	statsService := services.NewStatsService(gameWriteRepo, statsWriteRepo, statsReadRepo)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	recordStatsHandler := handlers.NewRecordStatsHandler(statsService)
	getStatsHandler := handlers.NewGetStatsHandler(statsService)
	healthHandler := handlers.NewHealthHandler(db)
	rootHandler := handlers.NewRootHandler()

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	r.Get("/", rootHandler)
	r.Get("/health", healthHandler)
	r.Post("/api/register", registerHandler)
	r.Post("/api/login", loginHandler)
	r.Post("/api/stats", recordStatsHandler)
	r.Get("/api/stats/{user_id}", getStatsHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
