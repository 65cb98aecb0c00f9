package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomid "github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/lineagemap/backend/internal/dataset"
	mid "github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/internal/storage"
	"github.com/lineagemap/backend/internal/store"
	"github.com/lineagemap/backend/internal/util"
	"github.com/lineagemap/backend/pkg/logger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbURL := util.GetEnv("DATABASE_URL")
	conn, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	runMigrations(dbURL)

	dataDir := util.GetEnvString("DATA_DIR", "data")
	resolver := dataset.NewResolver(dataset.Config{
		DataDir:    dataDir,
		ShippedDir: util.GetEnvString("SAMPLES_DIR", "samples"),
		LegacyDirs: []string{
			filepath.Join("static", "samples"),
			filepath.Join("static", "data"),
			filepath.Join(dataDir, "samples", "legacy"),
		},
	})
	if err := resolver.SeedSamples(); err != nil {
		logger.Error("Failed to seed samples", "err", err)
	}

	secret := util.GetEnv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		logger.Warn("SESSION_SECRET not set, using insecure development secret")
	}

	s3 := storage.NewS3Client(ctx)

	app := &mid.App{
		DBConn:        conn,
		Users:         store.NewUsers(conn),
		Resolver:      resolver,
		S3:            s3,
		SessionSecret: []byte(secret),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(echomid.CORS())
	e.Use(echomid.Logger())
	e.Use(echomid.Recover())
	e.Use(echomid.BodyLimit("16M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	timeout := time.Duration(util.GetEnvInt("SHUTDOWN_TIMEOUT", 10)) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func runMigrations(dbURL string) {
	migrationsDir := util.GetEnvString("MIGRATIONS_DIR", "migrations")
	m, err := migrate.New("file://"+migrationsDir, dbURL)
	if err != nil {
		logger.Fatal("Failed to open migrations", "err", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}
