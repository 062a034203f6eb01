package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PgxPool is the subset of *pgxpool.Pool used for raw queries (analytics,
// login tracking). Tests swap in a pgxmock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var (
	// Pool is the raw pgx pool
	Pool PgxPool

	// DB is the gorm handle used by the controllers
	DB *gorm.DB
)

func InitDB() {
	dsn := DatabaseURL()
	initPgx(dsn)
	initGORM(dsn)
}

// DatabaseURL prefers DATABASE_URL and falls back to the DB_* variables.
func DatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	zap.L().Warn("⚠️ DATABASE_URL not set, using local default")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "herbsera"),
	)
}

func initPgx(dsn string) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		zap.L().Fatal("❌ Unable to connect to database", zap.Error(err))
	}

	if err = pool.Ping(context.Background()); err != nil {
		zap.L().Fatal("❌ Database ping failed", zap.Error(err))
	}

	Pool = pool
	zap.L().Info("✅ Database connected (pgx)")
}

func initGORM(dsn string) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		zap.L().Fatal("❌ Failed to connect to database with GORM", zap.Error(err))
	}
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	zap.L().Info("✅ Database connected (GORM)")
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		zap.L().Info("✅ Database connection closed (pgx)")
	}

	if DB != nil {
		sqlDB, _ := DB.DB()
		if sqlDB != nil {
			sqlDB.Close()
			zap.L().Info("✅ Database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnv exposes getEnv to the cmd packages.
func GetEnv(key, defaultValue string) string {
	return getEnv(key, defaultValue)
}
