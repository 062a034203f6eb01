package main

import (
	"flag"
	"os"

	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/db"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	_ = godotenv.Load()
}

// Usage: go run ./cmd/migrate [-down N] [-version]
func main() {
	down := flag.Int("down", 0, "roll back N migrations instead of applying")
	showVersion := flag.Bool("version", false, "print the applied schema version and exit")
	flag.Parse()

	logger := config.InitLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()

	mg, err := db.NewMigrator(config.DatabaseURL())
	if err != nil {
		logger.Fatal("❌ Migration setup failed", zap.Error(err))
	}
	defer mg.Close()

	switch {
	case *showVersion:
		v, dirty, err := mg.Version()
		if err != nil {
			logger.Fatal("❌ Could not read version", zap.Error(err))
		}
		logger.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case *down > 0:
		if err := mg.Down(*down); err != nil {
			logger.Fatal("❌ Rollback failed", zap.Error(err))
		}
		logger.Info("✅ Rolled back", zap.Int("steps", *down))
	default:
		if err := mg.Up(); err != nil {
			logger.Fatal("❌ Migration failed", zap.Error(err))
		}
		logger.Info("✅ Migrations applied")
	}
}
