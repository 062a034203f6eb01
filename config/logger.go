package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger builds the process logger and installs it as zap's global, so
// packages log through zap.L().
func InitLogger(appEnv string) *zap.Logger {
	var cfg zap.Config
	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	zap.ReplaceGlobals(logger)
	return logger
}
