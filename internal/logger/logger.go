package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/quiz-game/internal/config"
)

// New builds the application logger. The game owns stdout, so logs always go to stderr.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{"stderr"}
		return zc.Build()
	}

	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return zc.Build()
}
